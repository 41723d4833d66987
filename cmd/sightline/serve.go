package main

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bytearena/sightline/common"
	"github.com/bytearena/sightline/common/recording"
	commontypes "github.com/bytearena/sightline/common/types"
	"github.com/bytearena/sightline/common/types/venuecontainer"
	"github.com/bytearena/sightline/common/utils"
	"github.com/bytearena/sightline/config"
	"github.com/bytearena/sightline/evalserver"
	"github.com/bytearena/sightline/evalserver/types"
	"github.com/davecgh/go-spew/spew"
	"github.com/ttacon/chalk"
	bettererrors "github.com/xtuc/better-errors"
)

func serveAction(configFile string, port int, venueFiles []string, debug bool) error {
	settings, err := config.LoadSettings(config.ResolvePath(configFile))
	if err != nil {
		return bettererrors.NewFromErr(err)
	}

	venues := types.NewVenueMap()
	for _, file := range venueFiles {
		venue, err := venuecontainer.Load(file)
		if err != nil {
			return err
		}

		venues.Set(venueName(file, venue), venue)
	}

	var recorder recording.Recorder = recording.MakeEmptyRecorder()
	if debug {
		recorder = recording.MakeDebugRecorder("evalserver")
	}

	service := evalserver.NewEvalService(":"+strconv.Itoa(port), settings, venues, recorder)

	utils.Debug("serve", "Sightline "+utils.GetVersion()+"; venues: "+strings.Join(venues.Keys(), ", "))

	failed := make(chan error, 1)
	go func() {
		failed <- service.ListenAndServe()
	}()

	select {
	case err := <-failed:
		return err
	case <-common.SignalHandler():
		utils.Debug("sighandler", "RECEIVED SHUTDOWN SIGNAL; closing.")
	}

	return service.Stop()
}

func venueName(file string, venue *venuecontainer.VenueContainer) string {
	if venue.Meta.Name != "" {
		return venue.Meta.Name
	}

	return strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
}

func configInitAction(file string) error {
	if file == "" {
		return bettererrors.New("Please, specify the settings file to write")
	}

	if _, err := os.Stat(file); err == nil {
		return bettererrors.
			New("Settings file already exists").
			SetContext("file", file)
	}

	if err := config.SaveSettings(file, commontypes.DefaultSettings()); err != nil {
		return bettererrors.NewFromErr(err)
	}

	os.Stdout.WriteString(chalk.Green.Color("Settings written to "+file) + "\n")

	return nil
}

func configShowAction(configFile string) error {
	settings, err := config.LoadSettings(config.ResolvePath(configFile))
	if err != nil {
		return bettererrors.NewFromErr(err)
	}

	spew.Fdump(os.Stdout, settings)

	return nil
}

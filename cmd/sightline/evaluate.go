package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/bytearena/sightline/avalue"
	"github.com/bytearena/sightline/common"
	"github.com/bytearena/sightline/common/assert"
	"github.com/bytearena/sightline/common/recording"
	"github.com/bytearena/sightline/common/types"
	"github.com/bytearena/sightline/common/types/venuecontainer"
	"github.com/bytearena/sightline/common/utils"
	"github.com/bytearena/sightline/config"
	"github.com/cheggaaa/pb"
	"github.com/davecgh/go-spew/spew"
	bettererrors "github.com/xtuc/better-errors"
)

type evaluateOptions struct {
	config     string
	venue      string
	parallel   bool
	workers    int
	json       bool
	dump       bool
	noProgress bool
	debug      bool
}

func evaluateAction(opts evaluateOptions) error {
	assert.Assert(opts.venue != "", "Please, specify a venue file using --venue")

	settings, err := config.LoadSettings(config.ResolvePath(opts.config))
	if err != nil {
		return bettererrors.NewFromErr(err)
	}

	if opts.parallel {
		settings.Parallel = true
	}

	if opts.workers > 0 {
		settings.Workers = opts.workers
	}

	venue, err := venuecontainer.Load(opts.venue)
	if err != nil {
		return err
	}

	audience, err := venue.Audience()
	if err != nil {
		return err
	}

	cone, err := venue.ViewCone(settings.NearClipDistance)
	if err != nil {
		return err
	}

	if cone != nil {
		settings.Cone = cone
	}

	// stdout only carries results
	utils.SetDebugOutput(os.Stderr)

	memory := recording.NewMemoryRecorder()
	recorders := recording.MultiRecorder{memory}
	if opts.debug {
		recorders = append(recorders, recording.MakeDebugRecorder("evaluate"))
	}

	evaluatorOptions := make([]avalue.Option, 0)

	var bar *pb.ProgressBar
	if !opts.noProgress && !opts.json && !opts.dump {
		bar = pb.New(len(audience))
		bar.Output = os.Stderr
		bar.SetWidth(80)
		bar.Start()

		evaluatorOptions = append(evaluatorOptions, avalue.WithResultHook(func(types.Result) {
			bar.Increment()
		}))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		<-common.SignalHandler()
		cancel()
	}()

	evaluator := avalue.NewEvaluator(recorders, evaluatorOptions...)
	results := evaluator.Evaluate(ctx, audience, &settings, venue.TargetArea())

	if bar != nil {
		bar.Finish()
	}

	for _, event := range memory.Filter(recording.Levels.Error, "") {
		utils.WarnWith(event.Err)
	}

	switch {
	case opts.dump:
		spew.Fdump(os.Stdout, results)
	case opts.json:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(results)
	default:
		printSummary(os.Stdout, results)
	}

	return nil
}

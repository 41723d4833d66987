package handler

import (
	"encoding/json"
	"net/http"

	"github.com/bytearena/sightline/common/recording"
	"github.com/bytearena/sightline/common/stats"
	commontypes "github.com/bytearena/sightline/common/types"
	"github.com/bytearena/sightline/common/types/venuecontainer"
	"github.com/bytearena/sightline/evalserver/types"
	bettererrors "github.com/xtuc/better-errors"
)

// Backend is shared by every handler of the service.
type Backend struct {
	Venues   *types.VenueMap
	Settings commontypes.Settings
	Counters *stats.Counters
	Recorder recording.Recorder
}

type evaluationInput struct {
	audience commontypes.Audience
	settings commontypes.Settings
	target   *commontypes.TargetArea
}

// prepare resolves the venue of a request and applies its overrides on a
// copy of the service settings. The returned status is meaningful on error.
func (b *Backend) prepare(req types.EvaluateRequest) (evaluationInput, int, error) {
	var input evaluationInput

	venue := req.Data
	if venue == nil {
		if req.Venue == "" {
			return input, http.StatusBadRequest, bettererrors.New("Request names no venue")
		}

		venue = b.Venues.Get(req.Venue)
		if venue == nil {
			return input, http.StatusNotFound, bettererrors.
				New("Venue not found").
				SetContext("venue", req.Venue)
		}
	}

	settings := b.Settings

	if req.Parallel != nil {
		settings.Parallel = *req.Parallel
	}

	if req.OcclusionEnabled != nil {
		settings.OcclusionEnabled = *req.OcclusionEnabled
	}

	if req.FocalPointStrategy != "" {
		strategy, err := commontypes.ParseFocalPointStrategy(req.FocalPointStrategy)
		if err != nil {
			return input, http.StatusBadRequest, err
		}
		settings.FocalPointStrategy = strategy
	}

	audience, cone, err := load(venue, settings.NearClipDistance)
	if err != nil {
		return input, http.StatusBadRequest, err
	}

	if cone != nil {
		settings.Cone = cone
	}

	input.audience = audience
	input.settings = settings
	input.target = venue.TargetArea()

	return input, http.StatusOK, nil
}

func load(venue *venuecontainer.VenueContainer, near float64) (commontypes.Audience, *commontypes.ViewCone, error) {
	audience, err := venue.Audience()
	if err != nil {
		return nil, nil, err
	}

	cone, err := venue.ViewCone(near)
	if err != nil {
		return nil, nil, err
	}

	return audience, cone, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		data = []byte(`{"error":"could not encode response"}`)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

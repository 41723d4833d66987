package handler

import (
	"encoding/json"
	"net/http"

	"github.com/bytearena/sightline/avalue"
	"github.com/bytearena/sightline/common/recording"
	"github.com/bytearena/sightline/evalserver/types"
	bettererrors "github.com/xtuc/better-errors"
)

func Evaluate(backend *Backend) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.EvaluateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, bettererrors.New("Invalid request body").With(bettererrors.NewFromErr(err)))
			return
		}

		input, status, err := backend.prepare(req)
		if err != nil {
			writeError(w, status, err)
			return
		}

		memory := recording.NewMemoryRecorder()
		evaluator := avalue.NewEvaluator(
			recording.MultiRecorder{memory, backend.Recorder},
			avalue.WithCounters(backend.Counters),
		)

		results := evaluator.Evaluate(r.Context(), input.audience, &input.settings, input.target)

		writeJSON(w, http.StatusOK, types.EvaluateResponse{
			Results: results,
			Events:  memory.Events(),
		})
	}
}

func Stats(backend *Backend) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, backend.Counters.Snapshot())
	}
}

type venueSummary struct {
	Name       string `json:"name"`
	Spectators int    `json:"spectators"`
}

func Venues(backend *Backend) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		venues := make([]venueSummary, 0)

		for _, name := range backend.Venues.Keys() {
			if venue := backend.Venues.Get(name); venue != nil {
				venues = append(venues, venueSummary{
					Name:       name,
					Spectators: len(venue.Data.Spectators),
				})
			}
		}

		writeJSON(w, http.StatusOK, venues)
	}
}

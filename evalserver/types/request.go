package types

import (
	"github.com/bytearena/sightline/common/recording"
	commontypes "github.com/bytearena/sightline/common/types"
	"github.com/bytearena/sightline/common/types/venuecontainer"
)

// EvaluateRequest names a preloaded venue or carries one inline.
type EvaluateRequest struct {
	Venue string                          `json:"venue,omitempty"`
	Data  *venuecontainer.VenueContainer `json:"data,omitempty"`

	Parallel           *bool  `json:"parallel,omitempty"`
	OcclusionEnabled   *bool  `json:"occlusion,omitempty"`
	FocalPointStrategy string `json:"focal_strategy,omitempty"`
}

type EvaluateResponse struct {
	Results []commontypes.Result `json:"results"`
	Events  []recording.Event    `json:"events"`
}

// StreamMessage is sent over the websocket: one "result" per spectator,
// then a single "done" carrying the events.
type StreamMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

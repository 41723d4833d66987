package types

import (
	"github.com/bytearena/sightline/common/utils/vector"
	uuid "github.com/satori/go.uuid"
)

// Result of one spectator. Polygons are in the spectator's view plane
// coordinates, see ViewCone.
type Result struct {
	SpectatorID uuid.UUID `json:"spectator_id"`
	Label       string    `json:"label,omitempty"`

	AValue    float64 `json:"avalue"`
	Occlusion float64 `json:"occlusion"`

	ReferencePoint vector.Vector3 `json:"reference_point"`
	ViewDirection  vector.Vector3 `json:"view_direction"`

	Footprint    [][]vector.Vector2   `json:"footprint"`
	ConeBoundary []vector.Vector2     `json:"cone_boundary"`
	Occluders    [][][]vector.Vector2 `json:"occluders,omitempty"`
	OccluderIDs  []uuid.UUID          `json:"occluder_ids,omitempty"`
}

// MakeDefaultResult is the result of a spectator that could not be
// evaluated.
func MakeDefaultResult(s Spectator, score float64) Result {
	return Result{
		SpectatorID:    s.ID,
		Label:          s.Label,
		AValue:         score,
		Occlusion:      0,
		ReferencePoint: s.Eye,
		ViewDirection:  s.ViewDirection,
		Footprint:      [][]vector.Vector2{},
		ConeBoundary:   []vector.Vector2{},
	}
}

// ResultsByID indexes results for correlation after a parallel evaluation.
func ResultsByID(results []Result) map[uuid.UUID]Result {
	byid := make(map[uuid.UUID]Result, len(results))
	for _, r := range results {
		byid[r.SpectatorID] = r
	}

	return byid
}

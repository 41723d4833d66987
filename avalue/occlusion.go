package avalue

import (
	"github.com/bytearena/sightline/common/geometry"
	"github.com/bytearena/sightline/common/spatialindex"
	"github.com/bytearena/sightline/common/types"
	"github.com/bytearena/sightline/common/utils/trigo"
	"github.com/bytearena/sightline/common/utils/vector"
	uuid "github.com/satori/go.uuid"
)

// Candidates shortlists the spectators able to block the view of the
// spectator at position self. IDs are audience positions, closest first.
func Candidates(index *spatialindex.Index, self int, eye, direction vector.Vector3, settings types.Settings, halfHorizontalAngle float64) []int {
	candidates := make([]int, 0)

	for _, neighbor := range index.RadiusQuery(eye, settings.FarClipDistance) {
		if neighbor.ID == self {
			continue // one cannot block itself
		}

		other := index.Point(neighbor.ID)

		if !elevationMatches(settings.OccluderElevation, eye, other) {
			continue
		}

		tocandidate := other.Sub(eye)
		if tocandidate.Dot(direction) <= 0 {
			continue // behind
		}

		if angle, ok := trigo.HorizontalAngleBetween(tocandidate, direction); ok && angle > halfHorizontalAngle {
			continue
		}

		candidates = append(candidates, neighbor.ID)
	}

	return candidates
}

func elevationMatches(elevation types.OccluderElevation, eye, other vector.Vector3) bool {
	switch elevation {
	case types.OccluderElevations.Higher:
		return other.GetZ() > eye.GetZ()
	case types.OccluderElevations.Any:
		return true
	default:
		return other.GetZ() < eye.GetZ()
	}
}

const clampTolerance = 1e-6

type occlusion struct {
	Percent     float64
	Raw         float64
	Silhouettes [][][]vector.Vector2
	IDs         []uuid.UUID
}

// Clamped reports whether the raw sum exceeded the view cone area.
func (o occlusion) Clamped() bool {
	return o.Raw > 100+clampTolerance
}

// accumulateOcclusion projects the heads of the candidates and measures the
// part of the visible footprint they cover. Overlapping heads are counted
// once per head unless the settings ask for a union.
func accumulateOcclusion(pipeline Pipeline, visible geometry.Polygon, coneArea float64, audience types.Audience, candidates []int, settings types.Settings) occlusion {
	res := occlusion{
		Silhouettes: make([][][]vector.Vector2, 0),
		IDs:         make([]uuid.UUID, 0),
	}

	if len(candidates) == 0 || geometry.Area(visible) == 0 {
		return res
	}

	union := geometry.Polygon{}
	sum := 0.0

	for _, id := range candidates {
		occluder := audience[id]
		outline := occluder.HeadOutlineFor(settings.HeadWidth, settings.HeadHeight)

		clipped, area := pipeline.Visible(outline, visible)
		if area == 0 {
			continue
		}

		res.Silhouettes = append(res.Silhouettes, geometry.FromPolygon(clipped))
		res.IDs = append(res.IDs, occluder.ID)

		if settings.UnionOccluders {
			union = geometry.Union(union, clipped)
		} else {
			sum += area
		}
	}

	if settings.UnionOccluders {
		sum = geometry.Area(union)
	}

	res.Raw = 100 * sum / coneArea
	res.Percent = res.Raw
	if res.Percent > 100 {
		res.Percent = 100
	}

	return res
}

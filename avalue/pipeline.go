package avalue

import (
	"github.com/bytearena/sightline/common/geometry"
	"github.com/bytearena/sightline/common/utils/vector"
)

// Pipeline projects world polygons on the view plane of one spectator: the
// plane orthogonal to the view direction at the near clip distance.
type Pipeline struct {
	Frame Frame
	Near  float64
	Plane geometry.Plane
}

func NewPipeline(frame Frame, near float64) Pipeline {
	return Pipeline{
		Frame: frame,
		Near:  near,
		Plane: geometry.MakePlane(frame.Origin.Add(frame.Z.MultScalar(near)), frame.Z),
	}
}

// PreClip keeps the part of the polygon lying beyond the view plane
// (Sutherland-Hodgman against a single plane). The result is an open ring.
func (p Pipeline) PreClip(polygon []vector.Vector3) []vector.Vector3 {
	ring := geometry.Open(polygon)
	res := make([]vector.Vector3, 0, len(ring)+1)

	for i := range ring {
		current := ring[i]
		next := ring[(i+1)%len(ring)]

		currentIn := p.Plane.SignedDistance(current) >= 0
		nextIn := p.Plane.SignedDistance(next) >= 0

		if currentIn {
			res = append(res, current)
		}

		if currentIn != nextIn {
			if crossing, ok := p.Plane.SegmentIntersection(current, next); ok {
				res = append(res, crossing)
			}
		}
	}

	return res
}

// Project casts a ray from the eye through every vertex; vertices whose ray
// misses the view plane are dropped.
func (p Pipeline) Project(polygon []vector.Vector3) []vector.Vector3 {
	res := make([]vector.Vector3, 0, len(polygon))

	for _, v := range polygon {
		if hit, ok := p.Plane.RayIntersection(p.Frame.Origin, v.Sub(p.Frame.Origin)); ok {
			res = append(res, hit)
		}
	}

	return res
}

func (p Pipeline) ToLocal(polygon []vector.Vector3) []vector.Vector2 {
	res := make([]vector.Vector2, len(polygon))
	for i, v := range polygon {
		res[i] = p.Frame.ToLocal2(v)
	}

	return res
}

// Footprint is the silhouette of a world polygon on the view plane.
func (p Pipeline) Footprint(polygon []vector.Vector3) []vector.Vector2 {
	return p.ToLocal(p.Project(p.PreClip(polygon)))
}

// Clip intersects a footprint with a view plane region. An empty footprint
// or an empty intersection yields an empty polygon.
func (p Pipeline) Clip(footprint []vector.Vector2, against geometry.Polygon) geometry.Polygon {
	return geometry.Intersection(geometry.ToPolygon(footprint), against)
}

// Visible runs the whole pipeline and measures the clipped area.
func (p Pipeline) Visible(polygon []vector.Vector3, against geometry.Polygon) (geometry.Polygon, float64) {
	clipped := p.Clip(p.Footprint(polygon), against)
	return clipped, geometry.Area(clipped)
}

package geometry

import (
	"math"

	"github.com/bytearena/sightline/common/utils/number"
	"github.com/bytearena/sightline/common/utils/trigo"
	"github.com/bytearena/sightline/common/utils/vector"
	bettererrors "github.com/xtuc/better-errors"
)

// PlanarTolerance is the maximum distance, in meters, of a vertex to the
// best-fit plane of a polygon considered planar.
var PlanarTolerance = 0.0001

// IsClosed reports whether the polyline returns to its first vertex.
func IsClosed(points []vector.Vector3) bool {
	if len(points) < 4 {
		return false
	}

	return points[0].Equals(points[len(points)-1])
}

// Open drops the closing vertex of a closed polyline.
func Open(points []vector.Vector3) []vector.Vector3 {
	if len(points) > 1 && points[0].Equals(points[len(points)-1]) {
		return points[:len(points)-1]
	}

	return points
}

func Close(points []vector.Vector3) []vector.Vector3 {
	if len(points) == 0 || IsClosed(points) {
		return points
	}

	res := make([]vector.Vector3, len(points), len(points)+1)
	copy(res, points)

	return append(res, points[0])
}

// Normal computes the polygon normal with Newell's method; its magnitude is
// twice the polygon area.
func Normal(points []vector.Vector3) vector.Vector3 {
	open := Open(points)

	nx, ny, nz := 0.0, 0.0, 0.0
	for i := range open {
		cx, cy, cz := open[i].Get()
		nxx, nyy, nzz := open[(i+1)%len(open)].Get()

		nx += (cy - nyy) * (cz + nzz)
		ny += (cz - nzz) * (cx + nxx)
		nz += (cx - nxx) * (cy + nyy)
	}

	return vector.MakeVector3(nx, ny, nz)
}

func Centroid(points []vector.Vector3) vector.Vector3 {
	open := Open(points)
	if len(open) == 0 {
		return vector.MakeNullVector3()
	}

	sum := vector.MakeNullVector3()
	for _, p := range open {
		sum = sum.Add(p)
	}

	return sum.DivScalar(float64(len(open)))
}

// PlaneOf returns the plane supporting a planar polygon.
func PlaneOf(points []vector.Vector3) (Plane, error) {
	normal := Normal(points)
	if number.IsZero(normal.Mag()) {
		return Plane{}, bettererrors.
			New("Degenerate polygon: no supporting plane").
			SetContext("vertices", number.FloatToStr(float64(len(points)), 0))
	}

	return MakePlane(Centroid(points), normal), nil
}

func IsPlanar(points []vector.Vector3) bool {
	plane, err := PlaneOf(points)
	if err != nil {
		return false
	}

	for _, p := range points {
		if math.Abs(plane.SignedDistance(p)) > PlanarTolerance {
			return false
		}
	}

	return true
}

// ClosestPoint returns the point of the (planar, filled) polygon closest to p.
func ClosestPoint(points []vector.Vector3, p vector.Vector3) vector.Vector3 {
	open := Open(points)

	if plane, err := PlaneOf(open); err == nil {
		projected := plane.ProjectPoint(p)

		local := make([]vector.Vector2, len(open))
		for i, v := range open {
			local[i] = plane.ToPlaneCoordinates(v)
		}

		if trigo.PointInPolygon(plane.ToPlaneCoordinates(projected), local) {
			return projected
		}
	}

	best := vector.MakeNullVector3()
	bestDistSq := math.Inf(1)

	for i := range open {
		candidate := trigo.ClosestPointOnSegment(p, open[i], open[(i+1)%len(open)])
		if distsq := candidate.Sub(p).MagSq(); distsq < bestDistSq {
			bestDistSq = distsq
			best = candidate
		}
	}

	return best
}

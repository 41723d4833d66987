package geometry

import (
	"github.com/bytearena/sightline/common/utils/number"
	"github.com/bytearena/sightline/common/utils/vector"
)

// Plane is an oriented plane; Normal is a unit vector.
type Plane struct {
	Origin vector.Vector3
	Normal vector.Vector3
}

func MakePlane(origin, normal vector.Vector3) Plane {
	return Plane{
		Origin: origin,
		Normal: normal.Normalize(),
	}
}

// SignedDistance is positive on the side the normal points to.
func (p Plane) SignedDistance(point vector.Vector3) float64 {
	return point.Sub(p.Origin).Dot(p.Normal)
}

func (p Plane) ProjectPoint(point vector.Vector3) vector.Vector3 {
	return point.Sub(p.Normal.MultScalar(p.SignedDistance(point)))
}

// SegmentIntersection returns the point where [a, b] crosses the plane.
func (p Plane) SegmentIntersection(a, b vector.Vector3) (vector.Vector3, bool) {
	da := p.SignedDistance(a)
	db := p.SignedDistance(b)

	if number.IsZero(da - db) {
		return vector.MakeNullVector3(), false // parallel
	}

	t := da / (da - db)
	if t < 0 || t > 1 {
		return vector.MakeNullVector3(), false
	}

	return a.Add(b.Sub(a).MultScalar(t)), true
}

// RayIntersection intersects the half-line origin + t*direction (t > 0).
func (p Plane) RayIntersection(origin, direction vector.Vector3) (vector.Vector3, bool) {
	denom := direction.Dot(p.Normal)
	if number.IsZero(denom) {
		return vector.MakeNullVector3(), false // parallel
	}

	t := p.Origin.Sub(origin).Dot(p.Normal) / denom
	if t <= 0 {
		return vector.MakeNullVector3(), false
	}

	return origin.Add(direction.MultScalar(t)), true
}

// Basis returns two unit vectors spanning the plane.
func (p Plane) Basis() (u, v vector.Vector3) {
	ref := vector.MakeVector3(0, 0, 1)
	if number.IsZeroWithin(p.Normal.Cross(ref).Mag(), 1e-6) {
		ref = vector.MakeVector3(1, 0, 0)
	}

	u = ref.Cross(p.Normal).Normalize()
	v = p.Normal.Cross(u).Normalize()

	return u, v
}

// ToPlaneCoordinates expresses point in the plane's 2D basis.
func (p Plane) ToPlaneCoordinates(point vector.Vector3) vector.Vector2 {
	u, v := p.Basis()
	rel := point.Sub(p.Origin)

	return vector.MakeVector2(rel.Dot(u), rel.Dot(v))
}

package trigo

import (
	"math"

	"github.com/bytearena/sightline/common/utils/number"
	"github.com/bytearena/sightline/common/utils/vector"
)

// AngleBetween returns the unsigned angle between a and b, in [0, Pi].
// A null vector yields 0.
func AngleBetween(a, b vector.Vector3) float64 {
	magprod := a.Mag() * b.Mag()
	if number.IsZero(magprod) {
		return 0
	}

	cos := number.Clamp(a.Dot(b)/magprod, -1, 1)
	return math.Acos(cos)
}

// HorizontalAngleBetween compares the horizontal components of a and b.
// ok is false when either has no horizontal component (vertical vector).
func HorizontalAngleBetween(a, b vector.Vector3) (angle float64, ok bool) {
	ha := a.Horizontal()
	hb := b.Horizontal()

	if ha.IsNull() || hb.IsNull() {
		return 0, false
	}

	return AngleBetween(ha, hb), true
}

func ClosestPointOnSegment(p, a, b vector.Vector3) vector.Vector3 {
	ab := b.Sub(a)
	lensq := ab.MagSq()
	if number.IsZero(lensq) {
		return a
	}

	t := number.Clamp(p.Sub(a).Dot(ab)/lensq, 0, 1)
	return a.Add(ab.MultScalar(t))
}

func PointOnLineSegment(p vector.Vector2, a vector.Vector2, b vector.Vector2) bool {
	t := 0.0001

	px, py := p.Get()
	ax, ay := a.Get()
	bx, by := b.Get()

	// ensure points are collinear
	zero := (bx-ax)*(py-ay) - (px-ax)*(by-ay)
	if zero > t || zero < -t {
		return false
	}

	// check if x-coordinates are not equal
	if ax-bx > t || bx-ax > t {
		// ensure x is between a.x & b.x (use tolerance)
		if ax > bx {
			return px+t > bx && px-t < ax
		}
		return px+t > ax && px-t < bx
	}

	// ensure y is between a.y & b.y (use tolerance)
	if ay > by {
		return py+t > by && py-t < ay
	}

	return py+t > ay && py-t < by
}

// PointInPolygon is an even-odd test; points on the boundary are inside.
func PointInPolygon(p vector.Vector2, polygon []vector.Vector2) bool {
	n := len(polygon)
	if n < 3 {
		return false
	}

	inside := false
	px, py := p.Get()

	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		if PointOnLineSegment(p, polygon[j], polygon[i]) {
			return true
		}

		xi, yi := polygon[i].Get()
		xj, yj := polygon[j].Get()

		if (yi > py) != (yj > py) && px < (xj-xi)*(py-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}

	return inside
}

func FullCircleAngleToSignedHalfCircleAngle(rad float64) float64 {
	if rad > math.Pi { // 180° en radians
		rad -= math.Pi * 2 // 360° en radian
	} else if rad < -math.Pi {
		rad += math.Pi * 2 // 360° en radian
	}

	return rad
}

package geometry

import (
	"math"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/bytearena/sightline/common/utils/vector"
)

type (
	Contour = polyclip.Contour
	Polygon = polyclip.Polygon
)

// AreaTolerance is the area, in square meters of view plane, under which a
// clipped piece is discarded as numerical noise.
var AreaTolerance = 1e-12

// ToContour converts an open 2D ring; consecutive duplicates and collinear
// vertices are removed. Rings that collapse below 3 vertices yield nil.
func ToContour(points []vector.Vector2) polyclip.Contour {
	cleaned := cleanRing(points)
	if len(cleaned) < 3 {
		return nil
	}

	contour := make(polyclip.Contour, len(cleaned))
	for i, p := range cleaned {
		contour[i] = polyclip.Point{X: p.GetX(), Y: p.GetY()}
	}

	return contour
}

func ToPolygon(points []vector.Vector2) polyclip.Polygon {
	contour := ToContour(points)
	if contour == nil {
		return polyclip.Polygon{}
	}

	return polyclip.Polygon{contour}
}

func FromContour(contour polyclip.Contour) []vector.Vector2 {
	res := make([]vector.Vector2, len(contour))
	for i, p := range contour {
		res[i] = vector.MakeVector2(p.X, p.Y)
	}

	return res
}

func FromPolygon(polygon polyclip.Polygon) [][]vector.Vector2 {
	res := make([][]vector.Vector2, 0, len(polygon))
	for _, contour := range polygon {
		res = append(res, FromContour(contour))
	}

	return res
}

// Intersection clips subject by clipping. An empty result is valid.
func Intersection(subject, clipping polyclip.Polygon) polyclip.Polygon {
	if isEmpty(subject) || isEmpty(clipping) {
		return polyclip.Polygon{}
	}

	return prune(subject.Construct(polyclip.INTERSECTION, clipping))
}

func Union(a, b polyclip.Polygon) polyclip.Polygon {
	if isEmpty(a) {
		return prune(b)
	}

	if isEmpty(b) {
		return prune(a)
	}

	return prune(a.Construct(polyclip.UNION, b))
}

// ContourArea is the signed shoelace area (counter-clockwise positive).
func ContourArea(contour polyclip.Contour) float64 {
	area := 0.0
	for i := range contour {
		j := (i + 1) % len(contour)
		area += contour[i].X*contour[j].Y - contour[j].X*contour[i].Y
	}

	return area / 2
}

func RingArea(points []vector.Vector2) float64 {
	contour := ToContour(points)
	if contour == nil {
		return 0
	}

	return math.Abs(ContourArea(contour))
}

// Area of a multi-contour polygon. Orientation of polyclip results is not
// reliable, so holes are found by nesting depth: a contour enclosed by an
// odd number of others is a hole.
func Area(polygon polyclip.Polygon) float64 {
	total := 0.0

	for i, contour := range polygon {
		area := math.Abs(ContourArea(contour))
		if area < AreaTolerance {
			continue
		}

		probe, ok := interiorPoint(contour)
		if !ok {
			continue
		}

		depth := 0
		for j, other := range polygon {
			if i == j {
				continue
			}

			if encloses(other, probe) {
				depth++
			}
		}

		if depth%2 == 0 {
			total += area
		} else {
			total -= area
		}
	}

	return math.Max(total, 0)
}

// encloses is a strict even-odd test with no boundary margin: footprint
// pieces on the view plane can be millimeters apart.
func encloses(contour polyclip.Contour, p vector.Vector2) bool {
	px, py := p.Get()
	inside := false

	for i, j := 0, len(contour)-1; i < len(contour); j, i = i, i+1 {
		a, b := contour[i], contour[j]
		if (a.Y > py) != (b.Y > py) && px < (b.X-a.X)*(py-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}

	return inside
}

// interiorPoint nudges the midpoint of the longest edge inwards.
func interiorPoint(contour polyclip.Contour) (vector.Vector2, bool) {
	n := len(contour)
	if n < 3 {
		return vector.MakeNullVector2(), false
	}

	longest, longestLen := 0, -1.0
	for i := range contour {
		a := contour[i]
		b := contour[(i+1)%n]
		if l := math.Hypot(b.X-a.X, b.Y-a.Y); l > longestLen {
			longest, longestLen = i, l
		}
	}

	a := FromContour(polyclip.Contour{contour[longest]})[0]
	b := FromContour(polyclip.Contour{contour[(longest+1)%n]})[0]

	edge := b.Sub(a)
	inward := edge.OrthogonalCounterClockwise().Normalize()
	if ContourArea(contour) < 0 {
		inward = inward.MultScalar(-1)
	}

	offset := math.Max(longestLen*1e-6, 1e-9)
	return a.Add(edge.MultScalar(0.5)).Add(inward.MultScalar(offset)), true
}

func isEmpty(polygon polyclip.Polygon) bool {
	for _, contour := range polygon {
		if len(contour) >= 3 {
			return false
		}
	}

	return true
}

// prune drops slivers and degenerate contours from a boolean op result.
func prune(polygon polyclip.Polygon) polyclip.Polygon {
	res := make(polyclip.Polygon, 0, len(polygon))
	for _, contour := range polygon {
		if len(contour) < 3 || math.Abs(ContourArea(contour)) < AreaTolerance {
			continue
		}
		res = append(res, contour)
	}

	return res
}

func cleanRing(points []vector.Vector2) []vector.Vector2 {
	if len(points) == 0 {
		return nil
	}

	// tolerances are relative to the ring extent: view plane coordinates of
	// far away heads are tiny
	minx, miny := points[0].Get()
	maxx, maxy := minx, miny
	for _, p := range points {
		x, y := p.Get()
		minx, maxx = math.Min(minx, x), math.Max(maxx, x)
		miny, maxy = math.Min(miny, y), math.Max(maxy, y)
	}

	eps := math.Max(maxx-minx, maxy-miny) * 1e-9
	if eps == 0 {
		return nil
	}

	same := func(a, b vector.Vector2) bool {
		return b.Sub(a).MagSq() <= eps*eps
	}

	deduped := make([]vector.Vector2, 0, len(points))
	for _, p := range points {
		if len(deduped) > 0 && same(deduped[len(deduped)-1], p) {
			continue
		}
		deduped = append(deduped, p)
	}

	if len(deduped) > 1 && same(deduped[0], deduped[len(deduped)-1]) {
		deduped = deduped[:len(deduped)-1]
	}

	// collinear vertices are dropped until stable
	for changed := true; changed && len(deduped) >= 3; {
		changed = false
		for i := 0; i < len(deduped); i++ {
			prev := deduped[(i+len(deduped)-1)%len(deduped)]
			next := deduped[(i+1)%len(deduped)]
			u := next.Sub(prev)
			v := deduped[i].Sub(prev)

			if math.Abs(u.Cross(v)) <= 1e-9*u.Mag()*v.Mag() {
				deduped = append(deduped[:i], deduped[i+1:]...)
				changed = true
				break
			}
		}
	}

	return deduped
}

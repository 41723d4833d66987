// Package geometry is the small geometry kernel used by the sightline
// evaluation: planes, planar 3D polygons, and 2D boolean operations on view
// plane polygons (delegated to polyclip).
package geometry

import (
	"math"

	"github.com/bytearena/sightline/common/utils/number"
	"github.com/bytearena/sightline/common/utils/vector"
	bettererrors "github.com/xtuc/better-errors"
)

type Kind int

const (
	KindPoint Kind = iota
	KindPolygon
	KindPlane
	kindCount
)

var kindNames = [kindCount]string{
	KindPoint:   "point",
	KindPolygon: "polygon",
	KindPlane:   "plane",
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "unknown"
	}

	return kindNames[k]
}

// Geometry is a tagged union over the variants the evaluation handles.
// Only the field matching Kind is meaningful.
type Geometry struct {
	Kind    Kind
	Point   vector.Vector3
	Polygon []vector.Vector3
	Plane   Plane
}

func MakePointGeometry(p vector.Vector3) Geometry {
	return Geometry{Kind: KindPoint, Point: p}
}

func MakePolygonGeometry(points []vector.Vector3) Geometry {
	return Geometry{Kind: KindPolygon, Polygon: points}
}

func MakePlaneGeometry(plane Plane) Geometry {
	return Geometry{Kind: KindPlane, Plane: plane}
}

type operations struct {
	validate func(g Geometry) error
	bounds   func(g Geometry) (min, max vector.Vector3)
}

var dispatch = [kindCount]operations{
	KindPoint: {
		validate: func(g Geometry) error { return nil },
		bounds: func(g Geometry) (vector.Vector3, vector.Vector3) {
			return g.Point, g.Point
		},
	},
	KindPolygon: {
		validate: validatePolygon,
		bounds:   polygonBounds,
	},
	KindPlane: {
		validate: func(g Geometry) error {
			if g.Plane.Normal.IsNull() {
				return bettererrors.New("Degenerate plane: null normal")
			}
			return nil
		},
		bounds: func(g Geometry) (vector.Vector3, vector.Vector3) {
			inf := math.Inf(1)
			return vector.MakeVector3(-inf, -inf, -inf), vector.MakeVector3(inf, inf, inf)
		},
	},
}

func (g Geometry) ops() (operations, error) {
	if g.Kind < 0 || g.Kind >= kindCount {
		return operations{}, bettererrors.
			New("Unknown geometry kind").
			SetContext("kind", number.FloatToStr(float64(g.Kind), 0))
	}

	return dispatch[g.Kind], nil
}

// Validate checks the invariants of the variant: a polygon must be closed
// and planar, a plane must have a normal.
func (g Geometry) Validate() error {
	ops, err := g.ops()
	if err != nil {
		return err
	}

	return ops.validate(g)
}

// Bounds is the axis aligned bounding box of the geometry.
func (g Geometry) Bounds() (min, max vector.Vector3) {
	ops, err := g.ops()
	if err != nil {
		return vector.MakeNullVector3(), vector.MakeNullVector3()
	}

	return ops.bounds(g)
}

func validatePolygon(g Geometry) error {
	count := number.FloatToStr(float64(len(g.Polygon)), 0)

	if !IsClosed(g.Polygon) {
		return bettererrors.
			New("Polygon is not closed").
			SetContext("vertices", count)
	}

	if len(Open(g.Polygon)) < 3 {
		return bettererrors.
			New("Polygon has less than 3 distinct vertices").
			SetContext("vertices", count)
	}

	if !IsPlanar(g.Polygon) {
		return bettererrors.
			New("Polygon is not planar").
			SetContext("vertices", count).
			SetContext("tolerance", number.FloatToStr(PlanarTolerance, 6))
	}

	return nil
}

func polygonBounds(g Geometry) (vector.Vector3, vector.Vector3) {
	if len(g.Polygon) == 0 {
		return vector.MakeNullVector3(), vector.MakeNullVector3()
	}

	minx, miny, minz := g.Polygon[0].Get()
	maxx, maxy, maxz := minx, miny, minz

	for _, p := range g.Polygon {
		x, y, z := p.Get()
		minx, maxx = math.Min(minx, x), math.Max(maxx, x)
		miny, maxy = math.Min(miny, y), math.Max(maxy, y)
		minz, maxz = math.Min(minz, z), math.Max(maxz, z)
	}

	return vector.MakeVector3(minx, miny, minz), vector.MakeVector3(maxx, maxy, maxz)
}

package geometry_test

import (
	"math"
	"testing"

	"github.com/bytearena/sightline/common/geometry"
	"github.com/bytearena/sightline/common/utils/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square3(size, z float64) []vector.Vector3 {
	return []vector.Vector3{
		vector.MakeVector3(0, 0, z),
		vector.MakeVector3(size, 0, z),
		vector.MakeVector3(size, size, z),
		vector.MakeVector3(0, size, z),
		vector.MakeVector3(0, 0, z),
	}
}

func rect2(minx, miny, maxx, maxy float64) []vector.Vector2 {
	return []vector.Vector2{
		vector.MakeVector2(minx, miny),
		vector.MakeVector2(maxx, miny),
		vector.MakeVector2(maxx, maxy),
		vector.MakeVector2(minx, maxy),
	}
}

func TestValidate(t *testing.T) {
	warped := square3(10, 0)
	warped[2] = vector.MakeVector3(10, 10, 1)

	cases := []struct {
		Name     string
		Geometry geometry.Geometry
		Valid    bool
	}{
		{"point", geometry.MakePointGeometry(vector.MakeVector3(1, 2, 3)), true},
		{"closed planar polygon", geometry.MakePolygonGeometry(square3(10, 2)), true},
		{"open polygon", geometry.MakePolygonGeometry(square3(10, 2)[:4]), false},
		{"non planar polygon", geometry.MakePolygonGeometry(warped), false},
		{"plane", geometry.MakePlaneGeometry(geometry.MakePlane(vector.MakeNullVector3(), vector.MakeVector3(0, 0, 1))), true},
		{"degenerate plane", geometry.MakePlaneGeometry(geometry.Plane{}), false},
		{"unknown kind", geometry.Geometry{Kind: geometry.Kind(42)}, false},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			err := c.Geometry.Validate()
			if c.Valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestBounds(t *testing.T) {
	min, max := geometry.MakePolygonGeometry(square3(4, 1)).Bounds()
	assert.True(t, min.Equals(vector.MakeVector3(0, 0, 1)))
	assert.True(t, max.Equals(vector.MakeVector3(4, 4, 1)))

	p := vector.MakeVector3(1, 2, 3)
	min, max = geometry.MakePointGeometry(p).Bounds()
	assert.True(t, min.Equals(p))
	assert.True(t, max.Equals(p))
}

func TestPlane(t *testing.T) {
	plane := geometry.MakePlane(vector.MakeVector3(0, 0, -1), vector.MakeVector3(0, 0, -3))

	assert.InDelta(t, 1.0, plane.SignedDistance(vector.MakeVector3(5, 5, -2)), 1e-12)
	assert.True(t, plane.ProjectPoint(vector.MakeVector3(5, 5, -2)).Equals(vector.MakeVector3(5, 5, -1)))

	hit, ok := plane.RayIntersection(vector.MakeNullVector3(), vector.MakeVector3(1, 0, -1))
	require.True(t, ok)
	assert.True(t, hit.Equals(vector.MakeVector3(1, 0, -1)))

	_, ok = plane.RayIntersection(vector.MakeNullVector3(), vector.MakeVector3(1, 0, 0))
	assert.False(t, ok, "parallel ray")

	_, ok = plane.RayIntersection(vector.MakeNullVector3(), vector.MakeVector3(0, 0, 1))
	assert.False(t, ok, "ray pointing away")

	crossing, ok := plane.SegmentIntersection(vector.MakeVector3(0, 0, 0), vector.MakeVector3(0, 0, -4))
	require.True(t, ok)
	assert.True(t, crossing.Equals(vector.MakeVector3(0, 0, -1)))
}

func TestNormalAndClosestPoint(t *testing.T) {
	sq := square3(10, 0)

	assert.InDelta(t, 200.0, geometry.Normal(sq).Mag(), 1e-9)
	assert.True(t, geometry.Centroid(sq).Equals(vector.MakeVector3(5, 5, 0)))

	inside := geometry.ClosestPoint(sq, vector.MakeVector3(3, 4, 7))
	assert.True(t, inside.Equals(vector.MakeVector3(3, 4, 0)))

	outside := geometry.ClosestPoint(sq, vector.MakeVector3(15, 4, 7))
	assert.True(t, outside.Equals(vector.MakeVector3(10, 4, 0)))
}

func TestIntersectionArea(t *testing.T) {
	a := geometry.ToPolygon(rect2(0, 0, 4, 4))
	b := geometry.ToPolygon(rect2(2, 2, 6, 6))

	assert.InDelta(t, 16.0, geometry.Area(a), 1e-9)
	assert.InDelta(t, 4.0, geometry.Area(geometry.Intersection(a, b)), 1e-9)
	assert.InDelta(t, 28.0, geometry.Area(geometry.Union(a, b)), 1e-9)

	disjoint := geometry.ToPolygon(rect2(10, 10, 12, 12))
	assert.Empty(t, geometry.Intersection(a, disjoint))
	assert.Equal(t, 0.0, geometry.Area(geometry.Intersection(a, disjoint)))
}

func TestAreaWithHole(t *testing.T) {
	outer := geometry.ToContour(rect2(0, 0, 10, 10))
	hole := geometry.ToContour(rect2(2, 2, 4, 4))

	assert.InDelta(t, 96.0, geometry.Area([]geometry.Contour{outer, hole}), 1e-9)
}

func TestAreaOfSeparatePieces(t *testing.T) {
	cases := []struct {
		Name     string
		Polygon  geometry.Polygon
		Expected float64
	}{
		{"stacked millimeter squares", geometry.Polygon{
			geometry.ToContour(rect2(0, 0, 0.001, 0.001)),
			geometry.ToContour(rect2(0, 0.01, 0.001, 0.011)),
		}, 2e-6},
		{"side by side millimeter squares", geometry.Polygon{
			geometry.ToContour(rect2(0, 0, 0.001, 0.001)),
			geometry.ToContour(rect2(0.002, 0, 0.003, 0.001)),
		}, 2e-6},
		{"millimeter hole", geometry.Polygon{
			geometry.ToContour(rect2(0, 0, 0.004, 0.004)),
			geometry.ToContour(rect2(0.001, 0.001, 0.002, 0.002)),
		}, 15e-6},
		{"island in a hole", geometry.Polygon{
			geometry.ToContour(rect2(0, 0, 10, 10)),
			geometry.ToContour(rect2(2, 2, 8, 8)),
			geometry.ToContour(rect2(4, 4, 6, 6)),
		}, 100 - 36 + 4},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			assert.InDelta(t, c.Expected, geometry.Area(c.Polygon), c.Expected*1e-9)
		})
	}
}

func TestToContourDegenerate(t *testing.T) {
	colinear := []vector.Vector2{
		vector.MakeVector2(0, 0),
		vector.MakeVector2(1, 1),
		vector.MakeVector2(2, 2),
	}

	assert.Nil(t, geometry.ToContour(colinear))
	assert.Equal(t, 0.0, geometry.RingArea(colinear))

	withDuplicates := append(rect2(0, 0, 1, 1), vector.MakeVector2(0, 0))
	assert.Len(t, geometry.ToContour(withDuplicates), 4)

	tiny := rect2(0, 0, 1e-5, 1e-5)
	assert.InDelta(t, 1e-10, geometry.RingArea(tiny), 1e-16)
	assert.True(t, math.Abs(geometry.RingArea(tiny)) > 0)
}

// Package spatialindex shortlists spectators around a point: an R-tree over
// eye locations answering radius queries.
package spatialindex

import (
	"math"
	"sort"

	"github.com/bytearena/sightline/common/geometry"
	"github.com/bytearena/sightline/common/utils/number"
	"github.com/bytearena/sightline/common/utils/vector"
	"github.com/dhconnelly/rtreego"
	bettererrors "github.com/xtuc/better-errors"
)

const (
	dimensions = 3
	minBranch  = 25
	maxBranch  = 50

	// rtreego refuses zero-sized rectangles
	pointTolerance = 1e-9
)

type Neighbor struct {
	ID       int
	Distance float64
}

type entry struct {
	id   int
	rect rtreego.Rect
}

func (e *entry) Bounds() rtreego.Rect {
	return e.rect
}

// Index is read-only once built and safe for concurrent queries.
type Index struct {
	tree   *rtreego.Rtree
	points []vector.Vector3
}

// BuildIndex indexes a flat x,y,z,x,y,z... coordinate array. Neighbor IDs
// are the position of the point in that array.
func BuildIndex(coords []float64) (*Index, error) {
	if len(coords)%dimensions != 0 {
		return nil, bettererrors.
			New("Coordinate array length is not a multiple of 3").
			SetContext("length", number.FloatToStr(float64(len(coords)), 0))
	}

	points := make([]vector.Vector3, len(coords)/dimensions)
	spatials := make([]rtreego.Spatial, len(points))

	for i := range points {
		points[i] = vector.MakeVector3(coords[i*3], coords[i*3+1], coords[i*3+2])

		rect, err := boundingRect(geometry.MakePointGeometry(points[i]), pointTolerance)
		if err != nil {
			return nil, bettererrors.
				New("Could not index point").
				SetContext("point", points[i].String()).
				With(err)
		}

		spatials[i] = &entry{id: i, rect: rect}
	}

	return &Index{
		tree:   rtreego.NewTree(dimensions, minBranch, maxBranch, spatials...),
		points: points,
	}, nil
}

// Flatten lays points out as expected by BuildIndex.
func Flatten(points []vector.Vector3) []float64 {
	coords := make([]float64, 0, len(points)*dimensions)
	for _, p := range points {
		x, y, z := p.Get()
		coords = append(coords, x, y, z)
	}

	return coords
}

func (idx *Index) Len() int {
	return len(idx.points)
}

func (idx *Index) Point(id int) vector.Vector3 {
	return idx.points[id]
}

// RadiusQuery returns the points within radius of point, closest first.
func (idx *Index) RadiusQuery(point vector.Vector3, radius float64) []Neighbor {
	neighbors := make([]Neighbor, 0)
	if radius < 0 || math.IsNaN(radius) || idx.Len() == 0 {
		return neighbors
	}

	x, y, z := point.Get()
	extent := math.Max(radius, pointTolerance)

	bb, err := rtreego.NewRect(
		rtreego.Point{x - extent, y - extent, z - extent},
		[]float64{extent * 2, extent * 2, extent * 2},
	)
	if err != nil {
		return neighbors
	}

	for _, spatial := range idx.tree.SearchIntersect(bb) {
		e := spatial.(*entry)

		distance := idx.points[e.id].DistanceTo(point)
		if distance <= radius {
			neighbors = append(neighbors, Neighbor{ID: e.id, Distance: distance})
		}
	}

	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].Distance == neighbors[j].Distance {
			return neighbors[i].ID < neighbors[j].ID
		}
		return neighbors[i].Distance < neighbors[j].Distance
	})

	return neighbors
}

func boundingRect(g geometry.Geometry, tolerance float64) (rtreego.Rect, error) {
	min, max := g.Bounds()

	minx, miny, minz := min.Get()
	size := max.Sub(min)

	return rtreego.NewRect(
		rtreego.Point{minx - tolerance, miny - tolerance, minz - tolerance},
		[]float64{size.GetX() + tolerance*2, size.GetY() + tolerance*2, size.GetZ() + tolerance*2},
	)
}

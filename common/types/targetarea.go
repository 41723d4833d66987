package types

import (
	"github.com/bytearena/sightline/common/geometry"
	"github.com/bytearena/sightline/common/utils/vector"
)

// TargetArea is the performance or playing surface, a closed planar polygon.
type TargetArea struct {
	Outline []vector.Vector3
}

func MakeTargetArea(outline []vector.Vector3) *TargetArea {
	return &TargetArea{
		Outline: geometry.Close(outline),
	}
}

func (t *TargetArea) Validate() error {
	return geometry.MakePolygonGeometry(t.Outline).Validate()
}

func (t *TargetArea) Centroid() vector.Vector3 {
	return geometry.Centroid(t.Outline)
}

func (t *TargetArea) ClosestPoint(p vector.Vector3) vector.Vector3 {
	return geometry.ClosestPoint(t.Outline, p)
}

package avalue

import (
	"github.com/bytearena/sightline/common/geometry"
	"github.com/bytearena/sightline/common/types"
	"github.com/bytearena/sightline/common/utils/number"
	"github.com/bytearena/sightline/common/utils/vector"
	bettererrors "github.com/xtuc/better-errors"
)

// SightLine resolves where the spectator looks, according to the focal point
// strategy. It returns the reference point and the unit view direction.
func SightLine(s types.Spectator, settings types.Settings, target *types.TargetArea) (vector.Vector3, vector.Vector3, error) {
	var focal vector.Vector3

	switch settings.FocalPointStrategy {
	case types.FocalPointStrategies.PerpendicularToRow:
		direction := s.ViewDirection.Normalize()
		if direction.IsNull() {
			return vector.Vector3{}, vector.Vector3{}, ErrNullDirection
		}

		return rowReferencePoint(s.Eye, direction, target), direction, nil

	case types.FocalPointStrategies.ToPoint:
		focal = target.Centroid()
	case types.FocalPointStrategies.ClosestOnTarget:
		focal = target.ClosestPoint(s.Eye)
	case types.FocalPointStrategies.FixedPoint:
		focal = settings.FocalPoint
	default:
		return vector.Vector3{}, vector.Vector3{}, bettererrors.
			New("Unknown focal point strategy").
			SetContext("strategy", string(settings.FocalPointStrategy))
	}

	direction := focal.Sub(s.Eye)
	if number.IsZeroWithin(direction.Mag(), frameTolerance) {
		return vector.Vector3{}, vector.Vector3{}, bettererrors.
			New("Focal point coincides with the eye").
			SetContext("eye", s.Eye.String())
	}

	return focal, direction.Normalize(), nil
}

// rowReferencePoint is where the stored view direction meets the target
// plane, or one meter ahead of the eye when it does not.
func rowReferencePoint(eye, direction vector.Vector3, target *types.TargetArea) vector.Vector3 {
	if plane, err := geometry.PlaneOf(target.Outline); err == nil {
		if p, ok := plane.RayIntersection(eye, direction); ok {
			return p
		}
	}

	return eye.Add(direction)
}

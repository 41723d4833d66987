// Package avalue evaluates what each spectator of an audience sees of a
// target area: the A-value (share of the view cone covered by the visible
// target) and the occlusion caused by the heads of other spectators.
package avalue

import (
	"github.com/bytearena/sightline/common/utils/number"
	"github.com/bytearena/sightline/common/utils/vector"
	"github.com/go-gl/mathgl/mgl64"
	bettererrors "github.com/xtuc/better-errors"
)

// frameTolerance under which the row vector is considered null.
const frameTolerance = 1e-9

var (
	up               = vector.MakeVector3(0, 0, 1)
	fallbackUp       = vector.MakeVector3(0, 1, 0)
	ErrParallelToUp  = bettererrors.New("View direction is parallel to the up axis, using +Y as reference")
	ErrNullDirection = bettererrors.New("View direction is null")
)

// Frame is the view aligned coordinate system of one spectator: X lateral,
// Y upwards on the view plane, Z along the view direction.
type Frame struct {
	Origin vector.Vector3
	X      vector.Vector3
	Y      vector.Vector3
	Z      vector.Vector3

	// Fallback is set when the frame had to be built from the +Y reference.
	Fallback bool

	worldToLocal mgl64.Mat4
}

func BuildFrame(eye, viewDirection vector.Vector3) (Frame, error) {
	if viewDirection.IsNull() {
		return Frame{}, ErrNullDirection
	}

	direction := viewDirection.Normalize()

	fallback := false
	row := up.Cross(direction)
	if number.IsZeroWithin(row.Mag(), frameTolerance) {
		row = fallbackUp.Cross(direction)
		fallback = true
	}

	viewy := direction.Cross(row).Normalize()
	viewx := direction.Cross(viewy).Reverse().Normalize()

	rotation := mgl64.Mat4FromRows(
		viewx.ToVec3().Vec4(0),
		viewy.ToVec3().Vec4(0),
		direction.ToVec3().Vec4(0),
		mgl64.Vec4{0, 0, 0, 1},
	)

	ex, ey, ez := eye.Get()

	return Frame{
		Origin:       eye,
		X:            viewx,
		Y:            viewy,
		Z:            direction,
		Fallback:     fallback,
		worldToLocal: rotation.Mul4(mgl64.Translate3D(-ex, -ey, -ez)),
	}, nil
}

// ToLocal expresses a world point in the frame; Z is the depth along the
// view direction.
func (f Frame) ToLocal(p vector.Vector3) vector.Vector3 {
	return vector.FromVec3(f.worldToLocal.Mul4x1(p.ToVec3().Vec4(1)).Vec3())
}

// ToLocal2 drops the depth of ToLocal.
func (f Frame) ToLocal2(p vector.Vector3) vector.Vector2 {
	local := f.ToLocal(p)
	return vector.MakeVector2(local.GetX(), local.GetY())
}

package vector

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/bytearena/sightline/common/utils/number"
	"github.com/go-gl/mathgl/mgl64"
)

// Vector3 is a point or direction in venue (world) space. Z is up.
type Vector3 struct {
	x float64
	y float64
	z float64
}

func MakeVector3(x float64, y float64, z float64) Vector3 {
	return Vector3{x, y, z}
}

// Returns a null Vector3
func MakeNullVector3() Vector3 {
	return MakeVector3(0, 0, 0)
}

func FromVec3(v mgl64.Vec3) Vector3 {
	return Vector3{v[0], v[1], v[2]}
}

func (v Vector3) Get() (float64, float64, float64) {
	return v.x, v.y, v.z
}

func (v Vector3) GetX() float64 {
	return v.x
}

func (v Vector3) GetY() float64 {
	return v.y
}

func (v Vector3) GetZ() float64 {
	return v.z
}

func (v Vector3) ToVec3() mgl64.Vec3 {
	return mgl64.Vec3{v.x, v.y, v.z}
}

func (v Vector3) MarshalJSON() ([]byte, error) {
	propfmt := "%.6f"
	buffer := bytes.NewBufferString("[")
	buffer.WriteString(fmt.Sprintf(propfmt, v.x))
	buffer.WriteString(",")
	buffer.WriteString(fmt.Sprintf(propfmt, v.y))
	buffer.WriteString(",")
	buffer.WriteString(fmt.Sprintf(propfmt, v.z))
	buffer.WriteString("]")
	return buffer.Bytes(), nil
}

func (v *Vector3) UnmarshalJSON(b []byte) error {
	var floats []float64
	if err := json.Unmarshal(b, &floats); err != nil {
		return err
	}

	if len(floats) != 3 {
		return errors.New("Vector3: expected [x, y, z]")
	}

	v.x, v.y, v.z = floats[0], floats[1], floats[2]

	return nil
}

func (a Vector3) Add(b Vector3) Vector3 {
	a.x += b.x
	a.y += b.y
	a.z += b.z
	return a
}

func (a Vector3) Sub(b Vector3) Vector3 {
	a.x -= b.x
	a.y -= b.y
	a.z -= b.z
	return a
}

func (a Vector3) MultScalar(f float64) Vector3 {
	a.x *= f
	a.y *= f
	a.z *= f
	return a
}

func (a Vector3) DivScalar(f float64) Vector3 {
	a.x /= f
	a.y /= f
	a.z /= f
	return a
}

// Reverse returns the opposite vector.
func (a Vector3) Reverse() Vector3 {
	return a.MultScalar(-1)
}

func (a Vector3) Mag() float64 {
	return math.Sqrt(a.MagSq())
}

func (a Vector3) MagSq() float64 {
	return (a.x*a.x + a.y*a.y + a.z*a.z)
}

func (a Vector3) SetMag(mag float64) Vector3 {
	return a.Normalize().MultScalar(mag)
}

func (a Vector3) Normalize() Vector3 {
	mag := a.Mag()
	if mag > 0 {
		return a.DivScalar(mag)
	}
	return a
}

func (a Vector3) Dot(v Vector3) float64 {
	return a.x*v.x + a.y*v.y + a.z*v.z
}

func (a Vector3) Cross(v Vector3) Vector3 {
	return Vector3{
		x: a.y*v.z - a.z*v.y,
		y: a.z*v.x - a.x*v.z,
		z: a.x*v.y - a.y*v.x,
	}
}

// Horizontal drops the vertical component.
func (a Vector3) Horizontal() Vector3 {
	a.z = 0
	return a
}

func (a Vector3) DistanceTo(b Vector3) float64 {
	return b.Sub(a).Mag()
}

func (a Vector3) IsNull() bool {
	return number.IsZero(a.x) && number.IsZero(a.y) && number.IsZero(a.z)
}

func (a Vector3) Equals(b Vector3) bool {
	return b.Sub(a).IsNull()
}

func (a Vector3) String() string {
	return "<Vector3(" + number.FloatToStr(a.x, 5) + ", " + number.FloatToStr(a.y, 5) + ", " + number.FloatToStr(a.z, 5) + ")>"
}

func (a Vector3) ToFloatArray() [3]float64 {
	return [3]float64{a.x, a.y, a.z}
}

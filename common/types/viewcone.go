package types

import (
	"math"

	"github.com/bytearena/sightline/common/geometry"
	"github.com/bytearena/sightline/common/utils/number"
	"github.com/bytearena/sightline/common/utils/trigo"
	"github.com/bytearena/sightline/common/utils/vector"
	bettererrors "github.com/xtuc/better-errors"
)

// ViewCone is the modeled field of view, a closed polygon in the view plane
// coordinates of a spectator (x lateral, y up, at the near clip distance).
// Its area is the denominator of every percentage.
type ViewCone struct {
	Polygon []vector.Vector2

	// HalfHorizontalAngle in radians; when zero it is derived from the
	// polygon and the near clip distance.
	HalfHorizontalAngle float64
}

func RectangularViewCone(widthDeg, heightDeg, near float64) *ViewCone {
	halfw := near * math.Tan(number.DegToRad(widthDeg/2))
	halfh := near * math.Tan(number.DegToRad(heightDeg/2))

	return &ViewCone{
		Polygon: []vector.Vector2{
			vector.MakeVector2(-halfw, -halfh),
			vector.MakeVector2(halfw, -halfh),
			vector.MakeVector2(halfw, halfh),
			vector.MakeVector2(-halfw, halfh),
		},
		HalfHorizontalAngle: number.DegToRad(widthDeg / 2),
	}
}

// ViewConeFromAngles builds a cone from a boundary table of
// (horizontal, vertical) angles in degrees, as found in field of view
// datasets. The table is used as is.
func ViewConeFromAngles(angles []vector.Vector2, near float64) (*ViewCone, error) {
	if len(angles) < 3 {
		return nil, bettererrors.
			New("View cone table needs at least 3 rows").
			SetContext("rows", number.FloatToStr(float64(len(angles)), 0))
	}

	polygon := make([]vector.Vector2, len(angles))
	halfh := 0.0

	for i, a := range angles {
		// tables may use the [0, 360[ convention
		h := number.RadToDeg(trigo.FullCircleAngleToSignedHalfCircleAngle(number.DegToRad(a.GetX())))
		v := number.RadToDeg(trigo.FullCircleAngleToSignedHalfCircleAngle(number.DegToRad(a.GetY())))

		if math.Abs(h) >= 90 || math.Abs(v) >= 90 {
			return nil, bettererrors.
				New("View cone angles must be within ]-90, 90[ degrees").
				SetContext("row", number.FloatToStr(float64(i), 0))
		}

		polygon[i] = vector.MakeVector2(
			near*math.Tan(number.DegToRad(h)),
			near*math.Tan(number.DegToRad(v)),
		)
		halfh = math.Max(halfh, math.Abs(number.DegToRad(h)))
	}

	return &ViewCone{
		Polygon:             polygon,
		HalfHorizontalAngle: halfh,
	}, nil
}

// Validate checks the cone is a closed ring enclosing a non-zero area.
func (c *ViewCone) Validate() error {
	if c == nil || len(c.Polygon) < 3 {
		vertices := 0
		if c != nil {
			vertices = len(c.Polygon)
		}

		return bettererrors.
			New("View cone is not a closed polygon").
			SetContext("vertices", number.FloatToStr(float64(vertices), 0))
	}

	if geometry.ToContour(c.Polygon) == nil || number.IsZeroWithin(c.Area(), geometry.AreaTolerance) {
		return bettererrors.
			New("View cone is degenerate (zero area)").
			SetContext("vertices", number.FloatToStr(float64(len(c.Polygon)), 0))
	}

	return nil
}

func (c *ViewCone) Area() float64 {
	return geometry.RingArea(c.Polygon)
}

func (c *ViewCone) Clip() geometry.Polygon {
	return geometry.ToPolygon(c.Polygon)
}

func (c *ViewCone) HorizontalHalfAngle(near float64) float64 {
	if c.HalfHorizontalAngle > 0 {
		return c.HalfHorizontalAngle
	}

	half := 0.0
	for _, p := range c.Polygon {
		half = math.Max(half, math.Atan2(math.Abs(p.GetX()), near))
	}

	return half
}

package number

import (
	"math"
	"strconv"
)

// Epsilon is the tolerance under which a length, area or coordinate is
// considered null. Venue coordinates are expressed in meters.
var Epsilon = 0.000001

func IsZero(f float64) bool {
	return math.Abs(f) < Epsilon
}

func IsZeroWithin(f float64, tolerance float64) bool {
	return math.Abs(f) < tolerance
}

func ToFixed(val float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(val*pow) / pow
}

func FloatToStr(f float64, places int) string {
	return strconv.FormatFloat(f, 'f', places, 64)
}

// Clamp bounds f to [lo, hi].
func Clamp(f, lo, hi float64) float64 {
	if f < lo {
		return lo
	}

	if f > hi {
		return hi
	}

	return f
}

func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

func RadToDeg(rad float64) float64 {
	return rad * 180.0 / math.Pi
}

package types

import (
	"strings"

	"github.com/bytearena/sightline/common/utils/number"
	"github.com/bytearena/sightline/common/utils/vector"
	bettererrors "github.com/xtuc/better-errors"
)

type FocalPointStrategy string

var FocalPointStrategies = struct {
	// ToPoint looks at the target area centroid
	ToPoint FocalPointStrategy
	// PerpendicularToRow keeps the spectator's own view direction
	PerpendicularToRow FocalPointStrategy
	// ClosestOnTarget looks at the point of the target closest to the eye
	ClosestOnTarget FocalPointStrategy
	// FixedPoint looks at Settings.FocalPoint
	FixedPoint FocalPointStrategy
}{
	ToPoint:            FocalPointStrategy("to-point"),
	PerpendicularToRow: FocalPointStrategy("perpendicular-to-row"),
	ClosestOnTarget:    FocalPointStrategy("closest-on-target"),
	FixedPoint:         FocalPointStrategy("fixed-point"),
}

func ParseFocalPointStrategy(s string) (FocalPointStrategy, error) {
	strategy := FocalPointStrategy(strings.ToLower(strings.TrimSpace(s)))

	switch strategy {
	case FocalPointStrategies.ToPoint,
		FocalPointStrategies.PerpendicularToRow,
		FocalPointStrategies.ClosestOnTarget,
		FocalPointStrategies.FixedPoint:
		return strategy, nil
	}

	return "", bettererrors.
		New("Unknown focal point strategy").
		SetContext("strategy", s)
}

// OccluderElevation is the venue convention telling which spectators can
// block the view: the ones seated lower (tiered stands) or higher.
type OccluderElevation string

var OccluderElevations = struct {
	Lower  OccluderElevation
	Higher OccluderElevation
	Any    OccluderElevation
}{
	Lower:  OccluderElevation("lower"),
	Higher: OccluderElevation("higher"),
	Any:    OccluderElevation("any"),
}

func ParseOccluderElevation(s string) (OccluderElevation, error) {
	elevation := OccluderElevation(strings.ToLower(strings.TrimSpace(s)))

	switch elevation {
	case OccluderElevations.Lower, OccluderElevations.Higher, OccluderElevations.Any:
		return elevation, nil
	}

	return "", bettererrors.
		New("Unknown occluder elevation").
		SetContext("elevation", s)
}

// Settings of one evaluation call. Passed by value to every stage; never
// shared as mutable state.
type Settings struct {
	ConeWidth  float64 // degrees, full horizontal angle
	ConeHeight float64 // degrees, full vertical angle

	NearClipDistance float64
	FarClipDistance  float64

	OcclusionEnabled bool
	Parallel         bool
	Workers          int // 0 means one per CPU

	FocalPointStrategy FocalPointStrategy
	FocalPoint         vector.Vector3

	DefaultScore float64

	HeadWidth  float64
	HeadHeight float64

	OccluderElevation OccluderElevation

	// UnionOccluders merges overlapping silhouettes before measuring them;
	// off by default, overlapping heads are then counted twice.
	UnionOccluders bool

	// Cone overrides the rectangular cone derived from ConeWidth/ConeHeight.
	Cone *ViewCone
}

func DefaultSettings() Settings {
	return Settings{
		ConeWidth:          60,
		ConeHeight:         45,
		NearClipDistance:   0.1,
		FarClipDistance:    20,
		OcclusionEnabled:   true,
		Parallel:           false,
		FocalPointStrategy: FocalPointStrategies.PerpendicularToRow,
		DefaultScore:       0,
		HeadWidth:          0.15,
		HeadHeight:         0.22,
		OccluderElevation:  OccluderElevations.Lower,
	}
}

func (s Settings) Validate() error {
	fail := func(msg string, field string, value float64) error {
		return bettererrors.
			New(msg).
			SetContext("field", field).
			SetContext("value", number.FloatToStr(value, 4))
	}

	if s.ConeWidth <= 0 || s.ConeWidth >= 180 {
		return fail("Cone width must be in ]0, 180[ degrees", "ConeWidth", s.ConeWidth)
	}

	if s.ConeHeight <= 0 || s.ConeHeight >= 180 {
		return fail("Cone height must be in ]0, 180[ degrees", "ConeHeight", s.ConeHeight)
	}

	if s.NearClipDistance <= 0 {
		return fail("Near clip distance must be positive", "NearClipDistance", s.NearClipDistance)
	}

	if s.FarClipDistance <= 0 {
		return fail("Far clip distance must be positive", "FarClipDistance", s.FarClipDistance)
	}

	if s.HeadWidth <= 0 || s.HeadHeight <= 0 {
		return fail("Head size must be positive", "HeadWidth/HeadHeight", s.HeadWidth*s.HeadHeight)
	}

	if s.DefaultScore < 0 || s.DefaultScore > 100 {
		return fail("Default score must be in [0, 100]", "DefaultScore", s.DefaultScore)
	}

	if s.Workers < 0 {
		return fail("Workers must not be negative", "Workers", float64(s.Workers))
	}

	if _, err := ParseFocalPointStrategy(string(s.FocalPointStrategy)); err != nil {
		return err
	}

	if _, err := ParseOccluderElevation(string(s.OccluderElevation)); err != nil {
		return err
	}

	return nil
}

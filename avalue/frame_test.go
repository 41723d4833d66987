package avalue_test

import (
	"testing"

	"github.com/bytearena/sightline/avalue"
	"github.com/bytearena/sightline/common/types"
	"github.com/bytearena/sightline/common/utils/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertVector3(t *testing.T, expected, actual vector.Vector3) {
	t.Helper()

	ex, ey, ez := expected.Get()
	ax, ay, az := actual.Get()

	assert.InDelta(t, ex, ax, 1e-9, "x of %s", actual)
	assert.InDelta(t, ey, ay, 1e-9, "y of %s", actual)
	assert.InDelta(t, ez, az, 1e-9, "z of %s", actual)
}

func TestBuildFrame(t *testing.T) {
	cases := []struct {
		name      string
		direction vector.Vector3
		x         vector.Vector3
		y         vector.Vector3
		fallback  bool
	}{
		{"looking north", vector.MakeVector3(0, 1, 0), vector.MakeVector3(-1, 0, 0), vector.MakeVector3(0, 0, 1), false},
		{"looking east", vector.MakeVector3(2, 0, 0), vector.MakeVector3(0, 1, 0), vector.MakeVector3(0, 0, 1), false},
		{"looking down", vector.MakeVector3(0, 0, -1), vector.MakeVector3(-1, 0, 0), vector.MakeVector3(0, 1, 0), true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			frame, err := avalue.BuildFrame(vector.MakeNullVector3(), c.direction)
			require.NoError(t, err)

			assert.Equal(t, c.fallback, frame.Fallback)
			assertVector3(t, c.x, frame.X)
			assertVector3(t, c.y, frame.Y)
			assertVector3(t, c.direction.Normalize(), frame.Z)

			assert.InDelta(t, 0, frame.X.Dot(frame.Y), 1e-12)
			assert.InDelta(t, 0, frame.X.Dot(frame.Z), 1e-12)
			assert.InDelta(t, 0, frame.Y.Dot(frame.Z), 1e-12)
		})
	}
}

func TestBuildFrameNullDirection(t *testing.T) {
	_, err := avalue.BuildFrame(vector.MakeVector3(1, 2, 3), vector.MakeNullVector3())
	assert.Error(t, err)
}

func TestFrameToLocal(t *testing.T) {
	eye := vector.MakeVector3(1, 1, 1)
	frame, err := avalue.BuildFrame(eye, vector.MakeVector3(0, 1, 0))
	require.NoError(t, err)

	assertVector3(t, vector.MakeNullVector3(), frame.ToLocal(eye))
	assertVector3(t, vector.MakeVector3(-1, 3, 2), frame.ToLocal(eye.Add(vector.MakeVector3(1, 2, 3))))
	assert.InDelta(t, 3, frame.ToLocal2(eye.Add(vector.MakeVector3(1, 2, 3))).GetY(), 1e-9)
}

func TestSightLine(t *testing.T) {
	target := types.MakeTargetArea([]vector.Vector3{
		vector.MakeVector3(-5, 10, 0),
		vector.MakeVector3(5, 10, 0),
		vector.MakeVector3(5, 20, 0),
		vector.MakeVector3(-5, 20, 0),
	})

	spectator := types.MakeSpectator("A1", vector.MakeVector3(0, 0, 3), vector.MakeVector3(0, 1, -0.3))

	cases := []struct {
		strategy  types.FocalPointStrategy
		reference vector.Vector3
	}{
		{types.FocalPointStrategies.PerpendicularToRow, vector.MakeVector3(0, 10, 0)},
		{types.FocalPointStrategies.ToPoint, vector.MakeVector3(0, 15, 0)},
		{types.FocalPointStrategies.ClosestOnTarget, vector.MakeVector3(0, 10, 0)},
		{types.FocalPointStrategies.FixedPoint, vector.MakeVector3(3, 4, 3)},
	}

	for _, c := range cases {
		t.Run(string(c.strategy), func(t *testing.T) {
			settings := types.DefaultSettings()
			settings.FocalPointStrategy = c.strategy
			settings.FocalPoint = vector.MakeVector3(3, 4, 3)

			reference, direction, err := avalue.SightLine(spectator, settings, target)
			require.NoError(t, err)

			assertVector3(t, c.reference, reference)
			assert.InDelta(t, 1, direction.Mag(), 1e-12)
			assertVector3(t, reference.Sub(spectator.Eye).Normalize(), direction)
		})
	}
}

func TestSightLineFocalPointOnEye(t *testing.T) {
	settings := types.DefaultSettings()
	settings.FocalPointStrategy = types.FocalPointStrategies.FixedPoint
	settings.FocalPoint = vector.MakeVector3(1, 1, 1)

	target := types.MakeTargetArea([]vector.Vector3{
		vector.MakeVector3(0, 0, 0),
		vector.MakeVector3(1, 0, 0),
		vector.MakeVector3(1, 1, 0),
	})

	_, _, err := avalue.SightLine(types.MakeSpectator("A1", vector.MakeVector3(1, 1, 1), vector.MakeVector3(0, 1, 0)), settings, target)
	assert.Error(t, err)
}

package types_test

import (
	"math"
	"testing"

	"github.com/bytearena/sightline/common/geometry"
	"github.com/bytearena/sightline/common/types"
	"github.com/bytearena/sightline/common/utils/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpectatorIDIsStable(t *testing.T) {
	a := types.MakeSpectator("A-12", vector.MakeNullVector3(), vector.MakeVector3(0, 1, 0))
	b := types.MakeSpectator("A-12", vector.MakeVector3(1, 1, 1), vector.MakeVector3(1, 0, 0))
	c := types.MakeSpectator("A-13", vector.MakeNullVector3(), vector.MakeVector3(0, 1, 0))

	assert.Equal(t, a.ID, b.ID)
	assert.NotEqual(t, a.ID, c.ID)
}

func TestGeneratedHeadOutline(t *testing.T) {
	s := types.MakeSpectator("A-1", vector.MakeVector3(0, 0, 2), vector.MakeVector3(0, 1, 0))

	outline := s.HeadOutlineFor(0.2, 0.3)

	require.True(t, geometry.IsClosed(outline))
	assert.NoError(t, geometry.MakePolygonGeometry(outline).Validate())
	assert.Nil(t, s.HeadOutline, "spectator is not modified")

	for _, p := range geometry.Open(outline) {
		assert.InDelta(t, 0.0, p.GetY(), 1e-12, "outline faces the view direction")
	}

	// ellipse area approaches Pi*a*b
	assert.InDelta(t, math.Pi*0.1*0.15, geometry.Normal(outline).Mag()/2, 0.002)
}

func TestStoredHeadOutlineIsCopied(t *testing.T) {
	s := types.MakeSpectator("A-1", vector.MakeNullVector3(), vector.MakeVector3(0, 1, 0))
	s.HeadOutline = []vector.Vector3{
		vector.MakeVector3(0, 0, 0),
		vector.MakeVector3(1, 0, 0),
		vector.MakeVector3(1, 0, 1),
		vector.MakeVector3(0, 0, 0),
	}

	outline := s.HeadOutlineFor(1, 1)
	outline[0] = vector.MakeVector3(9, 9, 9)

	assert.True(t, s.HeadOutline[0].IsNull())
}

func TestAudienceClone(t *testing.T) {
	s := types.MakeSpectator("A-1", vector.MakeNullVector3(), vector.MakeVector3(0, 1, 0))
	s.HeadOutline = []vector.Vector3{vector.MakeVector3(1, 2, 3)}

	audience := types.Audience{s}
	clone := audience.Clone()
	clone[0].HeadOutline[0] = vector.MakeNullVector3()

	assert.True(t, audience[0].HeadOutline[0].Equals(vector.MakeVector3(1, 2, 3)))
	assert.Nil(t, types.Audience(nil).Clone())
}

func TestTargetArea(t *testing.T) {
	target := types.MakeTargetArea([]vector.Vector3{
		vector.MakeVector3(0, 0, 0),
		vector.MakeVector3(4, 0, 0),
		vector.MakeVector3(4, 2, 0),
		vector.MakeVector3(0, 2, 0),
	})

	assert.NoError(t, target.Validate())
	assert.True(t, target.Centroid().Equals(vector.MakeVector3(2, 1, 0)))
	assert.True(t, target.ClosestPoint(vector.MakeVector3(6, 1, 3)).Equals(vector.MakeVector3(4, 1, 0)))

	open := &types.TargetArea{Outline: target.Outline[:4]}
	assert.Error(t, open.Validate())
}

func TestSettingsValidate(t *testing.T) {
	assert.NoError(t, types.DefaultSettings().Validate())

	cases := []struct {
		Name   string
		Mutate func(s *types.Settings)
	}{
		{"cone width", func(s *types.Settings) { s.ConeWidth = 0 }},
		{"cone height", func(s *types.Settings) { s.ConeHeight = 190 }},
		{"near clip", func(s *types.Settings) { s.NearClipDistance = 0 }},
		{"far clip", func(s *types.Settings) { s.FarClipDistance = -1 }},
		{"head", func(s *types.Settings) { s.HeadWidth = 0 }},
		{"default score", func(s *types.Settings) { s.DefaultScore = 101 }},
		{"workers", func(s *types.Settings) { s.Workers = -2 }},
		{"strategy", func(s *types.Settings) { s.FocalPointStrategy = "sideways" }},
		{"elevation", func(s *types.Settings) { s.OccluderElevation = "" }},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			s := types.DefaultSettings()
			c.Mutate(&s)
			assert.Error(t, s.Validate())
		})
	}
}

func TestParseEnums(t *testing.T) {
	strategy, err := types.ParseFocalPointStrategy(" Closest-On-Target ")
	require.NoError(t, err)
	assert.Equal(t, types.FocalPointStrategies.ClosestOnTarget, strategy)

	elevation, err := types.ParseOccluderElevation("higher")
	require.NoError(t, err)
	assert.Equal(t, types.OccluderElevations.Higher, elevation)

	_, err = types.ParseOccluderElevation("sideways")
	assert.Error(t, err)
}

func TestRectangularViewCone(t *testing.T) {
	cone := types.RectangularViewCone(60, 45, 1)

	require.NoError(t, cone.Validate())
	assert.InDelta(t, 4*math.Tan(math.Pi/6)*math.Tan(math.Pi/8), cone.Area(), 1e-12)
	assert.InDelta(t, math.Pi/6, cone.HorizontalHalfAngle(1), 1e-12)
}

func TestViewConeFromAngles(t *testing.T) {
	cone, err := types.ViewConeFromAngles([]vector.Vector2{
		vector.MakeVector2(-45, -30),
		vector.MakeVector2(30, -30),
		vector.MakeVector2(30, 20),
		vector.MakeVector2(-45, 20),
	}, 2)
	require.NoError(t, err)
	require.NoError(t, cone.Validate())

	assert.InDelta(t, math.Pi/4, cone.HorizontalHalfAngle(2), 1e-12)
	assert.InDelta(t, -2.0, cone.Polygon[0].GetX(), 1e-12)

	fullcircle, err := types.ViewConeFromAngles([]vector.Vector2{
		vector.MakeVector2(315, 330),
		vector.MakeVector2(30, 330),
		vector.MakeVector2(30, 20),
		vector.MakeVector2(315, 20),
	}, 2)
	require.NoError(t, err)
	assert.InDelta(t, cone.Area(), fullcircle.Area(), 1e-9)

	_, err = types.ViewConeFromAngles([]vector.Vector2{vector.MakeVector2(0, 0)}, 1)
	assert.Error(t, err)

	_, err = types.ViewConeFromAngles([]vector.Vector2{
		vector.MakeVector2(0, 0), vector.MakeVector2(95, 0), vector.MakeVector2(0, 10),
	}, 1)
	assert.Error(t, err)
}

func TestDegenerateViewCone(t *testing.T) {
	colinear := &types.ViewCone{Polygon: []vector.Vector2{
		vector.MakeVector2(0, 0),
		vector.MakeVector2(1, 1),
		vector.MakeVector2(2, 2),
	}}
	assert.Error(t, colinear.Validate())

	var missing *types.ViewCone
	assert.Error(t, missing.Validate())

	custom := &types.ViewCone{Polygon: []vector.Vector2{
		vector.MakeVector2(-1, -1),
		vector.MakeVector2(1, -1),
		vector.MakeVector2(0, 1),
	}}
	assert.InDelta(t, math.Pi/4, custom.HorizontalHalfAngle(1), 1e-12)
}

func TestResultsByID(t *testing.T) {
	s := types.MakeSpectator("A-1", vector.MakeNullVector3(), vector.MakeVector3(0, 1, 0))
	r := types.MakeDefaultResult(s, 12)

	byid := types.ResultsByID([]types.Result{r})
	assert.Equal(t, 12.0, byid[s.ID].AValue)
}

func TestSyncMap(t *testing.T) {
	m := types.NewSyncMap()
	m.Set("north", 1)
	m.Set("east", 2)

	assert.Equal(t, 2, m.Size())
	assert.Equal(t, []string{"east", "north"}, m.Keys())
	assert.Equal(t, 1, m.GetGeneric("north"))
	assert.Nil(t, m.GetGeneric("south"))

	m.Remove("north")
	assert.Equal(t, []string{"east"}, m.Keys())
}

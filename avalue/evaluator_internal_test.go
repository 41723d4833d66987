package avalue

import (
	"errors"
	"testing"

	"github.com/bytearena/sightline/common/recording"
	"github.com/bytearena/sightline/common/spatialindex"
	"github.com/bytearena/sightline/common/types"
	"github.com/bytearena/sightline/common/utils/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafelyRecoversPanics(t *testing.T) {
	recorder := recording.NewMemoryRecorder()
	e := NewEvaluator(recorder)

	spectator := types.MakeSpectator("A1", vector.MakeVector3(1, 2, 3), vector.MakeVector3(0, 1, 0))

	var result types.Result
	assert.NotPanics(t, func() {
		result = e.safely(spectator, 42, func() (types.Result, error) {
			panic("degenerate silhouette")
		})
	})

	assert.Equal(t, spectator.ID, result.SpectatorID)
	assert.Equal(t, 42.0, result.AValue)

	events := recorder.Filter(recording.Levels.Error, recording.Kinds.Evaluation)
	require.Len(t, events, 1)
	assert.Equal(t, spectator.ID, events[0].SpectatorID)
	assert.Equal(t, 1, e.Counters().Failed.Get())
}

func TestSafelyRecordsErrors(t *testing.T) {
	recorder := recording.NewMemoryRecorder()
	e := NewEvaluator(recorder)

	spectator := types.MakeSpectator("A1", vector.MakeVector3(1, 2, 3), vector.MakeVector3(0, 1, 0))

	result := e.safely(spectator, 5, func() (types.Result, error) {
		return types.Result{}, errors.New("no sight line")
	})

	assert.Equal(t, 5.0, result.AValue)
	assert.Len(t, recorder.Filter(recording.Levels.Error, recording.Kinds.DegenerateGeometry), 1)
	assert.Empty(t, recorder.Filter(recording.Levels.Error, recording.Kinds.InvalidInput))
	assert.Equal(t, 0, e.Counters().Evaluated.Get())
}

func TestCandidates(t *testing.T) {
	eyes := []vector.Vector3{
		vector.MakeVector3(0, 0, 2),   // self
		vector.MakeVector3(0, 2, 1),   // in front, lower
		vector.MakeVector3(0, 3, 3),   // in front, higher
		vector.MakeVector3(0, -2, 1),  // behind
		vector.MakeVector3(5, 1, 1),   // outside the horizontal cone
		vector.MakeVector3(0, 40, 1),  // beyond the far clip
		vector.MakeVector3(0, 0.5, 0), // right below, in front
	}

	audience := make(types.Audience, len(eyes))
	for i, eye := range eyes {
		audience[i] = types.MakeSpectator(string(rune('A'+i)), eye, vector.MakeVector3(0, 1, 0))
	}

	index, err := buildTestIndex(audience)
	require.NoError(t, err)

	halfangle := types.RectangularViewCone(60, 45, 0.1).HorizontalHalfAngle(0.1)

	cases := []struct {
		elevation types.OccluderElevation
		expected  []int
	}{
		{types.OccluderElevations.Lower, []int{6, 1}},
		{types.OccluderElevations.Higher, []int{2}},
		{types.OccluderElevations.Any, []int{6, 1, 2}},
	}

	for _, c := range cases {
		t.Run(string(c.elevation), func(t *testing.T) {
			settings := types.DefaultSettings()
			settings.OccluderElevation = c.elevation

			assert.Equal(t, c.expected, Candidates(index, 0, eyes[0], vector.MakeVector3(0, 1, 0), settings, halfangle))
		})
	}
}

func buildTestIndex(audience types.Audience) (*spatialindex.Index, error) {
	return spatialindex.BuildIndex(spatialindex.Flatten(audience.Eyes()))
}

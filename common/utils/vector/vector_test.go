package vector_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/bytearena/sightline/common/utils/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVector3Cross(t *testing.T) {
	x := vector.MakeVector3(1, 0, 0)
	y := vector.MakeVector3(0, 1, 0)
	z := vector.MakeVector3(0, 0, 1)

	assert.True(t, x.Cross(y).Equals(z))
	assert.True(t, y.Cross(z).Equals(x))
	assert.True(t, z.Cross(x).Equals(y))
	assert.True(t, x.Cross(x).IsNull())
}

func TestVector3Normalize(t *testing.T) {
	v := vector.MakeVector3(3, 0, 4)

	assert.InDelta(t, 5.0, v.Mag(), 1e-12)
	assert.InDelta(t, 1.0, v.Normalize().Mag(), 1e-12)
	assert.True(t, vector.MakeNullVector3().Normalize().IsNull())
	assert.True(t, v.Horizontal().Equals(vector.MakeVector3(3, 0, 0)))
	assert.True(t, v.Reverse().Equals(vector.MakeVector3(-3, 0, -4)))
}

func TestVector2Angle(t *testing.T) {
	assert.InDelta(t, math.Pi/2, vector.MakeVector2(0, 2).Angle(), 1e-12)
	assert.InDelta(t, 0.0, vector.MakeNullVector2().Angle(), 1e-12)
	assert.InDelta(t, 1.0, vector.MakeVector2(1, 0).Cross(vector.MakeVector2(0, 1)), 1e-12)
}

func TestJSON(t *testing.T) {
	var v3 vector.Vector3
	require.NoError(t, json.Unmarshal([]byte("[1.5, -2, 3]"), &v3))
	assert.True(t, v3.Equals(vector.MakeVector3(1.5, -2, 3)))

	data, err := json.Marshal(v3)
	require.NoError(t, err)
	assert.Equal(t, "[1.500000,-2.000000,3.000000]", string(data))

	var v2 vector.Vector2
	assert.Error(t, json.Unmarshal([]byte("[1, 2, 3]"), &v2))
	require.NoError(t, json.Unmarshal([]byte("[4, 5]"), &v2))
	assert.True(t, v2.Equals(vector.MakeVector2(4, 5)))
}

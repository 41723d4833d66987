package main

import (
	"bytes"
	"testing"

	"github.com/bytearena/sightline/common/types"
	"github.com/bytearena/sightline/common/types/venuecontainer"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	s := summarize([]types.Result{
		{AValue: 10, Occlusion: 2},
		{AValue: 30, Occlusion: 0},
		{AValue: 20, Occlusion: 4},
	})

	assert.Equal(t, 3, s.Count)
	assert.InDelta(t, 20, s.MeanAValue, 1e-12)
	assert.Equal(t, 10.0, s.MinAValue)
	assert.Equal(t, 30.0, s.MaxAValue)
	assert.InDelta(t, 2, s.MeanOcclusion, 1e-12)

	assert.Equal(t, summary{}, summarize(nil))
}

func TestPrintSummary(t *testing.T) {
	buf := &bytes.Buffer{}
	printSummary(buf, []types.Result{{Label: "N-A-1", AValue: 42}})

	assert.Contains(t, buf.String(), "N-A-1")
	assert.Contains(t, buf.String(), "1 spectators")
}

func TestVenueName(t *testing.T) {
	venue := &venuecontainer.VenueContainer{}
	assert.Equal(t, "north-stand", venueName("/venues/north-stand.json", venue))

	venue.Meta.Name = "north"
	assert.Equal(t, "north", venueName("/venues/north-stand.json", venue))
}

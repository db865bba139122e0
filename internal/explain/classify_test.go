package explain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyBands(t *testing.T) {
	tests := []struct {
		score int
		band  Band
		risk  string
	}{
		{300, BandBuilding, "High"},
		{549, BandBuilding, "High"},
		{550, BandDeveloping, "Moderate"},
		{699, BandDeveloping, "Moderate"},
		{700, BandStrong, "Low"},
		{849, BandStrong, "Low"},
		{850, BandExceptional, "Low"},
		{900, BandExceptional, "Low"},
	}

	for _, tt := range tests {
		c := Classify(tt.score)
		assert.Equal(t, tt.band, c.Band, "score %d", tt.score)
		assert.Equal(t, tt.risk, c.Risk, "score %d", tt.score)
		assert.NotEmpty(t, c.Summary)
		assert.NotEmpty(t, c.Range)
	}
}

func TestClassifyBoundaryAt700(t *testing.T) {
	// Ties resolve to the higher band: 700 is Strong, 699 is not.
	assert.NotEqual(t, BandStrong, Classify(699).Band)
	assert.Equal(t, BandStrong, Classify(700).Band)
	assert.Equal(t, BandStrong, Classify(849).Band)
	assert.NotEqual(t, BandStrong, Classify(850).Band)
}

func TestClassifyIsTotal(t *testing.T) {
	// Out-of-contract scores still classify into exactly one band.
	valid := map[Band]bool{
		BandBuilding: true, BandDeveloping: true,
		BandStrong: true, BandExceptional: true,
	}
	for _, s := range []int{-50, 0, 299, 901, 10000} {
		c := Classify(s)
		assert.True(t, valid[c.Band], "score %d produced band %q", s, c.Band)
	}
}

func TestClassifySummariesPerBand(t *testing.T) {
	assert.Contains(t, Classify(880).Summary, "Exceptional Assessment")
	assert.Contains(t, Classify(720).Summary, "Strong Assessment")
	assert.Contains(t, Classify(600).Summary, "Developing Assessment")
	assert.Contains(t, Classify(400).Summary, "Building Assessment")
}

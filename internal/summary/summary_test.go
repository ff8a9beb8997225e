package summary

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/banshee-data/blackbox/internal/blackbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	ts := Describe("P", []float64{3, 1, 2, math.NaN(), math.Inf(1)})

	assert.Equal(t, "P", ts.Term)
	assert.Equal(t, 3, ts.Count)
	assert.InDelta(t, 2.0, ts.Mean, 1e-12)
	assert.InDelta(t, 1.0, ts.StdDev, 1e-12)
	assert.Equal(t, 1.0, ts.Min)
	assert.Equal(t, 2.0, ts.Median)
	assert.Equal(t, 3.0, ts.Max)
}

func TestDescribe_SingleSample(t *testing.T) {
	ts := Describe("FF", []float64{0.4})
	assert.Equal(t, 1, ts.Count)
	assert.Equal(t, 0.4, ts.Mean)
	assert.Equal(t, 0.0, ts.StdDev)
	assert.Equal(t, 0.4, ts.Median)
}

func TestDescribe_Empty(t *testing.T) {
	ts := Describe("D", nil)
	assert.Equal(t, 0, ts.Count)
	assert.True(t, math.IsNaN(ts.Mean))
	assert.True(t, math.IsNaN(ts.Max))
}

func TestCompute(t *testing.T) {
	records := []blackbox.Record{
		{Roll: blackbox.AxisTerms{P: 250, FF: 1000}, Yaw: blackbox.AxisTerms{I: -250}},
		{Roll: blackbox.AxisTerms{P: 750, FF: 1000}, Yaw: blackbox.AxisTerms{I: -250}},
		{Roll: blackbox.AxisTerms{P: 500, FF: 1000}, Yaw: blackbox.AxisTerms{I: -250}},
	}
	got := Compute(records)

	require.Len(t, got, 3)
	assert.Equal(t, blackbox.Roll, got[0].Axis)
	assert.Equal(t, blackbox.Pitch, got[1].Axis)
	assert.Equal(t, blackbox.Yaw, got[2].Axis)

	rollP := got[0].Terms[0]
	assert.Equal(t, "P", rollP.Term)
	assert.InDelta(t, 2.0, rollP.Mean, 1e-6)
	assert.InDelta(t, 1.0, rollP.Min, 1e-6)
	assert.InDelta(t, 3.0, rollP.Max, 1e-6)
	assert.InDelta(t, 2.0, rollP.Median, 1e-6)

	rollFF := got[0].Terms[3]
	assert.Equal(t, "FF", rollFF.Term)
	assert.InDelta(t, 4.0, rollFF.Mean, 1e-6)
	assert.InDelta(t, 0.0, rollFF.StdDev, 1e-6)

	yawI := got[2].Terms[1]
	assert.InDelta(t, -1.0, yawI.Mean, 1e-6)
}

func TestCompute_Empty(t *testing.T) {
	got := Compute(nil)
	require.Len(t, got, 3)
	for _, as := range got {
		require.Len(t, as.Terms, len(Terms))
		for _, ts := range as.Terms {
			assert.Equal(t, 0, ts.Count)
		}
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Compute([]blackbox.Record{{Roll: blackbox.AxisTerms{P: 250}}})))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1+3*len(Terms))
	assert.True(t, strings.HasPrefix(lines[0], "Axis"))
	assert.Contains(t, lines[1], "Roll")
	assert.Contains(t, lines[1], "1.0000")
}

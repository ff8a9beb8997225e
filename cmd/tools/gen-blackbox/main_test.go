package main

import (
	"math"
	"testing"

	"github.com/banshee-data/blackbox/internal/blackbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesize(t *testing.T) {
	records := Synthesize(200, 4)
	require.Len(t, records, 200)

	for i, r := range records {
		assert.Equal(t, uint32(i), r.LoopIteration)
		assert.Equal(t, uint32(i*4), r.Time)
		for _, a := range blackbox.Axes {
			p := r.Terms(a).P
			assert.True(t, p >= -180 && p <= 180, "axis %s P=%v outside chart window", a, p)
		}
	}
}

func TestSynthesize_RoundTrips(t *testing.T) {
	records := Synthesize(10, 2)
	var buf []byte
	for _, r := range records {
		buf = r.AppendBinary(buf)
	}
	assert.Equal(t, records, blackbox.Decode(buf))
}

func TestSynthesize_Empty(t *testing.T) {
	assert.Empty(t, Synthesize(0, 2))
}

func TestCheckArgs(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		period  uint64
		tail    int
		wantErr bool
	}{
		{"defaults", 1000, 2, 0, false},
		{"empty", 0, math.MaxUint64, 0, false},
		{"longest tail", 1, 2, blackbox.RecordSize - 1, false},
		{"max period single record", 1, math.MaxUint32, 0, false},
		{"last timestamp fits", 2, math.MaxUint32, 0, false},
		{"zero period many records", math.MaxUint32, 0, 0, false},
		{"negative n", -1, 2, 0, true},
		{"negative tail", 1, 2, -1, true},
		{"full record tail", 1, 2, blackbox.RecordSize, true},
		{"period over 32 bits", 1, math.MaxUint32 + 1, 0, true},
		{"timestamp wraps", 3, math.MaxUint32/2 + 1, 0, true},
		{"loop counter wraps", math.MaxUint32 + 2, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkArgs(tt.n, tt.period, tt.tail)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

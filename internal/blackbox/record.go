// Package blackbox decodes PID-loop blackbox logs and derives the scaled
// tuning metrics exported for each record.
package blackbox

import (
	"encoding/binary"
	"math"
)

/*
Blackbox log layout

The log has no header, magic number or trailer. It is a flat concatenation
of fixed 56-byte records, every field little-endian:

├── loop_iteration  uint32   offset 0
├── time (ms)       uint32   offset 4
├── roll            4 × float32 (P, I, D, FF) offset 8
├── pitch           4 × float32 (P, I, D, FF) offset 24
└── yaw             4 × float32 (P, I, D, FF) offset 40

Bytes after the last complete record are ignored.
*/

const (
	FIELD_SIZE     = 4                                        // Every field is 32 bits wide
	HEADER_FIELDS  = 2                                        // loop_iteration, time
	TERMS_PER_AXIS = 4                                        // P, I, D, FF
	AXIS_COUNT     = 3                                        // roll, pitch, yaw
	AXIS_SIZE      = TERMS_PER_AXIS * FIELD_SIZE              // 16 bytes per axis block
	FIELD_COUNT    = HEADER_FIELDS + AXIS_COUNT*TERMS_PER_AXIS // 14 fields
	RecordSize     = FIELD_COUNT * FIELD_SIZE                 // 56 bytes
)

// Axis identifies one of the three control axes, in log order.
type Axis int

const (
	Roll Axis = iota
	Pitch
	Yaw
)

// Axes lists every axis in the order it appears in a record.
var Axes = [AXIS_COUNT]Axis{Roll, Pitch, Yaw}

func (a Axis) String() string {
	switch a {
	case Roll:
		return "Roll"
	case Pitch:
		return "Pitch"
	case Yaw:
		return "Yaw"
	default:
		return "Unknown"
	}
}

// AxisTerms holds the raw controller terms logged for one axis.
type AxisTerms struct {
	P  float32
	I  float32
	D  float32
	FF float32
}

// Record is one decoded loop sample. Records are never modified after decode.
type Record struct {
	LoopIteration uint32
	Time          uint32 // Milliseconds since log start
	Roll          AxisTerms
	Pitch         AxisTerms
	Yaw           AxisTerms
}

// Terms returns the raw terms for the given axis.
func (r Record) Terms(a Axis) AxisTerms {
	switch a {
	case Pitch:
		return r.Pitch
	case Yaw:
		return r.Yaw
	default:
		return r.Roll
	}
}

// AppendBinary appends the 56-byte little-endian encoding of r to dst.
func (r Record) AppendBinary(dst []byte) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, r.LoopIteration)
	dst = binary.LittleEndian.AppendUint32(dst, r.Time)
	for _, a := range Axes {
		t := r.Terms(a)
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(t.P))
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(t.I))
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(t.D))
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(t.FF))
	}
	return dst
}

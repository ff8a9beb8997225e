package blackbox

import (
	"math"
	"strconv"
)

// Scale converts a raw logged term into a physical gain unit.
const Scale float32 = 0.004

// AxisMetrics holds the scaled terms of one axis plus the P, I and D terms
// with feed-forward subtracted before scaling. FF has no NoFF counterpart.
type AxisMetrics struct {
	P     float32
	I     float32
	D     float32
	FF    float32
	PNoFF float32
	INoFF float32
	DNoFF float32
}

// DeriveAxis scales t by Scale. Every intermediate result is rounded to
// float32.
func DeriveAxis(t AxisTerms) AxisMetrics {
	return AxisMetrics{
		P:     float32(t.P * Scale),
		I:     float32(t.I * Scale),
		D:     float32(t.D * Scale),
		FF:    float32(t.FF * Scale),
		PNoFF: float32(float32(t.P-t.FF) * Scale),
		INoFF: float32(float32(t.I-t.FF) * Scale),
		DNoFF: float32(float32(t.D-t.FF) * Scale),
	}
}

func (m AxisMetrics) values() [7]float32 {
	return [7]float32{m.P, m.I, m.D, m.FF, m.PNoFF, m.INoFF, m.DNoFF}
}

// Row is one export line derived from a Record.
type Row struct {
	LoopIteration uint32
	Time          uint32
	Roll          AxisMetrics
	Pitch         AxisMetrics
	Yaw           AxisMetrics
}

// Derive computes the export row for r.
func Derive(r Record) Row {
	return Row{
		LoopIteration: r.LoopIteration,
		Time:          r.Time,
		Roll:          DeriveAxis(r.Roll),
		Pitch:         DeriveAxis(r.Pitch),
		Yaw:           DeriveAxis(r.Yaw),
	}
}

// Metrics returns the derived values for the given axis.
func (r Row) Metrics(a Axis) AxisMetrics {
	switch a {
	case Pitch:
		return r.Pitch
	case Yaw:
		return r.Yaw
	default:
		return r.Roll
	}
}

// Header is the fixed column list of the exported table.
var Header = buildHeader()

func buildHeader() []string {
	h := []string{"LoopIteration", "Time"}
	for _, a := range Axes {
		name := a.String()
		h = append(h,
			"P_"+name, "I_"+name, "D_"+name, "FF_"+name,
			"P_"+name+"_NoFF", "I_"+name+"_NoFF", "D_"+name+"_NoFF",
		)
	}
	return h
}

// Fields renders the row in Header order.
func (r Row) Fields() []string {
	fields := make([]string, 0, len(Header))
	fields = append(fields,
		strconv.FormatUint(uint64(r.LoopIteration), 10),
		strconv.FormatUint(uint64(r.Time), 10),
	)
	for _, a := range Axes {
		for _, v := range r.Metrics(a).values() {
			fields = append(fields, FormatFloat(v))
		}
	}
	return fields
}

// FormatFloat renders v as the shortest decimal that reads back as the same
// float32, without an exponent. Integral values carry no fractional part.
func FormatFloat(v float32) string {
	f := float64(v)
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'f', -1, 32)
}

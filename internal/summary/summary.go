// Package summary reports per-axis statistics of the scaled controller terms.
package summary

import (
	"fmt"
	"io"
	"math"
	"sort"
	"text/tabwriter"

	"github.com/banshee-data/blackbox/internal/blackbox"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Terms lists the scaled columns summarised for each axis.
var Terms = []string{"P", "I", "D", "FF"}

// TermStats holds the distribution of one scaled term.
type TermStats struct {
	Term   string
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Median float64
	Max    float64
}

// AxisSummary groups the term statistics of one axis.
type AxisSummary struct {
	Axis  blackbox.Axis
	Terms []TermStats
}

func scaledTerm(m blackbox.AxisMetrics, term string) float32 {
	switch term {
	case "I":
		return m.I
	case "D":
		return m.D
	case "FF":
		return m.FF
	default:
		return m.P
	}
}

// Describe computes the statistics of values. Non-finite samples are skipped;
// an empty input yields a zero Count and NaN statistics.
func Describe(term string, values []float64) TermStats {
	finite := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}

	ts := TermStats{Term: term, Count: len(finite)}
	if len(finite) == 0 {
		nan := math.NaN()
		ts.Mean, ts.StdDev, ts.Min, ts.Median, ts.Max = nan, nan, nan, nan, nan
		return ts
	}

	sort.Float64s(finite)
	ts.Mean, ts.StdDev = stat.MeanStdDev(finite, nil)
	if len(finite) == 1 {
		ts.StdDev = 0
	}
	ts.Min = floats.Min(finite)
	ts.Max = floats.Max(finite)
	ts.Median = stat.Quantile(0.5, stat.Empirical, finite, nil)
	return ts
}

// Compute summarises every axis of records in log order.
func Compute(records []blackbox.Record) []AxisSummary {
	rows := make([]blackbox.Row, len(records))
	for i, r := range records {
		rows[i] = blackbox.Derive(r)
	}

	out := make([]AxisSummary, 0, len(blackbox.Axes))
	for _, a := range blackbox.Axes {
		as := AxisSummary{Axis: a}
		for _, term := range Terms {
			values := make([]float64, len(rows))
			for i, row := range rows {
				values[i] = float64(scaledTerm(row.Metrics(a), term))
			}
			as.Terms = append(as.Terms, Describe(term, values))
		}
		out = append(out, as)
	}
	return out
}

// Write prints summaries as an aligned table.
func Write(w io.Writer, summaries []AxisSummary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Axis\tTerm\tCount\tMean\tStdDev\tMin\tMedian\tMax")
	for _, as := range summaries {
		for _, ts := range as.Terms {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\n",
				as.Axis, ts.Term, ts.Count, ts.Mean, ts.StdDev, ts.Min, ts.Median, ts.Max)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

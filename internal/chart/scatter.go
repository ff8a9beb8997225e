// Package chart renders the decoded P terms of each axis over time.
package chart

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/banshee-data/blackbox/internal/blackbox"
	"github.com/banshee-data/blackbox/internal/fsutil"
	"github.com/banshee-data/blackbox/internal/monitoring"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	Y_MIN = -180.0 // Fixed Y axis window, degrees
	Y_MAX = 180.0

	DEFAULT_WIDTH_PX  = 1024
	DEFAULT_HEIGHT_PX = 768
	DEFAULT_TITLE     = "Roll, Pitch, Yaw over Time"

	pngDPI = 96 // vgimg default resolution
)

// Series describes one scatter series: which axis it plots and its colour.
type Series struct {
	Axis  blackbox.Axis
	Color color.RGBA
}

// DefaultSeries is the roll/pitch/yaw palette used by both renderers.
var DefaultSeries = []Series{
	{Axis: blackbox.Roll, Color: color.RGBA{R: 255, A: 255}},
	{Axis: blackbox.Pitch, Color: color.RGBA{G: 255, A: 255}},
	{Axis: blackbox.Yaw, Color: color.RGBA{B: 255, A: 255}},
}

// Options controls chart rendering. Zero fields fall back to defaults.
type Options struct {
	WidthPx  *int
	HeightPx *int
	Title    *string
}

// GetWidthPx returns the image width or the default.
func (o Options) GetWidthPx() int {
	if o.WidthPx == nil || *o.WidthPx <= 0 {
		return DEFAULT_WIDTH_PX
	}
	return *o.WidthPx
}

// GetHeightPx returns the image height or the default.
func (o Options) GetHeightPx() int {
	if o.HeightPx == nil || *o.HeightPx <= 0 {
		return DEFAULT_HEIGHT_PX
	}
	return *o.HeightPx
}

// GetTitle returns the chart title or the default.
func (o Options) GetTitle() string {
	if o.Title == nil {
		return DEFAULT_TITLE
	}
	return *o.Title
}

// XRange returns the X axis window [0, max(last time, 1)]. An empty slice
// gives [0, 1].
func XRange(records []blackbox.Record) (lo, hi float64) {
	hi = 1
	if n := len(records); n > 0 && records[n-1].Time > 1 {
		hi = float64(records[n-1].Time)
	}
	return 0, hi
}

// Points returns the (time, P) pairs of axis a that fall inside the chart
// window. Non-finite values and points outside the window are left out.
func Points(records []blackbox.Record, a blackbox.Axis) plotter.XYs {
	xMin, xMax := XRange(records)
	pts := make(plotter.XYs, 0, len(records))
	for _, r := range records {
		x := float64(r.Time)
		y := float64(r.Terms(a).P)
		if math.IsNaN(y) || y < Y_MIN || y > Y_MAX || x < xMin || x > xMax {
			continue
		}
		pts = append(pts, plotter.XY{X: x, Y: y})
	}
	return pts
}

// ScatterPlot builds the roll/pitch/yaw scatter chart for records.
func ScatterPlot(records []blackbox.Record, opts Options) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = opts.GetTitle()
	p.X.Label.Text = "Time (ms)"
	p.Y.Label.Text = "Angle (degrees)"
	p.Add(plotter.NewGrid())

	for _, s := range DefaultSeries {
		pts := Points(records, s.Axis)
		if dropped := len(records) - len(pts); dropped > 0 {
			monitoring.Logf("chart: %d %s points outside the chart window", dropped, s.Axis)
		}

		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, fmt.Errorf("%s series: %w", s.Axis, err)
		}
		sc.GlyphStyle.Color = s.Color
		sc.GlyphStyle.Radius = vg.Points(2)
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(sc)
		p.Legend.Add(s.Axis.String(), sc)
	}

	// Fixed window, set after Add so data ranges do not widen it.
	p.X.Min, p.X.Max = XRange(records)
	p.Y.Min, p.Y.Max = Y_MIN, Y_MAX

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	return p, nil
}

// pxToLength converts a pixel size at the PNG resolution into a vg length.
func pxToLength(px int) vg.Length {
	return vg.Length(px) * vg.Inch / pngDPI
}

// RenderPNG renders the chart for records as PNG bytes.
func RenderPNG(records []blackbox.Record, opts Options) ([]byte, error) {
	p, err := ScatterPlot(records, opts)
	if err != nil {
		return nil, err
	}

	wt, err := p.WriterTo(pxToLength(opts.GetWidthPx()), pxToLength(opts.GetHeightPx()), "png")
	if err != nil {
		return nil, fmt.Errorf("create png canvas: %w", err)
	}

	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// WritePNG renders the chart and writes it to path.
func WritePNG(fsys fsutil.FileSystem, path string, records []blackbox.Record, opts Options) error {
	data, err := RenderPNG(records, opts)
	if err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	if err := fsys.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

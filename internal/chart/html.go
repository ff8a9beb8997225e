package chart

import (
	"bytes"
	"fmt"

	"github.com/banshee-data/blackbox/internal/blackbox"
	"github.com/banshee-data/blackbox/internal/fsutil"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

func hexColor(s Series) string {
	return fmt.Sprintf("#%02x%02x%02x", s.Color.R, s.Color.G, s.Color.B)
}

// InteractiveScatter builds a go-echarts scatter with the same series and
// axis window as ScatterPlot.
func InteractiveScatter(records []blackbox.Record, o Options) *charts.Scatter {
	xMin, xMax := XRange(records)

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: o.GetTitle(),
			Width:     fmt.Sprintf("%dpx", o.GetWidthPx()),
			Height:    fmt.Sprintf("%dpx", o.GetHeightPx()),
		}),
		charts.WithTitleOpts(opts.Title{Title: o.GetTitle(), Subtitle: fmt.Sprintf("records=%d", len(records))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: xMin, Max: xMax, Name: "Time (ms)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: Y_MIN, Max: Y_MAX, Name: "Angle (degrees)", NameLocation: "middle", NameGap: 35}),
	)

	for _, s := range DefaultSeries {
		pts := Points(records, s.Axis)
		data := make([]opts.ScatterData, 0, len(pts))
		for _, pt := range pts {
			data = append(data, opts.ScatterData{Value: []interface{}{pt.X, pt.Y}})
		}
		scatter.AddSeries(s.Axis.String(), data,
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 4}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: hexColor(s)}),
		)
	}
	return scatter
}

// WriteHTML renders the interactive chart page and writes it to path.
func WriteHTML(fsys fsutil.FileSystem, path string, records []blackbox.Record, o Options) error {
	var buf bytes.Buffer
	if err := InteractiveScatter(records, o).Render(&buf); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	if err := fsys.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

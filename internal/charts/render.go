package charts

import (
	"bytes"
	"fmt"
	"image/color"

	chart "github.com/wcharczuk/go-chart/v2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/fr4nk3nst1ner/salarydash/internal/utils"
)

// Image size of the rendered PNG charts
const (
	ImageWidth  = 7 * vg.Inch
	ImageHeight = 4.5 * vg.Inch

	donutSize = 512
)

var barColor = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}

// usdTicks labels an axis with whole dollar amounts
type usdTicks struct{}

func (usdTicks) Ticks(lo, hi float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(lo, hi)
	for i := range ticks {
		if ticks[i].Label != "" {
			ticks[i].Label = utils.FormatSalary(ticks[i].Value)
		}
	}
	return ticks
}

// writePNG encodes p at the default image size
func writePNG(p *plot.Plot) ([]byte, error) {
	w, err := p.WriterTo(ImageWidth, ImageHeight, "png")
	if err != nil {
		return nil, fmt.Errorf("encode chart: %w", err)
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode chart: %w", err)
	}
	return buf.Bytes(), nil
}

// TopTitlesPNG draws the salary ranking as a horizontal bar chart
func TopTitlesPNG(rows []TitleSalary, n int) ([]byte, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("top titles chart: no rows")
	}

	p := plot.New()
	p.Title.Text = TopTitlesTitle(n)
	p.X.Label.Text = LabelMeanSalary
	p.X.Tick.Marker = usdTicks{}
	p.X.Min = 0

	values := make(plotter.Values, len(rows))
	names := make([]string, len(rows))
	for i, r := range rows {
		values[i] = r.Mean
		names[i] = r.Title
	}

	bars, err := plotter.NewBarChart(values, vg.Points(16))
	if err != nil {
		return nil, fmt.Errorf("top titles chart: %w", err)
	}
	bars.Horizontal = true
	bars.Color = barColor
	bars.LineStyle.Width = vg.Length(0)

	p.Add(bars)
	p.NominalY(names...)

	return writePNG(p)
}

// HistogramPNG draws precomputed salary bins
func HistogramPNG(bins []Bin) ([]byte, error) {
	if len(bins) == 0 {
		return nil, fmt.Errorf("histogram chart: no bins")
	}

	p := plot.New()
	p.Title.Text = TitleSalaryDistribution
	p.X.Label.Text = LabelMeanSalary
	p.Y.Label.Text = LabelCount
	p.X.Tick.Marker = usdTicks{}

	hb := make([]plotter.HistogramBin, len(bins))
	for i, b := range bins {
		hb[i] = plotter.HistogramBin{Min: b.Lo, Max: b.Hi, Weight: float64(b.Count)}
	}

	h := &plotter.Histogram{
		Bins:      hb,
		Width:     bins[0].Hi - bins[0].Lo,
		FillColor: barColor,
		LineStyle: plotter.DefaultLineStyle,
	}
	h.LineStyle.Color = color.White
	p.Add(h)

	return writePNG(p)
}

// WorkModelPNG draws the work model shares as a donut, each slice labelled with its
// name and percentage
func WorkModelPNG(slices []Slice) ([]byte, error) {
	if len(slices) == 0 {
		return nil, fmt.Errorf("work model chart: no slices")
	}

	values := make([]chart.Value, len(slices))
	for i, s := range slices {
		values[i] = chart.Value{
			Value: float64(s.Count),
			Label: fmt.Sprintf("%s %.1f%%", s.Label, s.Share*100),
		}
	}

	dc := chart.DonutChart{
		Title:  TitleWorkModels,
		Width:  donutSize,
		Height: donutSize,
		Values: values,
	}

	var buf bytes.Buffer
	if err := dc.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("work model chart: %w", err)
	}
	return buf.Bytes(), nil
}

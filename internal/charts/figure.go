package charts

import (
	"fmt"
)

// Chart titles and axis labels
const (
	TitleSalaryDistribution = "Annual Salary Distribution"
	TitleWorkModels         = "Work Model Distribution"
	TitleCountryMap         = "Mean Data Scientist Salary by Country"

	LabelMeanSalary = "Mean annual salary (USD)"
	LabelCount      = "Count"
	LabelCountry    = "Country"

	// DonutHole is the inner radius of the work model donut, relative to the outer one
	DonutHole = 0.5
	titleX = 0.1
)

// rdYlGn lists the ColorBrewer RdYlGn colours, low salaries red and high ones green
var rdYlGn = []string{
	"#a50026", "#d73027", "#f46d43", "#fdae61", "#fee08b", "#ffffbf",
	"#d9ef8b", "#a6d96a", "#66bd63", "#1a9850", "#006837",
}

// MapColorScale returns the country map colour scale as explicit [position, colour]
// stops. plotly.js only knows a few scales by name and RdYlGn is not one of them.
func MapColorScale() [][]any {
	stops := make([][]any, len(rdYlGn))
	last := float64(len(rdYlGn) - 1)
	for i, c := range rdYlGn {
		stops[i] = []any{float64(i) / last, c}
	}
	return stops
}

// TopTitlesTitle is the heading of the salary ranking chart for n titles
func TopTitlesTitle(n int) string {
	return fmt.Sprintf("Top %d Job Titles by Salary", n)
}

// Figure is a declarative Plotly figure. The browser hands it to Plotly.newPlot as is.
type Figure struct {
	Data   []map[string]any `json:"data"`
	Layout map[string]any   `json:"layout"`
}

func layout(title string, extra map[string]any) map[string]any {
	l := map[string]any{
		"title":  map[string]any{"text": title, "x": titleX},
		"margin": map[string]any{"l": 40, "r": 20, "t": 50, "b": 40},
	}
	for k, v := range extra {
		l[k] = v
	}
	return l
}

// TopTitlesFigure is a horizontal bar chart of rows, which TopTitles already ordered
func TopTitlesFigure(rows []TitleSalary, n int) Figure {
	x := make([]float64, len(rows))
	y := make([]string, len(rows))
	for i, r := range rows {
		x[i] = r.Mean
		y[i] = r.Title
	}
	return Figure{
		Data: []map[string]any{{
			"type":        "bar",
			"orientation": "h",
			"x":           x,
			"y":           y,
		}},
		Layout: layout(TopTitlesTitle(n), map[string]any{
			"xaxis":  map[string]any{"title": map[string]any{"text": LabelMeanSalary}},
			"yaxis":  map[string]any{"categoryorder": "total ascending"},
			"margin": map[string]any{"l": 160, "r": 20, "t": 50, "b": 40},
		}),
	}
}

// HistogramFigure draws precomputed bins as touching bars
func HistogramFigure(bins []Bin) Figure {
	x := make([]float64, len(bins))
	y := make([]int, len(bins))
	width := 0.0
	for i, b := range bins {
		x[i] = (b.Lo + b.Hi) / 2
		y[i] = b.Count
		width = b.Hi - b.Lo
	}
	return Figure{
		Data: []map[string]any{{
			"type":  "bar",
			"x":     x,
			"y":     y,
			"width": width,
		}},
		Layout: layout(TitleSalaryDistribution, map[string]any{
			"bargap": 0,
			"xaxis":  map[string]any{"title": map[string]any{"text": LabelMeanSalary}},
			"yaxis":  map[string]any{"title": map[string]any{"text": LabelCount}},
		}),
	}
}

// WorkModelFigure is a donut with percent and label on each slice
func WorkModelFigure(slices []Slice) Figure {
	labels := make([]string, len(slices))
	values := make([]int, len(slices))
	for i, s := range slices {
		labels[i] = s.Label
		values[i] = s.Count
	}
	return Figure{
		Data: []map[string]any{{
			"type":     "pie",
			"labels":   labels,
			"values":   values,
			"hole":     DonutHole,
			"textinfo": "percent+label",
		}},
		Layout: layout(TitleWorkModels, nil),
	}
}

// CountryMapFigure is a world choropleth keyed by ISO3 country code
func CountryMapFigure(rows []CountrySalary) Figure {
	locations := make([]string, len(rows))
	z := make([]float64, len(rows))
	for i, r := range rows {
		locations[i] = r.ISO3
		z[i] = r.Mean
	}
	return Figure{
		Data: []map[string]any{{
			"type":          "choropleth",
			"locationmode":  "ISO-3",
			"locations":     locations,
			"z":             z,
			"colorscale":    MapColorScale(),
			"colorbar":      map[string]any{"title": map[string]any{"text": LabelMeanSalary}},
			"hovertemplate": "%{location}: $%{z:,.0f}<extra></extra>",
		}},
		Layout: layout(TitleCountryMap, map[string]any{
			"geo": map[string]any{"showframe": false, "projection": map[string]any{"type": "natural earth"}},
		}),
	}
}

// Package dashboard builds the render tree of the salary dashboard: page metadata,
// sidebar filters, metric cards, the chart grid and the detail table.
//
// Render is called once per interaction with the dataset and the current selection;
// nothing is cached between calls.
package dashboard

import (
	"github.com/fr4nk3nst1ner/salarydash/internal/charts"
	"github.com/fr4nk3nst1ner/salarydash/internal/metrics"
)

// Page metadata
const (
	PageTitle    = "Annual Salary Dashboard for Data Roles"
	PageIcon     = "💸"
	PageLayout   = "wide"
	Heading      = "Dashboard: Salary Analysis for Data Roles"
	Subheading   = "Explore annual salaries in the data field over the last few years."
	FiltersTitle = "🔍 Filters"

	// NoDataMessage replaces every chart and the detail table when the view is empty
	NoDataMessage = "No data to display, select a filter."
)

// Option is one entry of a multiselect
type Option struct {
	Value    string `json:"value"`
	Selected bool   `json:"selected"`
}

// FilterControl is one sidebar multiselect
type FilterControl struct {
	Label   string   `json:"label"`
	Param   string   `json:"param"`
	Options []Option `json:"options"`
}

// MetricCard is one of the headline numbers
type MetricCard struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Panel is a dashboard section that falls back to a placeholder when there is nothing
// to show. Exactly one of Placeholder, Error or the content fields is meaningful.
type Panel struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Placeholder string `json:"placeholder,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Empty reports whether the panel shows its placeholder
func (p Panel) Empty() bool {
	return p.Placeholder != ""
}

// ChartPanel is one cell of the chart grid. Figure is always set for non-empty panels;
// Image holds a server-rendered PNG for charts that have one.
type ChartPanel struct {
	Panel
	Figure *charts.Figure `json:"figure,omitempty"`
	Image  []byte         `json:"image,omitempty"`
	Data   any            `json:"data,omitempty"`
	Note   string         `json:"note,omitempty"`
}

// TablePanel is the detail table of the filtered rows
type TablePanel struct {
	Panel
	Columns []string   `json:"columns,omitempty"`
	Rows    [][]string `json:"rows,omitempty"`
	Total   int        `json:"total"`
}

// Page is the full render tree of one dashboard pass
type Page struct {
	Title        string          `json:"title"`
	Icon         string          `json:"icon"`
	Layout       string          `json:"layout"`
	Heading      string          `json:"heading"`
	Subheading   string          `json:"subheading"`
	FiltersTitle string          `json:"filters_title"`
	Filters      []FilterControl `json:"filters"`
	Summary      metrics.Summary `json:"summary"`
	Metrics      []MetricCard    `json:"metrics"`
	Charts       []ChartPanel    `json:"charts"`
	Detail       TablePanel      `json:"detail"`
	Empty        bool            `json:"empty"`
	Query        string          `json:"query"`
}

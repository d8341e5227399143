package dashboard

import (
	"errors"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/fr4nk3nst1ner/salarydash/internal/charts"
	"github.com/fr4nk3nst1ner/salarydash/internal/filter"
	"github.com/fr4nk3nst1ner/salarydash/internal/metrics"
	"github.com/fr4nk3nst1ner/salarydash/internal/models"
	"github.com/fr4nk3nst1ner/salarydash/internal/utils"
)

// Panel IDs
const (
	PanelTopTitles  = "top-titles"
	PanelHistogram  = "salary-histogram"
	PanelWorkModels = "work-models"
	PanelCountryMap = "country-map"
	PanelDetail     = "detail"
)

// NoMapRowsNote is shown under the country map when the view has no Data Scientist rows
const NoMapRowsNote = "No " + charts.MapTitle + " records in the current selection."

// ErrNoDataset is returned by Render when it is handed a nil table
var ErrNoDataset = errors.New("no dataset loaded")

// Options tune a render pass
type Options struct {
	TopN int
	Bins int
	// Images renders PNG versions of the charts that have one
	Images bool
	// MaxRows caps the rows copied into the detail table, zero means no cap
	MaxRows int
}

// DefaultOptions returns the stock chart settings with images enabled
func DefaultOptions() Options {
	return Options{
		TopN:   charts.DefaultTopN,
		Bins:   charts.DefaultBins,
		Images: true,
	}
}

// RenderOr runs build on the view unless the view is empty, in which case the panel gets
// the placeholder message instead. A build error is reported on the panel, never returned.
func RenderOr[T any](view *models.Table, panel Panel, build func(*models.Table) (T, error)) (T, Panel) {
	var zero T
	if view.Empty() {
		panel.Placeholder = NoDataMessage
		return zero, panel
	}
	out, err := build(view)
	if err != nil {
		panel.Error = err.Error()
		return zero, panel
	}
	return out, panel
}

// Render builds the whole dashboard for the selection over table
func Render(table *models.Table, sel filter.Selection, opts Options) (*Page, error) {
	if table == nil {
		return nil, ErrNoDataset
	}
	if opts.TopN <= 0 {
		opts.TopN = charts.DefaultTopN
	}
	if opts.Bins <= 0 {
		opts.Bins = charts.DefaultBins
	}

	view := filter.Apply(table, sel)
	summary := metrics.Summarize(view)

	page := &Page{
		Title:        PageTitle,
		Icon:         PageIcon,
		Layout:       PageLayout,
		Heading:      Heading,
		Subheading:   Subheading,
		FiltersTitle: FiltersTitle,
		Filters:      filterControls(table, sel),
		Summary:      summary,
		Metrics:      metricCards(summary),
		Empty:        view.Empty(),
		Query:        sel.Query().Encode(),
	}

	page.Charts = []ChartPanel{
		topTitlesPanel(view, opts),
		histogramPanel(view, opts),
		workModelPanel(view, opts),
		countryMapPanel(view),
	}
	page.Detail = detailPanel(view, opts)

	return page, nil
}

// filterControls lists every distinct value of the four dimensions, marking the selected ones
func filterControls(table *models.Table, sel filter.Selection) []FilterControl {
	years := filter.Distinct(table, filter.Year)
	yearOpts := make([]Option, len(years))
	for i, y := range years {
		yearOpts[i] = Option{Value: strconv.Itoa(y), Selected: sel.Years.Has(y)}
	}

	strOpts := func(col filter.Column[string], set filter.Set[string]) []Option {
		values := filter.Distinct(table, col)
		out := make([]Option, len(values))
		for i, v := range values {
			out[i] = Option{Value: v, Selected: set.Has(v)}
		}
		return out
	}

	return []FilterControl{
		{Label: "Year", Param: filter.ParamYear, Options: yearOpts},
		{Label: "Experience Level", Param: filter.ParamSeniority, Options: strOpts(filter.Seniority, sel.Seniorities)},
		{Label: "Work Model", Param: filter.ParamWorkModel, Options: strOpts(filter.WorkModel, sel.WorkModels)},
		{Label: "Company Size", Param: filter.ParamCompanySize, Options: strOpts(filter.CompanySize, sel.CompanySizes)},
	}
}

// metricCards formats the summary for display
func metricCards(s metrics.Summary) []MetricCard {
	return []MetricCard{
		{Label: "Mean Annual Salary", Value: utils.FormatSalary(s.MeanSalary)},
		{Label: "Max Annual Salary", Value: utils.FormatSalary(s.MaxSalary)},
		{Label: "Total Records", Value: humanize.Comma(int64(s.Count))},
		{Label: "Most Frequent Title", Value: s.TopTitle},
	}
}

func topTitlesPanel(view *models.Table, opts Options) ChartPanel {
	cp, panel := RenderOr(view, Panel{ID: PanelTopTitles, Title: charts.TopTitlesTitle(opts.TopN)}, func(v *models.Table) (ChartPanel, error) {
		rows := charts.TopTitles(v, opts.TopN)
		fig := charts.TopTitlesFigure(rows, opts.TopN)
		cp := ChartPanel{Figure: &fig, Data: rows}
		if opts.Images {
			img, err := charts.TopTitlesPNG(rows, opts.TopN)
			if err != nil {
				return ChartPanel{}, err
			}
			cp.Image = img
		}
		return cp, nil
	})
	cp.Panel = panel
	return cp
}

func histogramPanel(view *models.Table, opts Options) ChartPanel {
	cp, panel := RenderOr(view, Panel{ID: PanelHistogram, Title: charts.TitleSalaryDistribution}, func(v *models.Table) (ChartPanel, error) {
		bins := charts.Histogram(v, opts.Bins)
		fig := charts.HistogramFigure(bins)
		cp := ChartPanel{Figure: &fig, Data: bins}
		if opts.Images {
			img, err := charts.HistogramPNG(bins)
			if err != nil {
				return ChartPanel{}, err
			}
			cp.Image = img
		}
		return cp, nil
	})
	cp.Panel = panel
	return cp
}

func workModelPanel(view *models.Table, opts Options) ChartPanel {
	cp, panel := RenderOr(view, Panel{ID: PanelWorkModels, Title: charts.TitleWorkModels}, func(v *models.Table) (ChartPanel, error) {
		slices := charts.WorkModelShares(v)
		fig := charts.WorkModelFigure(slices)
		cp := ChartPanel{Figure: &fig, Data: slices}
		if opts.Images {
			img, err := charts.WorkModelPNG(slices)
			if err != nil {
				return ChartPanel{}, err
			}
			cp.Image = img
		}
		return cp, nil
	})
	cp.Panel = panel
	return cp
}

// countryMapPanel has no PNG form; the browser draws the figure
func countryMapPanel(view *models.Table) ChartPanel {
	cp, panel := RenderOr(view, Panel{ID: PanelCountryMap, Title: charts.TitleCountryMap}, func(v *models.Table) (ChartPanel, error) {
		rows := charts.CountryMeans(v)
		fig := charts.CountryMapFigure(rows)
		cp := ChartPanel{Figure: &fig, Data: rows}
		if len(rows) == 0 {
			cp.Note = NoMapRowsNote
		}
		return cp, nil
	})
	cp.Panel = panel
	return cp
}

func detailPanel(view *models.Table, opts Options) TablePanel {
	tp, panel := RenderOr(view, Panel{ID: PanelDetail, Title: "Detailed Data"}, func(v *models.Table) (TablePanel, error) {
		records := v.Records
		if opts.MaxRows > 0 && len(records) > opts.MaxRows {
			records = records[:opts.MaxRows]
		}
		rows := make([][]string, len(records))
		for i, rec := range records {
			rows[i] = rec.Values()
		}
		return TablePanel{Columns: v.Columns(), Rows: rows}, nil
	})
	tp.Panel = panel
	tp.Total = view.Len()
	return tp
}

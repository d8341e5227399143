package dashboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fr4nk3nst1ner/salarydash/internal/charts"
	"github.com/fr4nk3nst1ner/salarydash/internal/filter"
	"github.com/fr4nk3nst1ner/salarydash/internal/metrics"
	"github.com/fr4nk3nst1ner/salarydash/internal/models"
)

func scenarioTable() *models.Table {
	return &models.Table{Records: []models.Record{
		{Year: 2023, Seniority: "Senior", WorkModel: "Remote", CompanySize: "Large", Title: "Data Scientist", SalaryUSD: 150000, ResidenceISO3: "USA"},
		{Year: 2023, Seniority: "Junior", WorkModel: "Remote", CompanySize: "Small", Title: "Analyst", SalaryUSD: 60000, ResidenceISO3: "BRA"},
	}}
}

func noImages() Options {
	opts := DefaultOptions()
	opts.Images = false
	return opts
}

func TestRenderScenario(t *testing.T) {
	sel := filter.Selection{
		Years:        filter.NewSet(2023),
		Seniorities:  filter.NewSet("Senior"),
		WorkModels:   filter.NewSet("Remote"),
		CompanySizes: filter.NewSet("Large"),
	}

	page, err := Render(scenarioTable(), sel, noImages())
	require.NoError(t, err)

	assert.False(t, page.Empty)
	assert.Equal(t, metrics.Summary{MeanSalary: 150000, MaxSalary: 150000, Count: 1, TopTitle: "Data Scientist"}, page.Summary)
	assert.Equal(t, []MetricCard{
		{Label: "Mean Annual Salary", Value: "$150,000"},
		{Label: "Max Annual Salary", Value: "$150,000"},
		{Label: "Total Records", Value: "1"},
		{Label: "Most Frequent Title", Value: "Data Scientist"},
	}, page.Metrics)

	require.Len(t, page.Charts, 4)
	for _, cp := range page.Charts {
		assert.False(t, cp.Empty(), cp.ID)
		assert.Empty(t, cp.Error, cp.ID)
		assert.NotNil(t, cp.Figure, cp.ID)
		assert.Nil(t, cp.Image, cp.ID)
	}

	assert.Equal(t, 1, page.Detail.Total)
	require.Len(t, page.Detail.Rows, 1)
	assert.Equal(t, []string{"2023", "Senior", "Remote", "Large", "Data Scientist", "150000", "USA"}, page.Detail.Rows[0])
	assert.Equal(t, models.RequiredColumns, page.Detail.Columns)
}

func TestRenderDeselectAllYears(t *testing.T) {
	table := scenarioTable()
	sel := filter.Defaults(table)
	sel.Years = filter.Set[int]{}

	page, err := Render(table, sel, DefaultOptions())
	require.NoError(t, err)

	assert.True(t, page.Empty)
	assert.Equal(t, metrics.Summary{TopTitle: metrics.NoSelectionLabel}, page.Summary)
	assert.Equal(t, "$0", page.Metrics[0].Value)

	for _, cp := range page.Charts {
		assert.True(t, cp.Empty(), cp.ID)
		assert.Equal(t, NoDataMessage, cp.Placeholder)
		assert.Nil(t, cp.Figure)
		assert.Nil(t, cp.Image)
	}
	assert.True(t, page.Detail.Empty())
	assert.Zero(t, page.Detail.Total)

	// the sidebar still offers every value, none of the years ticked
	for _, opt := range page.Filters[0].Options {
		assert.False(t, opt.Selected)
	}
	for _, opt := range page.Filters[1].Options {
		assert.True(t, opt.Selected)
	}
}

func TestRenderCountryMapWithoutDataScientists(t *testing.T) {
	table := scenarioTable()
	sel := filter.Defaults(table)
	sel.Seniorities = filter.NewSet("Junior")

	page, err := Render(table, sel, noImages())
	require.NoError(t, err)

	var mapPanel ChartPanel
	for _, cp := range page.Charts {
		if cp.ID == PanelCountryMap {
			mapPanel = cp
		}
	}
	require.Equal(t, PanelCountryMap, mapPanel.ID)
	assert.False(t, mapPanel.Empty())
	assert.Equal(t, NoMapRowsNote, mapPanel.Note)
	assert.Empty(t, mapPanel.Data)
}

func TestRenderImages(t *testing.T) {
	table := scenarioTable()

	page, err := Render(table, filter.Defaults(table), DefaultOptions())
	require.NoError(t, err)

	images := map[string]bool{}
	for _, cp := range page.Charts {
		images[cp.ID] = len(cp.Image) > 0
	}
	assert.Equal(t, map[string]bool{
		PanelTopTitles:  true,
		PanelHistogram:  true,
		PanelWorkModels: true,
		PanelCountryMap: false,
	}, images)
}

func TestRenderMaxRows(t *testing.T) {
	table := scenarioTable()
	opts := noImages()
	opts.MaxRows = 1

	page, err := Render(table, filter.Defaults(table), opts)
	require.NoError(t, err)
	assert.Len(t, page.Detail.Rows, 1)
	assert.Equal(t, 2, page.Detail.Total)
}

func TestRenderNilTable(t *testing.T) {
	_, err := Render(nil, filter.Selection{}, DefaultOptions())
	assert.ErrorIs(t, err, ErrNoDataset)
}

func TestRenderFilterControls(t *testing.T) {
	table := scenarioTable()
	sel := filter.Defaults(table)
	sel.CompanySizes = filter.NewSet("Small")

	page, err := Render(table, sel, noImages())
	require.NoError(t, err)

	require.Len(t, page.Filters, 4)
	sizes := page.Filters[3]
	assert.Equal(t, filter.ParamCompanySize, sizes.Param)
	assert.Equal(t, []Option{{Value: "Large", Selected: false}, {Value: "Small", Selected: true}}, sizes.Options)
	assert.Contains(t, page.Query, "company_size=Small")
}

func TestRenderOr(t *testing.T) {
	base := Panel{ID: "x", Title: "X"}
	build := func(v *models.Table) (int, error) { return v.Len(), nil }

	n, panel := RenderOr(&models.Table{}, base, build)
	assert.Zero(t, n)
	assert.Equal(t, NoDataMessage, panel.Placeholder)

	n, panel = RenderOr(scenarioTable(), base, build)
	assert.Equal(t, 2, n)
	assert.False(t, panel.Empty())

	_, panel = RenderOr(scenarioTable(), base, func(*models.Table) (int, error) {
		return 0, errors.New("boom")
	})
	assert.Equal(t, "boom", panel.Error)
	assert.False(t, panel.Empty())
}

func TestTopTitlesPanelTitleFollowsN(t *testing.T) {
	table := scenarioTable()
	opts := noImages()
	opts.TopN = 5

	page, err := Render(table, filter.Defaults(table), opts)
	require.NoError(t, err)
	assert.Equal(t, charts.TopTitlesTitle(5), page.Charts[0].Title)
}

package filter

import (
	"errors"
	"math/rand"
	"net/url"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fr4nk3nst1ner/salarydash/internal/models"
)

func scenarioTable() *models.Table {
	return &models.Table{Records: []models.Record{
		{Year: 2023, Seniority: "Senior", WorkModel: "Remote", CompanySize: "Large", Title: "Data Scientist", SalaryUSD: 150000, ResidenceISO3: "USA"},
		{Year: 2023, Seniority: "Junior", WorkModel: "Remote", CompanySize: "Small", Title: "Analyst", SalaryUSD: 60000, ResidenceISO3: "BRA"},
	}}
}

func mixedTable() *models.Table {
	return &models.Table{Records: []models.Record{
		{Year: 2024, Seniority: "Senior", WorkModel: "Hybrid", CompanySize: "Medium", Title: "Data Engineer", SalaryUSD: 120000},
		{Year: 2021, Seniority: "Junior", WorkModel: "On-site", CompanySize: "Small", Title: "Analyst", SalaryUSD: 45000},
		{Year: 2023, Seniority: "Executive", WorkModel: "Remote", CompanySize: "Large", Title: "Head of Data", SalaryUSD: 310000},
		{Year: 2022, Seniority: "Senior", WorkModel: "Remote", CompanySize: "Large", Title: "Data Scientist", SalaryUSD: 170000},
		{Year: 2023, Seniority: "Mid", WorkModel: "Hybrid", CompanySize: "Medium", Title: "Data Scientist", SalaryUSD: 98000},
		{Year: 2024, Seniority: "Junior", WorkModel: "Remote", CompanySize: "Small", Title: "Analyst", SalaryUSD: 52000},
		{Year: 2021, Seniority: "Mid", WorkModel: "On-site", CompanySize: "Large", Title: "ML Engineer", SalaryUSD: 130000},
	}}
}

func TestDistinct(t *testing.T) {
	table := mixedTable()

	assert.Equal(t, []int{2021, 2022, 2023, 2024}, Distinct(table, Year))
	assert.Equal(t, []string{"Executive", "Junior", "Mid", "Senior"}, Distinct(table, Seniority))
	assert.Equal(t, []string{"Hybrid", "On-site", "Remote"}, Distinct(table, WorkModel))
	assert.Equal(t, []string{"Large", "Medium", "Small"}, Distinct(table, CompanySize))
	assert.Equal(t, []float64{45000, 52000, 98000, 120000, 130000, 170000, 310000}, Distinct(table, Salary))

	assert.Empty(t, Distinct(&models.Table{}, Year))
	assert.Empty(t, Distinct(nil, Title))
}

func TestApplyScenario(t *testing.T) {
	sel := Selection{
		Years:        NewSet(2023),
		Seniorities:  NewSet("Senior"),
		WorkModels:   NewSet("Remote"),
		CompanySizes: NewSet("Large"),
	}

	view := Apply(scenarioTable(), sel)
	require.Equal(t, 1, view.Len())
	assert.Equal(t, "Data Scientist", view.Records[0].Title)
}

func TestApplyDefaultsKeepsEverything(t *testing.T) {
	table := mixedTable()
	view := Apply(table, Defaults(table))
	assert.Equal(t, table.Records, view.Records)
}

func TestApplyEmptyDimension(t *testing.T) {
	table := mixedTable()

	clearers := map[string]func(*Selection){
		"years":         func(s *Selection) { s.Years = Set[int]{} },
		"seniorities":   func(s *Selection) { s.Seniorities = nil },
		"work models":   func(s *Selection) { s.WorkModels = Set[string]{} },
		"company sizes": func(s *Selection) { s.CompanySizes = nil },
	}

	for name, fn := range clearers {
		t.Run(name, func(t *testing.T) {
			sel := Defaults(table)
			fn(&sel)
			assert.True(t, Apply(table, sel).Empty())
		})
	}
}

func TestApplyProperties(t *testing.T) {
	table := mixedTable()
	rng := rand.New(rand.NewSource(7))

	pick := func(values []string) Set[string] {
		s := Set[string]{}
		for _, v := range values {
			if rng.Intn(2) == 0 {
				s[v] = struct{}{}
			}
		}
		return s
	}

	for i := 0; i < 200; i++ {
		years := Set[int]{}
		for _, y := range Distinct(table, Year) {
			if rng.Intn(2) == 0 {
				years[y] = struct{}{}
			}
		}
		sel := Selection{
			Years:        years,
			Seniorities:  pick(Distinct(table, Seniority)),
			WorkModels:   pick(Distinct(table, WorkModel)),
			CompanySizes: pick(Distinct(table, CompanySize)),
		}

		view := Apply(table, sel)

		// every kept row satisfies all four memberships
		for _, rec := range view.Records {
			require.True(t, sel.Years.Has(rec.Year))
			require.True(t, sel.Seniorities.Has(rec.Seniority))
			require.True(t, sel.WorkModels.Has(rec.WorkModel))
			require.True(t, sel.CompanySizes.Has(rec.CompanySize))
		}

		// kept rows are an ordered subsequence of the input
		j := 0
		for _, rec := range table.Records {
			if j < view.Len() && reflect.DeepEqual(rec, view.Records[j]) {
				j++
			}
		}
		require.Equal(t, view.Len(), j, "output is not an ordered subsequence")

		// and no matching row was dropped
		want := 0
		for _, rec := range table.Records {
			if sel.Matches(rec) {
				want++
			}
		}
		require.Equal(t, want, view.Len())

		// filtering again changes nothing
		require.Equal(t, view.Records, Apply(view, sel).Records)
	}
}

func TestApplyKeepsExtraHeader(t *testing.T) {
	table := scenarioTable()
	table.Extra = []string{"contrato"}

	view := Apply(table, Defaults(table))
	assert.Equal(t, []string{"contrato"}, view.Extra)
	assert.NotSame(t, table, view)
}

func TestParse(t *testing.T) {
	table := mixedTable()
	defaults := Defaults(table)

	type testCase struct {
		query string
		check func(t *testing.T, sel Selection)
	}

	tests := map[string]testCase{
		"no parameters selects everything": {
			query: "",
			check: func(t *testing.T, sel Selection) {
				assert.Equal(t, defaults, sel)
			},
		},
		"repeated and comma separated values": {
			query: "year=2021&year=2023,2024&seniority=Senior",
			check: func(t *testing.T, sel Selection) {
				assert.Equal(t, NewSet(2021, 2023, 2024), sel.Years)
				assert.Equal(t, NewSet("Senior"), sel.Seniorities)
				assert.Equal(t, defaults.WorkModels, sel.WorkModels)
			},
		},
		"applied form with a missing dimension selects nothing for it": {
			query: "applied=1&year=2023&seniority=Mid&work_model=Hybrid",
			check: func(t *testing.T, sel Selection) {
				assert.Equal(t, NewSet(2023), sel.Years)
				assert.Empty(t, sel.CompanySizes)
				assert.True(t, Apply(table, sel).Empty())
			},
		},
		"category values are taken whole": {
			query: "seniority=Senior,Mid",
			check: func(t *testing.T, sel Selection) {
				assert.Equal(t, NewSet("Senior,Mid"), sel.Seniorities)
			},
		},
		"empty value is treated as no selection": {
			query: "year=",
			check: func(t *testing.T, sel Selection) {
				assert.Empty(t, sel.Years)
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			values, err := url.ParseQuery(test.query)
			require.NoError(t, err)

			sel, err := Parse(values, table)
			require.NoError(t, err)
			test.check(t, sel)
		})
	}
}

func TestParseTypeMismatch(t *testing.T) {
	_, err := Parse(url.Values{ParamYear: {"2023", "last-year"}}, mixedTable())
	require.Error(t, err)

	var tm *TypeMismatchError
	require.True(t, errors.As(err, &tm))
	assert.Equal(t, ParamYear, tm.Dimension)
	assert.Equal(t, "last-year", tm.Value)
	assert.Contains(t, err.Error(), "integer")
}

func TestSelectionQueryRoundTrip(t *testing.T) {
	table := mixedTable()
	sel := Selection{
		Years:        NewSet(2022, 2024),
		Seniorities:  NewSet("Senior", "Junior"),
		WorkModels:   Set[string]{},
		CompanySizes: NewSet("Large"),
	}

	q := sel.Query()
	assert.Equal(t, []string{"2022", "2024"}, q[ParamYear])

	back, err := Parse(q, table)
	require.NoError(t, err)
	assert.Equal(t, sel.Years, back.Years)
	assert.Equal(t, sel.Seniorities, back.Seniorities)
	assert.Empty(t, back.WorkModels)
	assert.Equal(t, sel.CompanySizes, back.CompanySizes)
}

func TestSelectionQueryKeepsCommasInValues(t *testing.T) {
	table := &models.Table{Records: []models.Record{
		{Year: 2023, Seniority: "Senior", WorkModel: "Remote, flexible", CompanySize: "Large, 250+", Title: "Analyst", SalaryUSD: 80000},
		{Year: 2023, Seniority: "Junior", WorkModel: "On-site", CompanySize: "Small", Title: "Analyst", SalaryUSD: 40000},
	}}

	defaults := Defaults(table)
	sel, err := Parse(defaults.Query(), table)
	require.NoError(t, err)

	assert.Equal(t, defaults, sel)
	assert.Equal(t, NewSet("Large, 250+", "Small"), sel.CompanySizes)
	assert.Equal(t, 2, Apply(table, sel).Len())

	sel, err = Parse(url.Values{ParamApplied: {"1"}, ParamYear: {"2023"}, ParamSeniority: {"Senior"},
		ParamWorkModel: {"Remote, flexible"}, ParamCompanySize: {"Large, 250+"}}, table)
	require.NoError(t, err)
	assert.Equal(t, 1, Apply(table, sel).Len())
}

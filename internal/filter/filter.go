// Package filter derives the option lists for the dashboard filters and applies the
// conjunctive multiselect filter to a dataset.
package filter

import (
	"cmp"
	"slices"

	"github.com/fr4nk3nst1ner/salarydash/internal/models"
)

// Column reads one typed field out of a record
type Column[T cmp.Ordered] struct {
	Name string
	Get  func(models.Record) T
}

var (
	Year        = Column[int]{Name: models.ColYear, Get: func(r models.Record) int { return r.Year }}
	Seniority   = Column[string]{Name: models.ColSeniority, Get: func(r models.Record) string { return r.Seniority }}
	WorkModel   = Column[string]{Name: models.ColWorkModel, Get: func(r models.Record) string { return r.WorkModel }}
	CompanySize = Column[string]{Name: models.ColCompanySize, Get: func(r models.Record) string { return r.CompanySize }}
	Title       = Column[string]{Name: models.ColTitle, Get: func(r models.Record) string { return r.Title }}
	Country     = Column[string]{Name: models.ColResidenceISO3, Get: func(r models.Record) string { return r.ResidenceISO3 }}
	Salary      = Column[float64]{Name: models.ColSalaryUSD, Get: func(r models.Record) float64 { return r.SalaryUSD }}
)

// Set is an unordered set of selected values. A nil Set selects nothing.
type Set[T cmp.Ordered] map[T]struct{}

// NewSet builds a set from values
func NewSet[T cmp.Ordered](values ...T) Set[T] {
	s := make(Set[T], len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Has reports whether v is selected
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

// Sorted returns the members in ascending order
func (s Set[T]) Sorted() []T {
	out := make([]T, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// Distinct returns the sorted unique values of column in table
func Distinct[T cmp.Ordered](table *models.Table, col Column[T]) []T {
	if table.Empty() {
		return []T{}
	}
	seen := make(Set[T])
	for _, rec := range table.Records {
		seen[col.Get(rec)] = struct{}{}
	}
	return seen.Sorted()
}

// Selection holds the chosen values of the four filter dimensions
type Selection struct {
	Years        Set[int]
	Seniorities  Set[string]
	WorkModels   Set[string]
	CompanySizes Set[string]
}

// Defaults returns the selection with every observed value of every dimension selected
func Defaults(table *models.Table) Selection {
	return Selection{
		Years:        NewSet(Distinct(table, Year)...),
		Seniorities:  NewSet(Distinct(table, Seniority)...),
		WorkModels:   NewSet(Distinct(table, WorkModel)...),
		CompanySizes: NewSet(Distinct(table, CompanySize)...),
	}
}

// Matches reports whether rec passes all four dimensions
func (s Selection) Matches(rec models.Record) bool {
	return s.Years.Has(rec.Year) &&
		s.Seniorities.Has(rec.Seniority) &&
		s.WorkModels.Has(rec.WorkModel) &&
		s.CompanySizes.Has(rec.CompanySize)
}

// Apply returns the records of table that match the selection, in their original order.
// An empty set in any dimension yields an empty table.
func Apply(table *models.Table, sel Selection) *models.Table {
	if table == nil {
		return &models.Table{}
	}
	var kept []models.Record
	for _, rec := range table.Records {
		if sel.Matches(rec) {
			kept = append(kept, rec)
		}
	}
	return table.WithRecords(kept)
}

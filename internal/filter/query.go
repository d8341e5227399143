package filter

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/fr4nk3nst1ner/salarydash/internal/models"
)

// Query parameter names of the four dimensions
const (
	ParamYear        = "year"
	ParamSeniority   = "seniority"
	ParamWorkModel   = "work_model"
	ParamCompanySize = "company_size"

	// ParamApplied marks a submitted filter form. Once present, a dimension missing from
	// the query means "nothing selected" instead of "everything selected".
	ParamApplied = "applied"
)

// TypeMismatchError is returned when a filter value cannot be compared with its column
type TypeMismatchError struct {
	Dimension string
	Value     string
	Want      string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("filter %s: value %q is not a valid %s", e.Dimension, e.Value, e.Want)
}

// Parse builds a selection from query parameters. Values may be repeated
// (?year=2022&year=2023); years may also be comma separated (?year=2022,2023).
// Category values are taken whole since they may contain commas.
func Parse(values url.Values, table *models.Table) (Selection, error) {
	defaults := Defaults(table)
	applied := values.Has(ParamApplied)

	years, err := parseInts(values, ParamYear, defaults.Years, applied)
	if err != nil {
		return Selection{}, err
	}

	return Selection{
		Years:        years,
		Seniorities:  parseStrings(values, ParamSeniority, defaults.Seniorities, applied),
		WorkModels:   parseStrings(values, ParamWorkModel, defaults.WorkModels, applied),
		CompanySizes: parseStrings(values, ParamCompanySize, defaults.CompanySizes, applied),
	}, nil
}

// Query encodes the selection as query parameters understood by Parse
func (s Selection) Query() url.Values {
	q := url.Values{}
	q.Set(ParamApplied, "1")
	for _, y := range s.Years.Sorted() {
		q.Add(ParamYear, strconv.Itoa(y))
	}
	for _, v := range s.Seniorities.Sorted() {
		q.Add(ParamSeniority, v)
	}
	for _, v := range s.WorkModels.Sorted() {
		q.Add(ParamWorkModel, v)
	}
	for _, v := range s.CompanySizes.Sorted() {
		q.Add(ParamCompanySize, v)
	}
	return q
}

// rawValues returns the non-empty values of key, splitting comma separated lists when split is set
func rawValues(values url.Values, key string, split bool) ([]string, bool) {
	vals, ok := values[key]
	if !ok {
		return nil, false
	}
	var out []string
	for _, v := range vals {
		parts := []string{v}
		if split {
			parts = strings.Split(v, ",")
		}
		for _, part := range parts {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out, true
}

func parseInts(values url.Values, key string, def Set[int], applied bool) (Set[int], error) {
	raw, ok := rawValues(values, key, true)
	if !ok {
		if applied {
			return Set[int]{}, nil
		}
		return def, nil
	}
	set := make(Set[int], len(raw))
	for _, v := range raw {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, &TypeMismatchError{Dimension: key, Value: v, Want: "integer"}
		}
		set[n] = struct{}{}
	}
	return set, nil
}

func parseStrings(values url.Values, key string, def Set[string], applied bool) Set[string] {
	raw, ok := rawValues(values, key, false)
	if !ok {
		if applied {
			return Set[string]{}
		}
		return def
	}
	return NewSet(raw...)
}

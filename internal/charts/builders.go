// Package charts turns a filtered salary view into the small derived tables behind each
// dashboard chart, and renders those tables as PNG images or Plotly figures.
package charts

import (
	"math"
	"sort"

	"github.com/fr4nk3nst1ner/salarydash/internal/filter"
	"github.com/fr4nk3nst1ner/salarydash/internal/models"
)

const (
	// DefaultTopN is how many job titles the salary ranking shows
	DefaultTopN = 10
	// DefaultBins is the number of equal-width salary buckets in the histogram
	DefaultBins = 30
	// MapTitle is the only job title the country map covers. Exact, case-sensitive match.
	MapTitle = "Data Scientist"
)

// TitleSalary is the mean salary of one job title
type TitleSalary struct {
	Title string  `json:"title"`
	Mean  float64 `json:"mean_salary"`
}

// Bin is one histogram bucket covering [Lo, Hi). The last bucket also includes Hi.
type Bin struct {
	Lo    float64 `json:"lo"`
	Hi    float64 `json:"hi"`
	Count int     `json:"count"`
}

// Slice is one work model's share of the view
type Slice struct {
	Label string  `json:"label"`
	Count int     `json:"count"`
	Share float64 `json:"share"`
}

// CountrySalary is the mean salary of one residence country
type CountrySalary struct {
	ISO3 string  `json:"iso3"`
	Mean float64 `json:"mean_salary"`
}

// meanBy groups the view by key and averages the salary of each group.
// Groups come back sorted by key.
func meanBy(records []models.Record, key func(models.Record) string) ([]string, map[string]float64) {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, rec := range records {
		k := key(rec)
		sums[k] += rec.SalaryUSD
		counts[k]++
	}

	keys := make([]string, 0, len(sums))
	means := make(map[string]float64, len(sums))
	for k, sum := range sums {
		keys = append(keys, k)
		means[k] = sum / float64(counts[k])
	}
	sort.Strings(keys)
	return keys, means
}

// TopTitles returns the n job titles with the highest mean salary, ordered from the
// lowest to the highest mean so a horizontal bar chart reads top-down.
func TopTitles(view *models.Table, n int) []TitleSalary {
	if view.Empty() || n <= 0 {
		return nil
	}

	keys, means := meanBy(view.Records, filter.Title.Get)
	rows := make([]TitleSalary, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, TitleSalary{Title: k, Mean: means[k]})
	}

	// Highest first, ties broken by title, then keep the top n
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Mean > rows[j].Mean
	})
	if len(rows) > n {
		rows = rows[:n]
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Mean < rows[j].Mean
	})
	return rows
}

// Histogram buckets the salaries of the view into bins equal-width bins spanning the
// observed range. A single distinct salary is spread over a range of width one.
func Histogram(view *models.Table, bins int) []Bin {
	if view.Empty() || bins <= 0 {
		return nil
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, rec := range view.Records {
		lo = math.Min(lo, rec.SalaryUSD)
		hi = math.Max(hi, rec.SalaryUSD)
	}
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}

	width := (hi - lo) / float64(bins)
	out := make([]Bin, bins)
	for i := range out {
		out[i].Lo = lo + float64(i)*width
		out[i].Hi = lo + float64(i+1)*width
	}
	out[bins-1].Hi = hi

	for _, rec := range view.Records {
		out[binIndex(out, rec.SalaryUSD, lo, width)].Count++
	}
	return out
}

// binIndex returns the bin holding v. The estimate from the width can land one bin off
// on an interior edge, so it is corrected against the stored bounds.
func binIndex(bins []Bin, v, lo, width float64) int {
	i := int((v - lo) / width)
	i = max(0, min(i, len(bins)-1))
	for i > 0 && v < bins[i].Lo {
		i--
	}
	for i < len(bins)-1 && v >= bins[i].Hi {
		i++
	}
	return i
}

// WorkModelShares counts the rows per work model, largest group first
func WorkModelShares(view *models.Table) []Slice {
	if view.Empty() {
		return nil
	}

	counts := make(map[string]int)
	for _, rec := range view.Records {
		counts[rec.WorkModel]++
	}

	out := make([]Slice, 0, len(counts))
	for label, n := range counts {
		out = append(out, Slice{
			Label: label,
			Count: n,
			Share: float64(n) / float64(view.Len()),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// CountryMeans averages the salary of MapTitle rows per residence country.
// The result is empty when the view holds no MapTitle rows.
func CountryMeans(view *models.Table) []CountrySalary {
	if view.Empty() {
		return nil
	}

	var matches []models.Record
	for _, rec := range view.Records {
		if rec.Title == MapTitle {
			matches = append(matches, rec)
		}
	}
	if len(matches) == 0 {
		return []CountrySalary{}
	}

	keys, means := meanBy(matches, filter.Country.Get)
	out := make([]CountrySalary, 0, len(keys))
	for _, k := range keys {
		out = append(out, CountrySalary{ISO3: k, Mean: means[k]})
	}
	return out
}

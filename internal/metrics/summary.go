package metrics

import (
	"github.com/fr4nk3nst1ner/salarydash/internal/models"
)

// NoSelectionLabel stands in for the most frequent title when nothing is selected
const NoSelectionLabel = "Select an option"

// Summary holds the headline numbers of a filtered view
type Summary struct {
	MeanSalary float64 `json:"mean_salary"`
	MaxSalary  float64 `json:"max_salary"`
	Count      int     `json:"count"`
	TopTitle   string  `json:"top_title"`
}

// Summarize computes mean and max salary, row count and the most frequent title.
// An empty view yields zeros and NoSelectionLabel.
func Summarize(view *models.Table) Summary {
	if view.Empty() {
		return Summary{TopTitle: NoSelectionLabel}
	}

	var sum float64
	maxSalary := view.Records[0].SalaryUSD
	for _, rec := range view.Records {
		sum += rec.SalaryUSD
		if rec.SalaryUSD > maxSalary {
			maxSalary = rec.SalaryUSD
		}
	}

	return Summary{
		MeanSalary: sum / float64(view.Len()),
		MaxSalary:  maxSalary,
		Count:      view.Len(),
		TopTitle:   ModeTitle(view),
	}
}

// ModeTitle returns the most frequent job title. Ties go to the lexicographically
// smallest title so the answer does not depend on row order.
func ModeTitle(view *models.Table) string {
	if view.Empty() {
		return NoSelectionLabel
	}

	counts := make(map[string]int)
	for _, rec := range view.Records {
		counts[rec.Title]++
	}

	best, bestCount := "", 0
	for title, n := range counts {
		if n > bestCount || (n == bestCount && title < best) {
			best, bestCount = title, n
		}
	}
	return best
}

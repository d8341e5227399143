package ui

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/fr4nk3nst1ner/salarydash/internal/charts"
	"github.com/fr4nk3nst1ner/salarydash/internal/dashboard"
)

// RenderSummary formats the metric cards and the salary ranking of a page as terminal tables
func RenderSummary(page *dashboard.Page) (string, error) {
	var b strings.Builder

	b.WriteString(pterm.DefaultSection.Sprint(page.Heading))

	cards := pterm.TableData{{"Metric", "Value"}}
	for i, card := range page.Metrics {
		value := card.Value
		// the first two cards are salaries
		if i < 2 && !page.Empty {
			value = ColorizeSalary(salaryOf(page, i))
		}
		cards = append(cards, []string{card.Label, value})
	}
	out, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(cards).Srender()
	if err != nil {
		return "", fmt.Errorf("render metrics: %w", err)
	}
	b.WriteString(out)
	b.WriteString("\n")

	if page.Empty {
		b.WriteString(pterm.Warning.Sprintln(dashboard.NoDataMessage))
		return b.String(), nil
	}

	rows := topTitles(page)
	ranking := pterm.TableData{{"#", "Title", "Mean Salary"}}
	// rows come in ascending order for the bar chart, list the best paid first
	for i := len(rows) - 1; i >= 0; i-- {
		ranking = append(ranking, []string{
			fmt.Sprint(len(rows) - i),
			rows[i].Title,
			ColorizeSalary(rows[i].Mean),
		})
	}

	title := charts.TopTitlesTitle(len(rows))
	if len(page.Charts) > 0 {
		title = page.Charts[0].Title
	}
	b.WriteString(pterm.DefaultSection.WithLevel(2).Sprint(title))
	out, err = pterm.DefaultTable.WithHasHeader().WithData(ranking).Srender()
	if err != nil {
		return "", fmt.Errorf("render ranking: %w", err)
	}
	b.WriteString(out)
	b.WriteString("\n")
	return b.String(), nil
}

func salaryOf(page *dashboard.Page, card int) float64 {
	if card == 0 {
		return page.Summary.MeanSalary
	}
	return page.Summary.MaxSalary
}

func topTitles(page *dashboard.Page) []charts.TitleSalary {
	for _, cp := range page.Charts {
		if cp.ID != dashboard.PanelTopTitles {
			continue
		}
		if rows, ok := cp.Data.([]charts.TitleSalary); ok {
			return rows
		}
	}
	return nil
}

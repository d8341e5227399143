package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fr4nk3nst1ner/salarydash/internal/dashboard"
	"github.com/fr4nk3nst1ner/salarydash/internal/ui"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the headline metrics and the salary ranking",
	Example: `  salarydash summary
  salarydash summary --year 2023 --seniority Senior,Executive`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func init() {
	addSelectionFlags(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	table, err := loadTable(cmd.Context())
	if err != nil {
		return err
	}
	sel, err := selectionFromFlags(table)
	if err != nil {
		return err
	}

	page, err := dashboard.Render(table, sel, renderOptions(false))
	if err != nil {
		return err
	}

	out, err := ui.RenderSummary(page)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

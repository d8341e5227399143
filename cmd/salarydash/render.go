package main

import (
	"io"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/fr4nk3nst1ner/salarydash/internal/dashboard"
	"github.com/fr4nk3nst1ner/salarydash/internal/web"
)

var renderOutput string

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Write the dashboard as a standalone HTML file",
	Example: `  salarydash render -o dashboard.html
  salarydash render --year 2024 -o 2024.html`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	addSelectionFlags(renderCmd)
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "dashboard.html", "output file")
}

func runRender(cmd *cobra.Command, args []string) error {
	table, err := loadTable(cmd.Context())
	if err != nil {
		return err
	}
	sel, err := selectionFromFlags(table)
	if err != nil {
		return err
	}

	page, err := dashboard.Render(table, sel, renderOptions(true))
	if err != nil {
		return err
	}

	if err := writeFile(renderOutput, func(w io.Writer) error { return web.RenderHTML(w, page) }); err != nil {
		return err
	}

	pterm.Success.Printfln("Dashboard written to %s", renderOutput)
	return nil
}

package main

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/fr4nk3nst1ner/salarydash/internal/export"
	"github.com/fr4nk3nst1ner/salarydash/internal/filter"
	"github.com/fr4nk3nst1ner/salarydash/internal/models"
)

var (
	exportOutput string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the filtered rows to an XLSX or CSV file",
	Example: `  salarydash export -o salaries.xlsx
  salarydash export --work-model Remote --format csv -o remote.csv`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	addSelectionFlags(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "salaries.xlsx", "output file")
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "xlsx or csv (default from the file extension)")
}

func runExport(cmd *cobra.Command, args []string) error {
	var write func(io.Writer, *models.Table) error
	switch format := outputFormat(exportFormat, exportOutput); format {
	case "xlsx":
		write = export.WriteXLSX
	case "csv":
		write = export.WriteCSV
	default:
		return fmt.Errorf("unsupported export format %q, use xlsx or csv", format)
	}

	table, err := loadTable(cmd.Context())
	if err != nil {
		return err
	}
	sel, err := selectionFromFlags(table)
	if err != nil {
		return err
	}
	view := filter.Apply(table, sel)

	if err := writeFile(exportOutput, func(w io.Writer) error { return write(w, view) }); err != nil {
		return err
	}

	pterm.Success.Printfln("Exported %d of %d records to %s", view.Len(), table.Len(), exportOutput)
	return nil
}

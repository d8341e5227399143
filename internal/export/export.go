package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/fr4nk3nst1ner/salarydash/internal/models"
)

// SheetName is the worksheet holding the exported rows
const SheetName = "Salaries"

// Content types of the export formats
const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeCSV  = "text/csv; charset=utf-8"
)

// WriteXLSX writes the view as a single-sheet workbook. Year and salary stay numeric so
// the sheet can be re-aggregated; the header row is frozen.
func WriteXLSX(w io.Writer, view *models.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("xlsx export: %w", err)
	}

	cols := view.Columns()
	for i, name := range cols {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, name); err != nil {
			return fmt.Errorf("xlsx export: %w", err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(cols), 1)
		_ = f.SetCellStyle(SheetName, "A1", last, bold)
	}

	money, err := f.NewStyle(&excelize.Style{NumFmt: 3}) // #,##0
	if err != nil {
		return fmt.Errorf("xlsx export: %w", err)
	}

	for r, rec := range view.Records {
		row := r + 2
		cells := []any{
			rec.Year,
			rec.Seniority,
			rec.WorkModel,
			rec.CompanySize,
			rec.Title,
			rec.SalaryUSD,
			rec.ResidenceISO3,
		}
		for _, extra := range rec.Extra {
			cells = append(cells, extra)
		}

		start, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(SheetName, start, &cells); err != nil {
			return fmt.Errorf("xlsx export row %d: %w", row, err)
		}
	}

	if view.Len() > 0 {
		salaryCol, _ := excelize.ColumnNumberToName(6)
		_ = f.SetCellStyle(SheetName, salaryCol+"2", salaryCol+strconv.Itoa(view.Len()+1), money)
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("xlsx export: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("xlsx export: %w", err)
	}
	return nil
}

// WriteCSV writes the view with the same header the loader reads
func WriteCSV(w io.Writer, view *models.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(view.Columns()); err != nil {
		return fmt.Errorf("csv export: %w", err)
	}
	for _, rec := range view.Records {
		if err := cw.Write(rec.Values()); err != nil {
			return fmt.Errorf("csv export: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

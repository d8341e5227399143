package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/fr4nk3nst1ner/salarydash/internal/dataset"
	"github.com/fr4nk3nst1ner/salarydash/internal/models"
)

func view() *models.Table {
	return &models.Table{
		Extra: []string{"contrato"},
		Records: []models.Record{
			{Year: 2023, Seniority: "Senior", WorkModel: "Remote", CompanySize: "Large", Title: "Data Scientist", SalaryUSD: 150000, ResidenceISO3: "USA", Extra: []string{"Integral"}},
			{Year: 2022, Seniority: "Junior", WorkModel: "Hybrid", CompanySize: "Small", Title: "Analyst, BI", SalaryUSD: 60000.5, ResidenceISO3: "BRA", Extra: []string{"Freelancer"}},
		},
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, view()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, append(append([]string{}, models.RequiredColumns...), "contrato"), rows[0])
	assert.Equal(t, "Data Scientist", rows[1][4])
	assert.Equal(t, "Integral", rows[1][7])

	raw, err := f.GetCellValue(SheetName, "F3", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "60000.5", raw)
}

func TestWriteXLSXEmptyView(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, &models.Table{}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestWriteCSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, view()))

	assert.True(t, strings.HasPrefix(buf.String(), "ano,senioridade,"))
	assert.Contains(t, buf.String(), `"Analyst, BI"`)

	back, err := dataset.Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, view(), back)
}

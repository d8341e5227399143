package models

import "strconv"

// Column names of the cleaned salary dataset. These are a fixed contract with the
// upstream cleaning step.
const (
	ColYear          = "ano"
	ColSeniority     = "senioridade"
	ColWorkModel     = "modelo_trabalho"
	ColCompanySize   = "tamanho_empresa"
	ColTitle         = "cargo"
	ColSalaryUSD     = "salario_usd"
	ColResidenceISO3 = "residencia_iso3"
)

// RequiredColumns lists the columns every dataset must carry, in display order
var RequiredColumns = []string{
	ColYear,
	ColSeniority,
	ColWorkModel,
	ColCompanySize,
	ColTitle,
	ColSalaryUSD,
	ColResidenceISO3,
}

// Record represents one row of the salary dataset
type Record struct {
	Year          int     `json:"ano"`
	Seniority     string  `json:"senioridade"`
	WorkModel     string  `json:"modelo_trabalho"`
	CompanySize   string  `json:"tamanho_empresa"`
	Title         string  `json:"cargo"`
	SalaryUSD     float64 `json:"salario_usd"`
	ResidenceISO3 string  `json:"residencia_iso3"`

	// Extra holds the values of any non-contract columns, aligned with Table.Extra
	Extra []string `json:"extra,omitempty"`
}

// Table is an in-memory, read-only view over salary records.
// Filtering never mutates a Table, it returns a new one sharing the header.
type Table struct {
	Extra   []string `json:"extra_columns,omitempty"`
	Records []Record `json:"records"`
}

// Len returns the number of records in the table
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// Empty reports whether the table has no records
func (t *Table) Empty() bool {
	return t.Len() == 0
}

// Columns returns the full header: the contract columns followed by the extra ones
func (t *Table) Columns() []string {
	cols := append([]string(nil), RequiredColumns...)
	if t == nil {
		return cols
	}
	return append(cols, t.Extra...)
}

// WithRecords returns a table with the same header holding the given records
func (t *Table) WithRecords(records []Record) *Table {
	return &Table{Extra: t.Extra, Records: records}
}

// Values returns the record as strings in the order of Table.Columns
func (r Record) Values() []string {
	vals := []string{
		strconv.Itoa(r.Year),
		r.Seniority,
		r.WorkModel,
		r.CompanySize,
		r.Title,
		strconv.FormatFloat(r.SalaryUSD, 'f', -1, 64),
		r.ResidenceISO3,
	}
	return append(vals, r.Extra...)
}

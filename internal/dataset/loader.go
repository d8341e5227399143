package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/cheggaaa/pb/v3"

	"github.com/fr4nk3nst1ner/salarydash/internal/models"
)

// LoadError describes why a dataset could not be loaded.
// Line is 1-based and counts the header; it is zero when the failure is not tied to a row.
type LoadError struct {
	Path   string
	Line   int
	Column string
	Err    error
}

func (e *LoadError) Error() string {
	var b strings.Builder
	b.WriteString("load dataset")
	if e.Path != "" {
		fmt.Fprintf(&b, " %s", e.Path)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " line %d", e.Line)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, " column %q", e.Column)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *LoadError) Unwrap() error { return e.Err }

var (
	// ErrMissingColumn is returned when a contract column is absent from the header
	ErrMissingColumn = errors.New("missing column")
	// ErrEmptyFile is returned when the input has no header row
	ErrEmptyFile = errors.New("empty file")
)

type options struct {
	progress bool
}

// Option tweaks how LoadFile reads the dataset
type Option func(*options)

// WithProgress shows a progress bar on stderr while the file is read
func WithProgress(show bool) Option {
	return func(o *options) { o.progress = show }
}

// LoadFile reads the CSV dataset at path
func LoadFile(path string, opts ...Option) (*models.Table, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	var r io.Reader = f
	if o.progress {
		if st, err := f.Stat(); err == nil {
			bar := pb.Full.Start64(st.Size())
			bar.SetWriter(os.Stderr)
			r = bar.NewProxyReader(f)
			defer bar.Finish()
		}
	}

	table, err := Load(r)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
			return nil, le
		}
		return nil, &LoadError{Path: path, Err: err}
	}
	return table, nil
}

// Load parses a CSV dataset. Columns are located by header name so their order does not
// matter; columns outside the contract are kept as extras.
func Load(r io.Reader) (*models.Table, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = false

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &LoadError{Err: ErrEmptyFile}
	}
	if err != nil {
		return nil, &LoadError{Line: 1, Err: err}
	}

	// Map header names to positions, trimming a UTF-8 BOM left by spreadsheet exports
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		header[i] = name
		index[name] = i
	}

	required := make(map[string]bool, len(models.RequiredColumns))
	for _, col := range models.RequiredColumns {
		if _, ok := index[col]; !ok {
			return nil, &LoadError{Line: 1, Column: col, Err: ErrMissingColumn}
		}
		required[col] = true
	}

	// Anything else in the header is carried through as an extra column
	var extraPos []int
	table := &models.Table{}
	for i, name := range header {
		if !required[name] {
			table.Extra = append(table.Extra, name)
			extraPos = append(extraPos, i)
		}
	}

	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, &LoadError{Line: line, Err: err}
		}

		rec, perr := parseRecord(row, index)
		if perr != nil {
			perr.Line = line
			return nil, perr
		}
		if len(extraPos) > 0 {
			rec.Extra = make([]string, len(extraPos))
			for j, pos := range extraPos {
				rec.Extra[j] = row[pos]
			}
		}
		table.Records = append(table.Records, rec)
	}

	return table, nil
}

// parseRecord converts one CSV row into a Record
func parseRecord(row []string, index map[string]int) (models.Record, *LoadError) {
	get := func(col string) string {
		return strings.TrimSpace(row[index[col]])
	}

	yearStr := get(models.ColYear)
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		// integer columns with gaps are often written as floats, accept "2023.0"
		f, ferr := strconv.ParseFloat(yearStr, 64)
		if ferr != nil || f != float64(int(f)) {
			return models.Record{}, &LoadError{Column: models.ColYear, Err: fmt.Errorf("invalid year %q", yearStr)}
		}
		year = int(f)
	}

	salaryStr := get(models.ColSalaryUSD)
	salary, err := strconv.ParseFloat(salaryStr, 64)
	if err != nil || math.IsNaN(salary) || math.IsInf(salary, 0) {
		return models.Record{}, &LoadError{Column: models.ColSalaryUSD, Err: fmt.Errorf("invalid salary %q", salaryStr)}
	}

	return models.Record{
		Year:          year,
		Seniority:     get(models.ColSeniority),
		WorkModel:     get(models.ColWorkModel),
		CompanySize:   get(models.ColCompanySize),
		Title:         get(models.ColTitle),
		SalaryUSD:     salary,
		ResidenceISO3: get(models.ColResidenceISO3),
	}, nil
}

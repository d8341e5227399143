package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fr4nk3nst1ner/salarydash/internal/dashboard"
	"github.com/fr4nk3nst1ner/salarydash/internal/dataset"
	"github.com/fr4nk3nst1ner/salarydash/internal/export"
	"github.com/fr4nk3nst1ner/salarydash/internal/filter"
	"github.com/fr4nk3nst1ner/salarydash/internal/models"
)

// requestError is a failed render pass with the status it maps to
type requestError struct {
	status  int
	outcome string
	heading string
	err     error
}

func (e *requestError) Error() string { return e.err.Error() }
func (e *requestError) Unwrap() error { return e.err }

// classify maps a load or selection failure to its HTTP status
func classify(err error) *requestError {
	var le *dataset.LoadError
	var tm *filter.TypeMismatchError
	switch {
	case errors.As(err, &tm):
		return &requestError{status: http.StatusBadRequest, outcome: outcomeBadSelection, heading: "Invalid filter selection", err: err}
	case errors.As(err, &le):
		return &requestError{status: http.StatusInternalServerError, outcome: outcomeLoadError, heading: "Could not load the salary dataset", err: err}
	default:
		return &requestError{status: http.StatusInternalServerError, outcome: outcomeLoadError, heading: "Something went wrong", err: err}
	}
}

// selection loads the dataset and parses the filter selection of r
func (s *Server) selection(r *http.Request) (*models.Table, filter.Selection, error) {
	table, err := s.source.Table(r.Context())
	if err != nil {
		return nil, filter.Selection{}, err
	}
	datasetRows.Set(float64(table.Len()))

	sel, err := filter.Parse(r.URL.Query(), table)
	if err != nil {
		return nil, filter.Selection{}, err
	}
	return table, sel, nil
}

// render runs one full dashboard pass for r and records its outcome
func (s *Server) render(r *http.Request, opts dashboard.Options) (*dashboard.Page, error) {
	start := time.Now()
	defer func() { renderDuration.Observe(time.Since(start).Seconds()) }()

	table, sel, err := s.selection(r)
	if err != nil {
		rerr := classify(err)
		renderTotal.WithLabelValues(rerr.outcome).Inc()
		return nil, rerr
	}

	page, err := dashboard.Render(table, sel, opts)
	if err != nil {
		rerr := classify(err)
		renderTotal.WithLabelValues(rerr.outcome).Inc()
		return nil, rerr
	}

	if page.Empty {
		renderTotal.WithLabelValues(outcomeEmpty).Inc()
	} else {
		renderTotal.WithLabelValues(outcomeOK).Inc()
	}
	return page, nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := s.render(r, s.opts.Render)
	if err != nil {
		s.writeErrorPage(w, r, err)
		return
	}

	// render into a buffer so a template failure still yields a clean error page
	var buf bytes.Buffer
	if err := RenderHTML(&buf, page); err != nil {
		s.writeErrorPage(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

func (s *Server) handleAPIDashboard(w http.ResponseWriter, r *http.Request) {
	opts := s.opts.Render
	opts.Images = r.URL.Query().Get("images") == "1"

	page, err := s.render(r, opts)
	if err != nil {
		s.writeJSONError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// optionsResponse lists the selectable values of every filter dimension
type optionsResponse struct {
	Years        []int    `json:"year"`
	Seniorities  []string `json:"seniority"`
	WorkModels   []string `json:"work_model"`
	CompanySizes []string `json:"company_size"`
}

func (s *Server) handleAPIOptions(w http.ResponseWriter, r *http.Request) {
	table, err := s.source.Table(r.Context())
	if err != nil {
		s.writeJSONError(w, r, classify(err))
		return
	}
	writeJSON(w, http.StatusOK, optionsResponse{
		Years:        filter.Distinct(table, filter.Year),
		Seniorities:  filter.Distinct(table, filter.Seniority),
		WorkModels:   filter.Distinct(table, filter.WorkModel),
		CompanySizes: filter.Distinct(table, filter.CompanySize),
	})
}

func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	s.exportView(w, r, "salaries.xlsx", export.ContentTypeXLSX, export.WriteXLSX)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	s.exportView(w, r, "salaries.csv", export.ContentTypeCSV, export.WriteCSV)
}

// exportView writes the filtered rows of r as a download
func (s *Server) exportView(w http.ResponseWriter, r *http.Request, name, contentType string, write func(io.Writer, *models.Table) error) {
	table, sel, err := s.selection(r)
	if err != nil {
		s.writeErrorPage(w, r, classify(err))
		return
	}

	var buf bytes.Buffer
	if err := write(&buf, filter.Apply(table, sel)); err != nil {
		s.writeErrorPage(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	buf.WriteTo(w)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if _, err := s.source.Table(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeErrorPage(w http.ResponseWriter, r *http.Request, err error) {
	rerr := asRequestError(err)
	s.logger.Error("render failed", "path", r.URL.Path, "status", rerr.status, "error", err)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(rerr.status)
	if terr := renderError(w, rerr.status, rerr.heading, err.Error()); terr != nil {
		s.logger.Error("template error", "error", terr)
	}
}

func (s *Server) writeJSONError(w http.ResponseWriter, r *http.Request, err error) {
	rerr := asRequestError(err)
	s.logger.Error("render failed", "path", r.URL.Path, "status", rerr.status, "error", err)
	writeJSON(w, rerr.status, map[string]string{"error": err.Error()})
}

func asRequestError(err error) *requestError {
	var rerr *requestError
	if errors.As(err, &rerr) {
		return rerr
	}
	return &requestError{status: http.StatusInternalServerError, heading: "Something went wrong", err: err}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

package dataset

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/fr4nk3nst1ner/salarydash/internal/models"
)

// Source hands a render pass the dataset it should work on
type Source interface {
	Table(ctx context.Context) (*models.Table, error)
}

// Static is a Source over a table that was loaded once
type Static struct {
	table *models.Table
}

// NewStatic wraps an already loaded table
func NewStatic(table *models.Table) *Static {
	return &Static{table: table}
}

// Table returns the wrapped table
func (s *Static) Table(ctx context.Context) (*models.Table, error) {
	return s.table, nil
}

// FileSource reads the dataset from disk. The parsed table is reused until the file's
// modification time changes, unless Always is set, in which case every call re-reads it.
type FileSource struct {
	Path   string
	Always bool
	Logger *slog.Logger

	mu      sync.Mutex
	table   *models.Table
	modTime time.Time
	size    int64
}

// NewFileSource creates a FileSource for path
func NewFileSource(path string, always bool, logger *slog.Logger) *FileSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileSource{Path: path, Always: always, Logger: logger}
}

// Table returns the current table, reloading it from disk when needed
func (s *FileSource) Table(ctx context.Context) (*models.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	st, err := os.Stat(s.Path)
	if err != nil {
		return nil, &LoadError{Path: s.Path, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.Always && s.table != nil && st.ModTime().Equal(s.modTime) && st.Size() == s.size {
		return s.table, nil
	}

	start := time.Now()
	table, err := LoadFile(s.Path)
	if err != nil {
		return nil, err
	}
	s.Logger.Debug("dataset loaded", "path", s.Path, "rows", table.Len(), "took", time.Since(start))

	s.table = table
	s.modTime = st.ModTime()
	s.size = st.Size()
	return table, nil
}

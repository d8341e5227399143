package dataset

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/fr4nk3nst1ner/salarydash/internal/client"
	"github.com/fr4nk3nst1ner/salarydash/internal/models"
)

// DefaultTTL is how long a downloaded dataset is reused
const DefaultTTL = time.Hour

// URLSource downloads the dataset over HTTP and keeps it for TTL
type URLSource struct {
	URL    string
	TTL    time.Duration
	Always bool
	Client *http.Client
	Logger *slog.Logger

	mu      sync.Mutex
	table   *models.Table
	fetched time.Time
}

// Table returns the cached table or downloads a fresh copy
func (s *URLSource) Table(ctx context.Context) (*models.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.Always && s.table != nil && time.Since(s.fetched) < s.TTL {
		return s.table, nil
	}

	start := time.Now()
	body, err := client.Fetch(ctx, s.Client, s.URL)
	if err != nil {
		return nil, &LoadError{Path: s.URL, Err: err}
	}

	table, err := Load(bytes.NewReader(body))
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = s.URL
			return nil, le
		}
		return nil, &LoadError{Path: s.URL, Err: err}
	}
	s.Logger.Debug("dataset downloaded", "url", s.URL, "bytes", len(body), "rows", table.Len(), "took", time.Since(start))

	s.table = table
	s.fetched = time.Now()
	return table, nil
}

// SourceConfig describes where the dataset lives
type SourceConfig struct {
	// Path is a local file or an http(s) URL
	Path   string
	Reload bool
	TTL    time.Duration
	Proxy  string
}

// IsURL reports whether path points at a remote dataset
func IsURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// Open returns the Source matching cfg.Path
func Open(cfg SourceConfig, logger *slog.Logger) (Source, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if !IsURL(cfg.Path) {
		return NewFileSource(cfg.Path, cfg.Reload, logger), nil
	}

	c, err := client.New(cfg.Proxy)
	if err != nil {
		return nil, err
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &URLSource{URL: cfg.Path, TTL: ttl, Always: cfg.Reload, Client: c, Logger: logger}, nil
}

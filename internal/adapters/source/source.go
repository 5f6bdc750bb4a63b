// Package source defines the contract for fetching the raw player dataset.
//
// The engine performs no retries and no overlapping fetches; a Source only
// promises to resolve with the raw document or fail. Timeouts live here, in
// the transport, not in the engine.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/okian/chestboard/internal/domain/model"
)

// Default transport configuration constants.
const (
	defaultFetchTimeout = 30 * time.Second
)

// Source fetches the raw dataset from wherever it lives.
type Source interface {
	// Fetch retrieves and decodes the raw document, honoring ctx.
	Fetch(ctx context.Context) (model.RawDocument, error)

	// Identifier returns the identifier the source was built from.
	Identifier() string
}

// Option applies a configuration option to a source.
type Option func(*settings)

type settings struct {
	client  *http.Client
	timeout time.Duration
}

// WithHTTPClient sets a custom HTTP client for HTTP sources.
func WithHTTPClient(client *http.Client) Option {
	return func(s *settings) {
		if client != nil {
			s.client = client
		}
	}
}

// WithTimeout sets the per-fetch timeout for HTTP sources.
func WithTimeout(timeout time.Duration) Option {
	return func(s *settings) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// New builds a Source from an identifier: http(s) URLs become an HTTPSource,
// anything else is treated as a local file path.
func New(identifier string, opts ...Option) Source {
	s := &settings{timeout: defaultFetchTimeout}
	for _, opt := range opts {
		opt(s)
	}
	if strings.HasPrefix(identifier, "http://") || strings.HasPrefix(identifier, "https://") {
		client := s.client
		if client == nil {
			client = &http.Client{Timeout: s.timeout}
		}
		return &HTTPSource{url: identifier, client: client}
	}
	return &FileSource{path: identifier}
}

// HTTPSource fetches the dataset with a GET request.
type HTTPSource struct {
	url    string
	client *http.Client
}

// Identifier returns the source URL.
func (s *HTTPSource) Identifier() string { return s.url }

// Fetch performs the GET and decodes the response body.
func (s *HTTPSource) Fetch(ctx context.Context) (model.RawDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return model.RawDocument{}, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return model.RawDocument{}, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return model.RawDocument{}, fmt.Errorf("%w: unexpected status %d from %s", ErrFetchFailed, resp.StatusCode, s.url)
	}

	var doc model.RawDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return model.RawDocument{}, fmt.Errorf("%w: %w", ErrDecodeFailed, err)
	}
	return doc, nil
}

// FileSource reads the dataset from a local JSON file.
type FileSource struct {
	path string
}

// Identifier returns the file path.
func (s *FileSource) Identifier() string { return s.path }

// Fetch reads and decodes the file. The context is checked up front so a
// cancelled reload fails fast, matching the HTTP source's behavior.
func (s *FileSource) Fetch(ctx context.Context) (model.RawDocument, error) {
	if err := ctx.Err(); err != nil {
		return model.RawDocument{}, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return model.RawDocument{}, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	var doc model.RawDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return model.RawDocument{}, fmt.Errorf("%w: %w", ErrDecodeFailed, err)
	}
	return doc, nil
}

package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/apismoke/apismoke/internal/parser"
)

// DefaultSpecPath is the well-known location of the OpenAPI document
const DefaultSpecPath = "/openapi.json"

// Fetcher retrieves OpenAPI documents from running services
type Fetcher struct {
	client   *http.Client
	specPath string
}

// New creates a fetcher. specPath overrides the well-known document path
// when non-empty; a zero timeout leaves the client without one.
func New(specPath string, timeout time.Duration) *Fetcher {
	if specPath == "" {
		specPath = DefaultSpecPath
	}
	if !strings.HasPrefix(specPath, "/") {
		specPath = "/" + specPath
	}
	return &Fetcher{
		client:   &http.Client{Timeout: timeout},
		specPath: specPath,
	}
}

// Fetch downloads the OpenAPI document from baseURL and parses it
func (f *Fetcher) Fetch(ctx context.Context, baseURL string) (*parser.Parser, error) {
	specURL := strings.TrimSuffix(baseURL, "/") + f.specPath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, specURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", specURL, err)
	}
	req.Header.Set("Accept", "application/json, application/x-yaml, text/yaml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch OpenAPI document from %s: %w", specURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %d", specURL, resp.StatusCode)
	}

	specBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read OpenAPI document body: %w", err)
	}

	return parser.ParseBytes(specBytes)
}

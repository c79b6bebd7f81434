// Package ncbi provides the base HTTP client for NCBI E-utilities.
// Every request carries the contact identity NCBI's usage policy asks for,
// and response bodies are size-guarded.
package ncbi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the NCBI E-utilities base URL.
	DefaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"
	// DefaultTool identifies this application to NCBI.
	DefaultTool = "pubmed-extract"

	// DefaultMaxResponseBytes is the maximum response body size (50 MB).
	DefaultMaxResponseBytes int64 = 50 * 1024 * 1024

	// DefaultTimeout bounds a single HTTP round trip.
	DefaultTimeout = 30 * time.Second
)

// ErrNoEmail is returned when a client is built without a contact email.
var ErrNoEmail = errors.New("ncbi: contact email is required")

// Identity is the contact identity sent with every E-utilities request.
// It is fixed when the client is built.
type Identity struct {
	Email  string
	Tool   string
	APIKey string
}

// BaseClient is a shared HTTP client for NCBI E-utilities with common
// parameter injection and response size guards.
type BaseClient struct {
	BaseURL    string
	HTTPClient *http.Client
	MaxBytes   int64

	identity Identity
	logger   zerolog.Logger
}

// Option configures a BaseClient.
type Option func(*BaseClient)

// WithBaseURL sets the base URL for requests.
func WithBaseURL(u string) Option {
	return func(c *BaseClient) { c.BaseURL = u }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *BaseClient) { c.HTTPClient = hc }
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *BaseClient) {
		if d > 0 {
			c.HTTPClient = &http.Client{Timeout: d}
		}
	}
}

// WithMaxResponseBytes sets the maximum allowed response body size.
func WithMaxResponseBytes(n int64) Option {
	return func(c *BaseClient) { c.MaxBytes = n }
}

// WithLogger attaches a logger for request-level debug events.
func WithLogger(l zerolog.Logger) Option {
	return func(c *BaseClient) { c.logger = l }
}

// NewBaseClient creates a new NCBI base client for the given identity.
// An empty Tool falls back to DefaultTool.
func NewBaseClient(id Identity, opts ...Option) (*BaseClient, error) {
	if id.Email == "" {
		return nil, ErrNoEmail
	}
	if id.Tool == "" {
		id.Tool = DefaultTool
	}

	c := &BaseClient{
		BaseURL:  DefaultBaseURL,
		MaxBytes: DefaultMaxResponseBytes,
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		identity: id,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Identity returns the contact identity the client was built with.
func (c *BaseClient) Identity() Identity {
	return c.identity
}

// DoGet performs a GET request with the common NCBI parameters and a
// response size limit. Returns the response body.
func (c *BaseClient) DoGet(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	if params == nil {
		params = url.Values{}
	}
	if c.identity.APIKey != "" {
		params.Set("api_key", c.identity.APIKey)
	}
	params.Set("tool", c.identity.Tool)
	params.Set("email", c.identity.Email)

	u, err := url.JoinPath(c.BaseURL, endpoint)
	if err != nil {
		return nil, fmt.Errorf("building URL: %w", err)
	}
	fullURL := u + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("NCBI returned HTTP %d for %s", resp.StatusCode, endpoint)
	}

	// Read up to MaxBytes+1 to detect oversized responses.
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if int64(len(body)) > c.MaxBytes {
		return nil, fmt.Errorf("response exceeds maximum size of %d bytes", c.MaxBytes)
	}

	c.logger.Debug().
		Str("endpoint", endpoint).
		Int("bytes", len(body)).
		Dur("elapsed", time.Since(start)).
		Msg("eutils request complete")

	return body, nil
}

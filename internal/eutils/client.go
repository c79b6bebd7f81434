package eutils

import (
	"github.com/henrybloomingdale/pubmed-extract/internal/ncbi"
)

// Client is an HTTP client for the PubMed ESearch and EFetch endpoints.
// It embeds ncbi.BaseClient for common parameters and response size guards.
type Client struct {
	*ncbi.BaseClient
}

// NewClient creates a new E-utilities client for the given identity.
func NewClient(id ncbi.Identity, opts ...ncbi.Option) (*Client, error) {
	base, err := ncbi.NewBaseClient(id, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{BaseClient: base}, nil
}

package eutils

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

const (
	// DefaultLimit is the retmax used when SearchOptions leaves it unset.
	DefaultLimit = 20
	// SortPubDate orders results newest publication first.
	SortPubDate = "pub_date"
)

// esearchResponse represents the raw JSON response from ESearch.
type esearchResponse struct {
	Result esearchResult `json:"esearchresult"`
}

type esearchResult struct {
	Count            string   `json:"count"`
	RetMax           string   `json:"retmax"`
	RetStart         string   `json:"retstart"`
	IDList           []string `json:"idlist"`
	QueryTranslation string   `json:"querytranslation"`
}

// Search performs an ESearch query against PubMed. Results are ordered by
// publication date unless opts.Sort says otherwise, and never exceed the limit.
func (c *Client) Search(ctx context.Context, query string, opts *SearchOptions) (*SearchResult, error) {
	if query == "" {
		return nil, fmt.Errorf("search query cannot be empty")
	}

	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("term", query)
	params.Set("retmode", "json")

	limit := DefaultLimit
	sort := SortPubDate
	if opts != nil {
		if opts.Limit > 0 {
			limit = opts.Limit
		}
		if opts.Sort != "" {
			sort = opts.Sort
		}
	}
	params.Set("retmax", strconv.Itoa(limit))
	params.Set("sort", sort)

	body, err := c.DoGet(ctx, "esearch.fcgi", params)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}

	var resp esearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}

	count, _ := strconv.Atoi(resp.Result.Count)

	ids := resp.Result.IDList
	if len(ids) > limit {
		ids = ids[:limit]
	}
	if ids == nil {
		ids = []string{}
	}

	return &SearchResult{
		Count:            count,
		IDs:              ids,
		QueryTranslation: resp.Result.QueryTranslation,
	}, nil
}

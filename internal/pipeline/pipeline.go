// Package pipeline runs search → fetch → extract → export in order.
package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/henrybloomingdale/pubmed-extract/internal/eutils"
	"github.com/henrybloomingdale/pubmed-extract/internal/export"
	"github.com/henrybloomingdale/pubmed-extract/internal/extract"
)

// PreviewCount is how many extracted records are previewed after export.
const PreviewCount = 3

// Searcher finds PMIDs for a query.
type Searcher interface {
	Search(ctx context.Context, query string, opts *eutils.SearchOptions) (*eutils.SearchResult, error)
}

// Fetcher retrieves raw records for PMIDs.
type Fetcher interface {
	Fetch(ctx context.Context, pmids []string) ([]eutils.PubmedArticle, error)
}

// Reporter receives progress from every stage.
type Reporter interface {
	extract.Reporter
	export.Reporter

	Searching(term string)
	Found(n int)
	NoPMIDs()
	Fetching(n int)
	Preview(records []extract.ArticleRecord, n int)
}

// Options parameterizes one run.
type Options struct {
	Term       string
	MaxResults int
	Output     string
}

// Result summarizes a run.
type Result struct {
	PMIDs   []string
	Records []extract.ArticleRecord
	Skipped int
	Summary export.Summary
}

// Pipeline holds the collaborators for a run.
type Pipeline struct {
	search Searcher
	fetch  Fetcher
	rep    Reporter
	log    zerolog.Logger
}

// New creates a Pipeline.
func New(s Searcher, f Fetcher, rep Reporter, log zerolog.Logger) *Pipeline {
	return &Pipeline{search: s, fetch: f, rep: rep, log: log}
}

// Run executes the pipeline once. Search, fetch and write failures abort
// the run; records that fail extraction are skipped.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*Result, error) {
	p.log.Info().Str("term", opts.Term).Int("max", opts.MaxResults).Msg("starting run")

	pmids, err := p.searchStage(ctx, opts)
	if err != nil {
		return nil, err
	}

	raw, err := p.fetchStage(ctx, pmids)
	if err != nil {
		return nil, err
	}

	sr := &skipCounter{Reporter: p.rep, log: p.log}
	records := extract.Extract(raw, sr)

	summary, err := export.Save(records, opts.Output, p.rep)
	if err != nil {
		return nil, err
	}

	p.rep.Preview(records, PreviewCount)

	p.log.Info().
		Int("pmids", len(pmids)).
		Int("extracted", len(records)).
		Int("skipped", sr.n).
		Int("rows", summary.Rows).
		Msg("run complete")

	return &Result{
		PMIDs:   pmids,
		Records: records,
		Skipped: sr.n,
		Summary: summary,
	}, nil
}

func (p *Pipeline) searchStage(ctx context.Context, opts Options) ([]string, error) {
	p.rep.Searching(opts.Term)
	res, err := p.search.Search(ctx, opts.Term, &eutils.SearchOptions{
		Limit: opts.MaxResults,
		Sort:  eutils.SortPubDate,
	})
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	p.rep.Found(len(res.IDs))
	return res.IDs, nil
}

func (p *Pipeline) fetchStage(ctx context.Context, pmids []string) ([]eutils.PubmedArticle, error) {
	if len(pmids) == 0 {
		p.rep.NoPMIDs()
		return nil, nil
	}
	p.rep.Fetching(len(pmids))
	raw, err := p.fetch.Fetch(ctx, pmids)
	if err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}
	return raw, nil
}

// skipCounter counts and logs skipped records on their way to the reporter.
type skipCounter struct {
	Reporter
	log zerolog.Logger
	n   int
}

func (s *skipCounter) Skipped(err error) {
	s.n++
	s.log.Debug().Err(err).Msg("skipping record")
	s.Reporter.Skipped(err)
}

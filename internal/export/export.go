// Package export deduplicates, orders, and writes ArticleRecords to a
// tabular file.
package export

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/henrybloomingdale/pubmed-extract/internal/extract"
)

// DefaultFilename is the output file used when none is configured.
const DefaultFilename = "pubmed_results.xlsx"

// Summary describes a completed export.
type Summary struct {
	File string
	Rows int
}

// Reporter receives the outcome of Save.
type Reporter interface {
	NothingToSave()
	Saved(s Summary)
}

// writerFunc writes records, in order, to path.
type writerFunc func(path string, records []extract.ArticleRecord) error

var writers = map[string]writerFunc{
	".xlsx": writeXLSX,
	".csv":  writeCSV,
	".ris":  writeRIS,
}

// Save dedupes records by PMID, sorts them by year descending, and writes
// them to filename, overwriting any existing file. The writer is chosen by
// file extension. An empty input is reported and nothing is written.
func Save(records []extract.ArticleRecord, filename string, rep Reporter) (Summary, error) {
	if len(records) == 0 {
		rep.NothingToSave()
		return Summary{}, nil
	}

	write, err := writerFor(filename)
	if err != nil {
		return Summary{}, err
	}

	rows := SortByYear(Dedupe(records))
	if err := write(filename, rows); err != nil {
		return Summary{}, fmt.Errorf("writing %s: %w", filename, err)
	}

	s := Summary{File: filename, Rows: len(rows)}
	rep.Saved(s)
	return s, nil
}

func writerFor(filename string) (writerFunc, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	w, ok := writers[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported output format %q (use .xlsx, .csv or .ris)", ext)
	}
	return w, nil
}

// Dedupe drops records whose PMID was already seen, keeping the first.
func Dedupe(records []extract.ArticleRecord) []extract.ArticleRecord {
	seen := make(map[string]struct{}, len(records))
	out := make([]extract.ArticleRecord, 0, len(records))
	for _, r := range records {
		if _, dup := seen[r.PMID]; dup {
			continue
		}
		seen[r.PMID] = struct{}{}
		out = append(out, r)
	}
	return out
}

// SortByYear returns a copy of records ordered by Year descending. Years
// compare as plain strings, so the "N/A" sentinel sorts ahead of numeric
// years. Records with equal years keep their relative order.
func SortByYear(records []extract.ArticleRecord) []extract.ArticleRecord {
	out := make([]extract.ArticleRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Year > out[j].Year
	})
	return out
}

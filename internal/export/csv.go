package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/henrybloomingdale/pubmed-extract/internal/extract"
)

func writeCSV(path string, records []extract.ArticleRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating CSV file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(extract.Columns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range records {
		if err := w.Write(r.Row()); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing CSV output: %w", err)
	}
	return f.Close()
}

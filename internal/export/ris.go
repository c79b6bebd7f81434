package export

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/henrybloomingdale/pubmed-extract/internal/extract"
)

// writeRIS exports records to RIS format for citation managers.
// Sentinel values are left out rather than written as data.
func writeRIS(path string, records []extract.ArticleRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating RIS file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for i, r := range records {
		writeRISTag(w, "TY", "JOUR")
		writeRISTag(w, "TI", r.Title)
		for _, au := range risAuthors(r.Authors) {
			writeRISTag(w, "AU", au)
		}
		if r.Year != extract.NoYear {
			writeRISTag(w, "PY", r.Year)
		}
		writeRISTag(w, "JO", r.Journal)
		if r.Abstract != extract.NoAbstract {
			writeRISTag(w, "AB", r.Abstract)
		}
		writeRISTag(w, "ID", "PMID:"+r.PMID)
		writeRISTag(w, "UR", r.PubMedLink)
		writeRISTag(w, "ER", "")

		if i < len(records)-1 {
			if _, err := w.WriteString("\n"); err != nil {
				return fmt.Errorf("writing RIS separator: %w", err)
			}
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing RIS output: %w", err)
	}
	return f.Close()
}

func writeRISTag(w *bufio.Writer, tag, value string) {
	if tag == "ER" {
		_, _ = w.WriteString("ER  -\n")
		return
	}
	if strings.TrimSpace(value) == "" {
		return
	}
	_, _ = w.WriteString(tag + "  - " + sanitizeRISValue(value) + "\n")
}

func sanitizeRISValue(v string) string {
	v = strings.ReplaceAll(v, "\r\n", " ")
	v = strings.ReplaceAll(v, "\n", " ")
	v = strings.ReplaceAll(v, "\r", " ")
	return strings.TrimSpace(v)
}

// risAuthors splits a formatted author string back into names.
func risAuthors(authors string) []string {
	if authors == extract.NoAuthors {
		return nil
	}
	authors = strings.TrimSuffix(authors, " et al.")
	var out []string
	for _, a := range strings.Split(authors, ", ") {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/henrybloomingdale/pubmed-extract/internal/eutils"
)

// maxListedAuthors is how many authors are named before "et al.".
const maxListedAuthors = 3

var (
	// ErrMissingField is returned when a required element is absent.
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidPMID is returned when the PMID is not a decimal number.
	ErrInvalidPMID = errors.New("invalid PMID")
)

// Reporter receives per-record extraction progress.
type Reporter interface {
	Extracted(rec ArticleRecord)
	Skipped(err error)
}

// Extract converts each raw record into an ArticleRecord. A record that
// fails conversion is reported and skipped; the rest are still processed.
// The result keeps input order.
func Extract(raw []eutils.PubmedArticle, rep Reporter) []ArticleRecord {
	records := make([]ArticleRecord, 0, len(raw))
	for _, pa := range raw {
		rec, err := FromPubmed(pa)
		if err != nil {
			rep.Skipped(err)
			continue
		}
		records = append(records, rec)
		rep.Extracted(rec)
	}
	return records
}

// FromPubmed builds an ArticleRecord from one raw record.
func FromPubmed(pa eutils.PubmedArticle) (ArticleRecord, error) {
	pmid, ok := pa.PMID()
	if !ok {
		return ArticleRecord{}, fmt.Errorf("%w: MedlineCitation/PMID", ErrMissingField)
	}
	if !isPMID(pmid) {
		return ArticleRecord{}, fmt.Errorf("%w: %q", ErrInvalidPMID, pmid)
	}

	title, ok := pa.Title()
	if !ok {
		return ArticleRecord{}, fmt.Errorf("PMID %s: %w: Article/ArticleTitle", pmid, ErrMissingField)
	}
	journal, ok := pa.JournalTitle()
	if !ok {
		return ArticleRecord{}, fmt.Errorf("PMID %s: %w: Article/Journal/Title", pmid, ErrMissingField)
	}

	return ArticleRecord{
		PMID:       pmid,
		Title:      title,
		Authors:    FormatAuthors(pa.Authors()),
		Journal:    journal,
		Year:       pa.YearOr(NoYear),
		Abstract:   joinAbstract(pa),
		PubMedLink: PubMedLink(pmid),
	}, nil
}

// FormatAuthors renders the first three authors as "LastName Initials",
// joined by ", ", and appends " et al." when there are more than three.
func FormatAuthors(authors []eutils.Author) string {
	if len(authors) == 0 {
		return NoAuthors
	}

	n := min(len(authors), maxListedAuthors)
	names := make([]string, n)
	for i, a := range authors[:n] {
		names[i] = a.LastName + " " + a.Initials
	}

	s := strings.Join(names, ", ")
	if len(authors) > maxListedAuthors {
		s += " et al."
	}
	return s
}

func joinAbstract(pa eutils.PubmedArticle) string {
	frags, ok := pa.AbstractFragments()
	if !ok {
		return NoAbstract
	}
	return strings.Join(frags, " ")
}

func isPMID(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

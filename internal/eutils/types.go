// Package eutils provides a client for the NCBI E-utilities ESearch and
// EFetch endpoints and the raw PubMed record types EFetch decodes into.
package eutils

// SearchResult represents the result of an ESearch query.
type SearchResult struct {
	Count            int      `json:"count"`
	IDs              []string `json:"ids"`
	QueryTranslation string   `json:"query_translation"`
}

// SearchOptions configures a search query.
type SearchOptions struct {
	Limit int    `json:"limit,omitempty"`
	Sort  string `json:"sort,omitempty"`
}

// PubmedArticle is one raw record from an EFetch XML response. Parts of the
// payload that PubMed may omit are pointers; nil means the element was absent.
// Use the accessor methods rather than walking the tree directly.
type PubmedArticle struct {
	Citation *MedlineCitation `xml:"MedlineCitation"`
}

// MedlineCitation holds the citation block of a PubMed record.
type MedlineCitation struct {
	PMID    *Text    `xml:"PMID"`
	Article *Article `xml:"Article"`
}

// Article holds the bibliographic fields of a citation.
type Article struct {
	Journal      *Journal    `xml:"Journal"`
	ArticleTitle *Text       `xml:"ArticleTitle"`
	Abstract     *Abstract   `xml:"Abstract"`
	AuthorList   *AuthorList `xml:"AuthorList"`
}

// Journal holds the journal title and issue.
type Journal struct {
	Title        *Text         `xml:"Title"`
	JournalIssue *JournalIssue `xml:"JournalIssue"`
}

// JournalIssue holds the publication date of the issue.
type JournalIssue struct {
	PubDate *PubDate `xml:"PubDate"`
}

// PubDate is the issue publication date. Year is nil when PubMed only
// supplies a free-form MedlineDate.
type PubDate struct {
	Year        *string `xml:"Year"`
	MedlineDate *string `xml:"MedlineDate"`
}

// Abstract holds the abstract fragments of an article. Structured abstracts
// carry one fragment per labeled section.
type Abstract struct {
	Texts []Text `xml:"AbstractText"`
}

// AuthorList holds the authors in citation order.
type AuthorList struct {
	Authors []Author `xml:"Author"`
}

// Author is a single author entry. Collective authors have no LastName.
type Author struct {
	LastName       string `xml:"LastName"`
	ForeName       string `xml:"ForeName"`
	Initials       string `xml:"Initials"`
	CollectiveName string `xml:"CollectiveName"`
}

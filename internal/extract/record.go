// Package extract turns raw PubMed records into flat ArticleRecords.
package extract

// Sentinel values substituted for fields PubMed did not supply.
const (
	NoYear     = "N/A"
	NoAuthors  = "No authors listed"
	NoAbstract = "No abstract available"
)

// LinkBase is the PubMed article URL prefix; the PMID and a trailing slash
// complete it.
const LinkBase = "https://pubmed.ncbi.nlm.nih.gov/"

// Columns are the exported column headers, in ArticleRecord field order.
var Columns = []string{"PMID", "Title", "Authors", "Journal", "Year", "Abstract", "PubMed_Link"}

// ArticleRecord is the flat metadata for one article.
type ArticleRecord struct {
	PMID       string `json:"pmid"`
	Title      string `json:"title"`
	Authors    string `json:"authors"`
	Journal    string `json:"journal"`
	Year       string `json:"year"`
	Abstract   string `json:"abstract"`
	PubMedLink string `json:"pubmed_link"`
}

// Row returns the record's values in Columns order.
func (r ArticleRecord) Row() []string {
	return []string{r.PMID, r.Title, r.Authors, r.Journal, r.Year, r.Abstract, r.PubMedLink}
}

// PubMedLink returns the PubMed URL for pmid.
func PubMedLink(pmid string) string {
	return LinkBase + pmid + "/"
}

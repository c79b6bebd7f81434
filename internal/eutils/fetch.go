package eutils

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"
)

type pubmedArticleSet struct {
	XMLName  xml.Name        `xml:"PubmedArticleSet"`
	Articles []PubmedArticle `xml:"PubmedArticle"`
}

// Text is the text content of an XML element, including the text of any
// inline markup such as <i> or <sup> nested inside it.
type Text string

// UnmarshalXML collects all character data below start.
func (t *Text) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var b strings.Builder
	depth := 0
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch tt := tok.(type) {
		case xml.CharData:
			b.Write(tt)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			if depth == 0 {
				*t = Text(b.String())
				return nil
			}
			depth--
		}
	}
}

// String returns the collected text.
func (t Text) String() string {
	return string(t)
}

// Fetch retrieves the raw PubMed records for the given PMIDs in a single
// request. An empty list returns an empty result without contacting NCBI.
func (c *Client) Fetch(ctx context.Context, pmids []string) ([]PubmedArticle, error) {
	if len(pmids) == 0 {
		return []PubmedArticle{}, nil
	}

	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("id", strings.Join(pmids, ","))
	params.Set("rettype", "xml")
	params.Set("retmode", "xml")

	body, err := c.DoGet(ctx, "efetch.fcgi", params)
	if err != nil {
		return nil, fmt.Errorf("fetch request failed: %w", err)
	}

	return ParseArticles(body)
}

// ParseArticles decodes a PubmedArticleSet document.
func ParseArticles(data []byte) ([]PubmedArticle, error) {
	var set pubmedArticleSet
	if err := xml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parsing PubMed XML: %w", err)
	}
	if set.Articles == nil {
		return []PubmedArticle{}, nil
	}
	return set.Articles, nil
}

func (a PubmedArticle) article() *Article {
	if a.Citation == nil {
		return nil
	}
	return a.Citation.Article
}

// PMID returns the record identifier and whether it was present.
func (a PubmedArticle) PMID() (string, bool) {
	if a.Citation == nil || a.Citation.PMID == nil {
		return "", false
	}
	return strings.TrimSpace(a.Citation.PMID.String()), true
}

// Title returns the article title and whether it was present.
func (a PubmedArticle) Title() (string, bool) {
	art := a.article()
	if art == nil || art.ArticleTitle == nil {
		return "", false
	}
	return art.ArticleTitle.String(), true
}

// JournalTitle returns the full journal title and whether it was present.
func (a PubmedArticle) JournalTitle() (string, bool) {
	art := a.article()
	if art == nil || art.Journal == nil || art.Journal.Title == nil {
		return "", false
	}
	return art.Journal.Title.String(), true
}

// YearOr returns the issue publication year, or def when PubMed gave none.
func (a PubmedArticle) YearOr(def string) string {
	art := a.article()
	if art == nil || art.Journal == nil || art.Journal.JournalIssue == nil {
		return def
	}
	pd := art.Journal.JournalIssue.PubDate
	if pd == nil || pd.Year == nil {
		return def
	}
	return *pd.Year
}

// Authors returns the author list in citation order; nil when absent.
func (a PubmedArticle) Authors() []Author {
	art := a.article()
	if art == nil || art.AuthorList == nil {
		return nil
	}
	return art.AuthorList.Authors
}

// AbstractFragments returns the abstract text fragments in document order.
// ok is false when the record has no abstract or an abstract without text.
func (a PubmedArticle) AbstractFragments() (fragments []string, ok bool) {
	art := a.article()
	if art == nil || art.Abstract == nil || len(art.Abstract.Texts) == 0 {
		return nil, false
	}
	fragments = make([]string, len(art.Abstract.Texts))
	for i, t := range art.Abstract.Texts {
		fragments[i] = t.String()
	}
	return fragments, true
}

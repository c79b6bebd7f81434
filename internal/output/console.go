// Package output renders pipeline progress and results to a terminal.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"

	"github.com/henrybloomingdale/pubmed-extract/internal/export"
	"github.com/henrybloomingdale/pubmed-extract/internal/extract"
)

const (
	// progressTitleRunes is how much of a title the per-record line shows.
	progressTitleRunes = 50
	// previewTitleWidth is the display width of the preview Title column.
	previewTitleWidth = 60
	// summaryWidth matches the 50-column rule of the summary block.
	summaryWidth = 50
)

// Console writes human-readable progress text. It satisfies the reporter
// interfaces of the extract, export and pipeline packages.
type Console struct {
	w io.Writer

	bold    lipgloss.Style
	dim     lipgloss.Style
	cyan    lipgloss.Style
	green   lipgloss.Style
	red     lipgloss.Style
	header  lipgloss.Style
	border  lipgloss.Style
	summary lipgloss.Style
}

// NewConsole returns a Console writing to w. Colors follow w's capabilities,
// so plain buffers and pipes get no escape codes.
func NewConsole(w io.Writer) *Console {
	r := lipgloss.NewRenderer(w)
	return &Console{
		w:      w,
		bold:   r.NewStyle().Bold(true),
		dim:    r.NewStyle().Faint(true),
		cyan:   r.NewStyle().Foreground(lipgloss.Color("6")),
		green:  r.NewStyle().Foreground(lipgloss.Color("2")),
		red:    r.NewStyle().Foreground(lipgloss.Color("1")),
		header: r.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
		border: r.NewStyle().Foreground(lipgloss.Color("8")),
		summary: r.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("2")).
			Width(summaryWidth).
			Padding(0, 1),
	}
}

// --- Search / Fetch ---

// Searching announces the query.
func (c *Console) Searching(term string) {
	fmt.Fprintf(c.w, "Searching PubMed for: '%s'...\n", term)
}

// Found reports how many identifiers the search returned.
func (c *Console) Found(n int) {
	fmt.Fprintf(c.w, "Found %d articles\n", n)
}

// NoPMIDs reports that there is nothing to fetch.
func (c *Console) NoPMIDs() {
	fmt.Fprintln(c.w, "No PMIDs to fetch")
}

// Fetching announces the batched fetch.
func (c *Console) Fetching(n int) {
	fmt.Fprintf(c.w, "Fetching details for %d articles...\n", n)
}

// --- Extraction ---

// Extracted prints one line per extracted record.
func (c *Console) Extracted(rec extract.ArticleRecord) {
	fmt.Fprintf(c.w, "%s Extracted: %s...\n", c.green.Render("✓"), truncateRunes(rec.Title, progressTitleRunes))
}

// Skipped prints one line per record that could not be extracted.
func (c *Console) Skipped(err error) {
	fmt.Fprintf(c.w, "%s Error: %v\n", c.red.Render("✗"), err)
}

// --- Export ---

// NothingToSave reports an empty export.
func (c *Console) NothingToSave() {
	fmt.Fprintln(c.w, "No articles to save")
}

// Saved prints the bordered summary block.
func (c *Console) Saved(s export.Summary) {
	body := strings.Join([]string{
		c.bold.Render("SUCCESS!"),
		"File: " + c.cyan.Render(s.File),
		fmt.Sprintf("Total articles: %d", s.Rows),
	}, "\n")
	fmt.Fprintln(c.w)
	fmt.Fprintln(c.w, c.summary.Render(body))
	fmt.Fprintln(c.w)
}

// Preview prints a PMID/Title/Year table of up to n records.
func (c *Console) Preview(records []extract.ArticleRecord, n int) {
	if len(records) == 0 || n <= 0 {
		return
	}
	if len(records) > n {
		records = records[:n]
	}

	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{
			c.cyan.Render(r.PMID),
			runewidth.Truncate(r.Title, previewTitleWidth, "..."),
			r.Year,
		}
	}

	t := table.New().
		Headers("PMID", "Title", "Year").
		Rows(rows...).
		Border(lipgloss.NormalBorder()).
		BorderStyle(c.border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return c.header
			}
			return lipgloss.NewStyle()
		})

	fmt.Fprintf(c.w, "\nFirst %d articles:\n", len(records))
	fmt.Fprintln(c.w, t.Render())
}

// truncateRunes cuts s to at most n runes.
func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuildTerm(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{nil, ""},
		{[]string{"CRISPR"}, "CRISPR"},
		{[]string{"fragile", "x", "syndrome"}, "fragile x syndrome"},
		{[]string{"  base editing "}, "base editing"},
	}
	for _, tt := range tests {
		if got := buildTerm(tt.args); got != tt.want {
			t.Errorf("buildTerm(%q) = %q, want %q", tt.args, got, tt.want)
		}
	}
}

func TestRootCmd_FlagDefaults(t *testing.T) {
	cmd := newRootCmd()
	defaults := map[string]string{
		"max":        "20",
		"output":     "pubmed_results.xlsx",
		"email":      "",
		"api-key":    "",
		"config":     "",
		"log-level":  "",
		"log-format": "",
	}
	for name, want := range defaults {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			t.Fatalf("flag --%s not registered", name)
		}
		if f.DefValue != want {
			t.Errorf("--%s default = %q, want %q", name, f.DefValue, want)
		}
	}
}

// isolate keeps the developer's home config and environment out of a run.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("NCBI_API_KEY", "")
}

func fixtureServer(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	search, err := os.ReadFile(filepath.Join("..", "..", "testdata", "esearch_crispr.json"))
	if err != nil {
		t.Fatal(err)
	}
	fetch, err := os.ReadFile(filepath.Join("..", "..", "testdata", "efetch_articles.xml"))
	if err != nil {
		t.Fatal(err)
	}

	var terms []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/esearch.fcgi":
			terms = append(terms, r.URL.Query().Get("term"))
			w.Write(search)
		case "/efetch.fcgi":
			w.Write(fetch)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &terms
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCmd_EndToEnd(t *testing.T) {
	isolate(t)
	srv, terms := fixtureServer(t)
	t.Setenv("PUBMED_EXTRACT_NCBI_BASE_URL", srv.URL)
	t.Setenv("PUBMED_EXTRACT_LOGGING_LEVEL", "off")

	outFile := filepath.Join(t.TempDir(), "out.xlsx")
	out, err := execute(t, "base", "editing", "--output", outFile, "--email", "lab@example.org")
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, out)
	}

	if len(*terms) != 1 || (*terms)[0] != "base editing" {
		t.Errorf("expected one search for %q, got %q", "base editing", *terms)
	}
	if !strings.Contains(out, "Searching PubMed for: 'base editing'...") {
		t.Errorf("missing search banner in:\n%s", out)
	}
	if !strings.Contains(out, "Total articles: 3") {
		t.Errorf("missing summary in:\n%s", out)
	}
	if _, err := os.Stat(outFile); err != nil {
		t.Errorf("expected output file: %v", err)
	}
}

func TestRootCmd_InvalidMax(t *testing.T) {
	isolate(t)
	_, err := execute(t, "--max", "0")
	if err == nil || !strings.Contains(err.Error(), "max_results") {
		t.Fatalf("expected max_results validation error, got %v", err)
	}
}

func TestRootCmd_SearchFailure(t *testing.T) {
	isolate(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()
	t.Setenv("PUBMED_EXTRACT_NCBI_BASE_URL", srv.URL)
	t.Setenv("PUBMED_EXTRACT_LOGGING_LEVEL", "off")

	outFile := filepath.Join(t.TempDir(), "out.xlsx")
	_, err := execute(t, "CRISPR", "--output", outFile)
	if err == nil || !strings.Contains(err.Error(), "search failed") {
		t.Fatalf("expected search failure, got %v", err)
	}
	if _, statErr := os.Stat(outFile); !os.IsNotExist(statErr) {
		t.Error("no file should be written when search fails")
	}
}

// Command pubmed-extract searches PubMed, extracts article metadata, and
// writes it to a spreadsheet.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/henrybloomingdale/pubmed-extract/internal/config"
	"github.com/henrybloomingdale/pubmed-extract/internal/eutils"
	"github.com/henrybloomingdale/pubmed-extract/internal/logging"
	"github.com/henrybloomingdale/pubmed-extract/internal/ncbi"
	"github.com/henrybloomingdale/pubmed-extract/internal/output"
	"github.com/henrybloomingdale/pubmed-extract/internal/pipeline"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "pubmed-extract [term...]",
		Short: "Export PubMed search results to a spreadsheet",
		Long: `Search PubMed for a term, fetch the newest matching articles, and write
PMID, title, authors, journal, year, abstract and link to a file.

The output format follows the file extension: .xlsx, .csv or .ris.
With no term, searches for "` + config.DefaultTerm + `".`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, configPath)
		},
	}

	f := cmd.Flags()
	f.IntP("max", "n", config.DefaultMaxResults, "Maximum number of articles to retrieve")
	f.StringP("output", "o", config.DefaultOutput, "Output file (.xlsx, .csv or .ris)")
	f.String("email", "", "Contact email sent to NCBI")
	f.String("api-key", "", "NCBI API key (or set NCBI_API_KEY env var)")
	f.StringVar(&configPath, "config", "", "Config file (default ./pubmed-extract.yaml or ~/.config/pubmed-extract/pubmed-extract.yaml)")
	f.String("log-level", "", "Log level: debug, info, warn, error")
	f.String("log-format", "", "Log format: console or json")

	return cmd
}

func run(cmd *cobra.Command, args []string, configPath string) error {
	cfg, err := config.Load(configPath, cmd.Flags())
	if err != nil {
		return err
	}
	if term := buildTerm(args); term != "" {
		cfg.Term = term
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log := logging.New(cfg.LoggerConfig())

	client, err := eutils.NewClient(cfg.Identity(),
		ncbi.WithBaseURL(cfg.NCBI.BaseURL),
		ncbi.WithTimeout(cfg.NCBI.Timeout),
		ncbi.WithMaxResponseBytes(cfg.NCBI.MaxResponseBytes),
		ncbi.WithLogger(log),
	)
	if err != nil {
		return err
	}

	console := output.NewConsole(cmd.OutOrStdout())
	_, err = pipeline.New(client, client, console, log).Run(cmd.Context(), pipeline.Options{
		Term:       cfg.Term,
		MaxResults: cfg.MaxResults,
		Output:     cfg.Output,
	})
	if err != nil {
		log.Error().Err(err).Msg("run failed")
	}
	return err
}

// buildTerm joins positional arguments into one query.
func buildTerm(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// Package config loads pubmed-extract settings from defaults, an optional
// YAML file, PUBMED_EXTRACT_* environment variables, and command-line flags,
// in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/henrybloomingdale/pubmed-extract/internal/export"
	"github.com/henrybloomingdale/pubmed-extract/internal/logging"
	"github.com/henrybloomingdale/pubmed-extract/internal/ncbi"
)

const (
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "PUBMED_EXTRACT"
	// DefaultTerm is the search run when no term is given.
	DefaultTerm = "CRISPR"
	// DefaultMaxResults caps the search when no limit is given.
	DefaultMaxResults = 20
	// DefaultOutput is the spreadsheet written when no output is given.
	DefaultOutput = export.DefaultFilename
	// DefaultEmail is the contact address sent to NCBI when none is configured.
	DefaultEmail = "pubmed-extract@users.noreply.github.com"
)

// Config holds all settings for one run.
type Config struct {
	// Term is the PubMed query.
	Term string `mapstructure:"term"`
	// MaxResults caps the number of identifiers the search returns.
	MaxResults int `mapstructure:"max_results"`
	// Output is the file to write; its extension picks the format.
	Output string `mapstructure:"output"`
	// NCBI holds E-utilities client settings.
	NCBI NCBIConfig `mapstructure:"ncbi"`
	// Logging holds diagnostic logger settings.
	Logging LoggingConfig `mapstructure:"logging"`
}

// NCBIConfig holds E-utilities client settings.
type NCBIConfig struct {
	Email            string        `mapstructure:"email"`
	Tool             string        `mapstructure:"tool"`
	APIKey           string        `mapstructure:"api_key"`
	BaseURL          string        `mapstructure:"base_url"`
	Timeout          time.Duration `mapstructure:"timeout"`
	MaxResponseBytes int64         `mapstructure:"max_response_bytes"`
}

// LoggingConfig holds diagnostic logger settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"max":        "max_results",
	"output":     "output",
	"email":      "ncbi.email",
	"api-key":    "ncbi.api_key",
	"log-level":  "logging.level",
	"log-format": "logging.format",
}

// Load reads configuration. path names an explicit config file; when empty,
// pubmed-extract.yaml is looked up in the working directory and in
// ~/.config/pubmed-extract, and a missing file is not an error. flags may be
// nil. The result is not validated; call Validate once the term is final.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("pubmed-extract")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "pubmed-extract"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag --%s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	// NCBI_API_KEY is the variable NCBI's own documentation uses.
	if cfg.NCBI.APIKey == "" {
		cfg.NCBI.APIKey = os.Getenv("NCBI_API_KEY")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("term", DefaultTerm)
	v.SetDefault("max_results", DefaultMaxResults)
	v.SetDefault("output", DefaultOutput)

	v.SetDefault("ncbi.email", DefaultEmail)
	v.SetDefault("ncbi.tool", ncbi.DefaultTool)
	v.SetDefault("ncbi.api_key", "")
	v.SetDefault("ncbi.base_url", ncbi.DefaultBaseURL)
	v.SetDefault("ncbi.timeout", ncbi.DefaultTimeout.String())
	v.SetDefault("ncbi.max_response_bytes", ncbi.DefaultMaxResponseBytes)

	def := logging.DefaultConfig()
	v.SetDefault("logging.level", def.Level)
	v.SetDefault("logging.format", def.Format)
	v.SetDefault("logging.output", def.Output)
}

// Validate checks that the configuration can drive a run.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Term) == "" {
		errs = append(errs, errors.New("term must not be empty"))
	}
	if c.MaxResults <= 0 {
		errs = append(errs, fmt.Errorf("max_results must be positive, got %d", c.MaxResults))
	}
	if c.Output == "" {
		errs = append(errs, errors.New("output must not be empty"))
	}
	if !strings.Contains(c.NCBI.Email, "@") {
		errs = append(errs, fmt.Errorf("ncbi.email %q is not an email address", c.NCBI.Email))
	}
	if c.NCBI.MaxResponseBytes <= 0 {
		errs = append(errs, errors.New("ncbi.max_response_bytes must be positive"))
	}
	return errors.Join(errs...)
}

// Identity returns the contact identity for the NCBI client.
func (c *Config) Identity() ncbi.Identity {
	return ncbi.Identity{
		Email:  c.NCBI.Email,
		Tool:   c.NCBI.Tool,
		APIKey: c.NCBI.APIKey,
	}
}

// LoggerConfig converts the logging section for the logging package.
func (c *Config) LoggerConfig() logging.Config {
	return logging.Config{
		Level:  c.Logging.Level,
		Format: c.Logging.Format,
		Output: c.Logging.Output,
	}
}

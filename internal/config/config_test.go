package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/henrybloomingdale/pubmed-extract/internal/ncbi"
)

// isolate keeps the developer's environment and home config out of the test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("NCBI_API_KEY", "")
	for _, k := range []string{"TERM", "MAX_RESULTS", "OUTPUT", "NCBI_EMAIL", "NCBI_API_KEY", "NCBI_TIMEOUT", "LOGGING_LEVEL"} {
		t.Setenv(EnvPrefix+"_"+k, "")
		os.Unsetenv(EnvPrefix + "_" + k)
	}
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("max", DefaultMaxResults, "")
	fs.String("output", DefaultOutput, "")
	fs.String("email", "", "")
	fs.String("api-key", "", "")
	fs.String("log-level", "", "")
	fs.String("log-format", "", "")
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "CRISPR", cfg.Term)
	assert.Equal(t, 20, cfg.MaxResults)
	assert.Equal(t, "pubmed_results.xlsx", cfg.Output)
	assert.Equal(t, DefaultEmail, cfg.NCBI.Email)
	assert.Equal(t, ncbi.DefaultTool, cfg.NCBI.Tool)
	assert.Equal(t, ncbi.DefaultBaseURL, cfg.NCBI.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.NCBI.Timeout)
	assert.Equal(t, ncbi.DefaultMaxResponseBytes, cfg.NCBI.MaxResponseBytes)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_ConfigFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
term: base editing
max_results: 5
output: out.csv
ncbi:
  email: lab@example.org
  timeout: 10s
logging:
  level: debug
`), 0o644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "base editing", cfg.Term)
	assert.Equal(t, 5, cfg.MaxResults)
	assert.Equal(t, "out.csv", cfg.Output)
	assert.Equal(t, "lab@example.org", cfg.NCBI.Email)
	assert.Equal(t, 10*time.Second, cfg.NCBI.Timeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_results: 5\n"), 0o644))
	t.Setenv("PUBMED_EXTRACT_MAX_RESULTS", "7")
	t.Setenv("PUBMED_EXTRACT_NCBI_EMAIL", "env@example.org")

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.MaxResults)
	assert.Equal(t, "env@example.org", cfg.NCBI.Email)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	isolate(t)
	t.Setenv("PUBMED_EXTRACT_MAX_RESULTS", "7")

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--max", "3", "--email", "flag@example.org", "--output", "x.ris"}))

	cfg, err := Load("", fs)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.MaxResults)
	assert.Equal(t, "flag@example.org", cfg.NCBI.Email)
	assert.Equal(t, "x.ris", cfg.Output)
}

func TestLoad_NCBIAPIKeyFallback(t *testing.T) {
	isolate(t)
	t.Setenv("NCBI_API_KEY", "from-ncbi-env")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "from-ncbi-env", cfg.NCBI.APIKey)
	assert.Equal(t, "from-ncbi-env", cfg.Identity().APIKey)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Term:       "CRISPR",
			MaxResults: 20,
			Output:     DefaultOutput,
			NCBI:       NCBIConfig{Email: "a@b.org", MaxResponseBytes: 1},
		}
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty term", func(c *Config) { c.Term = "  " }},
		{"zero max", func(c *Config) { c.MaxResults = 0 }},
		{"empty output", func(c *Config) { c.Output = "" }},
		{"bad email", func(c *Config) { c.NCBI.Email = "nobody" }},
		{"zero max bytes", func(c *Config) { c.NCBI.MaxResponseBytes = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestIdentityAndLoggerConfig(t *testing.T) {
	c := &Config{
		NCBI:    NCBIConfig{Email: "a@b.org", Tool: "t", APIKey: "k"},
		Logging: LoggingConfig{Level: "warn", Format: "json", Output: "stdout"},
	}
	assert.Equal(t, ncbi.Identity{Email: "a@b.org", Tool: "t", APIKey: "k"}, c.Identity())

	lc := c.LoggerConfig()
	assert.Equal(t, "warn", lc.Level)
	assert.Equal(t, "json", lc.Format)
	assert.Equal(t, "stdout", lc.Output)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pserrors "github.com/HartBrook/promptsmith/internal/errors"
	"github.com/HartBrook/promptsmith/internal/strategy"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultVersion, cfg.Version)
	assert.Equal(t, DefaultMaxTokens, cfg.Optimize.MaxTokens)
	assert.Equal(t, DefaultModel, cfg.Optimize.Model)
	assert.Equal(t, []string{"all"}, cfg.Optimize.Strategies)
	assert.Equal(t, "cl100k_base", cfg.Tokenizer.Encoding)
	assert.NotZero(t, cfg.Usage.Capacity)
	assert.NotEmpty(t, cfg.TemplatesDir)
}

func TestLoadFrom_NotFound(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "config.yaml"))
	require.Error(t, err)

	var perr *pserrors.PromptsmithError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, pserrors.ErrConfigNotFound, perr.Code)
}

func TestLoadFrom_AppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 1\n"), 0644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultMaxTokens, cfg.Optimize.MaxTokens)
	assert.Equal(t, []string{"all"}, cfg.Optimize.Strategies)
}

func TestLoadFrom_FullConfig(t *testing.T) {
	content := `version: 1
templates_dir: /srv/templates
optimize:
  max_tokens: 4000
  model: claude-haiku
  strategies:
    - whitespace-normalize
    - truncate
tokenizer:
  encoding: cl100k_base
  estimate: true
usage:
  capacity: 64
rules:
  - pattern: '(?i)record\.'
    terms:
      - Record.Attributes.Path
      - Record.Path
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/templates", cfg.TemplatesDir)
	assert.Equal(t, 4000, cfg.Optimize.MaxTokens)
	assert.True(t, cfg.Tokenizer.Estimate)
	assert.Equal(t, 64, cfg.Usage.Capacity)
	require.Len(t, cfg.Rules, 1)
	assert.Equal(t, []string{"Record.Attributes.Path"}, cfg.Rules[0].Canonical())

	assert.Equal(t, []strategy.Strategy{
		strategy.WhitespaceNormalize,
		strategy.Truncate,
	}, cfg.Strategies())
}

func TestLoadFrom_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: [unclosed"), 0644))

	_, err := LoadFrom(path)
	require.Error(t, err)

	var perr *pserrors.PromptsmithError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, pserrors.ErrConfigInvalid, perr.Code)
}

func TestValidate_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		message string
	}{
		{
			name:    "negative budget",
			mutate:  func(c *Config) { c.Optimize.MaxTokens = -1 },
			message: "max_tokens",
		},
		{
			name:    "unknown strategy",
			mutate:  func(c *Config) { c.Optimize.Strategies = []string{"compress-harder"} },
			message: "compress-harder",
		},
		{
			name: "bad rule pattern",
			mutate: func(c *Config) {
				c.Rules = []strategy.SchemaRule{{Pattern: "([", Terms: []string{"a", "b"}}}
			},
			message: "does not compile",
		},
		{
			name: "rule with one term",
			mutate: func(c *Config) {
				c.Rules = []strategy.SchemaRule{{Pattern: "x", Terms: []string{"only"}}}
			},
			message: "at least one",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestSaveTo_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := Default()
	cfg.Optimize.MaxTokens = 1234
	require.NoError(t, SaveTo(cfg, path))

	loaded, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 1234, loaded.Optimize.MaxTokens)
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxTokens, cfg.Optimize.MaxTokens)
}

func TestNewPathsWithOverrides(t *testing.T) {
	paths := NewPathsWithOverrides("/tmp/cfg", "/tmp/templates")

	assert.Equal(t, "/tmp/cfg", paths.ConfigDir)
	assert.Equal(t, filepath.Join("/tmp/cfg", "config.yaml"), paths.ConfigFile)
	assert.Equal(t, "/tmp/templates", paths.TemplatesDir)
}

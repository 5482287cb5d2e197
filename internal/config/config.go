// Package config handles promptsmith configuration.
package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/HartBrook/promptsmith/internal/errors"
	"github.com/HartBrook/promptsmith/internal/strategy"
	"github.com/HartBrook/promptsmith/internal/token"
	"github.com/HartBrook/promptsmith/internal/usage"
)

// OptimizeConfig contains budget and pipeline settings.
type OptimizeConfig struct {
	MaxTokens  int      `yaml:"max_tokens,omitempty"` // Token budget for rendered prompts
	Model      string   `yaml:"model,omitempty"`      // Model label stamped on usage records and used for llm-review
	Strategies []string `yaml:"strategies,omitempty"` // Default strategy selection ("all" by default)
}

// TokenizerConfig selects the token counting backend.
type TokenizerConfig struct {
	Encoding string `yaml:"encoding,omitempty"` // tiktoken encoding name (e.g. cl100k_base)
	Estimate bool   `yaml:"estimate,omitempty"` // Force the runes/4 estimator, skipping tiktoken
}

// UsageConfig contains usage log settings.
type UsageConfig struct {
	Capacity int `yaml:"capacity,omitempty"`
}

// Config represents the promptsmith configuration file.
type Config struct {
	Version      int                   `yaml:"version"`
	TemplatesDir string                `yaml:"templates_dir,omitempty"`
	Optimize     OptimizeConfig        `yaml:"optimize,omitempty"`
	Tokenizer    TokenizerConfig       `yaml:"tokenizer,omitempty"`
	Usage        UsageConfig           `yaml:"usage,omitempty"`
	Rules        []strategy.SchemaRule `yaml:"rules,omitempty"`
}

// Default values.
const (
	DefaultVersion   = 1
	DefaultMaxTokens = 8000
	DefaultModel     = "claude-sonnet-4-20250514"
	DefaultFileMode  = 0644
)

// Default returns a config with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and validates config from the default location.
func Load() (*Config, error) {
	paths := NewPaths()
	return LoadFrom(paths.ConfigFile)
}

// LoadFrom reads and validates config from a specific path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(errors.ErrConfigInvalid, "failed to read config", "", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrConfigInvalid, "failed to parse config YAML", "Check config syntax", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadOrDefault reads config from path, falling back to defaults when the
// file does not exist. Any other failure is still an error.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := LoadFrom(path)
	if err != nil {
		var perr *errors.PromptsmithError
		if stderrors.As(err, &perr) && perr.Code == errors.ErrConfigNotFound {
			return Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// Save writes config to the default location.
func Save(cfg *Config) error {
	paths := NewPaths()
	return SaveTo(cfg, paths.ConfigFile)
}

// SaveTo writes config to a specific path.
func SaveTo(cfg *Config, path string) error {
	cfg.applyDefaults()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(errors.ErrConfigInvalid, "failed to marshal config", "", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(errors.ErrConfigInvalid, "failed to create config directory", "", err)
	}

	return os.WriteFile(path, data, DefaultFileMode)
}

// Validate checks config for required fields and valid values.
func (c *Config) Validate() error {
	if c.Optimize.MaxTokens <= 0 {
		return errors.ConfigInvalid("optimize.max_tokens must be positive")
	}
	for _, name := range c.Optimize.Strategies {
		if _, err := strategy.Parse(name); err != nil {
			return errors.ConfigInvalid(err.Error())
		}
	}
	for _, rule := range c.Rules {
		if _, err := regexp.Compile(rule.Pattern); err != nil {
			return errors.ConfigInvalid("rule pattern " + rule.Pattern + " does not compile")
		}
		if len(rule.Terms) < 2 {
			return errors.ConfigInvalid("rule " + rule.Pattern + " needs at least one canonical and one incorrect term")
		}
	}
	return nil
}

// Strategies returns the configured default strategy selection.
func (c *Config) Strategies() []strategy.Strategy {
	out := make([]strategy.Strategy, 0, len(c.Optimize.Strategies))
	for _, name := range c.Optimize.Strategies {
		s, err := strategy.Parse(name)
		if err != nil {
			continue // Validate already rejected these
		}
		out = append(out, s)
	}
	return out
}

func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = DefaultVersion
	}
	if c.Optimize.MaxTokens == 0 {
		c.Optimize.MaxTokens = DefaultMaxTokens
	}
	if c.Optimize.Model == "" {
		c.Optimize.Model = DefaultModel
	}
	if len(c.Optimize.Strategies) == 0 {
		c.Optimize.Strategies = []string{string(strategy.All)}
	}
	if c.Tokenizer.Encoding == "" {
		c.Tokenizer.Encoding = token.DefaultEncoding
	}
	if c.Usage.Capacity == 0 {
		c.Usage.Capacity = usage.DefaultCapacity
	}
	if c.TemplatesDir == "" {
		c.TemplatesDir = NewPaths().TemplatesDir
	}
}

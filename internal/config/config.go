package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultModel is the Gemini variant used when none is configured.
const DefaultModel = "gemini-1.5-pro-002"

// EnvAPIKey is the environment variable the credential is read from when
// neither the config file nor the --api-key flag provides one.
const EnvAPIKey = "GEMINI_API_KEY"

type Config struct {
	Gemini   GeminiConfig   `yaml:"gemini"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Paths    PathsConfig    `yaml:"paths"`
	Logging  LoggingConfig  `yaml:"logging"`
	Watch    WatchConfig    `yaml:"watch"`
}

type GeminiConfig struct {
	Model  string `yaml:"model"`
	APIKey string `yaml:"api_key"`

	// Readiness poll for staged files. Interval is in seconds; the wait is
	// bounded by PollAttempts checks per file.
	PollIntervalSeconds int `yaml:"poll_interval_seconds"`
	PollAttempts        int `yaml:"poll_attempts"`
}

type AnalysisConfig struct {
	CombineImages bool   `yaml:"combine_images"`
	AddLabels     bool   `yaml:"add_labels"`
	Format        string `yaml:"format"` // "text" or "docx"
}

// PathsConfig is used by watch mode: decks appear in Input, reports are
// written to Output. Temp overrides the staging scratch directory.
type PathsConfig struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
	Temp   string `yaml:"temp"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type WatchConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

// Default returns the configuration used when no file and no flags are given.
func Default() *Config {
	return &Config{
		Gemini: GeminiConfig{
			Model:               DefaultModel,
			PollIntervalSeconds: 10,
			PollAttempts:        30,
		},
		Analysis: AnalysisConfig{
			CombineImages: true,
			AddLabels:     true,
			Format:        "text",
		},
		Logging: LoggingConfig{Level: "info"},
		Watch:   WatchConfig{MaxConcurrent: 2},
	}
}

// Load reads the YAML config at path on top of the defaults. An empty path
// returns defaults plus the environment credential. Flag overrides are
// applied by the caller after Load, before Validate.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if cfg.Gemini.APIKey == "" {
		cfg.Gemini.APIKey = os.Getenv(EnvAPIKey)
	}

	return cfg, nil
}

// Validate rejects configurations the pipeline cannot run with and fills the
// remaining defaults. The credential check runs before any deck is opened.
func (c *Config) Validate() error {
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("gemini.api_key is required (set %s, the api_key config field, or --api-key)", EnvAPIKey)
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = DefaultModel
	}
	if c.Gemini.PollIntervalSeconds <= 0 {
		c.Gemini.PollIntervalSeconds = 10
	}
	if c.Gemini.PollAttempts <= 0 {
		c.Gemini.PollAttempts = 30
	}
	switch c.Analysis.Format {
	case "":
		c.Analysis.Format = "text"
	case "text", "docx":
	default:
		return fmt.Errorf("analysis.format must be \"text\" or \"docx\", got %q", c.Analysis.Format)
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Watch.MaxConcurrent <= 0 {
		c.Watch.MaxConcurrent = 2
	}
	return nil
}

// ValidateWatch additionally requires the watch-mode directories.
func (c *Config) ValidateWatch() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Paths.Input == "" {
		return fmt.Errorf("paths.input is required in watch mode")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required in watch mode")
	}
	return nil
}

// PollInterval returns the readiness poll interval as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Gemini.PollIntervalSeconds) * time.Second
}

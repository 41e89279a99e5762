// Package config loads CLI settings from a TOML or YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/reoring/osver"
)

// Environment variables consulted by Load. They override the file.
const (
	EnvFormat   = "OSVER_FORMAT"
	EnvOutput   = "OSVER_OUTPUT"
	EnvLogLevel = "OSVER_LOG_LEVEL"
	EnvLanguage = "OSVER_LANG"
)

// Output renderers.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// DefaultFileNames are probed in order by Discover.
var DefaultFileNames = []string{".osver.toml", ".osver.yaml", ".osver.yml"}

// Config holds CLI settings.
type Config struct {
	Format   osver.EncodingFormat
	Output   string
	LogLevel string
	Language string
	// Minimum is the lowest acceptable host version; nil disables the check.
	Minimum *osver.Version
}

type fileConfig struct {
	Format   string         `toml:"format" yaml:"format"`
	Output   string         `toml:"output" yaml:"output"`
	LogLevel string         `toml:"log_level" yaml:"log_level"`
	Language string         `toml:"language" yaml:"language"`
	Minimum  *osver.Version `toml:"minimum" yaml:"minimum"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Format:   osver.DefaultEncodingFormat,
		Output:   OutputText,
		LogLevel: logrus.InfoLevel.String(),
		Language: "en",
	}
}

// Discover returns the first of DefaultFileNames present in dir, or "".
func Discover(dir string) string {
	for _, name := range DefaultFileNames {
		p := filepath.Join(dir, name)
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p
		}
	}
	return ""
}

// Load builds a Config from defaults, then the file at path (skipped when
// path is empty), then the environment, and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	applyEnv(&cfg, os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	var raw fileConfig
	defined := func(string) bool { return true }

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		meta, err := toml.DecodeFile(path, &raw)
		if err != nil {
			return fmt.Errorf("load config %s: %w", path, err)
		}
		defined = func(key string) bool { return meta.IsDefined(key) }
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("load config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("load config %s: %w", path, err)
		}
	default:
		return fmt.Errorf("load config %s: unsupported extension %q", path, filepath.Ext(path))
	}

	if defined("format") {
		if v := strings.TrimSpace(raw.Format); v != "" {
			cfg.Format = osver.EncodingFormat(strings.ToLower(v))
		}
	}
	if defined("output") {
		if v := strings.TrimSpace(raw.Output); v != "" {
			cfg.Output = strings.ToLower(v)
		}
	}
	if defined("log_level") {
		if v := strings.TrimSpace(raw.LogLevel); v != "" {
			cfg.LogLevel = strings.ToLower(v)
		}
	}
	if defined("language") {
		if v := strings.TrimSpace(raw.Language); v != "" {
			cfg.Language = strings.ToLower(v)
		}
	}
	if defined("minimum") && raw.Minimum != nil {
		m := *raw.Minimum
		cfg.Minimum = &m
	}
	return nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvFormat); ok && strings.TrimSpace(v) != "" {
		cfg.Format = osver.EncodingFormat(strings.ToLower(strings.TrimSpace(v)))
	}
	if v, ok := lookup(EnvOutput); ok && strings.TrimSpace(v) != "" {
		cfg.Output = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(v) != "" {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup(EnvLanguage); ok && strings.TrimSpace(v) != "" {
		cfg.Language = strings.ToLower(strings.TrimSpace(v))
	}
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if !c.Format.Valid() {
		errs = append(errs, fmt.Errorf("format: %w: %q", osver.ErrUnknownFormat, c.Format))
	}
	if err := ValidateOutput(c.Output); err != nil {
		errs = append(errs, err)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	switch c.Language {
	case "en", "ja":
	default:
		errs = append(errs, fmt.Errorf("language: unsupported %q (en, ja)", c.Language))
	}
	return errors.Join(errs...)
}

// ValidateOutput checks an output renderer name.
func ValidateOutput(s string) error {
	switch s {
	case OutputText, OutputJSON, OutputYAML:
		return nil
	}
	return fmt.Errorf("output: unsupported %q (text, json, yaml)", s)
}

// Level returns the parsed log level. Validate has already vetted it.
func (c Config) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// Package config reads the scikit-ds configuration file.
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/peekknuf/scikit-ds/internal/eda"
	"github.com/peekknuf/scikit-ds/internal/loader"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is looked up in the home directory when no path is given.
const DefaultFileName = ".scikit-ds.yaml"

type Config struct {
	// Delimiter for delimited text; empty means detect. "tab" and "\t" are accepted.
	Delimiter string           `yaml:"delimiter" toml:"delimiter"`
	NAValues  []string         `yaml:"na_values" toml:"na_values"`
	Workers   int              `yaml:"workers" toml:"workers"`
	Recursive bool             `yaml:"recursive" toml:"recursive"`
	Missing   MissingConfig    `yaml:"missing" toml:"missing"`
	SQL       SQLConfig        `yaml:"sql" toml:"sql"`
	S3        loader.S3Options `yaml:"s3" toml:"s3"`
}

type MissingConfig struct {
	ShowOnlyMissing bool `yaml:"show_only_missing" toml:"show_only_missing"`
	FormatPct       bool `yaml:"format_pct" toml:"format_pct"`
}

type SQLConfig struct {
	Driver string `yaml:"driver" toml:"driver"`
	DSN    string `yaml:"dsn" toml:"dsn"`
}

func Default() *Config {
	missing := eda.DefaultMissingOptions()
	return &Config{
		NAValues: append([]string{}, loader.DefaultNAValues...),
		Workers:  4,
		Missing: MissingConfig{
			ShowOnlyMissing: missing.ShowOnlyMissing,
			FormatPct:       missing.FormatPct,
		},
	}
}

// DefaultPath returns $HOME/.scikit-ds.yaml, or "" when there is no home directory.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, DefaultFileName)
}

// Load reads path on top of the defaults. A missing or empty file yields the
// defaults. Files ending in .toml are TOML, anything else YAML.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrapf(err, "failed to read config %s", path)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "failed to parse config %s", path)
		}
	} else {
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, errors.Wrapf(err, "failed to parse config %s", path)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := ParseDelimiter(c.Delimiter); err != nil {
		return err
	}
	if c.Workers < 1 {
		return errors.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.SQL.Driver != "" {
		if _, err := loader.Dialector(c.SQL.Driver, c.SQL.DSN); err != nil {
			return err
		}
	}
	return nil
}

// ParseDelimiter turns a configured delimiter into a rune; "" means detect (0).
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case "tab", `\t`:
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) || r == utf8.RuneError || r == '"' || r == '\n' || r == '\r' {
		return 0, errors.Errorf("invalid delimiter %q", s)
	}
	return r, nil
}

// LoaderOptions converts the file settings into loader options.
func (c *Config) LoaderOptions() loader.Options {
	delim, _ := ParseDelimiter(c.Delimiter)
	return loader.Options{
		Delimiter: delim,
		NAValues:  c.NAValues,
		S3:        c.S3,
	}
}

func (c *Config) MissingOptions() eda.MissingOptions {
	return eda.MissingOptions{
		ShowOnlyMissing: c.Missing.ShowOnlyMissing,
		FormatPct:       c.Missing.FormatPct,
	}
}

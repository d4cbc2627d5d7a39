// Copyright 2026 The Clio Authors
// SPDX-License-Identifier: Apache-2.0

// Package historyconfig provides YAML-backed configuration loading for
// clio's command-line tools. It gives the read-only configuration
// collaborator that lib/historystore accepts as a plain
// [historystore.Config] value a concrete, file-backed implementation,
// following the same loader/consumer split the teacher keeps between
// lib/config and the packages that merely consume its output:
// lib/historystore never imports gopkg.in/yaml.v3; only this package
// does.
package historyconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/clio-history/clio/lib/historystore"
)

// Config is the on-disk configuration for clio's command-line tools.
type Config struct {
	// HistoryPath is the absolute path of the master bank file.
	HistoryPath string `yaml:"history_path"`

	// Shared mirrors [historystore.Config.Shared].
	Shared bool `yaml:"shared"`

	// IgnoreSpace mirrors [historystore.Config.IgnoreSpace].
	IgnoreSpace bool `yaml:"ignore_space"`

	// DupeMode is one of "add", "ignore", "erase_prev".
	DupeMode string `yaml:"dupe_mode"`

	// ExpandMode is one of "off", "on", "not_squoted", "not_dquoted",
	// "not_quoted".
	ExpandMode string `yaml:"expand_mode"`
}

// Default returns the default configuration. [LoadFile] merges a
// config file onto these values; clio-history and clio-shell also use
// them unchanged when neither --config nor CLIO_CONFIG is given.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		HistoryPath: filepath.Join(homeDir, ".cache", "clio", "history"),
		Shared:      false,
		IgnoreSpace: true,
		DupeMode:    "erase_prev",
		ExpandMode:  "not_quoted",
	}
}

// Load loads configuration from the CLIO_CONFIG environment variable.
// There is no fallback or auto-discovery: if CLIO_CONFIG is not set,
// this fails, matching the teacher's "no hidden overrides" config
// philosophy.
func Load() (*Config, error) {
	path := os.Getenv("CLIO_CONFIG")
	if path == "" {
		return nil, fmt.Errorf("historyconfig: CLIO_CONFIG environment variable not set; " +
			"set it to the path of your clio.yaml config file, or use --config")
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path, merged onto
// [Default].
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("historyconfig: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("historyconfig: parsing %s: %w", path, err)
	}

	cfg.expandVariables()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// expandVariables expands ${HOME} and similar patterns in HistoryPath,
// matching lib/config's path-expansion convention.
func (c *Config) expandVariables() {
	c.HistoryPath = expandVars(c.HistoryPath)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		name, defaultValue := parts[1], ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.HistoryPath == "" {
		return fmt.Errorf("historyconfig: history_path is required")
	}
	if _, err := parseDupeMode(c.DupeMode); err != nil {
		return err
	}
	if _, err := parseExpandMode(c.ExpandMode); err != nil {
		return err
	}
	return nil
}

// StoreConfig converts the loaded file into the knobs
// [historystore.Config] understands. The caller still fills in
// Context, Glob, Editor, Logger, and Clock, since those are runtime
// collaborators rather than persisted settings.
func (c *Config) StoreConfig() (historystore.Config, error) {
	dupeMode, err := parseDupeMode(c.DupeMode)
	if err != nil {
		return historystore.Config{}, err
	}
	expandMode, err := parseExpandMode(c.ExpandMode)
	if err != nil {
		return historystore.Config{}, err
	}
	return historystore.Config{
		Shared:      c.Shared,
		IgnoreSpace: c.IgnoreSpace,
		DupeMode:    dupeMode,
		ExpandMode:  expandMode,
	}, nil
}

func parseDupeMode(s string) (historystore.DupeMode, error) {
	switch s {
	case "", "add":
		return historystore.DupeAdd, nil
	case "ignore":
		return historystore.DupeIgnore, nil
	case "erase_prev":
		return historystore.DupeErasePrev, nil
	default:
		return 0, fmt.Errorf("historyconfig: dupe_mode must be one of add, ignore, erase_prev (got %q)", s)
	}
}

func parseExpandMode(s string) (historystore.ExpandMode, error) {
	switch s {
	case "", "off":
		return historystore.ExpandOff, nil
	case "on":
		return historystore.ExpandOn, nil
	case "not_squoted":
		return historystore.ExpandNotSingleQuoted, nil
	case "not_dquoted":
		return historystore.ExpandNotDoubleQuoted, nil
	case "not_quoted":
		return historystore.ExpandNotQuoted, nil
	default:
		return 0, fmt.Errorf("historyconfig: expand_mode must be one of off, on, not_squoted, not_dquoted, not_quoted (got %q)", s)
	}
}

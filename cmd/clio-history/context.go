// Copyright 2026 The Clio Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/clio-history/clio/lib/historyconfig"
	"github.com/clio-history/clio/lib/historystore"
)

// cliContext is the [historystore.AppContext] every clio-history
// subcommand constructs from its flags: the master bank path (from
// config, overridable with --history-path) and this process's own pid
// as the session id, matching spec §1's "process id" session-id
// source.
type cliContext struct {
	historyPath string
	sessionID   int
}

func (c cliContext) HistoryPath() string { return c.historyPath }
func (c cliContext) SessionID() int      { return c.sessionID }

// commonFlags are accepted by every subcommand: where to load
// configuration from, and overrides for the knobs a one-shot CLI
// invocation commonly wants to vary without editing the config file.
type commonFlags struct {
	configPath  string
	historyPath string
	sessionID   int
	shared      bool
	sharedSet   bool
}

func bindCommonFlags(flagSet *pflag.FlagSet) *commonFlags {
	flags := &commonFlags{sessionID: os.Getpid()}
	flagSet.StringVar(&flags.configPath, "config", "", "path to clio.yaml (default: $CLIO_CONFIG, else built-in defaults)")
	flagSet.StringVar(&flags.historyPath, "history-path", "", "override the master bank path from config")
	flagSet.IntVar(&flags.sessionID, "session-id", flags.sessionID, "session id for this invocation's per-session bank (default: pid)")
	flagSet.BoolVar(&flags.shared, "shared", false, "override shared mode from config")
	return flags
}

// parseCommon parses flagSet and records whether --shared was actually
// passed, since a bool flag's zero value is indistinguishable from
// "not set".
func (f *commonFlags) parseCommon(flagSet *pflag.FlagSet, args []string) error {
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	f.sharedSet = flagSet.Changed("shared")
	return nil
}

// resolveConfig loads the on-disk configuration: from --config if
// given, else $CLIO_CONFIG, else the built-in defaults — unlike
// [historyconfig.Load], a one-shot maintenance CLI degrades gracefully
// instead of requiring an environment variable on every invocation.
func (f *commonFlags) resolveConfig() (*historyconfig.Config, error) {
	switch {
	case f.configPath != "":
		return historyconfig.LoadFile(f.configPath)
	case os.Getenv("CLIO_CONFIG") != "":
		return historyconfig.Load()
	default:
		return historyconfig.Default(), nil
	}
}

// openStore loads configuration, applies flag overrides, and opens a
// [historystore.Store] against it. Callers must Close the returned
// store.
func (f *commonFlags) openStore() (*historystore.Store, error) {
	cfg, err := f.resolveConfig()
	if err != nil {
		return nil, err
	}
	if f.historyPath != "" {
		cfg.HistoryPath = f.historyPath
	}
	if f.sharedSet {
		cfg.Shared = f.shared
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	storeCfg, err := cfg.StoreConfig()
	if err != nil {
		return nil, err
	}
	storeCfg.Context = cliContext{historyPath: cfg.HistoryPath, sessionID: f.sessionID}
	storeCfg.Logger = slog.Default()

	return historystore.Open(storeCfg)
}

func joinArgs(args []string, flagName string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("clio-history: %s requires a history line argument", flagName)
	}
	line := args[0]
	for _, extra := range args[1:] {
		line += " " + extra
	}
	return line, nil
}

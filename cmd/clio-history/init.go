// Copyright 2026 The Clio Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

// runInit creates the master bank (and, implicitly, this session's
// bank) by opening and immediately closing a [historystore.Store].
// Spec §4.7 lists "initialise" as an idempotent public operation; Go's
// constructor idiom folds it into Open (see lib/historystore/store.go),
// so init's only job here is to make that first Open happen and report
// where the master bank landed.
func runInit(args []string) error {
	flagSet := pflag.NewFlagSet("clio-history init", pflag.ContinueOnError)
	flags := bindCommonFlags(flagSet)
	if err := flags.parseCommon(flagSet, args); err != nil {
		return err
	}

	store, err := flags.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	cfg, err := flags.resolveConfig()
	if err == nil {
		if flags.historyPath != "" {
			cfg.HistoryPath = flags.historyPath
		}
		fmt.Fprintf(os.Stderr, "initialized history store at %s\n", cfg.HistoryPath)
	}
	return nil
}

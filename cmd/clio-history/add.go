// Copyright 2026 The Clio Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

func runAdd(args []string) error {
	flagSet := pflag.NewFlagSet("clio-history add", pflag.ContinueOnError)
	flags := bindCommonFlags(flagSet)
	if err := flags.parseCommon(flagSet, args); err != nil {
		return err
	}

	line, err := joinArgs(flagSet.Args(), "add")
	if err != nil {
		return err
	}

	store, err := flags.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	added, err := store.Add(line)
	if err != nil {
		return err
	}
	if !added {
		fmt.Fprintln(os.Stderr, "not added (empty, or leading space/tab with ignore_space set)")
	}
	return nil
}

// Copyright 2026 The Clio Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/pflag"
)

func runRemove(args []string) error {
	flagSet := pflag.NewFlagSet("clio-history remove", pflag.ContinueOnError)
	flags := bindCommonFlags(flagSet)
	if err := flags.parseCommon(flagSet, args); err != nil {
		return err
	}

	line, err := joinArgs(flagSet.Args(), "remove")
	if err != nil {
		return err
	}

	store, err := flags.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	removed, err := store.Remove(line)
	if err != nil {
		return err
	}
	fmt.Printf("removed %d record(s)\n", removed)
	return nil
}

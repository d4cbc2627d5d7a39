// Copyright 2026 The Clio Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

func runFind(args []string) error {
	flagSet := pflag.NewFlagSet("clio-history find", pflag.ContinueOnError)
	flags := bindCommonFlags(flagSet)
	if err := flags.parseCommon(flagSet, args); err != nil {
		return err
	}

	line, err := joinArgs(flagSet.Args(), "find")
	if err != nil {
		return err
	}

	store, err := flags.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.Find(line)
	if err != nil {
		return err
	}
	if id.IsNull() {
		fmt.Fprintln(os.Stderr, "not found")
		os.Exit(1)
	}
	fmt.Printf("bank=%d offset=%d\n", id.BankIndex(), id.Offset())
	return nil
}

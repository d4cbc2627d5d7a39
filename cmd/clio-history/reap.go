// Copyright 2026 The Clio Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/pflag"
)

// runReap forces one reap pass outside the usual open/close lifecycle,
// for an operator who wants to fold in crashed sessions' orphaned
// banks without waiting for the next shell to start or the last one to
// exit.
func runReap(args []string) error {
	flagSet := pflag.NewFlagSet("clio-history reap", pflag.ContinueOnError)
	flags := bindCommonFlags(flagSet)
	if err := flags.parseCommon(flagSet, args); err != nil {
		return err
	}

	store, err := flags.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Reap(); err != nil {
		return err
	}
	fmt.Println("reap pass complete")
	return nil
}

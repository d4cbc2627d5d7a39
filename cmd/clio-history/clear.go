// Copyright 2026 The Clio Authors
// SPDX-License-Identifier: Apache-2.0

package main

import "github.com/spf13/pflag"

func runClear(args []string) error {
	flagSet := pflag.NewFlagSet("clio-history clear", pflag.ContinueOnError)
	flags := bindCommonFlags(flagSet)
	if err := flags.parseCommon(flagSet, args); err != nil {
		return err
	}

	store, err := flags.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Clear()
}

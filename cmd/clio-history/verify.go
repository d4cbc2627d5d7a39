// Copyright 2026 The Clio Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/clio-history/clio/lib/historyarchive"
)

// runVerify checks a compact archive's manifest against its data,
// independent of any open store (verify never touches the banks).
func runVerify(args []string) error {
	flagSet := pflag.NewFlagSet("clio-history verify", pflag.ContinueOnError)
	var archivePath string
	flagSet.StringVar(&archivePath, "archive-path", "", "path to a compact archive written by 'clio-history compact' (required)")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if archivePath == "" {
		return fmt.Errorf("clio-history verify: --archive-path is required")
	}

	if err := historyarchive.Verify(archivePath); err != nil {
		return err
	}
	fmt.Printf("%s: ok\n", archivePath)
	return nil
}

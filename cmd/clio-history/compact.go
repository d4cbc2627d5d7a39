// Copyright 2026 The Clio Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/clio-history/clio/lib/clock"
	"github.com/clio-history/clio/lib/historyarchive"
)

// runCompact rewrites the master bank, dropping tombstoned records.
// Unless --no-archive is given, the pre-compaction bytes that Compact
// returns are then written to an archive via lib/historyarchive, so a
// compacted history can still be recovered. The archive is written
// after master has already been rewritten; if that write fails, the
// dropped records are not kept anywhere.
func runCompact(args []string) error {
	flagSet := pflag.NewFlagSet("clio-history compact", pflag.ContinueOnError)
	flags := bindCommonFlags(flagSet)
	var archivePath string
	var noArchive bool
	flagSet.StringVar(&archivePath, "archive-path", "", "where to write the pre-compaction archive (default: <history-path>.archive)")
	flagSet.BoolVar(&noArchive, "no-archive", false, "discard tombstoned records without archiving the pre-compaction bytes")
	if err := flags.parseCommon(flagSet, args); err != nil {
		return err
	}

	store, err := flags.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	result, err := store.Compact()
	if err != nil {
		return err
	}

	if !noArchive && len(result.OriginalBytes) > 0 {
		if archivePath == "" {
			cfg, cfgErr := flags.resolveConfig()
			if cfgErr != nil {
				return cfgErr
			}
			if flags.historyPath != "" {
				cfg.HistoryPath = flags.historyPath
			}
			archivePath = cfg.HistoryPath + ".archive"
		}
		if _, err := historyarchive.Write(archivePath, result.OriginalBytes, clock.Real()); err != nil {
			return fmt.Errorf("clio-history: archiving pre-compaction bytes: %w", err)
		}
		fmt.Printf("archived %d bytes to %s\n", len(result.OriginalBytes), archivePath)
	}

	fmt.Printf("kept %d record(s), dropped %d tombstoned record(s)\n", result.KeptRecords, result.DroppedRecords)
	return nil
}

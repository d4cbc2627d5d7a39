// Copyright 2026 The Clio Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/spf13/pflag"
)

// runExport streams the full unified history view — every surviving
// record, master then session, newline-delimited — through a zstd
// encoder into a single portable bundle. Unlike lib/historyarchive's
// lz4 path (chosen for low latency), export is an offline,
// operator-invoked bulk dump that favors zstd's better ratio since
// nothing is waiting on it. The bundle has no manifest or checksum, so
// the verify subcommand does not apply to it.
func runExport(args []string) error {
	flagSet := pflag.NewFlagSet("clio-history export", pflag.ContinueOnError)
	flags := bindCommonFlags(flagSet)
	var outPath string
	flagSet.StringVar(&outPath, "output", "", "destination path for the exported bundle (required)")
	if err := flags.parseCommon(flagSet, args); err != nil {
		return err
	}
	if outPath == "" {
		return fmt.Errorf("clio-history export: --output is required")
	}

	store, err := flags.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	outFile, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("clio-history: creating export bundle %s: %w", outPath, err)
	}
	defer outFile.Close()

	encoder, err := zstd.NewWriter(outFile, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return fmt.Errorf("clio-history: starting zstd encoder: %w", err)
	}

	writer := bufio.NewWriter(encoder)
	lineCount := 0
	scanner := store.ReadLines()
	for {
		_, text, ok := scanner.Next()
		if !ok {
			break
		}
		if _, err := writer.Write(text); err != nil {
			scanner.Close()
			encoder.Close()
			return fmt.Errorf("clio-history: writing exported record: %w", err)
		}
		if err := writer.WriteByte('\n'); err != nil {
			scanner.Close()
			encoder.Close()
			return fmt.Errorf("clio-history: writing exported record separator: %w", err)
		}
		lineCount++
	}
	scanErr := scanner.Err()
	scanner.Close()
	if scanErr != nil {
		encoder.Close()
		return scanErr
	}

	if err := writer.Flush(); err != nil {
		encoder.Close()
		return fmt.Errorf("clio-history: flushing export bundle: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("clio-history: finalizing zstd encoder: %w", err)
	}

	fmt.Printf("exported %d record(s) to %s\n", lineCount, outPath)
	return nil
}

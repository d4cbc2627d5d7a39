// Copyright 2026 The Clio Authors
// SPDX-License-Identifier: Apache-2.0

// clio-history is the maintenance CLI for a clio history store: it
// exercises every operation in lib/historystore's façade (init, add,
// find, remove, clear, reap) plus the DOMAIN STACK additions
// (compact, export, verify) from the command line, against the same
// on-disk banks a shell's interactive session would use.
package main

import (
	"fmt"
	"os"

	"github.com/clio-history/clio/lib/process"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		process.Fatal(err)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		printUsage()
		return fmt.Errorf("clio-history: missing subcommand")
	}

	subcommand, rest := args[0], args[1:]
	switch subcommand {
	case "init":
		return runInit(rest)
	case "add":
		return runAdd(rest)
	case "find":
		return runFind(rest)
	case "remove":
		return runRemove(rest)
	case "clear":
		return runClear(rest)
	case "reap":
		return runReap(rest)
	case "compact":
		return runCompact(rest)
	case "export":
		return runExport(rest)
	case "verify":
		return runVerify(rest)
	case "-h", "--help", "help":
		printUsage()
		return nil
	default:
		printUsage()
		return fmt.Errorf("clio-history: unknown subcommand %q", subcommand)
	}
}

func printUsage() {
	fmt.Fprint(os.Stderr, `clio-history — maintenance CLI for a clio history store.

Usage:
  clio-history <subcommand> [flags] [args]

Subcommands:
  init      create the master bank and exit
  add       append a line to the current write bank
  find      print the LineId of a line's first occurrence
  remove    tombstone every occurrence of a line
  clear     truncate every bank this session can see
  reap      run one extra reap pass, splicing in any orphaned sessions
  compact   rewrite master, dropping tombstoned records, then archive the old bytes
  export    write a compressed, portable copy of the unified history view
  verify    check a compact archive's manifest against its data

Common flags (accepted by every subcommand):
  --config string        path to clio.yaml
  --history-path string  override the master bank path from config
  --session-id int       session id for this invocation (default: pid)
  --shared                override shared mode from config

Run "clio-history <subcommand> --help" for subcommand-specific flags.
`)
}

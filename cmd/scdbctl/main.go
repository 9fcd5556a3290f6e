// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// scdbctl replays a JSON fixture of host blocks through an in-memory SCDB
// and prints the resulting state, one of SCDB's two non-consensus
// surfaces (the other being the scdb package itself as a library).
package main

import (
	"fmt"
	"os"

	"github.com/decred/slog"
	"github.com/drivechain-project/scdb/scdb"
	"github.com/drivechain-project/scdb/scdblog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "scdbctl:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	level, ok := slog.LevelFromString(cfg.DebugLevel)
	if !ok {
		return fmt.Errorf("unknown debug level %q", cfg.DebugLevel)
	}
	backend := slog.NewBackend(os.Stderr)
	log := backend.Logger("SCDB")
	log.SetLevel(level)
	scdblog.UseLogger(log)

	blocks, err := loadFixture(cfg.Fixture)
	if err != nil {
		return err
	}

	db := scdb.New()
	for _, block := range blocks {
		hash, err := block.hash()
		if err != nil {
			return err
		}
		outs, err := block.toTxOuts()
		if err != nil {
			return err
		}

		if !db.Update(block.Height, hash, outs) {
			fmt.Fprintf(os.Stderr, "scdbctl: block %d (%v) rejected by Update: %v\n",
				block.Height, hash, db.LastRejectReason())
			continue
		}

		if !cfg.Quiet {
			fmt.Printf("--- height %d, block %v ---\n", block.Height, hash)
			fmt.Print(db.ToString())
		}
	}

	fmt.Printf("SCDB hash:       %v\n", db.GetSCDBHash())
	fmt.Printf("BMM hash:        %v\n", db.GetBMMHash())
	fmt.Printf("last seen block: %v\n", db.GetHashBlockLastSeen())
	return nil
}

// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/drivechain-project/scdb/chainhash"
	"github.com/drivechain-project/scdb/wire"
)

// fixtureOutput is the JSON shape of a single coinbase output in a replay
// fixture.
type fixtureOutput struct {
	Value       int64  `json:"value"`
	PkScriptHex string `json:"pkscript_hex"`
}

// fixtureBlock is the JSON shape of a single host block in a replay
// fixture: enough to drive scdb.SCDB.Update.
type fixtureBlock struct {
	Height    int32           `json:"height"`
	BlockHash string          `json:"block_hash"`
	Coinbase  []fixtureOutput `json:"coinbase"`
}

// loadFixture reads and parses a JSON array of fixtureBlock from path.
func loadFixture(path string) ([]fixtureBlock, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}

	var blocks []fixtureBlock
	if err := json.Unmarshal(data, &blocks); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return blocks, nil
}

// toTxOuts decodes a fixture block's coinbase outputs into wire.TxOut.
func (b fixtureBlock) toTxOuts() ([]wire.TxOut, error) {
	outs := make([]wire.TxOut, 0, len(b.Coinbase))
	for i, out := range b.Coinbase {
		script, err := hex.DecodeString(out.PkScriptHex)
		if err != nil {
			return nil, fmt.Errorf("block %d output %d: invalid pkscript_hex: %w", b.Height, i, err)
		}
		outs = append(outs, wire.TxOut{Value: out.Value, PkScript: script})
	}
	return outs, nil
}

// hash parses the fixture block's hex-encoded block hash.
func (b fixtureBlock) hash() (chainhash.Hash, error) {
	h, err := chainhash.NewHashFromStr(b.BlockHash)
	if err != nil {
		return chainhash.Hash{}, fmt.Errorf("block %d: invalid block_hash: %w", b.Height, err)
	}
	return *h, nil
}

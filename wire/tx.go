// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"

	"github.com/drivechain-project/scdb/chainhash"
)

// MaxTxOutPerTx is an upper bound on the number of outputs in a host-chain
// transaction. MsgTx has no wire encoding of its own in this package, so
// nothing here enforces it.
const MaxTxOutPerTx = 100000

// MsgTx is the host-chain transaction type SCDB consumes from its wallet
// and deposit-producing collaborators: just enough of a transaction to
// scan its outputs and identify it by hash. Signature scripts, inputs, and
// locktime are out of scope for SCDB and are intentionally omitted.
type MsgTx struct {
	TxOut []TxOut
}

// TxHash returns the transaction's identifying hash, computed as the chain
// hash of the transaction's serialized outputs. A real host chain transaction
// hash additionally covers inputs/locktime/etc.; SCDB only ever needs this
// hash to be a stable, collision-resistant identifier for deduplication
// (WT^ cache, deposit cache), so hashing just the outputs is sufficient for
// that purpose.
func (tx *MsgTx) TxHash() chainhash.Hash {
	var buf bytes.Buffer
	for i := range tx.TxOut {
		_ = tx.TxOut[i].BtcEncode(&buf)
	}
	return chainhash.HashH(buf.Bytes())
}

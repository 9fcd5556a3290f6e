// Copyright (c) 2017 The Bitcoin Core developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package scdb

import (
	"encoding/hex"

	"github.com/drivechain-project/scdb/sidechain"
	"github.com/drivechain-project/scdb/txscript"
	"github.com/drivechain-project/scdb/wire"
)

// SidechainDeposit records a host-chain output that burns coin into a
// specific sidechain, along with the destination key identifier carried by
// the deposit's payload output.
type SidechainDeposit struct {
	NSidechain uint8
	KeyID      [20]byte
	Tx         wire.MsgTx
	N          uint32
}

// equal reports full field-wise equality, the rule SCDB's deposit cache
// dedups on.
func (d SidechainDeposit) equal(other SidechainDeposit) bool {
	if d.NSidechain != other.NSidechain || d.KeyID != other.KeyID || d.N != other.N {
		return false
	}
	return d.Tx.TxHash() == other.Tx.TxHash()
}

// DepositKeyVerifier, when non-nil, is consulted by AddDeposits after a
// candidate deposit is assembled from a transaction's outputs; returning
// false discards the candidate instead of caching it. This is the hook
// spec.md §4.5 invites for the keyID-matches-sidechain check the original
// source leaves as a TODO -- it defaults to nil (no verification, matching
// the source byte-for-byte).
type DepositKeyVerifier func(nSidechain uint8, keyID [20]byte) bool

// addDeposits scans each transaction's outputs for a deposit burn output
// (binding N) and a deposit payload output (binding NSidechain/KeyID/Tx),
// accepting the result only if a payload output was actually seen, then
// appends any not-already-cached deposit to vDepositCache.
func (s *SCDB) addDeposits(txs []wire.MsgTx) {
	var candidates []SidechainDeposit
	for _, tx := range txs {
		var deposit SidechainDeposit
		var sawBurn, sawPayload bool
		var burnSidechain int
		for i, out := range tx.TxOut {
			if txscript.IsDepositBurnScript(out.PkScript, s.depositFields) {
				deposit.N = uint32(i)
				if idx, ok := sidechain.DepositFieldIndex(hex.EncodeToString(out.PkScript)); ok {
					burnSidechain = idx
					sawBurn = true
				}
				continue
			}

			nSidechain, keyID, ok := txscript.ExtractDepositPayload(out.PkScript)
			if !ok || !sidechainValid(nSidechain) {
				continue
			}

			deposit.NSidechain = nSidechain
			deposit.KeyID = keyID
			deposit.Tx = tx
			sawPayload = true
		}

		if !sawPayload {
			continue
		}
		// The burn output's sentinel script already names the sidechain by
		// its position in ValidSidechainField; it must agree with the
		// sidechain number carried in the payload output.
		if sawBurn && burnSidechain != int(deposit.NSidechain) {
			continue
		}
		if s.DepositKeyVerifier != nil && !s.DepositKeyVerifier(deposit.NSidechain, deposit.KeyID) {
			continue
		}
		candidates = append(candidates, deposit)
	}

	for _, d := range candidates {
		if !s.haveDepositCached(d) {
			s.vDepositCache = append(s.vDepositCache, d)
		}
	}
}

// haveDepositCached reports whether an equal deposit is already cached.
func (s *SCDB) haveDepositCached(d SidechainDeposit) bool {
	for _, have := range s.vDepositCache {
		if have.equal(d) {
			return true
		}
	}
	return false
}

// getDeposits returns the cached deposits for nSidechain, preserving
// insertion order.
func (s *SCDB) getDeposits(nSidechain uint8) []SidechainDeposit {
	var out []SidechainDeposit
	for _, d := range s.vDepositCache {
		if d.NSidechain == nSidechain {
			out = append(out, d)
		}
	}
	return out
}

// Copyright (c) 2017 The Bitcoin Core developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package scdb

import (
	"encoding/binary"

	"github.com/drivechain-project/scdb/chainhash"
	"github.com/drivechain-project/scdb/sidechain"
)

// SidechainLD is a single BMM linking datum: the critical-hash commitment
// lifted from a host-chain coinbase output, together with the sidechain it
// belongs to and the ratchet position ("previous block ref") it claims.
type SidechainLD struct {
	NSidechain    uint8
	NPrevBlockRef uint16
	HashCritical  chainhash.Hash
}

// GetHash returns the canonical hash of the linking datum, used as a leaf
// when computing GetBMMHash.
func (ld SidechainLD) GetHash() chainhash.Hash {
	buf := make([]byte, 0, 1+2+chainhash.HashSize)
	buf = append(buf, ld.NSidechain)
	var prevBuf [2]byte
	binary.LittleEndian.PutUint16(prevBuf[:], ld.NPrevBlockRef)
	buf = append(buf, prevBuf[:]...)
	buf = append(buf, ld.HashCritical[:]...)
	return chainhash.HashFunc(buf)
}

// ratchet is the per-sidechain append-only bounded log of linking data. Its
// outer index is the sidechain number; its inner slice is the ordered BMM
// commitments seen for that sidechain.
type ratchet [sidechain.ValidSidechainsCount][]SidechainLD

// countBlocksAtop finds the first index i in r[ld.NSidechain] equal to ld
// and returns the distance from the end of the ratchet (inclusive), or 0 if
// ld is absent or names an invalid sidechain.
func (r *ratchet) countBlocksAtop(ld SidechainLD) int {
	if !sidechain.IsSidechainNumberValid(ld.NSidechain) {
		return 0
	}
	entries := r[ld.NSidechain]
	for i, have := range entries {
		if have == ld {
			return len(entries) - i
		}
	}
	return 0
}

// haveLinkingData reports whether any linking datum for nSidechain has the
// given hashCritical.
func (r *ratchet) haveLinkingData(nSidechain uint8, hashCritical chainhash.Hash) bool {
	if !sidechain.IsSidechainNumberValid(nSidechain) {
		return false
	}
	for _, ld := range r[nSidechain] {
		if ld.HashCritical == hashCritical {
			return true
		}
	}
	return false
}

// getLinkingData returns the ratchet entries for nSidechain, or nil if the
// sidechain number is invalid.
func (r *ratchet) getLinkingData(nSidechain uint8) []SidechainLD {
	if !sidechain.IsSidechainNumberValid(nSidechain) {
		return nil
	}
	return r[nSidechain]
}

// append adds ld to its sidechain's ratchet and then enforces the capacity
// limit BMMMaxLD.
//
// This reproduces a bug present in the original sidechaindb.cpp: when the
// per-sidechain ratchet overflows, the source erases the *first sidechain's
// entire ratchet* (ratchet.erase(ratchet.begin())) instead of popping the
// oldest entry of the overflowing sidechain. A faithful reimplementation
// must reproduce this rather than silently fix it -- see DESIGN.md and
// spec.md §9. Do not "fix" this without first coordinating a consensus
// upgrade.
func (r *ratchet) append(ld SidechainLD) {
	r[ld.NSidechain] = append(r[ld.NSidechain], ld)
	if len(r[ld.NSidechain]) > BMMMaxLD {
		for sc := range r {
			r[sc] = nil
			break
		}
	}
}

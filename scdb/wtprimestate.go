// Copyright (c) 2017 The Bitcoin Core developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package scdb

import (
	"encoding/binary"

	"github.com/drivechain-project/scdb/chainhash"
)

// SidechainWTPrimeState tracks the verification lifecycle of a single WT^:
// its accumulated work score and the number of host blocks remaining in its
// verification period.
type SidechainWTPrimeState struct {
	NSidechain  uint8
	HashWTPrime chainhash.Hash
	NWorkScore  uint16
	NBlocksLeft uint16
}

// IsNull reports whether every field of the state is zero/empty, the
// convention SCDBIndex uses to mark an unoccupied slot.
func (wt SidechainWTPrimeState) IsNull() bool {
	return wt == SidechainWTPrimeState{}
}

// GetHash returns the canonical hash of the WT^ state, used as a leaf when
// computing GetSCDBHash.
func (wt SidechainWTPrimeState) GetHash() chainhash.Hash {
	buf := make([]byte, 0, 1+chainhash.HashSize+2+2)
	buf = append(buf, wt.NSidechain)
	buf = append(buf, wt.HashWTPrime[:]...)
	var scoreBuf, leftBuf [2]byte
	binary.LittleEndian.PutUint16(scoreBuf[:], wt.NWorkScore)
	binary.LittleEndian.PutUint16(leftBuf[:], wt.NBlocksLeft)
	buf = append(buf, scoreBuf[:]...)
	buf = append(buf, leftBuf[:]...)
	return chainhash.HashFunc(buf)
}

// decBlocksLeft decrements NBlocksLeft by one with saturating-at-zero
// semantics, per spec.md §9's call to avoid unsigned underflow.
func (wt *SidechainWTPrimeState) decBlocksLeft() {
	if wt.NBlocksLeft > 0 {
		wt.NBlocksLeft--
	}
}

// decWorkScore decrements NWorkScore by one with saturating-at-zero
// semantics.
func (wt *SidechainWTPrimeState) decWorkScore() {
	if wt.NWorkScore > 0 {
		wt.NWorkScore--
	}
}

// Copyright (c) 2017 The Bitcoin Core developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package scdb

import "github.com/drivechain-project/scdb/chainhash"

// SCDBIndex is a bounded, insertion-ordered table of WT^ states for a
// single sidechain, capacity SidechainMaxWT.
type SCDBIndex struct {
	members []SidechainWTPrimeState
}

// InsertMember upserts wt by its hashWTPrime, preserving the slot's
// position if one already exists; otherwise it appends into the first null
// slot, or extends the table if there is no null slot and it is not full.
func (idx *SCDBIndex) InsertMember(wt SidechainWTPrimeState) {
	for i := range idx.members {
		if idx.members[i].HashWTPrime == wt.HashWTPrime {
			idx.members[i] = wt
			return
		}
	}

	for i := range idx.members {
		if idx.members[i].IsNull() {
			idx.members[i] = wt
			return
		}
	}

	idx.members = append(idx.members, wt)
}

// GetMember looks up a member by its hashWTPrime.
func (idx *SCDBIndex) GetMember(hash chainhash.Hash) (SidechainWTPrimeState, bool) {
	for _, m := range idx.members {
		if !m.IsNull() && m.HashWTPrime == hash {
			return m, true
		}
	}
	return SidechainWTPrimeState{}, false
}

// IsFull reports whether the index already holds SidechainMaxWT non-null
// members.
func (idx *SCDBIndex) IsFull() bool {
	count := 0
	for _, m := range idx.members {
		if !m.IsNull() {
			count++
		}
	}
	return count >= SidechainMaxWT
}

// IsPopulated reports whether the index has any non-null member.
func (idx *SCDBIndex) IsPopulated() bool {
	for _, m := range idx.members {
		if !m.IsNull() {
			return true
		}
	}
	return false
}

// ClearMembers empties the index.
func (idx *SCDBIndex) ClearMembers() {
	idx.members = nil
}

// state returns the non-null members in insertion order, the view every
// read (GetState, GetSCDBHash, ...) operates over.
func (idx *SCDBIndex) state() []SidechainWTPrimeState {
	var out []SidechainWTPrimeState
	for _, m := range idx.members {
		if !m.IsNull() {
			out = append(out, m)
		}
	}
	return out
}

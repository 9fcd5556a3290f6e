// Copyright (c) 2017 The Bitcoin Core developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package scdb

import (
	"github.com/drivechain-project/scdb/chainhash"
	"github.com/drivechain-project/scdb/scdblog"
	"github.com/drivechain-project/scdb/sidechain"
	"github.com/drivechain-project/scdb/txscript"
	"github.com/drivechain-project/scdb/wire"
)

// Update scans a host block's coinbase outputs for BMM linking data, new
// WT^ registrations, and an SCDB Merkle-root commitment, applying each in
// turn, then records hashBlock as the last-seen block. It returns false
// without making any change if hashBlock is null or vout is empty.
//
// This function is safe for concurrent access.
func (s *SCDB) Update(nHeight int32, hashBlock chainhash.Hash, vout []wire.TxOut) bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.update(nHeight, hashBlock, vout)
}

func (s *SCDB) update(nHeight int32, hashBlock chainhash.Hash, vout []wire.TxOut) bool {
	if hashBlock.IsNull() {
		s.lastErr = ruleError(ErrNullBlockHash, "Update: called with a null block hash")
		return false
	}
	if len(vout) == 0 {
		s.lastErr = ruleError(ErrEmptyOutputs, "Update: called with no coinbase outputs to scan")
		return false
	}
	s.lastErr = nil

	// If the TEST-period or the full verification period just ended,
	// every sidechain's WT^ tracking starts over. The BMM ratchet is
	// untouched -- it only ever shrinks via its own size limit, see
	// ratchet.append.
	if nHeight > 0 && (nHeight%SidechainTestVerificationPeriod == 0 || nHeight%SidechainVerificationPeriod == 0) {
		for i := range s.index {
			s.index[i].ClearMembers()
		}
	}

	s.scanLinkingData(vout)
	s.scanNewWTPrimes(vout)
	s.scanSCDBMerkleRootCommit(nHeight, vout)

	s.hashBlockLastSeen = hashBlock
	return true
}

// scanLinkingData looks for BMM critical-hash commits carrying a BMM
// request payload and appends each to the ratchet, in coinbase output
// order.
func (s *SCDB) scanLinkingData(vout []wire.TxOut) {
	for _, out := range vout {
		script := out.PkScript
		if !txscript.IsCriticalHashCommit(script) {
			continue
		}

		payload, ok := txscript.ExtractCriticalData(script)
		if !ok {
			continue
		}
		nSidechain, nPrevBlockRef, ok := txscript.IsBMMRequest(payload)
		if !ok {
			continue
		}
		if !sidechainValid(nSidechain) {
			continue
		}
		if int(nPrevBlockRef) > len(s.ratchet[nSidechain]) {
			continue
		}

		hashCritical, ok := txscript.ExtractCriticalHashCommit(script)
		if !ok {
			continue
		}

		ld := SidechainLD{
			NSidechain:    nSidechain,
			NPrevBlockRef: nPrevBlockRef,
			HashCritical:  chainhash.Hash(hashCritical),
		}
		s.ratchet.append(ld)
	}
}

// scanNewWTPrimes looks for WT^-hash commits and registers each as a new
// WT^ at work score 1, a full verification period remaining.
func (s *SCDB) scanNewWTPrimes(vout []wire.TxOut) {
	for _, out := range vout {
		script := out.PkScript
		if !txscript.IsWTPrimeHashCommit(script) {
			continue
		}

		hashWT, nSidechain, ok := txscript.ExtractWTPrimeHashCommit(script)
		if !ok || !sidechainValid(nSidechain) {
			continue
		}

		wt := SidechainWTPrimeState{
			NSidechain:  nSidechain,
			NBlocksLeft: SidechainVerificationPeriod,
			NWorkScore:  1,
			HashWTPrime: chainhash.Hash(hashWT),
		}

		if !s.updateSCDBIndex([]SidechainWTPrimeState{wt}) {
			scdblog.Log().Debugf("Update: failed to register WT^ %v from coinbase", wt.HashWTPrime)
		}
	}
}

// scanSCDBMerkleRootCommit looks for exactly one SCDB-MT commit in vout and,
// if found, attempts to reconcile local state to the committed root.
func (s *SCDB) scanSCDBMerkleRootCommit(nHeight int32, vout []wire.TxOut) {
	var commits [][32]byte
	for _, out := range vout {
		if root, ok := txscript.ExtractSCDBHashMerkleRootCommit(out.PkScript); ok {
			commits = append(commits, root)
		}
	}
	if len(commits) > 1 {
		scdblog.Log().Warnf("Update: coinbase at height %d carries %d SCDB-MT commits, skipping reconciliation",
			nHeight, len(commits))
		s.lastErr = ruleErrorf(ErrAmbiguousMTCommit,
			"Update: height %d carries %d SCDB-MT commits, want at most 1", nHeight, len(commits))
		return
	}
	if len(commits) != 1 {
		return
	}

	if !s.updateSCDBMatchMT(nHeight, chainhash.Hash(commits[0])) {
		scdblog.Log().Debugf("Update: failed to reconcile SCDB to committed Merkle root at height %d", nHeight)
	}
}

// scoreAdjacent reports whether new is a legal one-step transition away
// from old: unchanged, or exactly +1/-1.
func scoreAdjacent(old, new uint16) bool {
	if new == old || new == old+1 {
		return true
	}
	return old > 0 && new == old-1
}

// UpdateSCDBIndex decrements nBlocksLeft for every WT^ currently tracked,
// then applies vNew: an existing WT^ is updated only if its new work score
// is a legal one-step transition from its current score; a new WT^ is
// admitted only if its index is not already full and it carries the
// canonical starting score and block count. It returns false, leaving all
// state unchanged, if vNew is empty or names an invalid sidechain.
//
// This function is safe for concurrent access.
func (s *SCDB) UpdateSCDBIndex(vNew []SidechainWTPrimeState) bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.updateSCDBIndex(vNew)
}

func (s *SCDB) updateSCDBIndex(vNew []SidechainWTPrimeState) bool {
	if len(vNew) == 0 {
		return false
	}
	for _, wt := range vNew {
		if !sidechainValid(wt.NSidechain) {
			return false
		}
	}

	for _, sc := range sidechain.ValidSidechains {
		idx := &s.index[sc.NSidechain]
		for _, wt := range idx.members {
			wt.decBlocksLeft()
			idx.InsertMember(wt)
		}
	}

	for _, wt := range vNew {
		idx := &s.index[wt.NSidechain]
		if old, ok := idx.GetMember(wt.HashWTPrime); ok {
			if scoreAdjacent(old.NWorkScore, wt.NWorkScore) {
				idx.InsertMember(wt)
			}
			continue
		}
		if idx.IsFull() {
			continue
		}
		if wt.NWorkScore != 1 || wt.NBlocksLeft != SidechainVerificationPeriod {
			continue
		}
		idx.InsertMember(wt)
	}
	return true
}

// UpdateSCDBMatchMT attempts to reconcile local SCDB state with a committed
// Merkle root by testing, in order: the current state as-is, the unanimous
// upvote of every tracked WT^, the unanimous abstain, the unanimous
// downvote, and finally every cached network update package proposed for
// nHeight. The first candidate whose resulting hash matches is applied. A
// network update package for nHeight that names an invalid sidechain ends
// the search at once, returning false; later packages are not tried.
//
// This function is safe for concurrent access.
func (s *SCDB) UpdateSCDBMatchMT(nHeight int32, hashMerkleRoot chainhash.Hash) bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.updateSCDBMatchMT(nHeight, hashMerkleRoot)
}

func (s *SCDB) updateSCDBMatchMT(nHeight int32, hashMerkleRoot chainhash.Hash) bool {
	if s.getSCDBHash() == hashMerkleRoot {
		s.lastErr = nil
		return true
	}

	candidateNames := []string{"upvote", "abstain", "downvote"}
	candidates := [][]SidechainWTPrimeState{
		s.getUpvotes(),
		s.getAbstainVotes(),
		s.getDownvotes(),
	}
	for i, vNew := range candidates {
		scdblog.Log().Tracef("UpdateSCDBMatchMT: trying %s candidate at height %d", candidateNames[i], nHeight)
		if s.testUpdateHash(vNew) == hashMerkleRoot {
			s.updateSCDBIndex(vNew)
			matched := s.getSCDBHash() == hashMerkleRoot
			if matched {
				s.lastErr = nil
			}
			return matched
		}
	}

	for _, update := range s.vSidechainUpdateCache {
		if update.NHeight != nHeight {
			continue
		}
		scdblog.Log().Tracef("UpdateSCDBMatchMT: trying network update package at height %d", nHeight)

		var vWT []SidechainWTPrimeState
		valid := true
		var badSidechain uint8
		for _, msg := range update.VUpdate {
			if !sidechainValid(msg.NSidechain) {
				valid = false
				badSidechain = msg.NSidechain
				break
			}

			wt := SidechainWTPrimeState{
				NSidechain:  msg.NSidechain,
				HashWTPrime: msg.HashWTPrime,
				NWorkScore:  msg.NWorkScore,
				NBlocksLeft: SidechainVerificationPeriod,
			}
			for _, old := range s.getState(wt.NSidechain) {
				if old.HashWTPrime == wt.HashWTPrime {
					wt.NBlocksLeft = old.NBlocksLeft
					wt.decBlocksLeft()
				}
			}
			vWT = append(vWT, wt)
		}
		if !valid {
			s.lastErr = ruleErrorf(ErrInvalidSidechainNumber,
				"UpdateSCDBMatchMT: network update package at height %d names invalid sidechain %d",
				nHeight, badSidechain)
			return false
		}

		if s.testUpdateHash(vWT) == hashMerkleRoot {
			s.updateSCDBIndex(vWT)
			matched := s.getSCDBHash() == hashMerkleRoot
			if matched {
				s.lastErr = nil
			}
			return matched
		}
	}
	s.lastErr = ruleErrorf(ErrNoMatchingVote,
		"UpdateSCDBMatchMT: no candidate vote vector reproduces committed root at height %d", nHeight)
	return false
}

// testUpdateHash is the unlocked building block behind GetSCDBHashIfUpdate:
// it computes the SCDB hash that applying vNew to a clone would produce.
func (s *SCDB) testUpdateHash(vNew []SidechainWTPrimeState) chainhash.Hash {
	clone := s.cloneLocked()
	clone.updateSCDBIndex(vNew)
	return clone.getSCDBHash()
}

// GetUpvotes returns, for each sidechain with tracked WT^ state, the most
// recently registered WT^ with its work score incremented and its blocks
// remaining decremented by one -- the unanimous-approval candidate vote
// vector UpdateSCDBMatchMT tries first after the unchanged current state.
//
// This function is safe for concurrent access.
func (s *SCDB) GetUpvotes() []SidechainWTPrimeState {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.getUpvotes()
}

func (s *SCDB) getUpvotes() []SidechainWTPrimeState {
	var vNew []SidechainWTPrimeState
	for _, sc := range sidechain.ValidSidechains {
		vOld := s.getState(sc.NSidechain)
		if len(vOld) == 0 {
			continue
		}
		latest := vOld[len(vOld)-1]
		latest.decBlocksLeft()
		latest.NWorkScore++
		vNew = append(vNew, latest)
	}
	return vNew
}

// GetAbstainVotes returns the unanimous-abstain candidate vote vector: each
// tracked sidechain's most recent WT^ with its blocks remaining decremented
// and its work score unchanged.
//
// This function is safe for concurrent access.
func (s *SCDB) GetAbstainVotes() []SidechainWTPrimeState {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.getAbstainVotes()
}

func (s *SCDB) getAbstainVotes() []SidechainWTPrimeState {
	var vNew []SidechainWTPrimeState
	for _, sc := range sidechain.ValidSidechains {
		vOld := s.getState(sc.NSidechain)
		if len(vOld) == 0 {
			continue
		}
		latest := vOld[len(vOld)-1]
		latest.decBlocksLeft()
		vNew = append(vNew, latest)
	}
	return vNew
}

// GetDownvotes returns the unanimous-downvote candidate vote vector: each
// tracked sidechain's most recent WT^ with both its blocks remaining and
// its work score decremented by one.
//
// This function is safe for concurrent access.
func (s *SCDB) GetDownvotes() []SidechainWTPrimeState {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.getDownvotes()
}

func (s *SCDB) getDownvotes() []SidechainWTPrimeState {
	var vNew []SidechainWTPrimeState
	for _, sc := range sidechain.ValidSidechains {
		vOld := s.getState(sc.NSidechain)
		if len(vOld) == 0 {
			continue
		}
		latest := vOld[len(vOld)-1]
		latest.decBlocksLeft()
		latest.decWorkScore()
		vNew = append(vNew, latest)
	}
	return vNew
}

// ApplyDefaultUpdate decrements nBlocksLeft for every tracked WT^ and
// changes nothing else. Update does not call it: a host block with no
// SCDB-MT commit leaves every tracked WT^ unchanged unless the caller
// applies this itself.
//
// This function is safe for concurrent access.
func (s *SCDB) ApplyDefaultUpdate() bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.applyDefaultUpdate()
}

func (s *SCDB) applyDefaultUpdate() bool {
	if !s.hasState() {
		return true
	}
	for _, sc := range sidechain.ValidSidechains {
		idx := &s.index[sc.NSidechain]
		for _, wt := range idx.members {
			wt.decBlocksLeft()
			idx.InsertMember(wt)
		}
	}
	return true
}

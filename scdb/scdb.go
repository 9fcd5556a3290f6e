// Copyright (c) 2017 The Bitcoin Core developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package scdb implements the Sidechain Database: a consensus-critical,
// in-memory state machine that tracks BMM linking data, WT^ work-score
// lifecycles, and deposit records derived from a host blockchain's
// coinbase outputs.
//
// SCDB is a pure derivation of the host chain -- it holds no state that
// cannot be recomputed by replaying host blocks since the last
// verification-period reset, and it never blocks, retries, or fails
// fatally; see the package-level spec.md / SPEC_FULL.md for the full
// state-transition contract.
package scdb

import (
	"fmt"
	"strings"
	"sync"

	"github.com/drivechain-project/scdb/chainhash"
	"github.com/drivechain-project/scdb/scdblog"
	"github.com/drivechain-project/scdb/sidechain"
	"github.com/drivechain-project/scdb/standalone"
	"github.com/drivechain-project/scdb/txscript"
	"github.com/drivechain-project/scdb/wire"
)

// CriticalData is the payload trailing a BMM critical-hash commit's 32-byte
// hash. It may or may not encode a BMM request; IsBMMRequest reports which.
type CriticalData struct {
	HashCritical chainhash.Hash
	Payload      []byte
}

// IsBMMRequest reports whether the critical data encodes a BMM request,
// returning the SidechainLD it would append if so.
func (c CriticalData) IsBMMRequest() (SidechainLD, bool) {
	nSidechain, nPrevBlockRef, ok := txscript.IsBMMRequest(c.Payload)
	if !ok {
		return SidechainLD{}, false
	}
	return SidechainLD{
		NSidechain:    nSidechain,
		NPrevBlockRef: nPrevBlockRef,
		HashCritical:  c.HashCritical,
	}, true
}

// sidechainValid is a small local alias kept so the rest of this package
// reads as "SCDB's own validity rule" without every call site needing to
// name the sidechain package; it is always exactly
// sidechain.IsSidechainNumberValid.
func sidechainValid(n uint8) bool {
	return sidechain.IsSidechainNumberValid(n)
}

// SCDB is the Sidechain Database. The zero value is not ready for use; call
// New to construct one.
//
// All exported methods are safe for concurrent access: SCDB is a
// single-writer, cooperative component internally, and wraps its state in
// a sync.RWMutex so callers may expose read methods to concurrent readers
// between writes.
type SCDB struct {
	mtx sync.RWMutex

	index   [sidechain.ValidSidechainsCount]SCDBIndex
	ratchet ratchet

	vDepositCache         []SidechainDeposit
	vWTPrimeCache         []wire.MsgTx
	vSidechainUpdateCache []wire.SidechainUpdatePackage

	hashBlockLastSeen chainhash.Hash

	depositFields []string

	// lastErr records the RuleError behind the most recent false return
	// from Update, AddWTPrime, or UpdateSCDBMatchMT, or behind a skipped or
	// failed reconciliation inside an Update that returned true; see
	// LastRejectReason. It is a tooling-facing side channel only -- it
	// never changes what those methods return.
	lastErr error

	// DepositKeyVerifier, see deposit.go. Left nil by New, matching the
	// original source's unconditional acceptance.
	DepositKeyVerifier DepositKeyVerifier
}

// New returns an empty, ready-to-use SCDB.
func New() *SCDB {
	return &SCDB{
		depositFields: append([]string(nil), sidechain.ValidSidechainField[:]...),
	}
}

// HasState reports whether any sidechain has a populated SCDBIndex.
//
// This function is safe for concurrent access.
func (s *SCDB) HasState() bool {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.hasState()
}

func (s *SCDB) hasState() bool {
	for i := range s.index {
		if s.index[i].IsPopulated() {
			return true
		}
	}
	return false
}

// GetState returns the non-null WT^ states tracked for nSidechain, in
// insertion order. It returns nil if nSidechain is invalid or SCDB has no
// state at all.
//
// This function is safe for concurrent access.
func (s *SCDB) GetState(nSidechain uint8) []SidechainWTPrimeState {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.getState(nSidechain)
}

func (s *SCDB) getState(nSidechain uint8) []SidechainWTPrimeState {
	if !s.hasState() || !sidechainValid(nSidechain) {
		return nil
	}
	return s.index[nSidechain].state()
}

// GetSCDBHash computes the canonical Merkle root over every tracked WT^
// state, iterating sidechains in ValidSidechains order. An SCDB with no
// state at all hashes to the null hash.
//
// This function is safe for concurrent access.
func (s *SCDB) GetSCDBHash() chainhash.Hash {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.getSCDBHash()
}

func (s *SCDB) getSCDBHash() chainhash.Hash {
	var leaves []chainhash.Hash
	for _, sc := range sidechain.ValidSidechains {
		for _, state := range s.getState(sc.NSidechain) {
			leaves = append(leaves, state.GetHash())
		}
	}
	return standalone.ComputeMerkleRoot(leaves)
}

// GetBMMHash computes the canonical Merkle root over every ratchet entry,
// iterating sidechains in ValidSidechains order and, within each, in
// insertion order.
//
// This function is safe for concurrent access.
func (s *SCDB) GetBMMHash() chainhash.Hash {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	var leaves []chainhash.Hash
	for _, sc := range sidechain.ValidSidechains {
		for _, ld := range s.ratchet.getLinkingData(sc.NSidechain) {
			leaves = append(leaves, ld.GetHash())
		}
	}
	return standalone.ComputeMerkleRoot(leaves)
}

// GetHashBlockLastSeen returns the host block hash SCDB last completed
// Update for.
//
// This function is safe for concurrent access.
func (s *SCDB) GetHashBlockLastSeen() chainhash.Hash {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.hashBlockLastSeen
}

// LastRejectReason returns the RuleError behind the most recent false
// return from Update, AddWTPrime, or UpdateSCDBMatchMT, or nil if none has
// been made yet. An Update that returns true still leaves a non-nil
// reason when its block carried more than one SCDB-MT commit or its single
// commit matched no candidate vote vector. It exists for tooling (see
// cmd/scdbctl) that wants to report why a block or WT^ was rejected;
// consensus logic itself never consults it.
//
// This function is safe for concurrent access.
func (s *SCDB) LastRejectReason() error {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.lastErr
}

// GetSCDBHashIfUpdate computes the SCDB hash that would result from
// applying UpdateSCDBIndex(vNew) to a clone of the current state, without
// mutating the live SCDB. It is the building block UpdateSCDBMatchMT uses
// to test candidate vote vectors before committing to one.
//
// This function is safe for concurrent access.
func (s *SCDB) GetSCDBHashIfUpdate(vNew []SidechainWTPrimeState) chainhash.Hash {
	s.mtx.RLock()
	clone := s.cloneLocked()
	s.mtx.RUnlock()

	clone.updateSCDBIndex(vNew)
	return clone.getSCDBHash()
}

// cloneLocked returns a deep copy of s's index state. Must be called with
// at least a read lock held. A literal clone is the simplest correct
// option per spec.md §9; SCDB's index state is small (bounded by
// SidechainMaxWT per sidechain), so the O(state) cost is negligible.
func (s *SCDB) cloneLocked() *SCDB {
	clone := &SCDB{}
	for i := range s.index {
		clone.index[i].members = append([]SidechainWTPrimeState(nil), s.index[i].members...)
	}
	return clone
}

// CountBlocksAtop returns the number of blocks atop ld in its sidechain's
// ratchet: the distance from the end of the ratchet to ld's position,
// inclusive. It returns 0 if ld is absent or names an invalid sidechain.
//
// This function is safe for concurrent access.
func (s *SCDB) CountBlocksAtop(ld SidechainLD) int {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.ratchet.countBlocksAtop(ld)
}

// CountBlocksAtopCriticalData is a convenience overload of CountBlocksAtop
// that first derives a SidechainLD from data, returning 0 if data does not
// encode a BMM request.
//
// This function is safe for concurrent access.
func (s *SCDB) CountBlocksAtopCriticalData(data CriticalData) int {
	ld, ok := data.IsBMMRequest()
	if !ok {
		return 0
	}
	return s.CountBlocksAtop(ld)
}

// HaveLinkingData reports whether the ratchet for nSidechain already
// contains a linking datum with the given hashCritical.
//
// This function is safe for concurrent access.
func (s *SCDB) HaveLinkingData(nSidechain uint8, hashCritical chainhash.Hash) bool {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.ratchet.haveLinkingData(nSidechain, hashCritical)
}

// GetLinkingData returns the ratchet entries for nSidechain. The second
// return value is false if nSidechain is invalid.
//
// This function is safe for concurrent access.
func (s *SCDB) GetLinkingData(nSidechain uint8) ([]SidechainLD, bool) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	if !sidechainValid(nSidechain) {
		return nil, false
	}
	return s.ratchet.getLinkingData(nSidechain), true
}

// AddDeposits scans each transaction's outputs for a deposit burn output
// and a deposit payload output, and caches any newly-seen, non-duplicate
// deposit it can bind.
//
// This function is safe for concurrent access.
func (s *SCDB) AddDeposits(txs []wire.MsgTx) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.addDeposits(txs)
}

// GetDeposits returns the cached deposits for nSidechain, in insertion
// order.
//
// This function is safe for concurrent access.
func (s *SCDB) GetDeposits(nSidechain uint8) []SidechainDeposit {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.getDeposits(nSidechain)
}

// AddSidechainNetworkUpdatePackage queues a network-supplied candidate vote
// vector for later consultation by UpdateSCDBMatchMT.
//
// This function is safe for concurrent access.
func (s *SCDB) AddSidechainNetworkUpdatePackage(update wire.SidechainUpdatePackage) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.vSidechainUpdateCache = append(s.vSidechainUpdateCache, update)
}

// GetWTPrimeCache returns every transaction registered as a WT^ so far.
//
// This function is safe for concurrent access.
func (s *SCDB) GetWTPrimeCache() []wire.MsgTx {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return append([]wire.MsgTx(nil), s.vWTPrimeCache...)
}

// HaveWTPrimeCached reports whether a transaction with the given hash has
// already been registered as a WT^.
//
// This function is safe for concurrent access.
func (s *SCDB) HaveWTPrimeCached(hash chainhash.Hash) bool {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.haveWTPrimeCached(hash)
}

func (s *SCDB) haveWTPrimeCached(hash chainhash.Hash) bool {
	for _, tx := range s.vWTPrimeCache {
		if tx.TxHash() == hash {
			return true
		}
	}
	return false
}

// AddWTPrime registers tx as a new WT^ for nSidechain, starting its work
// score at 1 with a full verification period remaining. It returns false,
// leaving all state unchanged, if the WT^ cache is full, nSidechain is
// invalid, or tx is already cached.
//
// This function is safe for concurrent access.
func (s *SCDB) AddWTPrime(nSidechain uint8, tx wire.MsgTx) bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if len(s.vWTPrimeCache) >= SidechainMaxWT {
		scdblog.Log().Debugf("AddWTPrime: rejected, WT^ cache full")
		s.lastErr = ruleError(ErrWTPrimeCacheFull, "AddWTPrime: WT^ cache is full")
		return false
	}
	if !sidechainValid(nSidechain) {
		scdblog.Log().Debugf("AddWTPrime: rejected, invalid sidechain %d", nSidechain)
		s.lastErr = ruleErrorf(ErrInvalidSidechainNumber, "AddWTPrime: invalid sidechain %d", nSidechain)
		return false
	}
	hash := tx.TxHash()
	if s.haveWTPrimeCached(hash) {
		scdblog.Log().Debugf("AddWTPrime: rejected, %v already cached", hash)
		s.lastErr = ruleErrorf(ErrWTPrimeAlreadyCached, "AddWTPrime: %v already cached", hash)
		return false
	}

	wt := SidechainWTPrimeState{
		NSidechain:  nSidechain,
		NBlocksLeft: SidechainVerificationPeriod,
		NWorkScore:  1,
		HashWTPrime: hash,
	}

	if !s.updateSCDBIndex([]SidechainWTPrimeState{wt}) {
		s.lastErr = ruleErrorf(ErrSCDBFull, "AddWTPrime: sidechain %d's SCDBIndex is full", nSidechain)
		return false
	}
	s.vWTPrimeCache = append(s.vWTPrimeCache, tx)
	s.lastErr = nil
	scdblog.Log().Debugf("AddWTPrime: registered %v for sidechain %d", hash, nSidechain)
	return true
}

// CheckWorkScore reports whether the WT^ identified by hash has reached its
// sidechain's approval threshold: SidechainTestMinWorkscore for the TEST
// sidechain, SidechainMinWorkscore for all others.
//
// This function is safe for concurrent access.
func (s *SCDB) CheckWorkScore(nSidechain uint8, hash chainhash.Hash) bool {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	if !sidechainValid(nSidechain) {
		return false
	}
	for _, state := range s.getState(nSidechain) {
		if state.HashWTPrime != hash {
			continue
		}
		threshold := uint16(SidechainMinWorkscore)
		if nSidechain == sidechain.Test {
			threshold = SidechainTestMinWorkscore
		}
		return state.NWorkScore >= threshold
	}
	return false
}

// Reset empties SCDB back to its construction-time state: cleared WT^
// indices, an empty ratchet, an empty deposit cache, an empty WT^ cache,
// and a null hashBlockLastSeen.
//
// This function is safe for concurrent access.
func (s *SCDB) Reset() {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.reset()
}

func (s *SCDB) reset() {
	for i := range s.index {
		s.index[i].ClearMembers()
	}
	s.ratchet = ratchet{}
	s.vDepositCache = nil
	s.vWTPrimeCache = nil
	s.hashBlockLastSeen = chainhash.Hash{}
}

// ClearWTPrimeCache empties the WT^ cache. The verification-period reset
// inside Update does not clear the WT^ cache (Reset does), so callers who
// want it cleared at a period boundary must call this explicitly.
//
// This function is safe for concurrent access.
func (s *SCDB) ClearWTPrimeCache() {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.vWTPrimeCache = nil
}

// ToString returns a debug-only textual dump of SCDB's current WT^ states,
// one section per sidechain.
//
// This function is safe for concurrent access.
func (s *SCDB) ToString() string {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	var b strings.Builder
	b.WriteString("SidechainDB:\n")
	for _, sc := range sidechain.ValidSidechains {
		b.WriteString("Sidechain: " + sc.GetSidechainName() + "\n")
		for _, state := range s.getState(sc.NSidechain) {
			fmt.Fprintf(&b, "  WT^ %v: workscore %d, blocks left %d\n",
				state.HashWTPrime, state.NWorkScore, state.NBlocksLeft)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Copyright (c) 2017 The Bitcoin Core developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package scdb

import (
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/drivechain-project/scdb/chainhash"
	"github.com/drivechain-project/scdb/sidechain"
	"github.com/drivechain-project/scdb/wire"
)

// seedHash derives a deterministic, distinct test hash from an arbitrary
// seed string, avoiding brittle hand-written hex literals.
func seedHash(seed string) chainhash.Hash {
	return chainhash.HashH([]byte(seed))
}

func TestNewIsEmpty(t *testing.T) {
	s := New()
	if s.HasState() {
		t.Fatal("new SCDB reports HasState")
	}
	if got := s.GetSCDBHash(); !got.IsNull() {
		t.Fatalf("new SCDB GetSCDBHash = %v, want null hash", got)
	}
	if got := s.GetBMMHash(); !got.IsNull() {
		t.Fatalf("new SCDB GetBMMHash = %v, want null hash", got)
	}
}

func TestAddWTPrimeRegistersState(t *testing.T) {
	s := New()
	tx := wire.MsgTx{TxOut: []wire.TxOut{{Value: 0, PkScript: []byte("wtprime-1")}}}

	if !s.AddWTPrime(sidechain.Test, tx) {
		t.Fatal("AddWTPrime rejected a fresh WT^")
	}
	if !s.HasState() {
		t.Fatal("HasState false after AddWTPrime")
	}

	state := s.GetState(sidechain.Test)
	if len(state) != 1 {
		t.Fatalf("GetState returned %d entries, want 1: %s", len(state), spew.Sdump(state))
	}
	if state[0].NWorkScore != 1 || state[0].NBlocksLeft != SidechainVerificationPeriod {
		t.Fatalf("unexpected initial WT^ state: %s", spew.Sdump(state[0]))
	}

	if s.AddWTPrime(sidechain.Test, tx) {
		t.Fatal("AddWTPrime accepted a duplicate tx hash")
	}
}

func TestAddWTPrimeRejectsInvalidSidechain(t *testing.T) {
	s := New()
	tx := wire.MsgTx{TxOut: []wire.TxOut{{Value: 0, PkScript: []byte("x")}}}
	if s.AddWTPrime(200, tx) {
		t.Fatal("AddWTPrime accepted an invalid sidechain number")
	}
}

func TestAddWTPrimeCacheFull(t *testing.T) {
	s := New()
	for i := 0; i < SidechainMaxWT; i++ {
		tx := wire.MsgTx{TxOut: []wire.TxOut{{PkScript: []byte{byte(i)}}}}
		if !s.AddWTPrime(sidechain.Test, tx) {
			t.Fatalf("AddWTPrime %d unexpectedly rejected", i)
		}
	}
	overflow := wire.MsgTx{TxOut: []wire.TxOut{{PkScript: []byte("overflow")}}}
	if s.AddWTPrime(sidechain.Hivemind, overflow) {
		t.Fatal("AddWTPrime accepted past the global WT^ cache limit")
	}
}

func TestUpdateSCDBIndexUpvoteDownvote(t *testing.T) {
	s := New()
	hash := seedHash("11111111")
	wt := SidechainWTPrimeState{
		NSidechain:  sidechain.Test,
		HashWTPrime: hash,
		NWorkScore:  1,
		NBlocksLeft: SidechainVerificationPeriod,
	}
	if !s.UpdateSCDBIndex([]SidechainWTPrimeState{wt}) {
		t.Fatal("initial UpdateSCDBIndex rejected")
	}

	up := s.GetUpvotes()
	if len(up) != 1 || up[0].NWorkScore != 2 {
		t.Fatalf("GetUpvotes = %s, want work score 2", spew.Sdump(up))
	}
	if !s.UpdateSCDBIndex(up) {
		t.Fatal("UpdateSCDBIndex rejected a legal upvote transition")
	}

	state := s.GetState(sidechain.Test)
	if len(state) != 1 || state[0].NWorkScore != 2 {
		t.Fatalf("state after upvote = %s", spew.Sdump(state))
	}
	if state[0].NBlocksLeft != SidechainVerificationPeriod-1 {
		t.Fatalf("NBlocksLeft after upvote = %d, want %d", state[0].NBlocksLeft, SidechainVerificationPeriod-1)
	}

	down := s.GetDownvotes()
	if down[0].NWorkScore != 1 {
		t.Fatalf("GetDownvotes = %s, want work score 1", spew.Sdump(down))
	}

	illegal := []SidechainWTPrimeState{{
		NSidechain:  sidechain.Test,
		HashWTPrime: hash,
		NWorkScore:  10,
		NBlocksLeft: SidechainVerificationPeriod,
	}}
	if !s.UpdateSCDBIndex(illegal) {
		t.Fatal("UpdateSCDBIndex returned false for a batch with only a single illegal member")
	}
	if got := s.GetState(sidechain.Test)[0].NWorkScore; got != 2 {
		t.Fatalf("illegal work score jump was applied: got %d, want unchanged 2", got)
	}
}

func TestCheckWorkScore(t *testing.T) {
	s := New()
	hash := seedHash("22222222")
	wt := SidechainWTPrimeState{
		NSidechain:  sidechain.Test,
		HashWTPrime: hash,
		NWorkScore:  SidechainTestMinWorkscore,
		NBlocksLeft: SidechainVerificationPeriod,
	}
	// UpdateSCDBIndex only admits new WT^(s) at work score 1, so place the
	// state directly into the index.
	s.index[sidechain.Test].InsertMember(wt)

	if !s.CheckWorkScore(sidechain.Test, hash) {
		t.Fatal("CheckWorkScore false at exactly the TEST threshold")
	}
	if s.CheckWorkScore(sidechain.Hivemind, hash) {
		t.Fatal("CheckWorkScore true for a sidechain that never saw this WT^")
	}
}

func TestRatchetCountBlocksAtop(t *testing.T) {
	s := New()
	ld1 := SidechainLD{NSidechain: sidechain.Test, NPrevBlockRef: 0, HashCritical: seedHash("33333333")}
	ld2 := SidechainLD{NSidechain: sidechain.Test, NPrevBlockRef: 1, HashCritical: seedHash("44444444")}

	s.ratchet.append(ld1)
	s.ratchet.append(ld2)

	if got := s.CountBlocksAtop(ld1); got != 2 {
		t.Fatalf("CountBlocksAtop(ld1) = %d, want 2", got)
	}
	if got := s.CountBlocksAtop(ld2); got != 1 {
		t.Fatalf("CountBlocksAtop(ld2) = %d, want 1", got)
	}

	unseen := SidechainLD{NSidechain: sidechain.Test, NPrevBlockRef: 99}
	if got := s.CountBlocksAtop(unseen); got != 0 {
		t.Fatalf("CountBlocksAtop(unseen) = %d, want 0", got)
	}
}

func TestRatchetEvictionBug(t *testing.T) {
	s := New()
	for i := 0; i <= BMMMaxLD; i++ {
		s.ratchet.append(SidechainLD{NSidechain: sidechain.Hivemind, NPrevBlockRef: uint16(i)})
	}

	// The overflow must clear sidechain 0's ratchet (Test), not Hivemind's,
	// reproducing the original source's ratchet.erase(ratchet.begin()).
	if len(s.ratchet[sidechain.Test]) != 0 {
		t.Fatalf("expected ratchet[Test] cleared by overflow, got %d entries",
			len(s.ratchet[sidechain.Test]))
	}
	if len(s.ratchet[sidechain.Hivemind]) == 0 {
		t.Fatal("expected ratchet[Hivemind] to still hold the entries that overflowed it")
	}
}

func TestUpdateRejectsNullBlockHashOrEmptyOutputs(t *testing.T) {
	s := New()
	if s.Update(1, chainhash.Hash{}, []wire.TxOut{{PkScript: []byte("x")}}) {
		t.Fatal("Update accepted a null block hash")
	}
	if s.Update(1, seedHash("55555555"), nil) {
		t.Fatal("Update accepted an empty output set")
	}
}

func TestUpdateSCDBMatchMTUpvote(t *testing.T) {
	s := New()
	hash := seedHash("66666666")
	wt := SidechainWTPrimeState{
		NSidechain:  sidechain.Test,
		HashWTPrime: hash,
		NWorkScore:  1,
		NBlocksLeft: SidechainVerificationPeriod,
	}
	s.UpdateSCDBIndex([]SidechainWTPrimeState{wt})

	wantRoot := s.GetSCDBHashIfUpdate(s.GetUpvotes())
	if !s.UpdateSCDBMatchMT(1, wantRoot) {
		t.Fatal("UpdateSCDBMatchMT failed to reconcile to the upvote root")
	}
	if got := s.GetState(sidechain.Test)[0].NWorkScore; got != 2 {
		t.Fatalf("post-reconciliation work score = %d, want 2", got)
	}
}

func TestUpdateSCDBMatchMTNoMatch(t *testing.T) {
	s := New()
	hash := seedHash("77777777")
	s.UpdateSCDBIndex([]SidechainWTPrimeState{{
		NSidechain:  sidechain.Test,
		HashWTPrime: hash,
		NWorkScore:  1,
		NBlocksLeft: SidechainVerificationPeriod,
	}})

	bogus := seedHash("88888888")
	before := s.GetState(sidechain.Test)
	if s.UpdateSCDBMatchMT(1, bogus) {
		t.Fatal("UpdateSCDBMatchMT matched a root no candidate could produce")
	}
	after := s.GetState(sidechain.Test)
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("state mutated despite no matching candidate: before %s, after %s",
			spew.Sdump(before), spew.Sdump(after))
	}
}

func TestResetClearsEverything(t *testing.T) {
	s := New()
	tx := wire.MsgTx{TxOut: []wire.TxOut{{PkScript: []byte("reset-me")}}}
	s.AddWTPrime(sidechain.Test, tx)
	s.ratchet.append(SidechainLD{NSidechain: sidechain.Test})

	s.Reset()

	if s.HasState() {
		t.Fatal("HasState true after Reset")
	}
	if got := s.GetBMMHash(); !got.IsNull() {
		t.Fatalf("GetBMMHash after Reset = %v, want null", got)
	}
	if !s.GetHashBlockLastSeen().IsNull() {
		t.Fatal("hashBlockLastSeen not cleared by Reset")
	}
}

func TestVerificationPeriodResetPreservesRatchet(t *testing.T) {
	s := New()
	tx := wire.MsgTx{TxOut: []wire.TxOut{{PkScript: []byte("period-wt")}}}
	s.AddWTPrime(sidechain.Test, tx)
	s.ratchet.append(SidechainLD{NSidechain: sidechain.Test, NPrevBlockRef: 0})

	block := seedHash("99999999")
	s.Update(SidechainVerificationPeriod, block, []wire.TxOut{{PkScript: []byte("unrelated")}})

	if s.HasState() {
		t.Fatal("SCDBIndex not cleared on verification period boundary")
	}
	if got := s.GetBMMHash(); got.IsNull() {
		t.Fatal("BMM ratchet was incorrectly cleared on verification period boundary")
	}
}

func TestApplyDefaultUpdateOnlyDecrementsBlocksLeft(t *testing.T) {
	s := New()
	tx := wire.MsgTx{TxOut: []wire.TxOut{{PkScript: []byte("default-update")}}}
	s.AddWTPrime(sidechain.Test, tx)

	before := s.GetState(sidechain.Test)[0]
	s.ApplyDefaultUpdate()
	after := s.GetState(sidechain.Test)[0]

	if after.NWorkScore != before.NWorkScore {
		t.Fatalf("ApplyDefaultUpdate changed work score: before %d, after %d", before.NWorkScore, after.NWorkScore)
	}
	if after.NBlocksLeft != before.NBlocksLeft-1 {
		t.Fatalf("ApplyDefaultUpdate NBlocksLeft = %d, want %d", after.NBlocksLeft, before.NBlocksLeft-1)
	}
}

func TestGetDepositsFiltersBySidechain(t *testing.T) {
	s := New()
	s.vDepositCache = []SidechainDeposit{
		{NSidechain: sidechain.Test, N: 0},
		{NSidechain: sidechain.Hivemind, N: 1},
		{NSidechain: sidechain.Test, N: 2},
	}

	got := s.GetDeposits(sidechain.Test)
	if len(got) != 2 {
		t.Fatalf("GetDeposits(Test) = %s, want 2 entries", spew.Sdump(got))
	}
}

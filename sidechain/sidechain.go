// Copyright (c) 2017 The Bitcoin Core developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package sidechain defines the immutable, process-wide registry of valid
// sidechain numbers and deposit sentinel scripts. The original source this
// was distilled from kept ValidSidechains and ValidSidechainField as
// mutable globals; this package builds them once at init time and never
// mutates them afterward (see DESIGN.md).
package sidechain

// Sidechain numbers. These are fixed network parameters: changing any of
// them, or the contents of ValidSidechains, forks the chain.
const (
	Test      uint8 = 0
	Hivemind  uint8 = 1
	Wimble    uint8 = 2
)

// ValidSidechainsCount is the size of the fixed set of valid sidechain
// numbers.
const ValidSidechainsCount = 3

// Sidechain describes one registered sidechain: its number and the name
// used in ToString() output.
type Sidechain struct {
	NSidechain uint8
	StrName    string
}

// GetSidechainName returns the human readable name of the sidechain, used
// by SCDB.ToString().
func (s Sidechain) GetSidechainName() string {
	return s.StrName
}

// ValidSidechains is the fixed, declaration-ordered set of sidechains SCDB
// tracks state for. Iteration order here is consensus-relevant: it is the
// order GetSCDBHash folds per-sidechain leaves into the Merkle tree.
var ValidSidechains = [ValidSidechainsCount]Sidechain{
	{NSidechain: Test, StrName: "SIDECHAIN_TEST"},
	{NSidechain: Hivemind, StrName: "SIDECHAIN_HIVEMIND"},
	{NSidechain: Wimble, StrName: "SIDECHAIN_WIMBLE"},
}

// ValidSidechainField is the fixed set of deposit burn sentinel scripts,
// hex encoded, one per registered sidechain, in the order of
// ValidSidechains. A coinbase/deposit output whose scriptPubKey hex matches
// one of these is a deposit burn output for the corresponding sidechain.
//
// These are placeholder well-known scripts; a production deployment
// replaces them with the actual sentinel scripts negotiated for each
// sidechain at activation.
var ValidSidechainField = [ValidSidechainsCount]string{
	"6a24" + "00000000000000000000000000000000000000000000000000000000000000",
	"6a24" + "01000000000000000000000000000000000000000000000000000000000000",
	"6a24" + "02000000000000000000000000000000000000000000000000000000000000",
}

// IsSidechainNumberValid reports whether n names one of the sidechains in
// ValidSidechains.
func IsSidechainNumberValid(n uint8) bool {
	for _, s := range ValidSidechains {
		if s.NSidechain == n {
			return true
		}
	}
	return false
}

// DepositFieldIndex returns the index into ValidSidechainField (and
// ValidSidechains) for the given scriptPubKey hex string, and whether a
// match was found.
func DepositFieldIndex(scriptPubKeyHex string) (int, bool) {
	for i, field := range ValidSidechainField {
		if field == scriptPubKeyHex {
			return i, true
		}
	}
	return 0, false
}

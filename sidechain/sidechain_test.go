// Copyright (c) 2017 The Bitcoin Core developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sidechain

import "testing"

// TestIsSidechainNumberValid ensures only the fixed set of registered
// sidechain numbers is accepted.
func TestIsSidechainNumberValid(t *testing.T) {
	tests := []struct {
		name string
		n    uint8
		want bool
	}{
		{"test", Test, true},
		{"hivemind", Hivemind, true},
		{"wimble", Wimble, true},
		{"unregistered", 200, false},
	}

	for _, test := range tests {
		got := IsSidechainNumberValid(test.n)
		if got != test.want {
			t.Errorf("%s: got %v, want %v", test.name, got, test.want)
		}
	}
}

// TestValidSidechainsLength pins the invariant that every SCDB/ratchet
// array sized off ValidSidechainsCount stays in sync with the registry.
func TestValidSidechainsLength(t *testing.T) {
	if len(ValidSidechains) != ValidSidechainsCount {
		t.Fatalf("ValidSidechains length %d != ValidSidechainsCount %d",
			len(ValidSidechains), ValidSidechainsCount)
	}
	if len(ValidSidechainField) != ValidSidechainsCount {
		t.Fatalf("ValidSidechainField length %d != ValidSidechainsCount %d",
			len(ValidSidechainField), ValidSidechainsCount)
	}
}

// TestDepositFieldIndex ensures deposit burn sentinel scripts map back to
// their sidechain index.
func TestDepositFieldIndex(t *testing.T) {
	idx, ok := DepositFieldIndex(ValidSidechainField[Hivemind])
	if !ok {
		t.Fatalf("expected to find sentinel script for sidechain %d", Hivemind)
	}
	if uint8(idx) != Hivemind {
		t.Fatalf("got index %d, want %d", idx, Hivemind)
	}

	if _, ok := DepositFieldIndex("not-a-known-script"); ok {
		t.Fatalf("expected no match for unknown script")
	}
}

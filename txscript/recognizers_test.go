// Copyright (c) 2017 The Bitcoin Core developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"testing"
)

func buildCriticalHashCommit(hashCritical [32]byte, payload []byte) []byte {
	script := append([]byte{}, criticalHashCommitHeader[:]...)
	script = append(script, hashCritical[:]...)
	script = append(script, payload...)
	return script
}

func buildWTPrimeHashCommit(hash [32]byte, nSidechain uint8) []byte {
	script := append([]byte{}, wtPrimeHashCommitHeader[:]...)
	script = append(script, OP_DATA_32)
	script = append(script, hash[:]...)
	script = append(script, 0x01, nSidechain)
	return script
}

func buildSCDBHashMerkleRootCommit(root [32]byte) []byte {
	script := append([]byte{}, scdbHashMerkleRootCommitHeader[:]...)
	script = append(script, root[:]...)
	return script
}

// TestIsCriticalHashCommitAndBMMRequest exercises the BMM critical-hash
// commit recognizer and the BMM request payload parser.
func TestIsCriticalHashCommitAndBMMRequest(t *testing.T) {
	var hashCritical [32]byte
	hashCritical[0] = 0xaa

	plain := buildCriticalHashCommit(hashCritical, nil)
	if !IsCriticalHashCommit(plain) {
		t.Fatalf("expected plain critical hash commit to be recognized")
	}
	if _, ok := ExtractCriticalData(plain); ok {
		t.Fatalf("expected no critical data payload on plain commit")
	}

	withPayload := buildCriticalHashCommit(hashCritical, []byte{0x01, 0x02, 0x00})
	if !IsCriticalHashCommit(withPayload) {
		t.Fatalf("expected critical hash commit with payload to be recognized")
	}
	payload, ok := ExtractCriticalData(withPayload)
	if !ok {
		t.Fatalf("expected to extract critical data payload")
	}
	nSidechain, nPrevBlockRef, ok := IsBMMRequest(payload)
	if !ok {
		t.Fatalf("expected payload to parse as a BMM request")
	}
	if nSidechain != 1 || nPrevBlockRef != 2 {
		t.Fatalf("got {%d,%d}, want {1,2}", nSidechain, nPrevBlockRef)
	}

	extractedHash, ok := ExtractCriticalHashCommit(withPayload)
	if !ok || !bytes.Equal(extractedHash[:], hashCritical[:]) {
		t.Fatalf("hashCritical extraction mismatch")
	}

	if IsCriticalHashCommit([]byte{OP_RETURN, 0x00}) {
		t.Fatalf("short script should not be recognized")
	}
}

// TestIsWTPrimeHashCommit exercises the WT^-hash commit recognizer.
func TestIsWTPrimeHashCommit(t *testing.T) {
	var hashWT [32]byte
	hashWT[0] = 0xbb

	script := buildWTPrimeHashCommit(hashWT, 1)
	if !IsWTPrimeHashCommit(script) {
		t.Fatalf("expected WT^ hash commit to be recognized")
	}

	gotHash, nSidechain, ok := ExtractWTPrimeHashCommit(script)
	if !ok {
		t.Fatalf("expected to extract WT^ hash commit")
	}
	if !bytes.Equal(gotHash[:], hashWT[:]) {
		t.Fatalf("hash mismatch")
	}
	if nSidechain != 1 {
		t.Fatalf("got sidechain %d, want 1", nSidechain)
	}

	// Corrupt the header and ensure it is rejected.
	bad := append([]byte{}, script...)
	bad[1] ^= 0xff
	if IsWTPrimeHashCommit(bad) {
		t.Fatalf("expected mismatched header to be rejected")
	}
}

// TestIsSCDBHashMerkleRootCommit exercises the SCDB-MT commit recognizer.
func TestIsSCDBHashMerkleRootCommit(t *testing.T) {
	var root [32]byte
	root[0] = 0xcc

	script := buildSCDBHashMerkleRootCommit(root)
	if !IsSCDBHashMerkleRootCommit(script) {
		t.Fatalf("expected SCDB-MT commit to be recognized")
	}

	got, ok := ExtractSCDBHashMerkleRootCommit(script)
	if !ok || !bytes.Equal(got[:], root[:]) {
		t.Fatalf("root extraction mismatch")
	}

	// Trailing bytes should not be recognized as a bare MT commit.
	trailing := append(append([]byte{}, script...), 0x00)
	if IsSCDBHashMerkleRootCommit(trailing) {
		t.Fatalf("expected script with trailing byte to be rejected")
	}
}

// TestDepositPayload exercises the deposit payload output recognizer.
func TestDepositPayload(t *testing.T) {
	var keyID [20]byte
	keyID[0] = 0x42

	script := append([]byte{OP_RETURN, 1, OP_DATA_20}, keyID[:]...)
	if !IsDepositPayload(script) {
		t.Fatalf("expected deposit payload to be recognized")
	}

	nSidechain, gotKeyID, ok := ExtractDepositPayload(script)
	if !ok {
		t.Fatalf("expected to extract deposit payload")
	}
	if nSidechain != 1 {
		t.Fatalf("got sidechain %d, want 1", nSidechain)
	}
	if !bytes.Equal(gotKeyID[:], keyID[:]) {
		t.Fatalf("keyID mismatch")
	}

	if IsDepositPayload(script[:len(script)-1]) {
		t.Fatalf("truncated script should not be recognized")
	}
}

// TestIsDepositBurnScript exercises the fixed-sentinel deposit burn output
// recognizer.
func TestIsDepositBurnScript(t *testing.T) {
	fields := []string{"6a0100", "6a0101"}
	script := []byte{0x6a, 0x01, 0x00}

	if !IsDepositBurnScript(script, fields) {
		t.Fatalf("expected script to match a known deposit burn field")
	}
	if IsDepositBurnScript([]byte{0x6a, 0x01, 0x02}, fields) {
		t.Fatalf("unexpected match for unknown script")
	}
}

// TestParseScriptNum exercises the CScriptNum decode used for the WT^
// commit's sidechain-number push.
func TestParseScriptNum(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want int64
	}{
		{"empty", nil, 0},
		{"positive one byte", []byte{0x02}, 2},
		{"negative one byte", []byte{0x82}, -2},
		{"positive two bytes", []byte{0xff, 0x00}, 255},
		{"negative two bytes", []byte{0xff, 0x80}, -255},
	}

	for _, test := range tests {
		got := parseScriptNum(test.in)
		if got != test.want {
			t.Errorf("%s: got %d, want %d", test.name, got, test.want)
		}
	}
}

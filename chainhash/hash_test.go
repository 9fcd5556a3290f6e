// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainhash

import (
	"bytes"
	"testing"
)

// TestHash tests the Hash type, including setting bytes, stringification,
// equality, and the null convention SCDB relies on for "no hash present".
func TestHash(t *testing.T) {
	zeroHash := Hash{}
	if !zeroHash.IsNull() {
		t.Error("zero value Hash should be null")
	}

	buf := bytes.Repeat([]byte{0x01}, HashSize)
	hash, err := NewHash(buf)
	if err != nil {
		t.Fatalf("NewHash: unexpected error: %v", err)
	}
	if hash.IsNull() {
		t.Error("non-zero hash reported as null")
	}

	var other Hash
	if err := other.SetBytes(buf); err != nil {
		t.Fatalf("SetBytes: unexpected error: %v", err)
	}
	if !hash.IsEqual(&other) {
		t.Error("hashes built from the same bytes should be equal")
	}

	if _, err := NewHash(buf[:HashSize-1]); err == nil {
		t.Error("expected error constructing hash from short buffer")
	}
}

// TestHashFuncDeterminism ensures HashH is a pure function of its input, the
// property GetSCDBHash/GetBMMHash determinism depends on transitively.
func TestHashFuncDeterminism(t *testing.T) {
	data := []byte("sidechain critical data")
	h1 := HashH(data)
	h2 := HashH(data)
	if h1 != h2 {
		t.Fatalf("HashH is not deterministic: %v != %v", h1, h2)
	}

	h3 := HashH([]byte("different data"))
	if h1 == h3 {
		t.Fatalf("HashH produced identical hashes for different inputs")
	}
}

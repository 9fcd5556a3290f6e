// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package standalone

import (
	"testing"

	"github.com/drivechain-project/scdb/chainhash"
)

// TestCalcMerkleRootEmpty ensures an empty leaf set returns the null hash,
// the convention GetSCDBHash relies on for a freshly constructed SCDB.
func TestCalcMerkleRootEmpty(t *testing.T) {
	root := CalcMerkleRoot(nil)
	if !root.IsNull() {
		t.Fatalf("expected null root for empty leaf set, got %v", root)
	}
}

// TestCalcMerkleRootSingle ensures a single leaf is its own root.
func TestCalcMerkleRootSingle(t *testing.T) {
	leaf := chainhash.HashH([]byte("leaf"))
	root := CalcMerkleRoot([]chainhash.Hash{leaf})
	if root != leaf {
		t.Fatalf("single-leaf root mismatch: got %v, want %v", root, leaf)
	}
}

// TestCalcMerkleRootDeterministic ensures the same leaves in the same order
// always produce the same root, and that reordering changes it -- the
// property GetSCDBHash's determinism depends on.
func TestCalcMerkleRootDeterministic(t *testing.T) {
	leaves := []chainhash.Hash{
		chainhash.HashH([]byte("a")),
		chainhash.HashH([]byte("b")),
		chainhash.HashH([]byte("c")),
	}

	root1 := CalcMerkleRoot(leaves)
	root2 := CalcMerkleRoot(leaves)
	if root1 != root2 {
		t.Fatalf("CalcMerkleRoot is not deterministic")
	}

	reordered := []chainhash.Hash{leaves[1], leaves[0], leaves[2]}
	root3 := CalcMerkleRoot(reordered)
	if root1 == root3 {
		t.Fatalf("reordered leaves produced the same root")
	}
}

// TestCalcMerkleRootOddCount exercises the odd-leaf-count duplication path.
func TestCalcMerkleRootOddCount(t *testing.T) {
	leaves := []chainhash.Hash{
		chainhash.HashH([]byte("a")),
		chainhash.HashH([]byte("b")),
		chainhash.HashH([]byte("c")),
	}
	root := CalcMerkleRoot(leaves)
	if root.IsNull() {
		t.Fatalf("expected non-null root for three leaves")
	}
}

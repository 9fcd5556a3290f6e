// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package standalone provides standalone functions useful for independently
// calculating the results needed to validate SCDB's canonical hashes.
package standalone

import "github.com/drivechain-project/scdb/chainhash"

// nextPowerOfTwo returns the next highest power of two from a given number
// if it is not already a power of two. This is a helper function used
// during the calculation of a merkle tree.
func nextPowerOfTwo(n int) int {
	if n&(n-1) == 0 {
		return n
	}

	exponent := 0
	for 1<<uint(exponent) < n {
		exponent++
	}
	return 1 << uint(exponent)
}

// hashMerkleBranches takes two hashes, treated as the left and right tree
// nodes, and returns the hash of their concatenation. This is a helper
// function used to aid in the generation of a merkle tree.
func hashMerkleBranches(left, right *chainhash.Hash) chainhash.Hash {
	var hash [chainhash.HashSize * 2]byte
	copy(hash[:chainhash.HashSize], left[:])
	copy(hash[chainhash.HashSize:], right[:])
	return chainhash.HashH(hash[:])
}

// CalcMerkleRoot creates a merkle tree from the slice of leaf hashes and
// returns the resulting root. This is used by both GetSCDBHash (leaves are
// per-sidechain WT^ state hashes) and GetBMMHash (leaves are ratchet LD
// hashes).
//
// A merkle tree is a tree in which every non-leaf node is the hash of its
// children nodes. A diagram depicting how this works for SCDB leaves where
// h(x) is the chain hash function follows:
//
//	         root = h1234 = h(h12 + h34)
//	        /                           \
//	  h12 = h(h1 + h2)            h34 = h(h3 + h4)
//	   /            \              /            \
//	h1 = h(l1)  h2 = h(l2)      h3 = h(l3)  h4 = h(l4)
//
// The number of leaves is not always a power of two, which results in a
// balanced tree structure as above. In that case, a parent node with only a
// single left child is calculated by concatenating the left node with
// itself before hashing.
//
// An empty leaf set returns the all-zero hash by convention, matching the
// "no state" case documented for GetSCDBHash.
func CalcMerkleRoot(leaves []chainhash.Hash) chainhash.Hash {
	if len(leaves) == 0 {
		return chainhash.Hash{}
	}
	if len(leaves) == 1 {
		return leaves[0]
	}

	nextPoT := nextPowerOfTwo(len(leaves))
	arraySize := nextPoT*2 - 1
	nodes := make([]*chainhash.Hash, arraySize)
	for i := range leaves {
		h := leaves[i]
		nodes[i] = &h
	}

	offset := nextPoT
	for i := 0; i < arraySize-1; i += 2 {
		switch {
		case nodes[i] == nil:
			nodes[offset] = nil
		case nodes[i+1] == nil:
			newHash := hashMerkleBranches(nodes[i], nodes[i])
			nodes[offset] = &newHash
		default:
			newHash := hashMerkleBranches(nodes[i], nodes[i+1])
			nodes[offset] = &newHash
		}
		offset++
	}

	root := nodes[arraySize-1]
	if root == nil {
		return chainhash.Hash{}
	}
	return *root
}

// ComputeMerkleRoot is an alias of CalcMerkleRoot kept for readers coming
// from the original sidechaindb.cpp naming; SCDB's own GetSCDBHash and
// GetBMMHash call this name directly.
func ComputeMerkleRoot(leaves []chainhash.Hash) chainhash.Hash {
	return CalcMerkleRoot(leaves)
}

// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chainhash provides the 256-bit hash type and hashing primitives
// that every SCDB record is canonically identified by.
package chainhash

import (
	"encoding/hex"
	"fmt"

	"github.com/decred/dcrd/crypto/blake256"
)

// HashSize is the number of bytes in a hash.
const HashSize = 32

// MaxHashStringSize is the maximum length of a Hash hash string.
const MaxHashStringSize = HashSize * 2

// ErrHashStrSize describes an error that indicates the caller specified a
// hash string that has too many characters.
var ErrHashStrSize = fmt.Errorf("max hash string length is %v bytes", MaxHashStringSize)

// Hash is used in several of the SCDB messages and block header fields. It
// typically represents the single blake256 of data (see HashH).
type Hash [HashSize]byte

// String returns the Hash as the hexadecimal string of the byte-reversed
// hash, matching the convention used for block and transaction hashes.
func (h Hash) String() string {
	for i := 0; i < HashSize/2; i++ {
		h[i], h[HashSize-1-i] = h[HashSize-1-i], h[i]
	}
	return hex.EncodeToString(h[:])
}

// IsEqual returns true if the hash equals the given hash.
func (h *Hash) IsEqual(target *Hash) bool {
	if h == nil && target == nil {
		return true
	}
	if h == nil || target == nil {
		return false
	}
	return *h == *target
}

// IsNull returns true if the hash is the all-zero value, the convention
// used throughout SCDB for "no hash present".
func (h Hash) IsNull() bool {
	return h == Hash{}
}

// SetNull sets the hash to the all-zero value.
func (h *Hash) SetNull() {
	*h = Hash{}
}

// SetBytes sets the bytes which represent the hash. An error is returned if
// the number of bytes passed in is not HashSize.
func (h *Hash) SetBytes(newHash []byte) error {
	nhlen := len(newHash)
	if nhlen != HashSize {
		return fmt.Errorf("invalid hash length of %v, want %v", nhlen, HashSize)
	}
	copy(h[:], newHash)
	return nil
}

// NewHash returns a new Hash from a byte slice. An error is returned if the
// number of bytes passed in is not HashSize.
func NewHash(newHash []byte) (*Hash, error) {
	var sh Hash
	err := sh.SetBytes(newHash)
	if err != nil {
		return nil, err
	}
	return &sh, nil
}

// NewHashFromStr creates a Hash from a hash string. The string should be
// the hexadecimal string of a byte-reversed hash, but any missing
// characters result in zero padding at the end of the Hash.
func NewHashFromStr(hash string) (*Hash, error) {
	ret := new(Hash)
	err := Decode(ret, hash)
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// Decode decodes the byte-reversed hexadecimal string encoding of a Hash to
// a destination.
func Decode(dst *Hash, src string) error {
	reversedHashStr := []byte(src)
	if len(reversedHashStr) > MaxHashStringSize {
		return ErrHashStrSize
	}

	var srcBytes []byte
	if len(reversedHashStr)%2 == 0 {
		srcBytes = reversedHashStr
	} else {
		srcBytes = make([]byte, 1+len(reversedHashStr))
		srcBytes[0] = '0'
		copy(srcBytes[1:], reversedHashStr)
	}

	var reversedHash Hash
	_, err := hex.Decode(reversedHash[HashSize-hex.DecodedLen(len(srcBytes)):], srcBytes)
	if err != nil {
		return err
	}

	for i, b := range reversedHash[:HashSize/2] {
		reversedHash[i], reversedHash[HashSize-1-i] = reversedHash[HashSize-1-i], b
	}
	*dst = reversedHash
	return nil
}

// HashB calculates a single blake256 hash of the passed data and returns it
// as a byte slice.
func HashB(b []byte) []byte {
	a := blake256.Sum256(b)
	return a[:]
}

// HashH calculates a single blake256 hash of the passed data and returns it
// as a Hash.
func HashH(b []byte) Hash {
	return Hash(blake256.Sum256(b))
}

// HashFunc is the hash function used to identify SCDB leaves and records.
// Kept as a named function value (rather than inlining blake256 everywhere)
// so a future consensus upgrade can swap the hash function in one place.
var HashFunc = HashH

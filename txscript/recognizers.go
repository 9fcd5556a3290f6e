// Copyright (c) 2017 The Bitcoin Core developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import "encoding/hex"

// The three commit script forms below share a six-byte OP_RETURN header
// (OP_RETURN followed by five bytes that disambiguate the commit type) so
// that a single byte-range check distinguishes them without needing a full
// script interpreter.
var (
	criticalHashCommitHeader       = [6]byte{OP_RETURN, 0xd1, 0x5e, 0xc4, 0xa5, 0xe0}
	wtPrimeHashCommitHeader        = [6]byte{OP_RETURN, 0xd2, 0x5e, 0xc4, 0xa5, 0xe0}
	scdbHashMerkleRootCommitHeader = [6]byte{OP_RETURN, 0xd3, 0x5e, 0xc4, 0xa5, 0xe0}
)

func hasHeader(script []byte, header [6]byte) bool {
	if len(script) < len(header) {
		return false
	}
	for i, b := range header {
		if script[i] != b {
			return false
		}
	}
	return true
}

// IsCriticalHashCommit returns whether script is a BMM critical-hash commit:
//
//	OP_RETURN <5-byte type magic> <32-byte hashCritical> [CCriticalData payload]
//
// The 32-byte hashCritical occupies script[6:38]; any bytes from index 38 on
// are an optional CCriticalData payload, see ExtractCriticalData.
func IsCriticalHashCommit(script []byte) bool {
	return len(script) >= 38 && hasHeader(script, criticalHashCommitHeader)
}

// ExtractCriticalHashCommit extracts the 32-byte hashCritical from a BMM
// critical-hash commit script. It returns ok=false if script is not such a
// commit.
func ExtractCriticalHashCommit(script []byte) (hashCritical [32]byte, ok bool) {
	if !IsCriticalHashCommit(script) {
		return hashCritical, false
	}
	copy(hashCritical[:], script[6:38])
	return hashCritical, true
}

// ExtractCriticalData returns the CCriticalData payload trailing a critical
// hash commit's 32-byte hash, if present.
func ExtractCriticalData(script []byte) (payload []byte, ok bool) {
	if !IsCriticalHashCommit(script) || len(script) <= 38 {
		return nil, false
	}
	return script[38:], true
}

// IsBMMRequest reports whether payload (a CCriticalData payload, see
// ExtractCriticalData) encodes a BMM request of the form
// {nSidechain: u8, nPrevBlockRef: u16 (little-endian)}.
func IsBMMRequest(payload []byte) (nSidechain uint8, nPrevBlockRef uint16, ok bool) {
	if len(payload) != 3 {
		return 0, 0, false
	}
	nSidechain = payload[0]
	nPrevBlockRef = uint16(payload[1]) | uint16(payload[2])<<8
	return nSidechain, nPrevBlockRef, true
}

// IsWTPrimeHashCommit returns whether script is a WT^-hash commit:
//
//	OP_RETURN <5-byte type magic> OP_DATA_32 <32-byte hashWTPrime> <push: nSidechain>
//
// The 32-byte hash is pushed starting at offset 7 (i.e. script[7:39]); the
// sidechain number follows as a 1-4 byte CScriptNum-encoded push starting
// at offset 39.
func IsWTPrimeHashCommit(script []byte) bool {
	if len(script) < 40 {
		return false
	}
	if !hasHeader(script, wtPrimeHashCommitHeader) {
		return false
	}
	if script[6] != OP_DATA_32 {
		return false
	}
	nsLen := int(script[39])
	if nsLen < 1 || nsLen > 4 {
		return false
	}
	return len(script) == 40+nsLen
}

// ExtractWTPrimeHashCommit extracts the WT^ hash and sidechain number from
// a WT^-hash commit script.
func ExtractWTPrimeHashCommit(script []byte) (hashWTPrime [32]byte, nSidechain uint8, ok bool) {
	if !IsWTPrimeHashCommit(script) {
		return hashWTPrime, 0, false
	}
	copy(hashWTPrime[:], script[7:39])

	nsLen := int(script[39])
	n := parseScriptNum(script[40 : 40+nsLen])
	if n < 0 || n > 255 {
		return hashWTPrime, 0, false
	}
	return hashWTPrime, uint8(n), true
}

// IsSCDBHashMerkleRootCommit returns whether script is an SCDB-MT commit:
//
//	OP_RETURN <5-byte type magic> <32-byte Merkle root>
//
// The root occupies script[6:38].
func IsSCDBHashMerkleRootCommit(script []byte) bool {
	return len(script) == 38 && hasHeader(script, scdbHashMerkleRootCommitHeader)
}

// ExtractSCDBHashMerkleRootCommit extracts the committed Merkle root from an
// SCDB-MT commit script.
func ExtractSCDBHashMerkleRootCommit(script []byte) (root [32]byte, ok bool) {
	if !IsSCDBHashMerkleRootCommit(script) {
		return root, false
	}
	copy(root[:], script[6:38])
	return root, true
}

// IsDepositBurnScript reports whether the hex encoding of script (a
// scriptPubKey) matches one of validFields, the hex-encoded deposit burn
// sentinel scripts.
func IsDepositBurnScript(script []byte, validFields []string) bool {
	scriptHex := hex.EncodeToString(script)
	for _, field := range validFields {
		if field == scriptHex {
			return true
		}
	}
	return false
}

// IsDepositPayload returns whether script is a deposit payload output:
//
//	OP_RETURN <1-byte nSidechain> OP_DATA_20 <20-byte keyID>
func IsDepositPayload(script []byte) bool {
	return len(script) == 23 &&
		script[0] == OP_RETURN &&
		script[2] == OP_DATA_20
}

// ExtractDepositPayload extracts the sidechain number and destination keyID
// from a deposit payload output script.
func ExtractDepositPayload(script []byte) (nSidechain uint8, keyID [20]byte, ok bool) {
	if !IsDepositPayload(script) {
		return 0, keyID, false
	}
	nSidechain = script[1]
	copy(keyID[:], script[3:23])
	return nSidechain, keyID, true
}

// parseScriptNum decodes a CScriptNum-encoded little-endian signed integer:
// the magnitude is little-endian, and the high bit of the final byte is the
// sign bit (not two's complement). Returns 0 for an empty input and never
// panics on malformed input.
func parseScriptNum(v []byte) int64 {
	if len(v) == 0 {
		return 0
	}

	var result int64
	for i, b := range v {
		result |= int64(b) << uint(8*i)
	}

	if v[len(v)-1]&0x80 != 0 {
		result &^= int64(0x80) << uint(8*(len(v)-1))
		result = -result
	}
	return result
}

// Copyright (c) 2017 The Bitcoin Core developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package scdb

// These are fixed network parameters. Changing any of them forks the
// chain: two implementations that disagree on these values will compute
// different GetSCDBHash results from identical input.
const (
	// SidechainVerificationPeriod is the number of host blocks over which a
	// WT^ accumulates work score before SCDB resets.
	SidechainVerificationPeriod = 26300

	// SidechainTestVerificationPeriod is the verification period used for
	// the TEST sidechain, much shorter to make manual testing practical.
	SidechainTestVerificationPeriod = 144

	// SidechainMinWorkscore is the work score threshold a WT^ must reach
	// to be considered approved for sidechains other than TEST.
	SidechainMinWorkscore = 13150

	// SidechainTestMinWorkscore is the work score threshold for the TEST
	// sidechain.
	SidechainTestMinWorkscore = 72

	// SidechainMaxWT is the maximum number of WT^(s) that may be tracked
	// simultaneously for a single sidechain.
	SidechainMaxWT = 3

	// BMMMaxLD is the ratchet size limit checked after each append: once a
	// sidechain's ratchet holds more than this many entries, sidechain 0's
	// ratchet is cleared (see ratchet.append); the overflowing ratchet
	// itself is not trimmed.
	BMMMaxLD = 144
)

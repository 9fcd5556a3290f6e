// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package scdb

import "fmt"

// ErrorKind identifies a class of error reported by scdb's non-consensus
// surfaces (principally tooling and logging). No part of the consensus
// state transition itself consults these -- Update and its helpers still
// communicate accept/reject purely through boolean returns, exactly as the
// distilled specification requires.
type ErrorKind string

// These constants are used to identify a specific RuleError.
const (
	// ErrInvalidSidechainNumber indicates an operation referenced a
	// sidechain number outside ValidSidechains.
	ErrInvalidSidechainNumber = ErrorKind("ErrInvalidSidechainNumber")

	// ErrSCDBFull indicates a WT^ could not be inserted because its
	// SCDBIndex is already at SidechainMaxWT.
	ErrSCDBFull = ErrorKind("ErrSCDBFull")

	// ErrWTPrimeCacheFull indicates AddWTPrime was rejected because the
	// global WT^ cache is already at SidechainMaxWT.
	ErrWTPrimeCacheFull = ErrorKind("ErrWTPrimeCacheFull")

	// ErrWTPrimeAlreadyCached indicates AddWTPrime was rejected because
	// the transaction's hash is already present in the WT^ cache.
	ErrWTPrimeAlreadyCached = ErrorKind("ErrWTPrimeAlreadyCached")

	// ErrNullBlockHash indicates Update was called with a null block
	// hash.
	ErrNullBlockHash = ErrorKind("ErrNullBlockHash")

	// ErrEmptyOutputs indicates Update was called with no coinbase
	// outputs to scan.
	ErrEmptyOutputs = ErrorKind("ErrEmptyOutputs")

	// ErrNoMatchingVote indicates UpdateSCDBMatchMT tried every candidate
	// vote vector and none reproduced the miner's committed root.
	ErrNoMatchingVote = ErrorKind("ErrNoMatchingVote")

	// ErrAmbiguousMTCommit indicates a coinbase carried more than one
	// SCDB-MT commit, so the block is left unvoted.
	ErrAmbiguousMTCommit = ErrorKind("ErrAmbiguousMTCommit")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// RuleError identifies an error deliberately raised by scdb tooling, paired
// with its ErrorKind so callers can use errors.Is to test for specific
// conditions.
type RuleError struct {
	Err         error
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e RuleError) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e RuleError) Unwrap() error {
	return e.Err
}

// ruleError creates a RuleError given a set of arguments.
func ruleError(kind ErrorKind, desc string) RuleError {
	return RuleError{Err: kind, Description: desc}
}

// ruleErrorf is a convenience wrapper around ruleError that formats desc.
func ruleErrorf(kind ErrorKind, format string, args ...interface{}) RuleError {
	return ruleError(kind, fmt.Sprintf(format, args...))
}

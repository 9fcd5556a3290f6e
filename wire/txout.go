// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import "io"

// MaxPkScriptSize is the largest allowed public key script a TxOut may carry
// over the wire. SCDB's own script recognizers never look past the first
// few dozen bytes of this, but the host transaction format permits scripts
// up to this size.
const MaxPkScriptSize = 10000

// TxOut defines a host-chain transaction output, trimmed to exactly the
// fields SCDB's script recognizers consume: the value is carried for wire
// completeness but is never inspected by any SCDB operation.
type TxOut struct {
	Value    int64
	PkScript []byte
}

// BtcEncode encodes the receiver to w using the wire protocol encoding.
func (to *TxOut) BtcEncode(w io.Writer) error {
	if err := binarySerializer.PutUint64(w, uint64(to.Value)); err != nil {
		return err
	}
	return WriteVarBytes(w, to.PkScript)
}

// BtcDecode decodes r using the wire protocol encoding into the receiver.
func (to *TxOut) BtcDecode(r io.Reader) error {
	value, err := binarySerializer.Uint64(r)
	if err != nil {
		return err
	}
	to.Value = int64(value)

	pkScript, err := ReadVarBytes(r, MaxPkScriptSize, "pkScript")
	if err != nil {
		return err
	}
	to.PkScript = pkScript
	return nil
}

// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wire implements the SCDB wire encoding for the handful of values
// that cross the (out-of-scope) P2P boundary: coinbase outputs and network
// update packages carrying candidate WT^ vote vectors.
package wire

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/drivechain-project/scdb/chainhash"
)

// MaxUpdateMessagesPerPackage caps the number of SidechainUpdateMSG entries
// a single SidechainUpdatePackage may carry on the wire, bounding the
// reconciliation search noted as an efficiency concern in the core spec.
const MaxUpdateMessagesPerPackage = 256

// messageError creates an error for the given function name and description.
func messageError(f string, desc string) error {
	return fmt.Errorf("%s: %s", f, desc)
}

// binarySerializer provides the little-endian fixed-width integer reads and
// writes used by every encode/decode method, named after dcrd's wire helper.
// It holds no state; each call uses its own local buffer.
var binarySerializer byteOrder

type byteOrder struct{}

func (byteOrder) Uint8(r io.Reader) (uint8, error) {
	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

func (byteOrder) PutUint8(w io.Writer, val uint8) error {
	_, err := w.Write([]byte{val})
	return err
}

func (byteOrder) Uint16(r io.Reader) (uint16, error) {
	var b [2]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b[:]), nil
}

func (byteOrder) PutUint16(w io.Writer, val uint16) error {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], val)
	_, err := w.Write(b[:])
	return err
}

func (byteOrder) Uint32(r io.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

func (byteOrder) PutUint32(w io.Writer, val uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], val)
	_, err := w.Write(b[:])
	return err
}

func (byteOrder) Uint64(r io.Reader) (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

func (byteOrder) PutUint64(w io.Writer, val uint64) error {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], val)
	_, err := w.Write(b[:])
	return err
}

// ReadVarBytes reads a variable length byte array. A maxAllowed parameter is
// used to limit the number of bytes that will be read as a safeguard against
// malformed messages causing an excessive number of bytes to be read.
func ReadVarBytes(r io.Reader, maxAllowed uint32, fieldName string) ([]byte, error) {
	count, err := binarySerializer.Uint32(r)
	if err != nil {
		return nil, err
	}
	if count > maxAllowed {
		str := fmt.Sprintf("%s is larger than the max allowed size "+
			"[count %d, max %d]", fieldName, count, maxAllowed)
		return nil, messageError("ReadVarBytes", str)
	}

	b := make([]byte, count)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}

// WriteVarBytes serializes a variable length byte array to w as a length
// prefix followed by the bytes themselves.
func WriteVarBytes(w io.Writer, b []byte) error {
	if err := binarySerializer.PutUint32(w, uint32(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

// readHash reads a fixed-size chain hash from r.
func readHash(r io.Reader, h *chainhash.Hash) error {
	_, err := io.ReadFull(r, h[:])
	return err
}

// writeHash writes a fixed-size chain hash to w.
func writeHash(w io.Writer, h *chainhash.Hash) error {
	_, err := w.Write(h[:])
	return err
}

// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"io"

	"github.com/drivechain-project/scdb/chainhash"
)

// SidechainUpdateMSG is a single candidate vote for one WT^'s work score,
// as carried in a SidechainUpdatePackage.
type SidechainUpdateMSG struct {
	NSidechain  uint8
	HashWTPrime chainhash.Hash
	NWorkScore  uint16
}

// BtcEncode encodes the receiver to w using the wire protocol encoding.
func (msg *SidechainUpdateMSG) BtcEncode(w io.Writer) error {
	if err := binarySerializer.PutUint8(w, msg.NSidechain); err != nil {
		return err
	}
	if err := writeHash(w, &msg.HashWTPrime); err != nil {
		return err
	}
	return binarySerializer.PutUint16(w, msg.NWorkScore)
}

// BtcDecode decodes r using the wire protocol encoding into the receiver.
func (msg *SidechainUpdateMSG) BtcDecode(r io.Reader) error {
	nSidechain, err := binarySerializer.Uint8(r)
	if err != nil {
		return err
	}
	msg.NSidechain = nSidechain

	if err := readHash(r, &msg.HashWTPrime); err != nil {
		return err
	}

	nWorkScore, err := binarySerializer.Uint16(r)
	if err != nil {
		return err
	}
	msg.NWorkScore = nWorkScore
	return nil
}

// SidechainUpdatePackage is the pending, externally-supplied vote vector a
// network peer proposes applying at a specific host height; it is queued
// via AddSidechainNetworkUpdatePackage and consulted during MT
// reconciliation for blocks at that height.
type SidechainUpdatePackage struct {
	NHeight int32
	VUpdate []SidechainUpdateMSG
}

// BtcEncode encodes the receiver to w using the wire protocol encoding.
func (pkg *SidechainUpdatePackage) BtcEncode(w io.Writer) error {
	if err := binarySerializer.PutUint32(w, uint32(pkg.NHeight)); err != nil {
		return err
	}

	count := len(pkg.VUpdate)
	if count > MaxUpdateMessagesPerPackage {
		str := fmt.Sprintf("too many update messages to encode [count %d, max %d]",
			count, MaxUpdateMessagesPerPackage)
		return messageError("SidechainUpdatePackage.BtcEncode", str)
	}
	if err := binarySerializer.PutUint32(w, uint32(count)); err != nil {
		return err
	}
	for i := range pkg.VUpdate {
		if err := pkg.VUpdate[i].BtcEncode(w); err != nil {
			return err
		}
	}
	return nil
}

// BtcDecode decodes r using the wire protocol encoding into the receiver.
func (pkg *SidechainUpdatePackage) BtcDecode(r io.Reader) error {
	nHeight, err := binarySerializer.Uint32(r)
	if err != nil {
		return err
	}
	pkg.NHeight = int32(nHeight)

	count, err := binarySerializer.Uint32(r)
	if err != nil {
		return err
	}
	if count > MaxUpdateMessagesPerPackage {
		str := fmt.Sprintf("too many update messages to decode [count %d, max %d]",
			count, MaxUpdateMessagesPerPackage)
		return messageError("SidechainUpdatePackage.BtcDecode", str)
	}

	vUpdate := make([]SidechainUpdateMSG, count)
	for i := range vUpdate {
		if err := vUpdate[i].BtcDecode(r); err != nil {
			return err
		}
	}
	pkg.VUpdate = vUpdate
	return nil
}

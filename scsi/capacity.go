// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package scsi

import (
	"bytes"

	"github.com/lunixbochs/struc"
)

type capacity10 struct {
	LastLBA     uint32
	BlockLength uint32
}

type capacity16 struct {
	LastLBA       uint64
	BlockLength   uint32
	ProtFlags     uint8
	LogicalPerExp uint8
	LowestAligned uint16
}

// Capacity is the result of READ CAPACITY(10) or READ CAPACITY(16).
type Capacity struct {
	LastLBA     uint64
	BlockLength uint32
}

// Blocks returns the number of addressable blocks.
func (c Capacity) Blocks() uint64 {
	return c.LastLBA + 1
}

// DecodeCapacity10 decodes an 8 byte READ CAPACITY(10) response.
func DecodeCapacity10(buf []byte) (Capacity, bool) {
	var resp capacity10

	if len(buf) < 8 {
		return Capacity{}, false
	}

	if err := struc.Unpack(bytes.NewReader(buf[:8]), &resp); err != nil {
		return Capacity{}, false
	}

	return Capacity{LastLBA: uint64(resp.LastLBA), BlockLength: resp.BlockLength}, true
}

// DecodeCapacity16 decodes a READ CAPACITY(16) response. Only the first 16 bytes are examined.
func DecodeCapacity16(buf []byte) (Capacity, bool) {
	var resp capacity16

	if len(buf) < 16 {
		return Capacity{}, false
	}

	if err := struc.Unpack(bytes.NewReader(buf[:16]), &resp); err != nil {
		return Capacity{}, false
	}

	return Capacity{LastLBA: resp.LastLBA, BlockLength: resp.BlockLength}, true
}

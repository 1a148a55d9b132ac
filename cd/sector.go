// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Raw CD sector layout and ECMA-130 scrambling.

package cd

import (
	"github.com/dswarbrick/optical/utils"
)

const (
	SectorSize     = 2352
	syncLen        = 12
	headerLen      = 4
	UserDataOffset = syncLen + headerLen
)

// SyncPattern starts every data sector.
var SyncPattern = []byte{0x00, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x00}

// ScrambleTable is XORed over bytes 12..2351 of a data sector. The sync field is never scrambled.
var ScrambleTable [SectorSize]byte

func init() {
	// 15 bit LFSR, x^15 + x + 1, seeded with 1 and shifted out lsb first
	reg := uint16(1)

	for i := syncLen; i < SectorSize; i++ {
		var b byte
		for bit := uint(0); bit < 8; bit++ {
			b |= byte(reg&1) << bit
			carry := (reg & 1) ^ ((reg >> 1) & 1)
			reg = reg>>1 | carry<<14
		}
		ScrambleTable[i] = b
	}
}

// Scramble XORs sector with ScrambleTable in place. The operation is its own inverse.
func Scramble(sector []byte) {
	for i := syncLen; i < len(sector) && i < SectorSize; i++ {
		sector[i] ^= ScrambleTable[i]
	}
}

// SectorHeader is the address and mode field following the sync pattern.
type SectorHeader struct {
	Minute uint8
	Second uint8
	Frame  uint8
	Mode   uint8
}

// LBA converts the BCD address in the header to a sector number.
func (h SectorHeader) LBA() int64 {
	return MsfToLba(utils.BcdToBinary(h.Minute), utils.BcdToBinary(h.Second), utils.BcdToBinary(h.Frame))
}

// ScrambledHeader reads the header of a still scrambled sector whose sync pattern starts at off.
// Only the first header bytes are descrambled, so no full copy of the sector is needed.
func ScrambledHeader(buf []byte, off int) (SectorHeader, bool) {
	if off < 0 || off+syncLen+headerLen > len(buf) {
		return SectorHeader{}, false
	}

	h := buf[off+syncLen:]
	return SectorHeader{
		Minute: h[0] ^ ScrambleTable[syncLen],
		Second: h[1] ^ ScrambleTable[syncLen+1],
		Frame:  h[2] ^ ScrambleTable[syncLen+2],
		Mode:   h[3] ^ ScrambleTable[syncLen+3],
	}, true
}

// Header reads the header of a descrambled sector.
func Header(sector []byte) (SectorHeader, bool) {
	if len(sector) < syncLen+headerLen {
		return SectorHeader{}, false
	}

	return SectorHeader{
		Minute: sector[syncLen],
		Second: sector[syncLen+1],
		Frame:  sector[syncLen+2],
		Mode:   sector[syncLen+3],
	}, true
}

// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package cd

import (
	"fmt"

	"github.com/dswarbrick/optical/utils"
)

// ATIP is a decoded READ TOC format 0100b response.
type ATIP struct {
	DataLength uint16

	// Indicative target writing power, DDCD and reference speed
	ITWP           uint8
	DDCD           bool
	ReferenceSpeed uint8

	// Unrestricted use
	URU bool

	// DiscType is set for rewritable media
	DiscType    bool
	DiscSubType uint8
	A1Valid     bool
	A2Valid     bool
	A3Valid     bool

	LeadInStartMin    uint8
	LeadInStartSec    uint8
	LeadInStartFrame  uint8
	LeadOutStartMin   uint8
	LeadOutStartSec   uint8
	LeadOutStartFrame uint8

	A1Values [3]byte
	A2Values [3]byte
	A3Values [3]byte
	S4Values [3]byte
}

// DecodeATIP decodes an ATIP response. Only 28 and 32 byte responses are accepted.
func DecodeATIP(buf []byte) *ATIP {
	if len(buf) != 28 && len(buf) != 32 {
		return nil
	}

	if !validLength(buf) {
		return nil
	}

	a := &ATIP{
		DataLength:        utils.Uint16BE(buf, 0),
		ITWP:              buf[4] >> 4,
		DDCD:              buf[4]&0x08 != 0,
		ReferenceSpeed:    buf[4] & 0x07,
		URU:               buf[5]&0x40 != 0,
		DiscType:          buf[6]&0x40 != 0,
		DiscSubType:       (buf[6] & 0x38) >> 3,
		A1Valid:           buf[6]&0x04 != 0,
		A2Valid:           buf[6]&0x02 != 0,
		A3Valid:           buf[6]&0x01 != 0,
		LeadInStartMin:    buf[8],
		LeadInStartSec:    buf[9],
		LeadInStartFrame:  buf[10],
		LeadOutStartMin:   buf[12],
		LeadOutStartSec:   buf[13],
		LeadOutStartFrame: buf[14],
	}

	if a.A1Valid {
		copy(a.A1Values[:], buf[16:19])
	}

	if a.A2Valid {
		copy(a.A2Values[:], buf[20:23])
	}

	if a.A3Valid {
		copy(a.A3Values[:], buf[24:27])
	}

	if len(buf) >= 32 {
		copy(a.S4Values[:], buf[28:31])
	}

	return a
}

// Rewritable reports whether the ATIP describes CD-RW media.
func (a *ATIP) Rewritable() bool {
	return a.DiscType
}

// LeadInStart returns the start of the lead-in as an LBA. It is negative on all real media.
func (a *ATIP) LeadInStart() int64 {
	return MsfToLba(a.LeadInStartMin, a.LeadInStartSec, a.LeadInStartFrame) - 450000
}

// LeadOutStart returns the last possible start of the lead-out as an LBA.
func (a *ATIP) LeadOutStart() int64 {
	return MsfToLba(a.LeadOutStartMin, a.LeadOutStartSec, a.LeadOutStartFrame)
}

func (a *ATIP) String() string {
	kind := "CD-R"
	if a.DiscType {
		kind = "CD-RW"
	}

	return fmt.Sprintf("%s, sub-type %d, lead-in %02d:%02d:%02d, last lead-out %02d:%02d:%02d",
		kind, a.DiscSubType, a.LeadInStartMin, a.LeadInStartSec, a.LeadInStartFrame,
		a.LeadOutStartMin, a.LeadOutStartSec, a.LeadOutStartFrame)
}

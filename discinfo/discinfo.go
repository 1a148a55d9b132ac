// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Package discinfo decodes READ DISC INFORMATION responses.
package discinfo

import (
	"fmt"

	"github.com/dswarbrick/optical/utils"
)

// Disc information data types, bits 7-5 of byte 2
const (
	DATA_TYPE_STANDARD        = 0
	DATA_TYPE_TRACK_RESOURCES = 1
	DATA_TYPE_POW_RESOURCES   = 2
)

// Disc types from byte 8 of standard disc information
const (
	DISC_TYPE_CDDA_OR_CDROM = 0x00
	DISC_TYPE_CDI           = 0x10
	DISC_TYPE_CDROMXA       = 0x20
	DISC_TYPE_UNDEFINED     = 0xff
)

// Disc status
const (
	DISC_STATUS_EMPTY      = 0
	DISC_STATUS_INCOMPLETE = 1
	DISC_STATUS_FINALIZED  = 2
	DISC_STATUS_OTHERS     = 3
)

var discStatusNames = [...]string{"empty", "incomplete", "finalized", "random access only"}

var discTypeNames = map[uint8]string{
	DISC_TYPE_CDDA_OR_CDROM: "CD-DA or CD-ROM",
	DISC_TYPE_CDI:           "CD-i",
	DISC_TYPE_CDROMXA:       "CD-ROM XA",
	DISC_TYPE_UNDEFINED:     "undefined",
}

func dataType(buf []byte) uint8 {
	return (buf[2] & 0xe0) >> 5
}

// The data length field excludes itself.
func lengthMatches(buf []byte) bool {
	return int(utils.Uint16BE(buf, 0))+2 == len(buf)
}

// OPCTable is an optimum power calibration entry.
type OPCTable struct {
	Speed  uint16
	Values [6]byte
}

// Standard is disc information data type 000b.
type Standard struct {
	DataLength        uint16
	Erasable          bool
	LastSessionStatus uint8
	DiscStatus        uint8

	FirstTrackNumber      uint8
	Sessions              uint16
	FirstTrackLastSession uint16
	LastTrackLastSession  uint16

	DIDValid bool
	DBCValid bool
	URU      bool
	DACValid bool
	// Background format status
	BGFormatStatus uint8

	DiscType                 uint8
	DiscIdentification       uint32
	LastSessionLeadInStart   uint32
	LastPossibleLeadOutStart uint32
	DiscBarCode              [8]byte
	DiscApplicationCode      uint8
	OPCTables                []OPCTable
}

// DecodeStandard decodes READ DISC INFORMATION data type 000b. It returns nil for short
// responses, for responses whose declared length disagrees with the buffer and for responses
// of another data type.
func DecodeStandard(buf []byte) *Standard {
	if len(buf) < 32 || !lengthMatches(buf) || dataType(buf) != DATA_TYPE_STANDARD {
		return nil
	}

	d := &Standard{
		DataLength:               utils.Uint16BE(buf, 0),
		Erasable:                 buf[2]&0x10 != 0,
		LastSessionStatus:        (buf[2] & 0x0c) >> 2,
		DiscStatus:               buf[2] & 0x03,
		FirstTrackNumber:         buf[3],
		Sessions:                 uint16(buf[9])<<8 | uint16(buf[4]),
		FirstTrackLastSession:    uint16(buf[10])<<8 | uint16(buf[5]),
		LastTrackLastSession:     uint16(buf[11])<<8 | uint16(buf[6]),
		DIDValid:                 buf[7]&0x80 != 0,
		DBCValid:                 buf[7]&0x40 != 0,
		URU:                      buf[7]&0x20 != 0,
		DACValid:                 buf[7]&0x10 != 0,
		BGFormatStatus:           buf[7] & 0x03,
		DiscType:                 buf[8],
		DiscIdentification:       utils.Uint32BE(buf, 12),
		LastSessionLeadInStart:   utils.Uint32BE(buf, 16),
		LastPossibleLeadOutStart: utils.Uint32BE(buf, 20),
	}

	copy(d.DiscBarCode[:], buf[24:32])

	if len(buf) >= 34 {
		d.DiscApplicationCode = buf[32]

		for i, off := 0, 34; i < int(buf[33]) && off+8 <= len(buf); i, off = i+1, off+8 {
			var t OPCTable
			t.Speed = utils.Uint16BE(buf, off)
			copy(t.Values[:], buf[off+2:off+8])
			d.OPCTables = append(d.OPCTables, t)
		}
	}

	return d
}

// DiscTypeName names the disc type byte.
func (d *Standard) DiscTypeName() string {
	if s, ok := discTypeNames[d.DiscType]; ok {
		return s
	}

	return fmt.Sprintf("reserved disc type %#02x", d.DiscType)
}

func (d *Standard) String() string {
	return fmt.Sprintf("%s disc, %s, %d session(s), tracks %d-%d, erasable=%v",
		d.DiscTypeName(), discStatusNames[d.DiscStatus], d.Sessions, d.FirstTrackNumber,
		d.LastTrackLastSession, d.Erasable)
}

// TrackResources is disc information data type 001b.
type TrackResources struct {
	DataLength              uint16
	MaxTracks               uint16
	AssignedTracks          uint16
	MaxAppendableTracks     uint16
	CurrentAppendableTracks uint16
}

// DecodeTrackResources decodes READ DISC INFORMATION data type 001b.
func DecodeTrackResources(buf []byte) *TrackResources {
	if len(buf) < 12 || !lengthMatches(buf) || dataType(buf) != DATA_TYPE_TRACK_RESOURCES {
		return nil
	}

	return &TrackResources{
		DataLength:              utils.Uint16BE(buf, 0),
		MaxTracks:               utils.Uint16BE(buf, 4),
		AssignedTracks:          utils.Uint16BE(buf, 6),
		MaxAppendableTracks:     utils.Uint16BE(buf, 8),
		CurrentAppendableTracks: utils.Uint16BE(buf, 10),
	}
}

// POWResources is disc information data type 010b, used by BD-R pseudo-overwrite.
type POWResources struct {
	DataLength            uint16
	RemainingReplacements uint32
	RemainingMapEntries   uint32
	RemainingUpdates      uint32
}

// DecodePOWResources decodes READ DISC INFORMATION data type 010b.
func DecodePOWResources(buf []byte) *POWResources {
	if len(buf) < 16 || !lengthMatches(buf) || dataType(buf) != DATA_TYPE_POW_RESOURCES {
		return nil
	}

	return &POWResources{
		DataLength:            utils.Uint16BE(buf, 0),
		RemainingReplacements: utils.Uint32BE(buf, 4),
		RemainingMapEntries:   utils.Uint32BE(buf, 8),
		RemainingUpdates:      utils.Uint32BE(buf, 12),
	}
}

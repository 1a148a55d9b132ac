// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package dvd

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/dswarbrick/optical/utils"
)

const (
	// Size of a DMI or security sector response, header included
	StructureSize = 2052

	// "XBOX" read as a little-endian uint32
	xbox360Signature = 0x584f4258

	// Earliest plausible Xbox mastering date, as a FILETIME
	xboxEpoch = 0x1bd164833dfc000

	// FILETIME ticks between 1601-01-01 and the Unix epoch
	filetimeUnixOffset = 116444736000000000
)

// DMI is disc manufacturing information. Only the raw block is kept for discs that are not Xbox
// game discs; its layout is manufacturer defined.
type DMI struct {
	DataLength uint16
	Raw        []byte
}

// DecodeDMI decodes READ DISC STRUCTURE format 04h.
func DecodeDMI(buf []byte) *DMI {
	if len(buf) < 4 {
		return nil
	}

	return &DMI{DataLength: utils.Uint16BE(buf, 0), Raw: buf[4:]}
}

// IsXbox reports whether buf is the DMI of an original Xbox game disc. The version must be 1, the
// catalogue number two letters, five digits and a letter, and the mastering timestamp no earlier
// than the Xbox itself.
func IsXbox(buf []byte) bool {
	if len(buf) != StructureSize {
		return false
	}

	if binary.LittleEndian.Uint32(buf[4:]) != 1 {
		return false
	}

	for i := 12; i < 14; i++ {
		if !isUpper(buf[i]) {
			return false
		}
	}

	for i := 14; i < 19; i++ {
		if buf[i] < '0' || buf[i] > '9' {
			return false
		}
	}

	if !isUpper(buf[19]) {
		return false
	}

	return int64(binary.LittleEndian.Uint64(buf[20:])) >= xboxEpoch
}

// IsXbox360 reports whether buf is the DMI of an Xbox 360 game disc.
func IsXbox360(buf []byte) bool {
	if len(buf) != StructureSize {
		return false
	}

	return binary.LittleEndian.Uint32(buf[0x7ec:]) == xbox360Signature
}

func isUpper(b byte) bool {
	return b >= 'A' && b <= 'Z'
}

// XboxDMI is the manufacturing information of an Xbox or Xbox 360 game disc.
type XboxDMI struct {
	Xbox360       bool
	Version       uint32
	Timestamp     time.Time
	MediaID       [16]byte
	CatalogNumber string
}

// DecodeXboxDMI decodes an Xbox or Xbox 360 DMI. It returns nil when buf carries neither
// signature.
func DecodeXboxDMI(buf []byte) *XboxDMI {
	var d XboxDMI

	switch {
	case IsXbox(buf):
		c := buf[12:20]
		d.CatalogNumber = fmt.Sprintf("%s-%s-%s", c[0:2], c[2:7], c[7:8])
	case IsXbox360(buf):
		d.Xbox360 = true
		d.CatalogNumber = utils.TrimASCII(buf[68:84])
	default:
		return nil
	}

	d.Version = binary.LittleEndian.Uint32(buf[4:])
	d.Timestamp = filetime(int64(binary.LittleEndian.Uint64(buf[20:])))
	copy(d.MediaID[:], buf[36:52])

	return &d
}

func filetime(ft int64) time.Time {
	ft -= filetimeUnixOffset
	return time.Unix(ft/1e7, (ft%1e7)*100).UTC()
}

func (d *XboxDMI) String() string {
	kind := "Xbox"
	if d.Xbox360 {
		kind = "Xbox 360"
	}

	return fmt.Sprintf("%s catalogue %s, mastered %s, media ID %x", kind, d.CatalogNumber,
		d.Timestamp.Format(time.RFC3339), d.MediaID)
}

// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Core, medium handling and read features.

package features

import (
	"github.com/dswarbrick/optical/utils"
)

// Physical interface standards reported by the Core feature
const (
	INTERFACE_UNSPECIFIED  = 0x00000000
	INTERFACE_SCSI         = 0x00000001
	INTERFACE_ATAPI        = 0x00000002
	INTERFACE_IEEE1394     = 0x00000003
	INTERFACE_IEEE1394A    = 0x00000004
	INTERFACE_FC           = 0x00000005
	INTERFACE_IEEE1394B    = 0x00000006
	INTERFACE_SERIAL_ATAPI = 0x00000007
	INTERFACE_USB          = 0x00000008
	INTERFACE_VENDOR       = 0x0000ffff
)

// Core is feature 0001h.
type Core struct {
	Header
	PhysicalInterface uint32
	// Device busy event (version 1)
	DBE bool
	// INQUIRY2 (version 2)
	INQ2 bool
}

func DecodeCore(desc []byte) *Core {
	h, ok := header(desc, FEATURE_CORE)
	if !ok || len(desc) < 8 {
		return nil
	}

	f := &Core{Header: h, PhysicalInterface: utils.Uint32BE(desc, 4)}

	if h.Version >= 1 && len(desc) >= 12 {
		f.DBE = bit(desc[8], 0)
	}

	if h.Version >= 2 && len(desc) >= 12 {
		f.INQ2 = bit(desc[8], 1)
	}

	return f
}

// Morphing is feature 0002h.
type Morphing struct {
	Header
	Async bool
	// Operational change request event (version 1)
	OCEvent bool
}

func DecodeMorphing(desc []byte) *Morphing {
	h, ok := header(desc, FEATURE_MORPHING)
	if !ok || len(desc) < 8 {
		return nil
	}

	f := &Morphing{Header: h, Async: bit(desc[4], 0)}

	if h.Version >= 1 {
		f.OCEvent = bit(desc[4], 1)
	}

	return f
}

// Loading mechanisms
const (
	LOADING_CADDY     = 0
	LOADING_TRAY      = 1
	LOADING_POPUP     = 2
	LOADING_CHANGER   = 4
	LOADING_CARTRIDGE = 5
)

// RemovableMedium is feature 0003h.
type RemovableMedium struct {
	Header
	LoadingMechanismType uint8
	// Load (version 2)
	Load          bool
	Eject         bool
	PreventJumper bool
	// Device busy media lock (version 2)
	DBML bool
	Lock bool
}

func DecodeRemovableMedium(desc []byte) *RemovableMedium {
	h, ok := header(desc, FEATURE_REMOVABLE_MEDIUM)
	if !ok || len(desc) < 8 {
		return nil
	}

	f := &RemovableMedium{
		Header:               h,
		LoadingMechanismType: (desc[4] & 0xe0) >> 5,
		Eject:                bit(desc[4], 3),
		PreventJumper:        bit(desc[4], 2),
		Lock:                 bit(desc[4], 0),
	}

	if h.Version >= 2 {
		f.Load = bit(desc[4], 4)
		f.DBML = bit(desc[4], 1)
	}

	return f
}

// WriteProtect is feature 0004h.
type WriteProtect struct {
	Header
	// Disable write protect (version 2)
	DWP bool
	// Write inhibit DCB (version 1)
	WDCB bool
	// Supports PWP (version 1)
	SPWP bool
	// Supports SWPP
	SSWPP bool
}

func DecodeWriteProtect(desc []byte) *WriteProtect {
	h, ok := header(desc, FEATURE_WRITE_PROTECT)
	if !ok || len(desc) < 8 {
		return nil
	}

	f := &WriteProtect{Header: h, SSWPP: bit(desc[4], 0)}

	if h.Version >= 1 {
		f.SPWP = bit(desc[4], 1)
		f.WDCB = bit(desc[4], 2)
	}

	if h.Version >= 2 {
		f.DWP = bit(desc[4], 3)
	}

	return f
}

// RandomReadable is feature 0010h.
type RandomReadable struct {
	Header
	LogicalBlockSize uint32
	Blocking         uint16
	// Page present
	PP bool
}

func DecodeRandomReadable(desc []byte) *RandomReadable {
	h, ok := header(desc, FEATURE_RANDOM_READABLE)
	if !ok || len(desc) < 12 {
		return nil
	}

	return &RandomReadable{
		Header:           h,
		LogicalBlockSize: utils.Uint32BE(desc, 4),
		Blocking:         utils.Uint16BE(desc, 8),
		PP:               bit(desc[10], 0),
	}
}

// DecodeMultiRead decodes feature 001Dh.
func DecodeMultiRead(desc []byte) *Simple {
	return decodeSimple(desc, FEATURE_MULTI_READ)
}

// CDRead is feature 001Eh.
type CDRead struct {
	Header
	// Digital audio play (version 2)
	DAP    bool
	C2     bool
	CDText bool
}

func DecodeCDRead(desc []byte) *CDRead {
	h, ok := header(desc, FEATURE_CD_READ)
	if !ok || len(desc) < 8 {
		return nil
	}

	f := &CDRead{
		Header: h,
		C2:     bit(desc[4], 1),
		CDText: bit(desc[4], 0),
	}

	if h.Version >= 2 {
		f.DAP = bit(desc[4], 7)
	}

	return f
}

// DVDRead is feature 001Fh.
type DVDRead struct {
	Header
	// DVD Multi 1.1 (version 1)
	MULTI110 bool
	// Dual layer DVD-R (version 1)
	DualR bool
	// Dual layer DVD-RW (version 2)
	DualRW bool
}

func DecodeDVDRead(desc []byte) *DVDRead {
	h, ok := header(desc, FEATURE_DVD_READ)
	if !ok {
		return nil
	}

	f := &DVDRead{Header: h}

	if h.Version >= 1 && len(desc) >= 8 {
		f.MULTI110 = bit(desc[4], 0)
		f.DualR = bit(desc[6], 0)
	}

	if h.Version >= 2 && len(desc) >= 8 {
		f.DualRW = bit(desc[6], 1)
	}

	return f
}

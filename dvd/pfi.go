// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Package dvd decodes READ DISC STRUCTURE responses for DVD, HD DVD and Xbox game discs.
//
// All offsets include the four byte READ DISC STRUCTURE header.
package dvd

import (
	"fmt"

	"github.com/dswarbrick/optical/media"
	"github.com/dswarbrick/optical/utils"
)

// Disk categories (book types) from PFI byte 4
const (
	CATEGORY_DVD_ROM        = 0x0
	CATEGORY_DVD_RAM        = 0x1
	CATEGORY_DVD_R          = 0x2
	CATEGORY_DVD_RW         = 0x3
	CATEGORY_HDDVD_ROM      = 0x4
	CATEGORY_HDDVD_RAM      = 0x5
	CATEGORY_HDDVD_R        = 0x6
	CATEGORY_HDDVD_RW       = 0x7
	CATEGORY_UMD            = 0x8
	CATEGORY_DVD_PLUS_RW    = 0x9
	CATEGORY_DVD_PLUS_R     = 0xa
	CATEGORY_DVD_PLUS_RW_DL = 0xd
	CATEGORY_DVD_PLUS_R_DL  = 0xe
	CATEGORY_NINTENDO       = 0xf
)

// Disc sizes from PFI byte 5
const (
	DISC_SIZE_120MM = 0
	DISC_SIZE_80MM  = 1
)

var categoryNames = map[uint8]string{
	CATEGORY_DVD_ROM:        "DVD-ROM",
	CATEGORY_DVD_RAM:        "DVD-RAM",
	CATEGORY_DVD_R:          "DVD-R",
	CATEGORY_DVD_RW:         "DVD-RW",
	CATEGORY_HDDVD_ROM:      "HD DVD-ROM",
	CATEGORY_HDDVD_RAM:      "HD DVD-RAM",
	CATEGORY_HDDVD_R:        "HD DVD-R",
	CATEGORY_HDDVD_RW:       "HD DVD-RW",
	CATEGORY_UMD:            "UMD",
	CATEGORY_DVD_PLUS_RW:    "DVD+RW",
	CATEGORY_DVD_PLUS_R:     "DVD+R",
	CATEGORY_DVD_PLUS_RW_DL: "DVD+RW DL",
	CATEGORY_DVD_PLUS_R_DL:  "DVD+R DL",
	CATEGORY_NINTENDO:       "Nintendo",
}

// PFI is the physical format information of a DVD family disc.
type PFI struct {
	DataLength uint16

	DiskCategory uint8
	PartVersion  uint8
	DiscSize     uint8
	MaximumRate  uint8

	// Number of layers minus one
	Layers    uint8
	TrackPath bool // opposite track path
	LayerType uint8

	LinearDensity uint8
	TrackDensity  uint8

	DataAreaStartPSN uint32
	DataAreaEndPSN   uint32
	Layer0EndPSN     uint32

	BCA bool
}

// DecodePFI decodes READ DISC STRUCTURE format 00h. It returns nil when the response is too
// short to hold the layer descriptor or its declared length disagrees with the buffer.
func DecodePFI(buf []byte) *PFI {
	if len(buf) < 21 || int(utils.Uint16BE(buf, 0))+2 != len(buf) {
		return nil
	}

	return decodeLayerDescriptor(buf)
}

func decodeLayerDescriptor(buf []byte) *PFI {
	return &PFI{
		DataLength:       utils.Uint16BE(buf, 0),
		DiskCategory:     buf[4] >> 4,
		PartVersion:      buf[4] & 0x0f,
		DiscSize:         buf[5] >> 4,
		MaximumRate:      buf[5] & 0x0f,
		Layers:           (buf[6] & 0x60) >> 5,
		TrackPath:        buf[6]&0x10 != 0,
		LayerType:        buf[6] & 0x0f,
		LinearDensity:    buf[7] >> 4,
		TrackDensity:     buf[7] & 0x0f,
		DataAreaStartPSN: utils.Uint24BE(buf, 9),
		DataAreaEndPSN:   utils.Uint24BE(buf, 13),
		Layer0EndPSN:     utils.Uint24BE(buf, 17),
		BCA:              buf[20]&0x80 != 0,
	}
}

// CategoryName returns the book type name of the disc.
func (p *PFI) CategoryName() string {
	if s, ok := categoryNames[p.DiskCategory]; ok {
		return s
	}

	return fmt.Sprintf("reserved category %#x", p.DiskCategory)
}

// MediaType maps the disk category and part version to a media type. The boolean is false for
// reserved categories.
func (p *PFI) MediaType() (media.Type, bool) {
	switch p.DiskCategory {
	case CATEGORY_DVD_ROM:
		return media.DVDROM, true
	case CATEGORY_DVD_RAM:
		return media.DVDRAM, true
	case CATEGORY_DVD_R:
		if p.PartVersion >= 6 {
			return media.DVDRDL, true
		}
		return media.DVDR, true
	case CATEGORY_DVD_RW:
		if p.PartVersion >= 15 {
			return media.DVDRWDL, true
		}
		return media.DVDRW, true
	case CATEGORY_HDDVD_ROM:
		return media.HDDVDROM, true
	case CATEGORY_HDDVD_RAM:
		return media.HDDVDRAM, true
	case CATEGORY_HDDVD_R:
		if p.Layers > 0 {
			return media.HDDVDRDL, true
		}
		return media.HDDVDR, true
	case CATEGORY_HDDVD_RW:
		if p.Layers > 0 {
			return media.HDDVDRWDL, true
		}
		return media.HDDVDRW, true
	case CATEGORY_UMD:
		return media.UMD, true
	case CATEGORY_DVD_PLUS_RW:
		return media.DVDPRW, true
	case CATEGORY_DVD_PLUS_R:
		return media.DVDPR, true
	case CATEGORY_DVD_PLUS_RW_DL:
		return media.DVDPRWDL, true
	case CATEGORY_DVD_PLUS_R_DL:
		return media.DVDPRDL, true
	case CATEGORY_NINTENDO:
		if p.DiscSize == DISC_SIZE_80MM {
			return media.GOD, true
		}
		return media.WOD, true
	}

	return media.Unknown, false
}

func (p *PFI) String() string {
	size := "120mm"
	if p.DiscSize == DISC_SIZE_80MM {
		size = "80mm"
	}

	return fmt.Sprintf("%s version %d, %s, %d layer(s), data area %#06x-%#06x, layer 0 end %#06x",
		p.CategoryName(), p.PartVersion, size, p.Layers+1, p.DataAreaStartPSN, p.DataAreaEndPSN,
		p.Layer0EndPSN)
}

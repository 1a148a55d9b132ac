// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Package media enumerates the media types a drive can hold.
package media

import (
	"fmt"
	"strings"
)

// Type is a classified media type.
type Type int

const (
	Unknown Type = iota

	// Compact Disc family
	CD
	CDDA
	CDG
	CDEG
	CDI
	CDIREADY
	CDMIDI
	CDMO
	CDPLUS
	CDR
	CDROM
	CDROMXA
	CDRW
	CDV
	DDCD
	DDCDR
	DDCDRW
	MEGACD
	PCD
	PS1CD
	PS2CD
	SATURNCD
	SVCD
	VCD
	VideoNow
	VideoNowColor
	VideoNowXp

	// DVD family
	DVDROM
	DVDR
	DVDRDL
	DVDRW
	DVDRWDL
	DVDRAM
	DVDPR
	DVDPRDL
	DVDPRW
	DVDPRWDL
	DVDDownload
	PS2DVD
	GOD
	WOD
	UMD
	XGD
	XGD2
	XGD3
	XGD4

	// HD DVD family
	HDDVDROM
	HDDVDR
	HDDVDRDL
	HDDVDRAM
	HDDVDRW
	HDDVDRWDL

	// Blu-ray family
	BDROM
	BDR
	BDRXL
	BDRE
	BDREXL

	// Magneto-optical and removable cartridges
	PD650
	PD650WORM
	REV35
	REV70
	REV120
	GENERIC_HDD
	FlashDrive
	UnknownMO
	ISO_15041_512
	ISO_10090
	ISO_13963
	ISO_14517
	ISO_15286
	DOS_35_HD
	DOS_35_DS_DD_9
	DOS_525_HD
	LS120
	LS240
	ZIP100
	ZIP250
	Jaz
	LTO
	LTO2
	LTO3
	DDS1
	DDS2
	DDS3
	DDS4
)

var typeNames = map[Type]string{
	Unknown:        "Unknown",
	CD:             "CD",
	CDDA:           "CD-DA",
	CDG:            "CD+G",
	CDEG:           "CD+EG",
	CDI:            "CD-i",
	CDIREADY:       "CD-i Ready",
	CDMIDI:         "CD+MIDI",
	CDMO:           "CD-MO",
	CDPLUS:         "CD+",
	CDR:            "CD-R",
	CDROM:          "CD-ROM",
	CDROMXA:        "CD-ROM XA",
	CDRW:           "CD-RW",
	CDV:            "CD-Video",
	DDCD:           "DDCD-ROM",
	DDCDR:          "DDCD-R",
	DDCDRW:         "DDCD-RW",
	MEGACD:         "Sega Mega CD",
	PCD:            "Photo CD",
	PS1CD:          "PlayStation CD",
	PS2CD:          "PlayStation 2 CD",
	SATURNCD:       "Sega Saturn CD",
	SVCD:           "Super Video CD",
	VCD:            "Video CD",
	VideoNow:       "VideoNow",
	VideoNowColor:  "VideoNow Color",
	VideoNowXp:     "VideoNow Xp",
	DVDROM:         "DVD-ROM",
	DVDR:           "DVD-R",
	DVDRDL:         "DVD-R DL",
	DVDRW:          "DVD-RW",
	DVDRWDL:        "DVD-RW DL",
	DVDRAM:         "DVD-RAM",
	DVDPR:          "DVD+R",
	DVDPRDL:        "DVD+R DL",
	DVDPRW:         "DVD+RW",
	DVDPRWDL:       "DVD+RW DL",
	DVDDownload:    "DVD-Download",
	PS2DVD:         "PlayStation 2 DVD",
	GOD:            "Nintendo GameCube Optical Disc",
	WOD:            "Nintendo Wii Optical Disc",
	UMD:            "Universal Media Disc",
	XGD:            "Xbox Game Disc",
	XGD2:           "Xbox 360 Game Disc",
	XGD3:           "Xbox 360 Game Disc (XGD3)",
	XGD4:           "Xbox One Game Disc",
	HDDVDROM:       "HD DVD-ROM",
	HDDVDR:         "HD DVD-R",
	HDDVDRDL:       "HD DVD-R DL",
	HDDVDRAM:       "HD DVD-RAM",
	HDDVDRW:        "HD DVD-RW",
	HDDVDRWDL:      "HD DVD-RW DL",
	BDROM:          "BD-ROM",
	BDR:            "BD-R",
	BDRXL:          "BD-R XL",
	BDRE:           "BD-RE",
	BDREXL:         "BD-RE XL",
	PD650:          "PD-650",
	PD650WORM:      "PD-650 WORM",
	REV35:          "REV 35GB",
	REV70:          "REV 70GB",
	REV120:         "REV 120GB",
	GENERIC_HDD:    "Generic hard disk",
	FlashDrive:     "Flash drive",
	UnknownMO:      "Unknown magneto-optical",
	ISO_15041_512:  "ISO/IEC 15041 3.5\" MO 512 bytes/sector",
	ISO_10090:      "ISO/IEC 10090 3.5\" MO 128MB",
	ISO_13963:      "ISO/IEC 13963 3.5\" MO 230MB",
	ISO_14517:      "ISO/IEC 14517 5.25\" MO",
	ISO_15286:      "ISO/IEC 15286 5.25\" MO",
	DOS_35_HD:      "3.5\" HD floppy",
	DOS_35_DS_DD_9: "3.5\" DD floppy",
	DOS_525_HD:     "5.25\" HD floppy",
	LS120:          "LS-120 SuperDisk",
	LS240:          "LS-240 SuperDisk",
	ZIP100:         "Iomega ZIP 100",
	ZIP250:         "Iomega ZIP 250",
	Jaz:            "Iomega Jaz",
	LTO:            "LTO Ultrium",
	LTO2:           "LTO-2 Ultrium",
	LTO3:           "LTO-3 Ultrium",
	DDS1:           "DDS",
	DDS2:           "DDS-2",
	DDS3:           "DDS-3",
	DDS4:           "DDS-4",
}

var typeIdents = func() map[string]Type {
	m := make(map[string]Type, len(typeNames))
	for t := range typeNames {
		m[strings.ToUpper(t.Ident())] = t
	}
	return m
}()

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}

	return fmt.Sprintf("Type(%d)", int(t))
}

// Ident returns a short identifier for the type, suitable for configuration files.
func (t Type) Ident() string {
	return identNames[t]
}

// ParseType looks up a type by its identifier, ignoring case.
func ParseType(s string) (Type, error) {
	if t, ok := typeIdents[strings.ToUpper(s)]; ok {
		return t, nil
	}

	return Unknown, fmt.Errorf("unknown media type %q", s)
}

// IsCD reports whether t belongs to the Compact Disc family.
func (t Type) IsCD() bool {
	return t >= CD && t <= VideoNowXp
}

// IsDVD reports whether t belongs to the DVD family, including console formats built on it.
func (t Type) IsDVD() bool {
	return t >= DVDROM && t <= XGD4
}

// IsHDDVD reports whether t belongs to the HD DVD family.
func (t Type) IsHDDVD() bool {
	return t >= HDDVDROM && t <= HDDVDRWDL
}

// IsBD reports whether t belongs to the Blu-ray family.
func (t Type) IsBD() bool {
	return t >= BDROM && t <= BDREXL
}

// IsXbox reports whether t is one of the Xbox game disc generations that carry a security sector.
func (t Type) IsXbox() bool {
	return t == XGD || t == XGD2 || t == XGD3
}

// identNames holds the configuration identifiers, which are the constant names.
var identNames = map[Type]string{
	Unknown:        "Unknown",
	CD:             "CD",
	CDDA:           "CDDA",
	CDG:            "CDG",
	CDEG:           "CDEG",
	CDI:            "CDI",
	CDIREADY:       "CDIREADY",
	CDMIDI:         "CDMIDI",
	CDMO:           "CDMO",
	CDPLUS:         "CDPLUS",
	CDR:            "CDR",
	CDROM:          "CDROM",
	CDROMXA:        "CDROMXA",
	CDRW:           "CDRW",
	CDV:            "CDV",
	DDCD:           "DDCD",
	DDCDR:          "DDCDR",
	DDCDRW:         "DDCDRW",
	MEGACD:         "MEGACD",
	PCD:            "PCD",
	PS1CD:          "PS1CD",
	PS2CD:          "PS2CD",
	SATURNCD:       "SATURNCD",
	SVCD:           "SVCD",
	VCD:            "VCD",
	VideoNow:       "VideoNow",
	VideoNowColor:  "VideoNowColor",
	VideoNowXp:     "VideoNowXp",
	DVDROM:         "DVDROM",
	DVDR:           "DVDR",
	DVDRDL:         "DVDRDL",
	DVDRW:          "DVDRW",
	DVDRWDL:        "DVDRWDL",
	DVDRAM:         "DVDRAM",
	DVDPR:          "DVDPR",
	DVDPRDL:        "DVDPRDL",
	DVDPRW:         "DVDPRW",
	DVDPRWDL:       "DVDPRWDL",
	DVDDownload:    "DVDDownload",
	PS2DVD:         "PS2DVD",
	GOD:            "GOD",
	WOD:            "WOD",
	UMD:            "UMD",
	XGD:            "XGD",
	XGD2:           "XGD2",
	XGD3:           "XGD3",
	XGD4:           "XGD4",
	HDDVDROM:       "HDDVDROM",
	HDDVDR:         "HDDVDR",
	HDDVDRDL:       "HDDVDRDL",
	HDDVDRAM:       "HDDVDRAM",
	HDDVDRW:        "HDDVDRW",
	HDDVDRWDL:      "HDDVDRWDL",
	BDROM:          "BDROM",
	BDR:            "BDR",
	BDRXL:          "BDRXL",
	BDRE:           "BDRE",
	BDREXL:         "BDREXL",
	PD650:          "PD650",
	PD650WORM:      "PD650WORM",
	REV35:          "REV35",
	REV70:          "REV70",
	REV120:         "REV120",
	GENERIC_HDD:    "GENERIC_HDD",
	FlashDrive:     "FlashDrive",
	UnknownMO:      "UnknownMO",
	ISO_15041_512:  "ISO_15041_512",
	ISO_10090:      "ISO_10090",
	ISO_13963:      "ISO_13963",
	ISO_14517:      "ISO_14517",
	ISO_15286:      "ISO_15286",
	DOS_35_HD:      "DOS_35_HD",
	DOS_35_DS_DD_9: "DOS_35_DS_DD_9",
	DOS_525_HD:     "DOS_525_HD",
	LS120:          "LS120",
	LS240:          "LS240",
	ZIP100:         "ZIP100",
	ZIP250:         "ZIP250",
	Jaz:            "Jaz",
	LTO:            "LTO",
	LTO2:           "LTO2",
	LTO3:           "LTO3",
	DDS1:           "DDS1",
	DDS2:           "DDS2",
	DDS3:           "DDS3",
	DDS4:           "DDS4",
}

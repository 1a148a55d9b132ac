// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package features

import (
	"fmt"

	"github.com/dswarbrick/optical/utils"
)

// MMC profiles
const (
	PROFILE_NONE           = 0x0000
	PROFILE_NON_REMOVABLE  = 0x0001
	PROFILE_REMOVABLE      = 0x0002
	PROFILE_MO_ERASABLE    = 0x0003
	PROFILE_MO_WRITE_ONCE  = 0x0004
	PROFILE_AS_MO          = 0x0005
	PROFILE_CD_ROM         = 0x0008
	PROFILE_CD_R           = 0x0009
	PROFILE_CD_RW          = 0x000a
	PROFILE_DVD_ROM        = 0x0010
	PROFILE_DVD_R          = 0x0011
	PROFILE_DVD_RAM        = 0x0012
	PROFILE_DVD_RW_RO      = 0x0013
	PROFILE_DVD_RW_SEQ     = 0x0014
	PROFILE_DVD_R_DL_SEQ   = 0x0015
	PROFILE_DVD_R_DL_JUMP  = 0x0016
	PROFILE_DVD_RW_DL      = 0x0017
	PROFILE_DVD_DOWNLOAD   = 0x0018
	PROFILE_DVD_PLUS_RW    = 0x001a
	PROFILE_DVD_PLUS_R     = 0x001b
	PROFILE_DDCD_ROM       = 0x0020
	PROFILE_DDCD_R         = 0x0021
	PROFILE_DDCD_RW        = 0x0022
	PROFILE_DVD_PLUS_RW_DL = 0x002a
	PROFILE_DVD_PLUS_R_DL  = 0x002b
	PROFILE_BD_ROM         = 0x0040
	PROFILE_BD_R_SRM       = 0x0041
	PROFILE_BD_R_RRM       = 0x0042
	PROFILE_BD_RE          = 0x0043
	PROFILE_HDDVD_ROM      = 0x0050
	PROFILE_HDDVD_R        = 0x0051
	PROFILE_HDDVD_RAM      = 0x0052
	PROFILE_HDDVD_RW       = 0x0053
	PROFILE_HDDVD_R_DL     = 0x0058
	PROFILE_HDDVD_RW_DL    = 0x005a
	PROFILE_HDBURN_ROM     = 0x0080
	PROFILE_HDBURN_R       = 0x0081
	PROFILE_HDBURN_RW      = 0x0082
	PROFILE_NOT_CONFORMING = 0xffff
)

var profileNames = map[uint16]string{
	PROFILE_NONE:           "no current profile",
	PROFILE_NON_REMOVABLE:  "non-removable disk",
	PROFILE_REMOVABLE:      "removable disk",
	PROFILE_MO_ERASABLE:    "magneto-optical erasable",
	PROFILE_MO_WRITE_ONCE:  "optical write once",
	PROFILE_AS_MO:          "advance storage magneto-optical",
	PROFILE_CD_ROM:         "CD-ROM",
	PROFILE_CD_R:           "CD-R",
	PROFILE_CD_RW:          "CD-RW",
	PROFILE_DVD_ROM:        "DVD-ROM",
	PROFILE_DVD_R:          "DVD-R sequential recording",
	PROFILE_DVD_RAM:        "DVD-RAM",
	PROFILE_DVD_RW_RO:      "DVD-RW restricted overwrite",
	PROFILE_DVD_RW_SEQ:     "DVD-RW sequential recording",
	PROFILE_DVD_R_DL_SEQ:   "DVD-R DL sequential recording",
	PROFILE_DVD_R_DL_JUMP:  "DVD-R DL layer jump recording",
	PROFILE_DVD_RW_DL:      "DVD-RW DL",
	PROFILE_DVD_DOWNLOAD:   "DVD-Download disc recording",
	PROFILE_DVD_PLUS_RW:    "DVD+RW",
	PROFILE_DVD_PLUS_R:     "DVD+R",
	PROFILE_DDCD_ROM:       "DDCD-ROM",
	PROFILE_DDCD_R:         "DDCD-R",
	PROFILE_DDCD_RW:        "DDCD-RW",
	PROFILE_DVD_PLUS_RW_DL: "DVD+RW DL",
	PROFILE_DVD_PLUS_R_DL:  "DVD+R DL",
	PROFILE_BD_ROM:         "BD-ROM",
	PROFILE_BD_R_SRM:       "BD-R sequential recording",
	PROFILE_BD_R_RRM:       "BD-R random recording",
	PROFILE_BD_RE:          "BD-RE",
	PROFILE_HDDVD_ROM:      "HD DVD-ROM",
	PROFILE_HDDVD_R:        "HD DVD-R",
	PROFILE_HDDVD_RAM:      "HD DVD-RAM",
	PROFILE_HDDVD_RW:       "HD DVD-RW",
	PROFILE_HDDVD_R_DL:     "HD DVD-R DL",
	PROFILE_HDDVD_RW_DL:    "HD DVD-RW DL",
	PROFILE_HDBURN_ROM:     "HDBurn CD-ROM",
	PROFILE_HDBURN_R:       "HDBurn CD-R",
	PROFILE_HDBURN_RW:      "HDBurn CD-RW",
	PROFILE_NOT_CONFORMING: "drive does not conform to any profile",
}

// ProfileName returns the name of an MMC profile.
func ProfileName(profile uint16) string {
	if name, ok := profileNames[profile]; ok {
		return name
	}

	return fmt.Sprintf("unknown profile %04Xh", profile)
}

type Profile struct {
	Number   uint16
	CurrentP bool
}

// ProfileList is feature 0000h.
type ProfileList struct {
	Header
	Profiles []Profile
}

func DecodeProfileList(desc []byte) *ProfileList {
	h, ok := header(desc, FEATURE_PROFILE_LIST)
	if !ok {
		return nil
	}

	f := &ProfileList{Header: h}

	for off := 4; off+4 <= len(desc); off += 4 {
		f.Profiles = append(f.Profiles, Profile{
			Number:   utils.Uint16BE(desc, off),
			CurrentP: bit(desc[off+2], 0),
		})
	}

	return f
}

// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package optical

import (
	"github.com/dswarbrick/optical/features"
	"github.com/dswarbrick/optical/media"
	"github.com/dswarbrick/optical/scsi"
)

// MODE SENSE medium types of removable disk cartridges
const (
	MEDIUM_TYPE_PD650 = 0x01
	MEDIUM_TYPE_REV   = 0x41

	pd650WormBlocks = 1281856
)

var profileMedia = map[uint16]media.Type{
	features.PROFILE_NON_REMOVABLE:  media.GENERIC_HDD,
	features.PROFILE_MO_ERASABLE:    media.UnknownMO,
	features.PROFILE_MO_WRITE_ONCE:  media.UnknownMO,
	features.PROFILE_AS_MO:          media.UnknownMO,
	features.PROFILE_CD_ROM:         media.CDROM,
	features.PROFILE_CD_R:           media.CDR,
	features.PROFILE_CD_RW:          media.CDRW,
	features.PROFILE_DVD_ROM:        media.DVDROM,
	features.PROFILE_DVD_R:          media.DVDR,
	features.PROFILE_DVD_RAM:        media.DVDRAM,
	features.PROFILE_DVD_RW_RO:      media.DVDRW,
	features.PROFILE_DVD_RW_SEQ:     media.DVDRW,
	features.PROFILE_DVD_R_DL_SEQ:   media.DVDRDL,
	features.PROFILE_DVD_R_DL_JUMP:  media.DVDRDL,
	features.PROFILE_DVD_RW_DL:      media.DVDRWDL,
	features.PROFILE_DVD_DOWNLOAD:   media.DVDDownload,
	features.PROFILE_DVD_PLUS_RW:    media.DVDPRW,
	features.PROFILE_DVD_PLUS_R:     media.DVDPR,
	features.PROFILE_DDCD_ROM:       media.DDCD,
	features.PROFILE_DDCD_R:         media.DDCDR,
	features.PROFILE_DDCD_RW:        media.DDCDRW,
	features.PROFILE_DVD_PLUS_RW_DL: media.DVDPRWDL,
	features.PROFILE_DVD_PLUS_R_DL:  media.DVDPRDL,
	features.PROFILE_BD_ROM:         media.BDROM,
	features.PROFILE_BD_R_SRM:       media.BDR,
	features.PROFILE_BD_R_RRM:       media.BDR,
	features.PROFILE_BD_RE:          media.BDRE,
	features.PROFILE_HDDVD_ROM:      media.HDDVDROM,
	features.PROFILE_HDDVD_R:        media.HDDVDR,
	features.PROFILE_HDDVD_RAM:      media.HDDVDRAM,
	features.PROFILE_HDDVD_RW:       media.HDDVDRW,
	features.PROFILE_HDDVD_R_DL:     media.HDDVDRDL,
	features.PROFILE_HDDVD_RW_DL:    media.HDDVDRWDL,
}

// REV cartridges are told apart by their exact block count
var revMedia = map[uint64]media.Type{
	58620544: media.REV120,
	17090880: media.REV35,
	34185728: media.REV70,
}

// classifyProfile makes the first guess from the drive's current profile.
func (r *Resolver) classifyProfile(dev scsi.Device, res *Result) {
	buf, err := dev.Execute(cmdConfiguration)
	if err != nil {
		r.log.Debug("get configuration failed", "err", err)
		return
	}

	res.Configuration, res.Features = features.DecodeAll(buf)
	profile := res.Configuration.CurrentProfile

	r.log.Debug("current profile", "profile", features.ProfileName(profile),
		"features", len(res.Features))

	if profile == features.PROFILE_REMOVABLE {
		res.MediaType = removableDiskMedia(res)
		return
	}

	if mt, ok := profileMedia[profile]; ok {
		res.MediaType = mt
	}
}

func removableDiskMedia(res *Result) media.Type {
	if res.ModeSense == nil {
		return media.Unknown
	}

	switch res.ModeSense.MediumType {
	case MEDIUM_TYPE_PD650:
		if res.Blocks == pd650WormBlocks {
			return media.PD650WORM
		}
		return media.PD650
	case MEDIUM_TYPE_REV:
		if mt, ok := revMedia[res.Blocks]; ok {
			return mt
		}
	}

	return media.Unknown
}

// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package optical

import "github.com/dswarbrick/optical/scsi"

// Commands issued by the resolver. Variable length responses leave Length zero so that the
// transport picks the allocation length.

var (
	cmdTestUnitReady  = scsi.Command{Op: scsi.OpTestUnitReady}
	cmdInquiry        = scsi.Command{Op: scsi.OpInquiry}
	cmdReadCapacity10 = scsi.Command{Op: scsi.OpReadCapacity10}
	cmdReadCapacity16 = scsi.Command{Op: scsi.OpReadCapacity16}
	cmdModeSense10    = scsi.Command{Op: scsi.OpModeSense10, Format: scsi.ALL_MODE_PAGES}
	cmdModeSense6     = scsi.Command{Op: scsi.OpModeSense6, Format: scsi.ALL_MODE_PAGES}
	cmdConfiguration  = scsi.Command{Op: scsi.OpGetConfiguration, Format: scsi.GET_CONFIG_ALL}
	cmdDiscInfo       = scsi.Command{Op: scsi.OpReadDiscInformation, Format: scsi.DISC_INFO_STANDARD}
	cmdMCN            = scsi.Command{Op: scsi.OpReadSubchannel, Format: scsi.SUBCHANNEL_MCN}

	cmdKreonExtractSS      = scsi.Command{Op: scsi.OpKreonExtractSS}
	cmdKreonLock           = scsi.Command{Op: scsi.OpKreonLock}
	cmdKreonUnlockXtreme   = scsi.Command{Op: scsi.OpKreonUnlockXtreme}
	cmdKreonUnlockWxripper = scsi.Command{Op: scsi.OpKreonUnlockWxripper}
)

func cmdReadToc(format uint8) scsi.Command {
	c := scsi.Command{Op: scsi.OpReadTocPmaAtip, Format: format}

	// Raw TOC is requested from the first session onwards
	if format == scsi.TOC_FORMAT_RAW {
		c.Track = 1
	}

	return c
}

func cmdISRC(track uint8) scsi.Command {
	return scsi.Command{Op: scsi.OpReadSubchannel, Format: scsi.SUBCHANNEL_ISRC, Track: track}
}

func cmdDiscStructure(format, layer uint8) scsi.Command {
	return scsi.Command{
		Op:        scsi.OpReadDiscStructure,
		Format:    format,
		Layer:     layer,
		MediaType: scsi.STRUCTURE_MEDIA_DVD,
	}
}

func cmdRead10(lba, blocks uint32) scsi.Command {
	return scsi.Command{Op: scsi.OpRead10, Address: lba, Length: blocks}
}

func cmdReadCd(sectorType uint8, lba, blocks uint32) scsi.Command {
	return scsi.Command{Op: scsi.OpReadCd, Format: sectorType, Address: lba, Length: blocks}
}

func cmdPlextorReadCdda(lba, blocks uint32) scsi.Command {
	return scsi.Command{Op: scsi.OpPlextorReadCdDa, Address: lba, Length: blocks}
}

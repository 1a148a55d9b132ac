// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package optical

import (
	"bytes"
	"strings"

	"github.com/lunixbochs/struc"

	"github.com/dswarbrick/optical/cd"
	"github.com/dswarbrick/optical/media"
	"github.com/dswarbrick/optical/scsi"
	"github.com/dswarbrick/optical/utils"
	"github.com/dswarbrick/optical/videonow"
)

const (
	isoSectorSize = 2048
	isoPVDSector  = 16

	// Video CD and Photo CD info files live at 00:04:00
	infoSector = 150

	// Largest root directory searched for SYSTEM.CNF, in sectors
	maxRootDirSectors = 16
)

// ISO 9660 directory record, fixed part
type isoDirRecord struct {
	Length        uint8
	ExtAttrLength uint8
	ExtentLE      uint32 `struc:"little"`
	ExtentBE      uint32 `struc:"big"`
	SizeLE        uint32 `struc:"little"`
	SizeBE        uint32 `struc:"big"`
	Recorded      [7]byte
	Flags         uint8
	UnitSize      uint8
	GapSize       uint8
	VolSeqLE      uint16 `struc:"little"`
	VolSeqBE      uint16 `struc:"big"`
	NameLength    uint8
}

const isoDirRecordLen = 33

var infoSignatures = []struct {
	magic string
	mt    media.Type
}{
	{"VIDEO_CD", media.VCD},
	{"SUPERVCD", media.SVCD},
	{"HQ-VCD  ", media.SVCD},
	{"PHOTO_CD", media.PCD},
}

// inspectContent looks at the data on the disc for console and video formats. Recordable media
// keep their classification.
func (r *Resolver) inspectContent(dev scsi.Device, res *Result) {
	switch res.MediaType {
	case media.CD, media.CDROM, media.CDROMXA:
		if t, ok := firstDataTrack(res.Tracks); ok {
			if mt, ok := r.inspectCDData(dev, t); ok {
				res.MediaType = mt
			}
		}
	case media.CDDA:
		if len(res.Tracks) > 0 && r.isVideoNowColor(dev, res.Tracks[0]) {
			res.MediaType = media.VideoNowColor
		}
	case media.DVDROM:
		if pvd, ok := readBlock(dev, isoPVDSector); ok && isPlayStation(pvd) {
			res.MediaType = media.PS2DVD
		}
	}
}

func firstDataTrack(tracks []cd.Track) (cd.Track, bool) {
	for _, t := range tracks {
		if t.Type != cd.TrackAudio {
			return t, true
		}
	}

	return cd.Track{}, false
}

func (r *Resolver) inspectCDData(dev scsi.Device, t cd.Track) (media.Type, bool) {
	start := uint32(t.IndexOne())
	read := func(lba uint32) ([]byte, bool) {
		return readCdUserData(dev, lba)
	}

	if boot, ok := read(start); ok {
		switch {
		case bytes.HasPrefix(boot, []byte("SEGA SEGASATURN")):
			return media.SATURNCD, true
		case bytes.HasPrefix(boot, []byte("SEGADISCSYSTEM")):
			return media.MEGACD, true
		}
	}

	if pvd, ok := read(start + isoPVDSector); ok && isPlayStation(pvd) {
		if cnf, ok := findRootFile(read, pvd, "SYSTEM.CNF"); ok && bytes.Contains(cnf, []byte("BOOT2")) {
			return media.PS2CD, true
		}
		return media.PS1CD, true
	}

	if info, ok := read(infoSector); ok {
		for _, sig := range infoSignatures {
			if bytes.HasPrefix(info, []byte(sig.magic)) {
				return sig.mt, true
			}
		}
	}

	return media.Unknown, false
}

func (r *Resolver) isVideoNowColor(dev scsi.Device, t cd.Track) bool {
	buf, err := dev.Execute(cmdReadCd(scsi.READ_CD_CDDA, uint32(t.IndexOne()), 1))
	if err != nil {
		r.log.Debug("reading first audio sector failed", "err", err)
		return false
	}

	return videonow.IsVideoNowColor(buf)
}

// readCdUserData reads one sector as raw data and returns its user data, falling back to a cooked
// read for drives that refuse READ CD.
func readCdUserData(dev scsi.Device, lba uint32) ([]byte, bool) {
	buf, err := dev.Execute(cmdReadCd(scsi.READ_CD_ALL_TYPES, lba, 1))
	if err != nil || len(buf) < cd.SectorSize {
		return readBlock(dev, lba)
	}

	h, ok := cd.Header(buf)
	if !ok {
		return nil, false
	}

	off := cd.UserDataOffset
	if h.Mode == 2 {
		// Mode 2 form 1 sub-header
		off += 8
	}

	return buf[off : off+isoSectorSize], true
}

func readBlock(dev scsi.Device, lba uint32) ([]byte, bool) {
	buf, err := dev.Execute(cmdRead10(lba, 1))
	if err != nil || len(buf) < isoSectorSize {
		return nil, false
	}

	return buf[:isoSectorSize], true
}

// isPlayStation checks for an ISO 9660 primary volume descriptor naming the PlayStation system.
func isPlayStation(pvd []byte) bool {
	if len(pvd) < 190 || pvd[0] != 1 || string(pvd[1:6]) != "CD001" {
		return false
	}

	return utils.TrimASCII(pvd[8:40]) == "PLAYSTATION"
}

func decodeDirRecord(buf []byte) (isoDirRecord, string, bool) {
	var rec isoDirRecord

	if len(buf) < isoDirRecordLen {
		return rec, "", false
	}

	if err := struc.Unpack(bytes.NewReader(buf[:isoDirRecordLen]), &rec); err != nil {
		return rec, "", false
	}

	if int(rec.Length) < isoDirRecordLen || int(rec.Length) > len(buf) ||
		isoDirRecordLen+int(rec.NameLength) > int(rec.Length) {
		return rec, "", false
	}

	return rec, string(buf[isoDirRecordLen : isoDirRecordLen+int(rec.NameLength)]), true
}

// findRootFile returns the first sector of a file in the root directory.
func findRootFile(read func(uint32) ([]byte, bool), pvd []byte, name string) ([]byte, bool) {
	root, _, ok := decodeDirRecord(pvd[156:190])
	if !ok {
		return nil, false
	}

	sectors := (root.SizeLE + isoSectorSize - 1) / isoSectorSize
	if sectors > maxRootDirSectors {
		sectors = maxRootDirSectors
	}

	for i := uint32(0); i < sectors; i++ {
		dir, ok := read(root.ExtentLE + i)
		if !ok {
			return nil, false
		}

		for off := 0; off < len(dir); {
			if dir[off] == 0 {
				// Records never span sectors; the rest is padding
				break
			}

			rec, id, ok := decodeDirRecord(dir[off:])
			if !ok {
				break
			}

			if strings.EqualFold(strings.TrimSuffix(id, ";1"), name) {
				return read(rec.ExtentLE)
			}

			off += int(rec.Length)
		}
	}

	return nil, false
}

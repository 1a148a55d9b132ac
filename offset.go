// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package optical

import (
	"bytes"
	"errors"

	"github.com/dswarbrick/optical/cd"
	"github.com/dswarbrick/optical/drivedb"
	"github.com/dswarbrick/optical/media"
	"github.com/dswarbrick/optical/scsi"
	"github.com/dswarbrick/optical/utils"
	"github.com/dswarbrick/optical/videonow"
)

const (
	// Blocks read elsewhere on the disc to evict the drive's read-ahead cache
	cacheFlushBlocks = 63

	// Shortest overlap accepted when aligning a data sector with the audio that follows it
	minAlignment = 16
)

// ErrOffsetUnknown is returned when no method could determine the read offset.
var ErrOffsetUnknown = errors.New("unable to determine read offset")

// DetectOffset returns the drive's combined read offset in bytes: positive when audio reads start
// ahead of the requested sector, negative when they start behind it. Divide by four for samples.
//
// Data sectors read as audio keep their sync pattern, and the header of the sector following it
// says which sector the drive actually returned. When the drive does not return data sectors
// scrambled, the offset can still be recovered where a data track is followed by audio.
//
// A read offset known for the drive family is returned without touching the disc. VideoNow Color
// discs are always measured, as their frames are located relative to the disc.
func (r *Resolver) DetectOffset(dev scsi.Device, tracks []cd.Track, drive drivedb.DriveModel, mt media.Type) (int, error) {
	if mt == media.VideoNowColor {
		if len(tracks) == 0 {
			return 0, ErrOffsetUnknown
		}
		return r.videoNowOffset(dev, drive, tracks[0])
	}

	if drive.ReadOffset != nil {
		r.log.Debug("using known drive offset", "family", drive.Family, "samples", *drive.ReadOffset)
		return *drive.ReadOffset * 4, nil
	}

	scrambled := drive.ScrambledRead || drive.PlextorReadCdda
	if r.scrambled != nil {
		scrambled = *r.scrambled
	}

	if t, ok := firstDataTrack(tracks); ok && scrambled {
		if off, ok := r.syncOffset(dev, drive, t.IndexOne(), 1); ok {
			return off, nil
		}
	}

	for i := 0; i+1 < len(tracks); i++ {
		data, audio := tracks[i], tracks[i+1]
		if data.Type == cd.TrackAudio || audio.Type != cd.TrackAudio || audio.StartSector != data.EndSector+1 {
			continue
		}

		if scrambled {
			if off, ok := r.syncOffset(dev, drive, data.EndSector-1, 2); ok {
				return off, nil
			}
		}

		if off, ok := r.alignmentOffset(dev, drive, data.EndSector, data.EndSector+1); ok {
			return off, nil
		}
	}

	return 0, ErrOffsetUnknown
}

func readAudio(dev scsi.Device, drive drivedb.DriveModel, lba int64, blocks uint32) ([]byte, error) {
	if drive.PlextorReadCdda {
		return dev.Execute(cmdPlextorReadCdda(uint32(lba), blocks))
	}

	return dev.Execute(cmdReadCd(scsi.READ_CD_CDDA, uint32(lba), blocks))
}

// syncOffset reads blocks sectors from lba as audio and locates the first sync pattern. The
// header that follows it names the sector found there.
func (r *Resolver) syncOffset(dev scsi.Device, drive drivedb.DriveModel, lba int64, blocks uint32) (int, bool) {
	if lba < 0 {
		return 0, false
	}

	if !drive.PlextorReadCdda {
		flush := int64(0)
		if lba < cacheFlushBlocks {
			flush = lba + 2*cacheFlushBlocks
		}

		if _, err := dev.Execute(cmdReadCd(scsi.READ_CD_CDDA, uint32(flush), cacheFlushBlocks)); err != nil {
			r.log.Debug("cache flush read failed", "lba", flush, "err", err)
		}
	}

	buf, err := readAudio(dev, drive, lba, blocks)
	if err != nil {
		r.log.Debug("reading data sector as audio failed", "lba", lba, "err", err)
		return 0, false
	}

	pos, ok := utils.FindPattern(buf, cd.SyncPattern)
	if !ok {
		return 0, false
	}

	h, ok := cd.ScrambledHeader(buf, pos)
	if !ok {
		return 0, false
	}

	diff := lba - h.LBA()
	r.log.Debug("sync found", "lba", lba, "pos", pos, "header_lba", h.LBA())

	return pos + cd.SectorSize*int(diff), true
}

// alignmentOffset compares the last data sector, scrambled again, with the first audio sector.
// A drive reading early returns the tail of the data sector ahead of the audio.
func (r *Resolver) alignmentOffset(dev scsi.Device, drive drivedb.DriveModel, dataLBA, audioLBA int64) (int, bool) {
	sector, err := dev.Execute(cmdReadCd(scsi.READ_CD_ALL_TYPES, uint32(dataLBA), 1))
	if err != nil || len(sector) < cd.SectorSize || !bytes.HasPrefix(sector, cd.SyncPattern) {
		r.log.Debug("reading last data sector failed", "lba", dataLBA, "err", err)
		return 0, false
	}

	scrambled := make([]byte, cd.SectorSize)
	copy(scrambled, sector)
	cd.Scramble(scrambled)

	audio, err := readAudio(dev, drive, audioLBA, 1)
	if err != nil {
		r.log.Debug("reading first audio sector failed", "lba", audioLBA, "err", err)
		return 0, false
	}

	n := len(audio)
	if n > cd.SectorSize-1 {
		n = cd.SectorSize - 1
	}

	for ; n >= minAlignment; n-- {
		if bytes.Equal(scrambled[cd.SectorSize-n:], audio[:n]) {
			return n, true
		}
	}

	return 0, false
}

func (r *Resolver) videoNowOffset(dev scsi.Device, drive drivedb.DriveModel, t cd.Track) (int, error) {
	buf, err := readAudio(dev, drive, t.IndexOne(), videonow.FrameSectors)
	if err != nil {
		return 0, err
	}

	off, ok := videonow.GetOffset(buf)
	if !ok {
		return 0, ErrOffsetUnknown
	}

	return off, nil
}

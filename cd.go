// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package optical

import (
	"github.com/dswarbrick/optical/cd"
	"github.com/dswarbrick/optical/discinfo"
	"github.com/dswarbrick/optical/media"
	"github.com/dswarbrick/optical/scsi"
)

// refineCD reads the CD structures. Without a TOC there is nothing on the disc to refine and the
// guess stands. Every other structure is optional.
func (r *Resolver) refineCD(dev scsi.Device, res *Result) {
	buf, err := dev.Execute(cmdReadToc(scsi.TOC_FORMAT_TOC))
	if err != nil {
		r.log.Debug("reading TOC failed", "err", err)
		return
	}

	if res.TOC = cd.DecodeTOC(buf); res.TOC == nil {
		r.log.Debug("invalid TOC", "len", len(buf))
		return
	}

	res.Tracks = cd.TracksFromTOC(res.TOC)

	if res.MediaType == media.Unknown {
		res.MediaType = media.CD
	}

	if buf, err := dev.Execute(cmdReadToc(scsi.TOC_FORMAT_ATIP)); err == nil {
		if res.ATIP = cd.DecodeATIP(buf); res.ATIP != nil {
			if res.ATIP.Rewritable() {
				res.MediaType = media.CDRW
			} else {
				res.MediaType = media.CDR
			}
		}
	}

	if buf, err := dev.Execute(cmdReadToc(scsi.TOC_FORMAT_SESSION)); err == nil {
		res.Session = cd.DecodeSession(buf)
	}

	if buf, err := dev.Execute(cmdReadToc(scsi.TOC_FORMAT_RAW)); err == nil {
		if res.FullTOC = cd.DecodeFullTOC(buf); res.FullTOC != nil {
			if tracks := cd.TracksFromFullTOC(res.FullTOC); len(tracks) > 0 {
				res.Tracks = tracks
			}
		}
	}

	if buf, err := dev.Execute(cmdReadToc(scsi.TOC_FORMAT_PMA)); err == nil {
		res.PMA = cd.DecodePMA(buf)
	}

	if buf, err := dev.Execute(cmdReadToc(scsi.TOC_FORMAT_CDTEXT)); err == nil {
		res.CDText = cd.DecodeCDText(buf)
	}

	if buf, err := dev.Execute(cmdMCN); err == nil {
		if mcn, ok := cd.DecodeMCN(buf); ok {
			res.MCN = mcn
		}
	}

	for _, t := range res.Tracks {
		if t.Type != cd.TrackAudio {
			continue
		}

		if buf, err := dev.Execute(cmdISRC(uint8(t.Sequence))); err == nil {
			if isrc, ok := cd.DecodeISRC(buf); ok {
				res.ISRCs[uint8(t.Sequence)] = isrc
			}
		}
	}

	decided := false
	if buf, err := dev.Execute(cmdDiscInfo); err == nil {
		if res.DiscInformation = discinfo.DecodeStandard(buf); res.DiscInformation != nil {
			decided = r.discTypeFromInformation(res)
		}
	}

	if res.ATIP == nil && !decided {
		r.classifyTracks(res)
	}

	r.log.Debug("CD structures read", "tracks", len(res.Tracks), "atip", res.ATIP != nil,
		"full_toc", res.FullTOC != nil, "cd_text", res.CDText != nil, "mcn", res.MCN)
}

// discTypeFromInformation applies the disc type byte of the disc information to pressed discs.
func (r *Resolver) discTypeFromInformation(res *Result) bool {
	if res.MediaType != media.CD && res.MediaType != media.CDROM {
		return false
	}

	switch res.DiscInformation.DiscType {
	case discinfo.DISC_TYPE_CDI:
		res.MediaType = media.CDI
		return true
	case discinfo.DISC_TYPE_CDROMXA:
		res.MediaType = media.CDROMXA
		return true
	}

	return false
}

// classifyTracks tells audio discs, data discs and Enhanced CDs (audio session followed by a data
// session) apart by their track layout.
func (r *Resolver) classifyTracks(res *Result) {
	if res.MediaType != media.CD && res.MediaType != media.CDROM {
		return
	}

	var audio, data int
	firstSession := uint16(0)
	audioFirst := true

	for _, t := range res.Tracks {
		if firstSession == 0 {
			firstSession = t.Session
		}

		if t.Type == cd.TrackAudio {
			audio++
			if t.Session != firstSession {
				audioFirst = false
			}
		} else {
			data++
			if t.Session == firstSession {
				audioFirst = false
			}
		}
	}

	switch {
	case audio > 0 && data == 0:
		res.MediaType = media.CDDA
	case audio > 0 && data > 0 && audioFirst:
		res.MediaType = media.CDPLUS
	case data > 0:
		res.MediaType = media.CDROM
	}
}

// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// READ TOC/PMA/ATIP formats 0000b, 0001b and 0011b.

package cd

import (
	"github.com/dswarbrick/optical/utils"
)

// validLength applies the length gate shared by all READ TOC/PMA/ATIP responses: the buffer must
// hold more than the header, and the declared data length must cover exactly the remainder.
func validLength(buf []byte) bool {
	return len(buf) > 4 && int(utils.Uint16BE(buf, 0))+2 == len(buf)
}

type TOCTrack struct {
	ADR          uint8
	Control      uint8
	TrackNumber  uint8
	StartAddress uint32
}

type TOC struct {
	DataLength uint16
	FirstTrack uint8
	LastTrack  uint8
	Tracks     []TOCTrack
}

func decodeTrackDescriptors(buf []byte, dataLength uint16) []TOCTrack {
	tracks := make([]TOCTrack, 0, (int(dataLength)-2)/8)

	for off := 4; off+8 <= len(buf); off += 8 {
		tracks = append(tracks, TOCTrack{
			ADR:          buf[off+1] >> 4,
			Control:      buf[off+1] & 0x0f,
			TrackNumber:  buf[off+2],
			StartAddress: utils.Uint32BE(buf, off+4),
		})
	}

	return tracks
}

// DecodeTOC decodes a READ TOC format 0000b response. It returns nil if the response fails the
// length gate. ADR and CONTROL values are not validated.
func DecodeTOC(buf []byte) *TOC {
	if !validLength(buf) {
		return nil
	}

	toc := &TOC{
		DataLength: utils.Uint16BE(buf, 0),
		FirstTrack: buf[2],
		LastTrack:  buf[3],
	}
	toc.Tracks = decodeTrackDescriptors(buf, toc.DataLength)

	return toc
}

// LeadOut returns the lead-out descriptor, if present.
func (t *TOC) LeadOut() (TOCTrack, bool) {
	for _, tr := range t.Tracks {
		if tr.TrackNumber == LeadOutTrack {
			return tr, true
		}
	}

	return TOCTrack{}, false
}

// HasDataTrack reports whether any track has the data flag set.
func (t *TOC) HasDataTrack() bool {
	for _, tr := range t.Tracks {
		if tr.TrackNumber != LeadOutTrack && tr.Control&FlagDataTrack != 0 {
			return true
		}
	}

	return false
}

// HasAudioTrack reports whether any track is an audio track.
func (t *TOC) HasAudioTrack() bool {
	for _, tr := range t.Tracks {
		if tr.TrackNumber != LeadOutTrack && tr.Control&FlagDataTrack == 0 {
			return true
		}
	}

	return false
}

// Session is a READ TOC format 0001b response. Tracks holds the descriptor of the first track in
// the last complete session.
type Session struct {
	DataLength           uint16
	FirstCompleteSession uint8
	LastCompleteSession  uint8
	Tracks               []TOCTrack
}

// DecodeSession decodes a READ TOC format 0001b response.
func DecodeSession(buf []byte) *Session {
	if !validLength(buf) {
		return nil
	}

	s := &Session{
		DataLength:           utils.Uint16BE(buf, 0),
		FirstCompleteSession: buf[2],
		LastCompleteSession:  buf[3],
	}
	s.Tracks = decodeTrackDescriptors(buf, s.DataLength)

	return s
}

type PMADescriptor struct {
	ADR     uint8
	Control uint8
	TNO     uint8
	Point   uint8
	Min     uint8
	Sec     uint8
	Frame   uint8
	Hour    uint8
	PHour   uint8
	PMin    uint8
	PSec    uint8
	PFrame  uint8
}

type PMA struct {
	DataLength  uint16
	Descriptors []PMADescriptor
}

// DecodePMA decodes a READ TOC format 0011b response. Descriptors are 11 bytes each.
func DecodePMA(buf []byte) *PMA {
	if !validLength(buf) {
		return nil
	}

	pma := &PMA{DataLength: utils.Uint16BE(buf, 0)}

	for off := 4; off+11 <= len(buf); off += 11 {
		pma.Descriptors = append(pma.Descriptors, PMADescriptor{
			ADR:     buf[off+1] >> 4,
			Control: buf[off+1] & 0x0f,
			TNO:     buf[off+2],
			Point:   buf[off+3],
			Min:     buf[off+4],
			Sec:     buf[off+5],
			Frame:   buf[off+6],
			Hour:    buf[off+7] >> 4,
			PHour:   buf[off+7] & 0x0f,
			PMin:    buf[off+8],
			PSec:    buf[off+9],
			PFrame:  buf[off+10],
		})
	}

	return pma
}

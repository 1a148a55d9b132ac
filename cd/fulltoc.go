// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// READ TOC format 0010b (full TOC).

package cd

import (
	"encoding/binary"

	"github.com/dswarbrick/optical/utils"
)

// Full TOC POINT values
const (
	POINT_FIRST_TRACK         = 0xa0
	POINT_LAST_TRACK          = 0xa1
	POINT_LEAD_OUT            = 0xa2
	POINT_NEXT_PROGRAM_AREA   = 0xb0
	POINT_SKIP_INTERVAL_PTRS  = 0xb1
	POINT_SKIP_TRACKS_FIRST   = 0xb2
	POINT_SKIP_TRACKS_LAST    = 0xb4
	POINT_ATIP_MIRROR         = 0xc0
	POINT_ATIP_ADDITIONAL     = 0xc1
	POINT_DVD_BOOK_TYPE       = 0xf0
	POINT_FIRST_SKIP_INTERVAL = 0x01
	POINT_LAST_SKIP_INTERVAL  = 0x40
)

const fullTOCDescriptorLen = 11

type FullTOCDescriptor struct {
	SessionNumber uint8
	ADR           uint8
	Control       uint8
	TNO           uint8
	Point         uint8
	Min           uint8
	Sec           uint8
	Frame         uint8
	Zero          uint8
	Hour          uint8
	PHour         uint8
	PMin          uint8
	PSec          uint8
	PFrame        uint8
}

type FullTOC struct {
	DataLength           uint16
	FirstCompleteSession uint8
	LastCompleteSession  uint8
	Descriptors          []FullTOCDescriptor
}

// DecodeFullTOC decodes a full TOC response. Descriptors are returned in wire order.
func DecodeFullTOC(buf []byte) *FullTOC {
	if !validLength(buf) {
		return nil
	}

	toc := &FullTOC{
		DataLength:           utils.Uint16BE(buf, 0),
		FirstCompleteSession: buf[2],
		LastCompleteSession:  buf[3],
	}

	for off := 4; off+fullTOCDescriptorLen <= len(buf); off += fullTOCDescriptorLen {
		toc.Descriptors = append(toc.Descriptors, FullTOCDescriptor{
			SessionNumber: buf[off],
			ADR:           buf[off+1] >> 4,
			Control:       buf[off+1] & 0x0f,
			TNO:           buf[off+2],
			Point:         buf[off+3],
			Min:           buf[off+4],
			Sec:           buf[off+5],
			Frame:         buf[off+6],
			Zero:          buf[off+7],
			Hour:          buf[off+7] >> 4,
			PHour:         buf[off+7] & 0x0f,
			PMin:          buf[off+8],
			PSec:          buf[off+9],
			PFrame:        buf[off+10],
		})
	}

	return toc
}

// Encode returns the wire form of the full TOC. The data length is recomputed from the number of
// descriptors.
func (t *FullTOC) Encode() []byte {
	buf := make([]byte, 4+len(t.Descriptors)*fullTOCDescriptorLen)

	binary.BigEndian.PutUint16(buf, uint16(len(buf)-2))
	buf[2] = t.FirstCompleteSession
	buf[3] = t.LastCompleteSession

	for i, d := range t.Descriptors {
		off := 4 + i*fullTOCDescriptorLen
		buf[off] = d.SessionNumber
		buf[off+1] = d.ADR<<4 | d.Control&0x0f
		buf[off+2] = d.TNO
		buf[off+3] = d.Point
		buf[off+4] = d.Min
		buf[off+5] = d.Sec
		buf[off+6] = d.Frame
		buf[off+7] = d.Hour<<4 | d.PHour&0x0f
		buf[off+8] = d.PMin
		buf[off+9] = d.PSec
		buf[off+10] = d.PFrame
	}

	return buf
}

func trackControl(t Track, trackFlags map[uint32]uint8) uint8 {
	if flags, ok := trackFlags[t.Sequence]; ok {
		return flags
	}

	if t.Type != TrackAudio {
		return FlagDataTrack
	}

	return 0
}

// CreateFullTOC synthesises a full TOC from a track list. trackFlags holds explicit CONTROL values
// keyed by track sequence. With createC0Entry set, a 0xC0 descriptor mirroring typical ATIP values
// follows each 0xB0 descriptor, as some burning software writes one.
func CreateFullTOC(tracks []Track, trackFlags map[uint32]uint8, createC0Entry bool) *FullTOC {
	sorted := sortTracks(tracks)
	toc := &FullTOC{}

	if len(sorted) == 0 {
		return toc
	}

	// First and last track of every session
	sessionFirst := make(map[uint16]Track)
	sessionLast := make(map[uint16]Track)

	for _, t := range sorted {
		if _, ok := sessionFirst[t.Session]; !ok {
			sessionFirst[t.Session] = t
		}
		sessionLast[t.Session] = t
	}

	toc.FirstCompleteSession = uint8(sorted[0].Session)
	toc.LastCompleteSession = uint8(sorted[len(sorted)-1].Session)

	var currentSession uint16

	for i, t := range sorted {
		if i == 0 || t.Session != currentSession {
			if i > 0 {
				am, as, af := LbaToMsf(t.StartSector - LeadInOffset)
				pm, ps, pf := LbaToMsf(sorted[len(sorted)-1].StartSector)

				toc.Descriptors = append(toc.Descriptors, FullTOCDescriptor{
					SessionNumber: uint8(currentSession),
					ADR:           5,
					Point:         POINT_NEXT_PROGRAM_AREA,
					Min:           am,
					Sec:           as,
					Frame:         af,
					Zero:          2,
					PHour:         2,
					PMin:          pm,
					PSec:          ps,
					PFrame:        pf,
				})

				if createC0Entry {
					toc.Descriptors = append(toc.Descriptors, FullTOCDescriptor{
						SessionNumber: uint8(currentSession),
						ADR:           5,
						Point:         POINT_ATIP_MIRROR,
						Min:           128,
						PMin:          97,
						PSec:          25,
					})
				}
			}

			currentSession = t.Session
			first, last := sessionFirst[currentSession], sessionLast[currentSession]
			lm, ls, lf := LbaToMsf(last.EndSector + 1)

			toc.Descriptors = append(toc.Descriptors,
				FullTOCDescriptor{
					SessionNumber: uint8(currentSession),
					ADR:           1,
					Control:       trackControl(first, trackFlags),
					Point:         POINT_FIRST_TRACK,
					PMin:          uint8(first.Sequence),
				},
				FullTOCDescriptor{
					SessionNumber: uint8(currentSession),
					ADR:           1,
					Control:       trackControl(first, trackFlags),
					Point:         POINT_LAST_TRACK,
					PMin:          uint8(last.Sequence),
				},
				FullTOCDescriptor{
					SessionNumber: uint8(currentSession),
					ADR:           1,
					Control:       trackControl(first, trackFlags),
					Point:         POINT_LEAD_OUT,
					PMin:          lm,
					PSec:          ls,
					PFrame:        lf,
				},
			)
		}

		pm, ps, pf := LbaToMsf(t.IndexOne())

		toc.Descriptors = append(toc.Descriptors, FullTOCDescriptor{
			SessionNumber: uint8(t.Session),
			ADR:           1,
			Control:       trackControl(t, trackFlags),
			Point:         uint8(t.Sequence),
			PMin:          pm,
			PSec:          ps,
			PFrame:        pf,
		})
	}

	toc.DataLength = uint16(len(toc.Descriptors)*fullTOCDescriptorLen + 2)

	return toc
}

// TracksFromFullTOC rebuilds a track list from the ADR 1 track descriptors of a full TOC. Each
// track ends where the next one in its session starts, or at that session's lead-out.
func TracksFromFullTOC(toc *FullTOC) []Track {
	var tracks []Track

	if toc == nil {
		return nil
	}

	leadOuts := make(map[uint16]int64)

	for _, d := range toc.Descriptors {
		if d.ADR != 1 && d.ADR != 4 {
			continue
		}

		switch {
		case d.Point == POINT_LEAD_OUT:
			leadOuts[uint16(d.SessionNumber)] = MsfToLba(d.PMin, d.PSec, d.PFrame)
		case d.Point >= 0x01 && d.Point <= 0x63:
			start := MsfToLba(d.PMin, d.PSec, d.PFrame)
			tracks = append(tracks, Track{
				Session:     uint16(d.SessionNumber),
				Sequence:    uint32(d.Point),
				Type:        controlToType(d.Control),
				StartSector: start,
				Indexes:     map[uint16]int64{1: start},
			})
		}
	}

	tracks = sortTracks(tracks)
	for i := range tracks {
		if i+1 < len(tracks) && tracks[i+1].Session == tracks[i].Session {
			tracks[i].EndSector = tracks[i+1].StartSector - 1
		} else if lo, ok := leadOuts[tracks[i].Session]; ok {
			tracks[i].EndSector = lo - 1
		}
	}

	return tracks
}

// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package cd

import (
	"sort"
)

// Track control flags, as carried in the CONTROL nibble of TOC and Q-channel data
const (
	FlagPreEmphasis   = 0x01
	FlagCopyPermitted = 0x02
	FlagDataTrack     = 0x04
	FlagFourChannel   = 0x08
)

// Lead-out track number in TOC responses
const LeadOutTrack = 0xaa

type TrackType int

const (
	TrackAudio TrackType = iota
	TrackData
	TrackMode1
	TrackMode2Formless
	TrackMode2Form1
	TrackMode2Form2
)

var trackTypeNames = map[TrackType]string{
	TrackAudio:         "audio",
	TrackData:          "data",
	TrackMode1:         "mode 1",
	TrackMode2Formless: "mode 2",
	TrackMode2Form1:    "mode 2 form 1",
	TrackMode2Form2:    "mode 2 form 2",
}

func (t TrackType) String() string {
	return trackTypeNames[t]
}

// Track describes one track of a disc layout. Sector addresses are LBAs. Indexes maps an index
// number to the LBA at which it starts.
type Track struct {
	Session     uint16
	Sequence    uint32
	Type        TrackType
	StartSector int64
	EndSector   int64
	Pregap      int64
	Indexes     map[uint16]int64
}

// IndexOne returns the start of index 1, or StartSector if the track has no such index.
func (t Track) IndexOne() int64 {
	if lba, ok := t.Indexes[1]; ok {
		return lba
	}

	return t.StartSector
}

// sortTracks returns a copy of tracks ordered by session, then sequence.
func sortTracks(tracks []Track) []Track {
	sorted := make([]Track, len(tracks))
	copy(sorted, tracks)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Session != sorted[j].Session {
			return sorted[i].Session < sorted[j].Session
		}
		return sorted[i].Sequence < sorted[j].Sequence
	})

	return sorted
}

func controlToType(control uint8) TrackType {
	if control&FlagDataTrack != 0 {
		return TrackData
	}

	return TrackAudio
}

// TracksFromTOC builds a single session track list from an LBA addressed TOC. The lead-out entry
// bounds the last track.
func TracksFromTOC(toc *TOC) []Track {
	var tracks []Track

	if toc == nil {
		return nil
	}

	leadOut := int64(-1)
	for _, t := range toc.Tracks {
		if t.TrackNumber == LeadOutTrack {
			leadOut = int64(int32(t.StartAddress))
			continue
		}

		start := int64(int32(t.StartAddress))
		tracks = append(tracks, Track{
			Session:     1,
			Sequence:    uint32(t.TrackNumber),
			Type:        controlToType(t.Control),
			StartSector: start,
			Indexes:     map[uint16]int64{1: start},
		})
	}

	tracks = sortTracks(tracks)
	for i := range tracks {
		if i+1 < len(tracks) {
			tracks[i].EndSector = tracks[i+1].StartSector - 1
		} else if leadOut > 0 {
			tracks[i].EndSector = leadOut - 1
		}
	}

	return tracks
}

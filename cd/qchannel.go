// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Q subchannel interpretation and synthesis.

package cd

import (
	"fmt"
	"strings"

	"github.com/dswarbrick/optical/utils"
)

// Q modes, from the ADR nibble
const (
	ADR_POSITION  = 1
	ADR_MCN       = 2
	ADR_ISRC      = 3
	ADR_RECORDING = 5
	ADR_DISC_ID   = 6
)

type QKind int

const (
	QUnknown QKind = iota
	QTrackPosition
	QLeadOutPosition
	QFirstTrack
	QLastTrack
	QLeadOutStart
	QLeadInTrackPointer
	QNextProgramArea
	QSkipIntervalPointers
	QSkipTracks
	QAtipMirror
	QAtipAdditional
	QSkipInterval
	QDiscID
	QMCN
	QISRC
)

var qKindNames = map[QKind]string{
	QUnknown:              "unknown",
	QTrackPosition:        "track position",
	QLeadOutPosition:      "lead-out position",
	QFirstTrack:           "first track",
	QLastTrack:            "last track",
	QLeadOutStart:         "lead-out start",
	QLeadInTrackPointer:   "track pointer",
	QNextProgramArea:      "next program area",
	QSkipIntervalPointers: "skip interval pointers",
	QSkipTracks:           "skip track assignments",
	QAtipMirror:           "ATIP values",
	QAtipAdditional:       "additional ATIP values",
	QSkipInterval:         "skip interval",
	QDiscID:               "disc identification",
	QMCN:                  "media catalogue number",
	QISRC:                 "ISRC",
}

func (k QKind) String() string {
	return qKindNames[k]
}

// QDescription is the interpretation of one Q block. Which of the numeric fields are meaningful
// depends on Kind. Min/Sec/Frame hold the running time (relative time in the program area) and
// PMin/PSec/PFrame the pointer or absolute time.
type QDescription struct {
	Kind    QKind
	Raw     [12]byte
	ADR     uint8
	Control uint8
	LBA     int64
	CRCOk   bool

	Audio       bool
	FourChannel bool
	// PreEmphasis on audio tracks, incremental recording on data tracks
	PreEmphasis   bool
	CopyPermitted bool

	Track  uint8
	Index  uint8
	Point  uint8
	Min    uint8
	Sec    uint8
	Frame  uint8
	Zero   uint8
	PMin   uint8
	PSec   uint8
	PFrame uint8

	MCN  string
	ISRC string
}

// QMcn decodes the 13 digit media catalogue number from a mode 2 Q block.
func QMcn(q []byte) string {
	return utils.McnDigits(q[1:8], 13)
}

// QIsrc decodes the ISRC from a mode 3 Q block: five 6 bit characters followed by seven BCD
// digits.
func QIsrc(q []byte) string {
	codes := [5]byte{
		q[1] >> 2,
		(q[1]&0x03)<<4 | q[2]>>4,
		(q[2]&0x0f)<<2 | q[3]>>6,
		q[3] & 0x3f,
		q[4] >> 2,
	}

	var sb strings.Builder
	for _, c := range codes {
		sb.WriteString(utils.IsrcChar(c))
	}
	sb.WriteString(utils.McnDigits(q[5:9], 7))

	return sb.String()
}

// DescribeQ interprets a 12 byte Q block read at lba. Negative addresses are in the lead-in. With
// isBcd set the numeric fields are converted from BCD; MCN and ISRC are always decoded from the
// raw bytes. The CRC is checked against the block as given.
func DescribeQ(q [12]byte, isBcd bool, lba int64) QDescription {
	num := func(b byte) byte {
		if isBcd {
			return utils.BcdToBinary(b)
		}
		return b
	}

	d := QDescription{
		Raw:           q,
		ADR:           q[0] & 0x0f,
		Control:       q[0] >> 4,
		LBA:           lba,
		CRCOk:         utils.Crc16Matches(q[:], 10),
		Min:           num(q[3]),
		Sec:           num(q[4]),
		Frame:         num(q[5]),
		Zero:          q[6],
		PMin:          num(q[7]),
		PSec:          num(q[8]),
		PFrame:        num(q[9]),
		Audio:         q[0]&0x40 == 0,
		FourChannel:   q[0]&0x80 != 0,
		PreEmphasis:   q[0]&0x10 != 0,
		CopyPermitted: q[0]&0x20 != 0,
	}

	point := q[2]
	if point < 0xa0 {
		point = num(point)
	}

	switch d.ADR {
	case ADR_POSITION:
		if lba < 0 {
			d.Track = num(q[1])
			d.Point = point

			switch q[2] {
			case POINT_FIRST_TRACK:
				d.Kind = QFirstTrack
			case POINT_LAST_TRACK:
				d.Kind = QLastTrack
			case POINT_LEAD_OUT:
				d.Kind = QLeadOutStart
			default:
				if q[2] < 0xa0 && point >= 1 && point <= 99 {
					d.Kind = QLeadInTrackPointer
				}
			}
		} else {
			d.Track = num(q[1])
			d.Index = num(q[2])
			d.Kind = QTrackPosition

			if q[1] == LeadOutTrack {
				d.Track = LeadOutTrack
				d.Kind = QLeadOutPosition
			}
		}
	case ADR_MCN:
		d.Kind = QMCN
		d.MCN = QMcn(q[:])
		d.PFrame = num(q[9])
	case ADR_ISRC:
		d.Kind = QISRC
		d.ISRC = QIsrc(q[:])
		d.PFrame = num(q[9])
	case ADR_RECORDING:
		if lba >= 0 {
			break
		}

		d.Point = point

		switch {
		case q[2] == POINT_NEXT_PROGRAM_AREA:
			d.Kind = QNextProgramArea
		case q[2] == POINT_SKIP_INTERVAL_PTRS:
			d.Kind = QSkipIntervalPointers
		case q[2] >= POINT_SKIP_TRACKS_FIRST && q[2] <= POINT_SKIP_TRACKS_LAST:
			d.Kind = QSkipTracks
		case q[2] == POINT_ATIP_MIRROR:
			d.Kind = QAtipMirror
		case q[2] == POINT_ATIP_ADDITIONAL:
			d.Kind = QAtipAdditional
		case q[2] < 0xa0 && point >= 1 && point <= 40:
			d.Kind = QSkipInterval
		}
	case ADR_DISC_ID:
		d.Kind = QDiscID
	}

	return d
}

func (d QDescription) controlString() string {
	var parts []string

	if d.Audio {
		if d.FourChannel {
			parts = append(parts, "quadraphonic audio")
		} else {
			parts = append(parts, "stereo audio")
		}
		if d.PreEmphasis {
			parts = append(parts, "pre-emphasis")
		}
	} else {
		parts = append(parts, "data")
		if d.PreEmphasis {
			parts = append(parts, "incremental")
		}
	}

	if d.CopyPermitted {
		parts = append(parts, "copy permitted")
	} else {
		parts = append(parts, "copy prohibited")
	}

	return strings.Join(parts, ", ")
}

func (d QDescription) String() string {
	var s string

	switch d.Kind {
	case QTrackPosition:
		s = fmt.Sprintf("track %d index %d, relative %02d:%02d:%02d, absolute %02d:%02d:%02d, %s",
			d.Track, d.Index, d.Min, d.Sec, d.Frame, d.PMin, d.PSec, d.PFrame, d.controlString())
	case QLeadOutPosition:
		s = fmt.Sprintf("lead-out, relative %02d:%02d:%02d, absolute %02d:%02d:%02d",
			d.Min, d.Sec, d.Frame, d.PMin, d.PSec, d.PFrame)
	case QFirstTrack:
		s = fmt.Sprintf("first track %d, disc type %d, %s", d.PMin, d.PSec, d.controlString())
	case QLastTrack:
		s = fmt.Sprintf("last track %d, %s", d.PMin, d.controlString())
	case QLeadOutStart:
		s = fmt.Sprintf("lead-out starts at %02d:%02d:%02d", d.PMin, d.PSec, d.PFrame)
	case QLeadInTrackPointer:
		s = fmt.Sprintf("track %d starts at %02d:%02d:%02d, %s", d.Point, d.PMin, d.PSec, d.PFrame,
			d.controlString())
	case QNextProgramArea:
		s = fmt.Sprintf("next program area can start at %02d:%02d:%02d, %d pointers in mode 5, "+
			"maximum lead-out at %02d:%02d:%02d", d.Min, d.Sec, d.Frame, d.Zero, d.PMin, d.PSec, d.PFrame)
	case QSkipIntervalPointers:
		s = fmt.Sprintf("%d skip interval pointers, %d skip track assignments", d.PMin, d.PSec)
	case QSkipTracks:
		s = fmt.Sprintf("tracks %d %d %d %d %d %d %d are to be skipped",
			d.Min, d.Sec, d.Frame, d.Zero, d.PMin, d.PSec, d.PFrame)
	case QAtipMirror:
		s = fmt.Sprintf("ATIP values %02x %02x %02x, first lead-in starts at %02d:%02d:%02d",
			d.Min, d.Sec, d.Frame, d.PMin, d.PSec, d.PFrame)
	case QAtipAdditional:
		s = fmt.Sprintf("ATIP additional values %02x %02x %02x %02x %02x %02x %02x",
			d.Min, d.Sec, d.Frame, d.Zero, d.PMin, d.PSec, d.PFrame)
	case QSkipInterval:
		s = fmt.Sprintf("skip interval %d from %02d:%02d:%02d to %02d:%02d:%02d",
			d.Point, d.PMin, d.PSec, d.PFrame, d.Min, d.Sec, d.Frame)
	case QDiscID:
		s = fmt.Sprintf("disc identification % x", d.Raw[1:10])
	case QMCN:
		s = fmt.Sprintf("MCN %s, frame %d", d.MCN, d.PFrame)
	case QISRC:
		s = fmt.Sprintf("ISRC %s, frame %d", d.ISRC, d.PFrame)
	default:
		s = fmt.Sprintf("ADR %d, raw % x", d.ADR, d.Raw[:10])
	}

	if !d.CRCOk {
		s += " (CRC mismatch)"
	}

	return s
}

// GenerateQ synthesises the interleaved subchannel block for one sector of a track. index 0
// selects the index automatically: 0 inside the pregap and 1 afterwards. Sectors up to and
// including trackStart+pregap are treated as pregap. The P channel is set throughout the pregap.
func GenerateQ(sector int64, trackSequence uint32, pregap, trackStart int64, flags uint8, index uint8) [SubchannelSize]byte {
	var (
		planar [SubchannelSize]byte
		out    [SubchannelSize]byte
	)

	isPregap := sector <= trackStart+pregap

	if index == 0 && !isPregap {
		index = 1
	}

	var relative int64
	if isPregap {
		relative = trackStart + pregap - sector
	} else {
		relative = sector - trackStart - pregap
	}

	rm, rs, rf := durationToMsf(relative)
	am, as, af := LbaToMsf(sector)

	q := planar[channelLen : 2*channelLen]
	q[0] = flags<<4 | ADR_POSITION
	q[1] = utils.BinaryToBcd(uint8(trackSequence))
	q[2] = utils.BinaryToBcd(index)
	q[3] = utils.BinaryToBcd(rm)
	q[4] = utils.BinaryToBcd(rs)
	q[5] = utils.BinaryToBcd(rf)
	q[6] = 0
	q[7] = utils.BinaryToBcd(am)
	q[8] = utils.BinaryToBcd(as)
	q[9] = utils.BinaryToBcd(af)

	crc := utils.CheckCrc16(q, 10)
	q[10], q[11] = crc[0], crc[1]

	if isPregap {
		for i := 0; i < channelLen; i++ {
			planar[i] = 0xff
		}
	}

	copy(out[:], Interleave(planar[:]))

	return out
}

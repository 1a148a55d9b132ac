// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package cd

import (
	"encoding/binary"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dswarbrick/optical/utils"
)

// withLength prefixes payload with a READ TOC header declaring the matching data length.
func withLength(first, last byte, payload []byte) []byte {
	buf := make([]byte, 4, 4+len(payload))
	binary.BigEndian.PutUint16(buf, uint16(len(payload)+2))
	buf[2], buf[3] = first, last
	return append(buf, payload...)
}

func TestMsf(t *testing.T) {
	m, s, f := LbaToMsf(0)
	assert.Equal(t, [3]uint8{0, 2, 0}, [3]uint8{m, s, f})

	m, s, f = LbaToMsf(20000)
	assert.Equal(t, [3]uint8{4, 28, 50}, [3]uint8{m, s, f})

	for _, lba := range []int64{-150, 0, 1, 74, 4349, 20000, 359849} {
		m, s, f := LbaToMsf(lba)
		assert.Equal(t, lba, MsfToLba(m, s, f))
	}
}

func TestDecodeTOC(t *testing.T) {
	buf := withLength(1, 2, []byte{
		0, 0x10, 1, 0, 0, 0, 0, 0,
		0, 0x14, 2, 0, 0, 0, 0x4e, 0x20,
		0, 0x10, 0xaa, 0, 0, 0, 0x75, 0x30,
	})

	toc := DecodeTOC(buf)
	require.NotNil(t, toc)
	assert.Equal(t, uint16(26), toc.DataLength)
	assert.Equal(t, uint8(1), toc.FirstTrack)
	assert.Equal(t, uint8(2), toc.LastTrack)
	require.Len(t, toc.Tracks, 3)
	assert.Equal(t, TOCTrack{ADR: 1, Control: 4, TrackNumber: 2, StartAddress: 20000}, toc.Tracks[1])
	assert.True(t, toc.HasDataTrack())
	assert.True(t, toc.HasAudioTrack())

	lo, ok := toc.LeadOut()
	require.True(t, ok)
	assert.Equal(t, uint32(30000), lo.StartAddress)

	tracks := TracksFromTOC(toc)
	require.Len(t, tracks, 2)
	assert.Equal(t, TrackAudio, tracks[0].Type)
	assert.Equal(t, int64(19999), tracks[0].EndSector)
	assert.Equal(t, TrackData, tracks[1].Type)
	assert.Equal(t, int64(29999), tracks[1].EndSector)
}

func TestLengthGate(t *testing.T) {
	r := rand.New(rand.NewSource(1))

	decoders := map[string]func([]byte) bool{
		"toc":     func(b []byte) bool { return DecodeTOC(b) != nil },
		"fulltoc": func(b []byte) bool { return DecodeFullTOC(b) != nil },
		"cdtext":  func(b []byte) bool { return DecodeCDText(b) != nil },
		"session": func(b []byte) bool { return DecodeSession(b) != nil },
		"pma":     func(b []byte) bool { return DecodePMA(b) != nil },
	}

	for name, decode := range decoders {
		t.Run(name, func(t *testing.T) {
			for i := 0; i < 500; i++ {
				buf := make([]byte, r.Intn(300))
				r.Read(buf)
				if len(buf) < 2 {
					assert.False(t, decode(buf))
					continue
				}

				declared := int(binary.BigEndian.Uint16(buf))
				if declared+2 == len(buf) {
					binary.BigEndian.PutUint16(buf, uint16(declared+1))
				}
				assert.False(t, decode(buf), "declared %d, length %d", declared, len(buf))
			}

			assert.False(t, decode([]byte{0x00, 0x02, 0x01, 0x01}))
		})
	}
}

func TestDecodeSessionAndPMA(t *testing.T) {
	s := DecodeSession(withLength(1, 2, []byte{0, 0x14, 3, 0, 0, 0, 0x2e, 0xe0}))
	require.NotNil(t, s)
	assert.Equal(t, uint8(2), s.LastCompleteSession)
	require.Len(t, s.Tracks, 1)
	assert.Equal(t, uint32(12000), s.Tracks[0].StartAddress)

	pma := DecodePMA(withLength(0, 0, []byte{0, 0x14, 0, 0x01, 0, 0, 0, 0x21, 0, 2, 0}))
	require.NotNil(t, pma)
	require.Len(t, pma.Descriptors, 1)
	d := pma.Descriptors[0]
	assert.Equal(t, uint8(1), d.ADR)
	assert.Equal(t, uint8(4), d.Control)
	assert.Equal(t, uint8(1), d.Point)
	assert.Equal(t, uint8(2), d.Hour)
	assert.Equal(t, uint8(1), d.PHour)
	assert.Equal(t, uint8(2), d.PSec)
}

func TestDecodeATIP(t *testing.T) {
	buf := make([]byte, 28)
	binary.BigEndian.PutUint16(buf, 26)
	buf[4] = 0x54
	buf[6] = 0x44 // rewritable, A1 valid
	buf[8], buf[9], buf[10] = 97, 26, 66
	buf[12], buf[13], buf[14] = 79, 59, 74
	buf[16], buf[17], buf[18] = 1, 2, 3

	a := DecodeATIP(buf)
	require.NotNil(t, a)
	assert.True(t, a.Rewritable())
	assert.Equal(t, uint8(5), a.ITWP)
	assert.Equal(t, uint8(4), a.ReferenceSpeed)
	assert.True(t, a.A1Valid)
	assert.Equal(t, [3]byte{1, 2, 3}, a.A1Values)
	assert.Equal(t, MsfToLba(79, 59, 74), a.LeadOutStart())
	assert.True(t, a.LeadInStart() < 0)

	buf[6] = 0
	assert.False(t, DecodeATIP(buf).Rewritable())

	short := make([]byte, 24)
	binary.BigEndian.PutUint16(short, 22)
	assert.Nil(t, DecodeATIP(short))
}

func TestCreateFullTOC(t *testing.T) {
	tracks := []Track{
		{Session: 1, Sequence: 2, Type: TrackMode1, StartSector: 20000, EndSector: 29999},
		{Session: 1, Sequence: 1, Type: TrackAudio, StartSector: 0, EndSector: 19999},
	}

	toc := CreateFullTOC(tracks, nil, false)
	require.Len(t, toc.Descriptors, 5)

	want := []struct {
		point              uint8
		control            uint8
		pmin, psec, pframe uint8
	}{
		// Session pointers carry the control of the session's first track
		{POINT_FIRST_TRACK, 0, 1, 0, 0},
		{POINT_LAST_TRACK, 0, 2, 0, 0},
		{POINT_LEAD_OUT, 0, 6, 42, 0},
		{1, 0, 0, 2, 0},
		{2, FlagDataTrack, 4, 28, 50},
	}

	for i, w := range want {
		d := toc.Descriptors[i]
		assert.Equal(t, w.point, d.Point, "descriptor %d", i)
		assert.Equal(t, uint8(1), d.ADR, "descriptor %d", i)
		assert.Equal(t, uint8(1), d.SessionNumber, "descriptor %d", i)
		assert.Equal(t, w.control, d.Control, "descriptor %d", i)
		assert.Equal(t, [3]uint8{w.pmin, w.psec, w.pframe}, [3]uint8{d.PMin, d.PSec, d.PFrame}, "descriptor %d", i)
	}

	// Explicit flags win over the track type
	toc = CreateFullTOC(tracks, map[uint32]uint8{2: FlagDataTrack | FlagCopyPermitted}, false)
	assert.Equal(t, uint8(FlagDataTrack|FlagCopyPermitted), toc.Descriptors[4].Control)

	// The synthesised TOC survives the wire form
	decoded := DecodeFullTOC(toc.Encode())
	require.NotNil(t, decoded)
	assert.Equal(t, toc, decoded)

	rebuilt := TracksFromFullTOC(decoded)
	require.Len(t, rebuilt, 2)
	assert.Equal(t, int64(20000), rebuilt[1].StartSector)
	assert.Equal(t, int64(29999), rebuilt[1].EndSector)
	assert.Equal(t, int64(19999), rebuilt[0].EndSector)
}

func TestCreateFullTOCMultiSession(t *testing.T) {
	tracks := []Track{
		{Session: 1, Sequence: 1, Type: TrackAudio, StartSector: 0, EndSector: 9999},
		{Session: 1, Sequence: 2, Type: TrackAudio, StartSector: 10000, EndSector: 19999},
		{Session: 2, Sequence: 3, Type: TrackMode2Form1, StartSector: 31400, EndSector: 40000},
	}

	toc := CreateFullTOC(tracks, nil, true)

	var points []uint8
	for _, d := range toc.Descriptors {
		points = append(points, d.Point)
	}

	assert.Equal(t, []uint8{
		POINT_FIRST_TRACK, POINT_LAST_TRACK, POINT_LEAD_OUT, 1, 2,
		POINT_NEXT_PROGRAM_AREA, POINT_ATIP_MIRROR,
		POINT_FIRST_TRACK, POINT_LAST_TRACK, POINT_LEAD_OUT, 3,
	}, points)

	b0 := toc.Descriptors[5]
	assert.Equal(t, uint8(5), b0.ADR)
	assert.Equal(t, uint8(1), b0.SessionNumber)
	assert.Equal(t, uint8(2), b0.PHour)

	c0 := toc.Descriptors[6]
	assert.Equal(t, [3]uint8{128, 97, 25}, [3]uint8{c0.Min, c0.PMin, c0.PSec})

	a1 := toc.Descriptors[8]
	assert.Equal(t, uint8(2), a1.SessionNumber)
	assert.Equal(t, uint8(3), a1.PMin)

	assert.Equal(t, uint8(1), toc.FirstCompleteSession)
	assert.Equal(t, uint8(2), toc.LastCompleteSession)
}

func TestInterleaveRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for _, blocks := range []int{1, 2, 7} {
		x := make([]byte, blocks*SubchannelSize)
		r.Read(x)

		assert.Equal(t, x, Deinterleave(Interleave(x)))
		assert.Equal(t, x, Interleave(Deinterleave(x)))
	}

	// Partial trailing blocks are dropped
	assert.Len(t, Interleave(make([]byte, 100)), SubchannelSize)
	assert.Len(t, Deinterleave(make([]byte, 95)), 0)
}

func TestInterleaveBitPositions(t *testing.T) {
	planar := make([]byte, SubchannelSize)
	planar[0] = 0x80  // P, first bit
	planar[12] = 0x40 // Q, second bit

	wire := Interleave(planar)
	assert.Equal(t, byte(0x80), wire[0])
	assert.Equal(t, byte(0x40), wire[1])
}

func TestBcdQ(t *testing.T) {
	q := []byte{0x41, 0x12, 0x01, 0x00, 0x02, 0x74, 0x00, 0x99, 0x59, 0x74, 0, 0}
	BcdToBinaryQ(q)
	assert.Equal(t, []byte{0x41, 12, 1, 0, 2, 74, 0, 99, 59, 74, 0, 0}, q)
	BinaryToBcdQ(q)
	assert.Equal(t, []byte{0x41, 0x12, 0x01, 0x00, 0x02, 0x74, 0x00, 0x99, 0x59, 0x74, 0, 0}, q)
}

func TestGenerateQPregapBoundary(t *testing.T) {
	tests := []struct {
		sector int64
		pregap bool
		index  uint8
		rel    [3]uint8
	}{
		{sector: 0, pregap: true, index: 0, rel: [3]uint8{0, 2, 0}},
		{sector: 150, pregap: true, index: 0, rel: [3]uint8{0, 0, 0}},
		{sector: 151, pregap: false, index: 1, rel: [3]uint8{0, 0, 1}},
	}

	for _, tt := range tests {
		block := GenerateQ(tt.sector, 1, 150, 0, 0, 0)
		planar := Deinterleave(block[:])

		if tt.pregap {
			assert.Equal(t, byte(0xff), planar[0], "sector %d", tt.sector)
		} else {
			assert.Equal(t, byte(0x00), planar[0], "sector %d", tt.sector)
		}

		var q [12]byte
		copy(q[:], planar[12:24])

		d := DescribeQ(q, true, tt.sector)
		assert.True(t, d.CRCOk)
		assert.Equal(t, QTrackPosition, d.Kind)
		assert.Equal(t, uint8(1), d.Track)
		assert.Equal(t, tt.index, d.Index, "sector %d", tt.sector)
		assert.Equal(t, tt.rel, [3]uint8{d.Min, d.Sec, d.Frame}, "sector %d", tt.sector)
		assert.Equal(t, tt.sector, MsfToLba(d.PMin, d.PSec, d.PFrame))
		assert.True(t, d.Audio)
	}

	// An explicit index is kept
	block := GenerateQ(1000, 2, 0, 0, FlagDataTrack, 3)
	q := QFromSubchannel(block[:])
	d := DescribeQ(q, true, 1000)
	assert.Equal(t, uint8(3), d.Index)
	assert.False(t, d.Audio)
}

func TestQCrcSensitivity(t *testing.T) {
	block := GenerateQ(4500, 5, 150, 4000, FlagCopyPermitted, 0)
	q := QFromSubchannel(block[:])
	require.True(t, utils.Crc16Matches(q[:], 10))

	for i := 0; i < 10; i++ {
		for bit := uint(0); bit < 8; bit++ {
			flipped := q
			flipped[i] ^= 1 << bit
			assert.False(t, DescribeQ(flipped, true, 4500).CRCOk, "byte %d bit %d", i, bit)
		}
	}
}

func TestDescribeQ(t *testing.T) {
	withCrc := func(q [12]byte) [12]byte {
		crc := utils.CheckCrc16(q[:], 10)
		q[10], q[11] = crc[0], crc[1]
		return q
	}

	tests := []struct {
		name string
		q    [12]byte
		lba  int64
		kind QKind
	}{
		{"position", [12]byte{0x01, 0x01, 0x01}, 100, QTrackPosition},
		{"lead-out", [12]byte{0x01, 0xaa, 0x01}, 300000, QLeadOutPosition},
		{"first track", [12]byte{0x01, 0x00, 0xa0, 0, 0, 0, 0, 0x01}, -100, QFirstTrack},
		{"last track", [12]byte{0x01, 0x00, 0xa1, 0, 0, 0, 0, 0x12}, -100, QLastTrack},
		{"lead-out start", [12]byte{0x01, 0x00, 0xa2}, -100, QLeadOutStart},
		{"track pointer", [12]byte{0x41, 0x00, 0x05}, -100, QLeadInTrackPointer},
		{"lead-in point zero", [12]byte{0x01, 0x00, 0x00}, -100, QUnknown},
		{"lead-in point b0", [12]byte{0x01, 0x00, 0xb0}, -100, QUnknown},
		{"lead-in point f0", [12]byte{0x01, 0x00, 0xf0}, -100, QUnknown},
		{"next program area", [12]byte{0x05, 0x00, 0xb0}, -100, QNextProgramArea},
		{"skip interval pointers", [12]byte{0x05, 0x00, 0xb1}, -100, QSkipIntervalPointers},
		{"skip tracks", [12]byte{0x05, 0x00, 0xb3}, -100, QSkipTracks},
		{"atip mirror", [12]byte{0x05, 0x00, 0xc0}, -100, QAtipMirror},
		{"atip additional", [12]byte{0x05, 0x00, 0xc1}, -100, QAtipAdditional},
		{"skip interval", [12]byte{0x05, 0x00, 0x40}, -100, QSkipInterval},
		{"mode 5 past skip intervals", [12]byte{0x05, 0x00, 0x41}, -100, QUnknown},
		{"mode 5 in program area", [12]byte{0x05, 0x00, 0xb0}, 100, QUnknown},
		{"disc id", [12]byte{0x06}, -100, QDiscID},
		{"mcn", [12]byte{0x02, 0x12, 0x34, 0x56, 0x78, 0x90, 0x12, 0x30}, 100, QMCN},
		{"isrc", [12]byte{0x03}, 100, QISRC},
		{"reserved adr", [12]byte{0x0f}, 100, QUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := DescribeQ(withCrc(tt.q), true, tt.lba)
			assert.Equal(t, tt.kind, d.Kind)
			assert.True(t, d.CRCOk)
			assert.NotEmpty(t, d.String())
			assert.NotContains(t, d.String(), "CRC mismatch")
		})
	}

	d := DescribeQ(withCrc([12]byte{0x02, 0x12, 0x34, 0x56, 0x78, 0x90, 0x12, 0x30}), true, 100)
	assert.Equal(t, "1234567890123", d.MCN)

	// Binary point 100 is past the last track number
	d = DescribeQ(withCrc([12]byte{0x01, 0x00, 0x64}), false, -100)
	assert.Equal(t, QUnknown, d.Kind)
	assert.Contains(t, d.String(), "ADR 1, raw")

	d = DescribeQ([12]byte{0x01, 0x01, 0x01}, true, 100)
	assert.False(t, d.CRCOk)
	assert.Contains(t, d.String(), "CRC mismatch")
}

func TestQIsrc(t *testing.T) {
	// "GBAYE" encoded as 6 bit codes, followed by year 98 and serial 01234
	codes := []byte{0x17, 0x12, 0x11, 0x29, 0x15}
	var bits uint64
	for _, c := range codes {
		bits = bits<<6 | uint64(c)
	}
	bits <<= 2

	q := make([]byte, 12)
	q[0] = ADR_ISRC
	for i := 0; i < 4; i++ {
		q[1+i] = byte(bits >> (24 - 8*uint(i)))
	}
	q[5], q[6], q[7], q[8] = 0x98, 0x01, 0x23, 0x40

	assert.Equal(t, "GBAYE9801234", QIsrc(q))
}

func TestScrambleTable(t *testing.T) {
	assert.Equal(t, make([]byte, 12), ScrambleTable[:12])
	assert.Equal(t, []byte{0x01, 0x80, 0x00, 0x60, 0x00, 0x28, 0x00, 0x1e, 0x80, 0x08}, ScrambleTable[12:22])

	sector := make([]byte, SectorSize)
	copy(sector, SyncPattern)
	sector[12], sector[13], sector[14], sector[15] = 0x00, 0x02, 0x16, 0x01

	scrambled := append([]byte(nil), sector...)
	Scramble(scrambled)
	assert.Equal(t, SyncPattern, scrambled[:12])

	h, ok := ScrambledHeader(scrambled, 0)
	require.True(t, ok)
	assert.Equal(t, int64(16), h.LBA())
	assert.Equal(t, uint8(1), h.Mode)

	Scramble(scrambled)
	assert.Equal(t, sector, scrambled)
}

func TestDecodeCDText(t *testing.T) {
	pack := func(typ, track, seq, pos byte, text string) []byte {
		p := make([]byte, 18)
		p[0], p[1], p[2], p[3] = typ, track, seq, pos
		copy(p[4:16], text)
		crc := utils.CheckCrc16(p, 16)
		p[16], p[17] = crc[0], crc[1]
		return p
	}

	var payload []byte
	payload = append(payload, pack(PACK_TITLE, 0, 0, 0, "Album\x00First\x00")...)
	payload = append(payload, pack(PACK_TITLE, 2, 1, 0, "\t\x00Third song")...)
	payload = append(payload, pack(PACK_TITLE, 3, 2, 10, "\x00")...)
	payload = append(payload, pack(PACK_SIZE_INFO, 0, 3, 0, "")...)

	text := DecodeCDText(withLength(0, 0, payload))
	require.NotNil(t, text)
	require.Len(t, text.Packs, 4)
	assert.True(t, text.Packs[0].CRCOk)
	assert.Equal(t, uint8(10), text.Packs[2].CharacterPosition)
	assert.Equal(t, "album title", text.Packs[0].Classify())
	assert.Equal(t, "title of track 2", text.Packs[1].Classify())
	assert.Equal(t, "block size information", text.Packs[3].Classify())

	strs := text.Strings()
	assert.Equal(t, "Album", strs[TextKey{PackType: PACK_TITLE, Track: 0}])
	assert.Equal(t, "First", strs[TextKey{PackType: PACK_TITLE, Track: 1}])
	assert.Equal(t, "First", strs[TextKey{PackType: PACK_TITLE, Track: 2}])
	assert.Equal(t, "Third song", strs[TextKey{PackType: PACK_TITLE, Track: 3}])

	assert.Nil(t, DecodeCDText([]byte{0x00, 0x02, 0x00, 0x00}))
}

func TestDecodeMCNAndISRC(t *testing.T) {
	mcn := make([]byte, 24)
	binary.BigEndian.PutUint16(mcn[2:], 20)
	mcn[4] = 0x02
	mcn[8] = 0x80
	copy(mcn[9:], "0724349691925")

	s, ok := DecodeMCN(mcn)
	require.True(t, ok)
	assert.Equal(t, "0724349691925", s)

	mcn[8] = 0
	_, ok = DecodeMCN(mcn)
	assert.False(t, ok)

	isrc := make([]byte, 24)
	binary.BigEndian.PutUint16(isrc[2:], 20)
	isrc[4] = 0x03
	isrc[8] = 0x80
	copy(isrc[9:], "USRC17607839")

	s, ok = DecodeISRC(isrc)
	require.True(t, ok)
	assert.Equal(t, "USRC17607839", s)

	_, ok = DecodeISRC(isrc[:20])
	assert.False(t, ok)
}

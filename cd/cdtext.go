// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// CD-TEXT as returned by READ TOC format 0101b.

package cd

import (
	"fmt"

	"github.com/dswarbrick/optical/utils"
)

// CD-TEXT pack types
const (
	PACK_TITLE      = 0x80
	PACK_PERFORMER  = 0x81
	PACK_SONGWRITER = 0x82
	PACK_COMPOSER   = 0x83
	PACK_ARRANGER   = 0x84
	PACK_MESSAGE    = 0x85
	PACK_DISC_ID    = 0x86
	PACK_GENRE      = 0x87
	PACK_TOC        = 0x88
	PACK_TOC2       = 0x89
	PACK_CLOSED     = 0x8d
	PACK_UPC_ISRC   = 0x8e
	PACK_SIZE_INFO  = 0x8f
)

const cdTextPackLen = 18

var packTypeNames = map[uint8]string{
	PACK_TITLE:      "title",
	PACK_PERFORMER:  "performer",
	PACK_SONGWRITER: "songwriter",
	PACK_COMPOSER:   "composer",
	PACK_ARRANGER:   "arranger",
	PACK_MESSAGE:    "message",
	PACK_DISC_ID:    "disc identification",
	PACK_GENRE:      "genre identification",
	PACK_TOC:        "table of contents",
	PACK_TOC2:       "second table of contents",
	PACK_CLOSED:     "closed information",
	PACK_UPC_ISRC:   "UPC / ISRC",
	PACK_SIZE_INFO:  "block size information",
}

type CDTextPack struct {
	HeaderID1         uint8
	HeaderID2         uint8
	HeaderID3         uint8
	DBCC              bool
	BlockNumber       uint8
	CharacterPosition uint8
	TextData          [12]byte
	CRC               uint16
	CRCOk             bool
}

type CDText struct {
	DataLength uint16
	Packs      []CDTextPack
}

// DecodeCDText decodes a CD-TEXT response. A response carrying no packs yields nil.
func DecodeCDText(buf []byte) *CDText {
	if !validLength(buf) {
		return nil
	}

	t := &CDText{DataLength: utils.Uint16BE(buf, 0)}
	if t.DataLength == 2 {
		return nil
	}

	for off := 4; off+cdTextPackLen <= len(buf); off += cdTextPackLen {
		p := buf[off : off+cdTextPackLen]
		pack := CDTextPack{
			HeaderID1:         p[0],
			HeaderID2:         p[1],
			HeaderID3:         p[2],
			DBCC:              p[3]&0x80 != 0,
			BlockNumber:       (p[3] & 0x70) >> 4,
			CharacterPosition: p[3] & 0x0f,
			CRC:               utils.Uint16BE(p, 16),
			CRCOk:             utils.Crc16Matches(p, 16),
		}
		copy(pack.TextData[:], p[4:16])
		t.Packs = append(t.Packs, pack)
	}

	return t
}

// PackTypeName returns the name of a pack type.
func PackTypeName(packType uint8) string {
	if name, ok := packTypeNames[packType]; ok {
		return name
	}

	return fmt.Sprintf("reserved pack type %#02x", packType)
}

func isTextPack(packType uint8) bool {
	return packType <= PACK_MESSAGE || packType == PACK_UPC_ISRC
}

// Classify describes what a pack carries, distinguishing album wide from per track data.
func (p CDTextPack) Classify() string {
	name := PackTypeName(p.HeaderID1)

	if !isTextPack(p.HeaderID1) && p.HeaderID1 != PACK_GENRE {
		return name
	}

	if p.HeaderID2 == 0 {
		if p.HeaderID1 == PACK_UPC_ISRC {
			return "album UPC / EAN"
		}
		return "album " + name
	}

	if p.HeaderID1 == PACK_UPC_ISRC {
		return fmt.Sprintf("ISRC of track %d", p.HeaderID2)
	}

	return fmt.Sprintf("%s of track %d", name, p.HeaderID2)
}

// TextKey identifies one assembled CD-TEXT string. Track 0 is the album.
type TextKey struct {
	PackType uint8
	Block    uint8
	Track    uint8
}

// Strings assembles the NUL separated text carried across consecutive packs of each type. A
// string consisting of a single TAB repeats the previous track's string. Empty strings are
// omitted.
func (t *CDText) Strings() map[TextKey]string {
	out := make(map[TextKey]string)

	var (
		buf      []byte
		prev     string
		key      TextKey
		inStream bool
	)

	for _, p := range t.Packs {
		if !isTextPack(p.HeaderID1) {
			inStream = false
			continue
		}

		if !inStream || p.HeaderID1 != key.PackType || p.BlockNumber != key.Block {
			key = TextKey{PackType: p.HeaderID1, Block: p.BlockNumber, Track: p.HeaderID2}
			buf = buf[:0]
			prev = ""
			inStream = true
		}

		for _, c := range p.TextData {
			if c != 0 {
				buf = append(buf, c)
				continue
			}

			s := string(buf)
			if s == "\t" {
				s = prev
			}

			if s != "" {
				out[key] = s
				prev = s
			}

			key.Track++
			buf = buf[:0]
		}
	}

	return out
}

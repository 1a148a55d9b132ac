// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package dvd

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dswarbrick/optical/media"
)

func pfiResponse(category, version, size, layers byte) []byte {
	buf := make([]byte, StructureSize)
	binary.BigEndian.PutUint16(buf, StructureSize-2)
	buf[4] = category<<4 | version
	buf[5] = size<<4 | 0x02
	buf[6] = layers<<5 | 0x01
	buf[7] = 0x10
	copy(buf[9:], []byte{0x03, 0x00, 0x00})
	copy(buf[13:], []byte{0xfc, 0xff, 0xff})
	copy(buf[17:], []byte{0x20, 0x33, 0x9f})
	return buf
}

func TestDecodePFI(t *testing.T) {
	p := DecodePFI(pfiResponse(CATEGORY_DVD_R, 6, DISC_SIZE_120MM, 1))
	require.NotNil(t, p)
	assert.Equal(t, uint8(CATEGORY_DVD_R), p.DiskCategory)
	assert.Equal(t, uint8(6), p.PartVersion)
	assert.Equal(t, uint8(1), p.Layers)
	assert.Equal(t, uint8(1), p.LayerType)
	assert.Equal(t, uint32(0x030000), p.DataAreaStartPSN)
	assert.Equal(t, uint32(0xfcffff), p.DataAreaEndPSN)
	assert.Equal(t, uint32(0x20339f), p.Layer0EndPSN)
	assert.False(t, p.BCA)

	assert.Nil(t, DecodePFI(make([]byte, 20)))

	// Declared length must cover exactly the buffer
	assert.Nil(t, DecodePFI(make([]byte, StructureSize)))
	assert.Nil(t, DecodePFI(pfiResponse(CATEGORY_DVD_R, 6, DISC_SIZE_120MM, 1)[:100]))
}

func TestPFIMediaType(t *testing.T) {
	tests := []struct {
		name     string
		category byte
		version  byte
		size     byte
		layers   byte
		want     media.Type
	}{
		{"dvd-r", CATEGORY_DVD_R, 5, 0, 0, media.DVDR},
		{"dvd-r dl", CATEGORY_DVD_R, 6, 0, 1, media.DVDRDL},
		{"dvd-rw", CATEGORY_DVD_RW, 14, 0, 0, media.DVDRW},
		{"dvd-rw dl", CATEGORY_DVD_RW, 15, 0, 1, media.DVDRWDL},
		{"dvd+r dl", CATEGORY_DVD_PLUS_R_DL, 1, 0, 1, media.DVDPRDL},
		{"dvd-ram", CATEGORY_DVD_RAM, 1, 0, 0, media.DVDRAM},
		{"hd dvd-rw", CATEGORY_HDDVD_RW, 1, 0, 0, media.HDDVDRW},
		{"hd dvd-r dl", CATEGORY_HDDVD_R, 1, 0, 1, media.HDDVDRDL},
		{"gamecube", CATEGORY_NINTENDO, 0, DISC_SIZE_80MM, 0, media.GOD},
		{"wii", CATEGORY_NINTENDO, 0, DISC_SIZE_120MM, 0, media.WOD},
		{"umd", CATEGORY_UMD, 0, 0, 0, media.UMD},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := DecodePFI(pfiResponse(tc.category, tc.version, tc.size, tc.layers))
			require.NotNil(t, p)
			mt, ok := p.MediaType()
			assert.True(t, ok)
			assert.Equal(t, tc.want, mt)
		})
	}

	p := DecodePFI(pfiResponse(0xb, 0, 0, 0))
	_, ok := p.MediaType()
	assert.False(t, ok)
}

func xboxDMI() []byte {
	buf := make([]byte, StructureSize)
	binary.LittleEndian.PutUint32(buf[4:], 1)
	copy(buf[12:], "MS04001A")
	// 2002-01-01T00:00:00Z
	binary.LittleEndian.PutUint64(buf[20:], 126543168000000000)
	return buf
}

func TestIsXbox(t *testing.T) {
	buf := xboxDMI()
	assert.True(t, IsXbox(buf))
	assert.False(t, IsXbox360(buf))

	d := DecodeXboxDMI(buf)
	require.NotNil(t, d)
	assert.False(t, d.Xbox360)
	assert.Equal(t, "MS-04001-A", d.CatalogNumber)
	assert.Equal(t, time.Date(2002, time.January, 1, 0, 0, 0, 0, time.UTC), d.Timestamp)

	// Mastered before the Xbox existed
	old := xboxDMI()
	binary.LittleEndian.PutUint64(old[20:], xboxEpoch-1)
	assert.False(t, IsXbox(old))

	bad := xboxDMI()
	bad[15] = 'X'
	assert.False(t, IsXbox(bad))

	assert.False(t, IsXbox(buf[:2048]))
}

func TestIsXbox360(t *testing.T) {
	buf := make([]byte, StructureSize)
	copy(buf[0x7ec:], "XBOX")
	copy(buf[68:], "X02-12345")
	assert.True(t, IsXbox360(buf))

	d := DecodeXboxDMI(buf)
	require.NotNil(t, d)
	assert.True(t, d.Xbox360)
	assert.Equal(t, "X02-12345", d.CatalogNumber)

	assert.Nil(t, DecodeXboxDMI(make([]byte, StructureSize)))
}

func TestDecodeSecuritySector(t *testing.T) {
	buf := pfiResponse(CATEGORY_DVD_ROM, 1, 0, 1)
	buf[ssExtentCountOffset] = 2
	copy(buf[ssExtentOffset:], []byte{0, 0, 1, 0x06, 0x00, 0x00, 0x06, 0x10, 0x00})
	copy(buf[ssExtentOffset+ssExtentSize:], []byte{0, 0, 2, 0x07, 0x00, 0x00, 0x07, 0x10, 0x00})

	ss := DecodeSecuritySector(buf)
	require.NotNil(t, ss)
	assert.Equal(t, uint32(0x20339f), ss.Layer0EndPSN)
	require.Len(t, ss.Extents, 2)
	assert.Equal(t, SecurityExtent{Unknown: 2, StartPSN: 0x070000, EndPSN: 0x071000}, ss.Extents[1])

	assert.Nil(t, DecodeSecuritySector(buf[:100]))

	// Kreon drives leave the header length zeroed
	buf[0], buf[1] = 0, 0
	require.NotNil(t, DecodeSecuritySector(buf))
}

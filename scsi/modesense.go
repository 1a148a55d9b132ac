// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package scsi

import (
	"bytes"

	"github.com/lunixbochs/struc"

	"github.com/dswarbrick/optical/utils"
)

type modeHeader6 struct {
	ModeDataLength uint8
	MediumType     uint8
	DeviceSpecific uint8
	BlockDescLen   uint8
}

type modeHeader10 struct {
	ModeDataLength uint16
	MediumType     uint8
	DeviceSpecific uint8
	Flags          uint8 // LONGLBA
	Reserved       uint8
	BlockDescLen   uint16
}

// ModeSense is a decoded MODE SENSE(6) or MODE SENSE(10) response.
type ModeSense struct {
	MediumType     uint8
	WriteProtected bool
	DensityCode    uint8
	Blocks         uint64
	BlockLength    uint32
	Pages          map[uint8][]byte
}

// HasPage reports whether the response carried the given mode page.
func (m *ModeSense) HasPage(code uint8) bool {
	_, ok := m.Pages[code]
	return ok
}

// DecodeModeSense6 decodes a MODE SENSE(6) response. It returns nil if the header is
// inconsistent with the buffer length.
func DecodeModeSense6(buf []byte) *ModeSense {
	var hdr modeHeader6

	if len(buf) < 4 {
		return nil
	}

	if err := struc.Unpack(bytes.NewReader(buf[:4]), &hdr); err != nil {
		return nil
	}

	end := int(hdr.ModeDataLength) + 1
	if end > len(buf) {
		end = len(buf)
	}

	return decodeModeData(buf[:end], 4, int(hdr.BlockDescLen), false, hdr.MediumType, hdr.DeviceSpecific)
}

// DecodeModeSense10 decodes a MODE SENSE(10) response.
func DecodeModeSense10(buf []byte) *ModeSense {
	var hdr modeHeader10

	if len(buf) < 8 {
		return nil
	}

	if err := struc.Unpack(bytes.NewReader(buf[:8]), &hdr); err != nil {
		return nil
	}

	end := int(hdr.ModeDataLength) + 2
	if end > len(buf) {
		end = len(buf)
	}

	return decodeModeData(buf[:end], 8, int(hdr.BlockDescLen), hdr.Flags&0x01 != 0, hdr.MediumType, hdr.DeviceSpecific)
}

func decodeModeData(buf []byte, off, descLen int, longLba bool, mediumType, devSpecific uint8) *ModeSense {
	if off+descLen > len(buf) {
		return nil
	}

	m := &ModeSense{
		MediumType:     mediumType,
		WriteProtected: devSpecific&0x80 != 0,
		Pages:          make(map[uint8][]byte),
	}

	// Only the first block descriptor is of interest
	if longLba && descLen >= 16 {
		m.Blocks = utils.Uint64BE(buf, off)
		m.BlockLength = utils.Uint32BE(buf, off+12)
	} else if descLen >= 8 {
		m.DensityCode = buf[off]
		m.Blocks = uint64(utils.Uint24BE(buf, off+1))
		m.BlockLength = utils.Uint24BE(buf, off+5)
	}

	for p := off + descLen; p+2 <= len(buf); {
		code := buf[p] & 0x3f
		start, length := p+2, int(buf[p+1])

		// SPF pages carry a subpage code and a two byte length
		if buf[p]&0x40 != 0 {
			if p+4 > len(buf) {
				break
			}
			start, length = p+4, int(utils.Uint16BE(buf, p+2))
		}

		if start+length > len(buf) {
			break
		}

		if _, exists := m.Pages[code]; !exists {
			m.Pages[code] = buf[start : start+length]
		}

		p = start + length
	}

	return m
}

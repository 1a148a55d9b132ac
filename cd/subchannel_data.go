// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// READ SUB-CHANNEL media catalogue number and ISRC responses.

package cd

import (
	"github.com/dswarbrick/optical/utils"
)

const (
	subchannelMcnLen  = 24
	subchannelIsrcLen = 24
)

// subchannelValid checks the sub-channel data length at bytes 2-3 against the buffer.
func subchannelValid(buf []byte, minLen int) bool {
	return len(buf) >= minLen && int(utils.Uint16BE(buf, 2))+4 == len(buf)
}

// DecodeMCN decodes a READ SUB-CHANNEL format 02h response. It returns false if the response is
// malformed or the drive did not find a catalogue number.
func DecodeMCN(buf []byte) (string, bool) {
	if !subchannelValid(buf, subchannelMcnLen) || buf[4] != 0x02 {
		return "", false
	}

	// MCVAL
	if buf[8]&0x80 == 0 {
		return "", false
	}

	mcn := utils.TrimASCII(buf[9:22])
	if mcn == "" || mcn == "0000000000000" {
		return "", false
	}

	return mcn, true
}

// DecodeISRC decodes a READ SUB-CHANNEL format 03h response. It returns false if the response is
// malformed or the drive did not find an ISRC for the track.
func DecodeISRC(buf []byte) (string, bool) {
	if !subchannelValid(buf, subchannelIsrcLen) || buf[4] != 0x03 {
		return "", false
	}

	// TCVAL
	if buf[8]&0x80 == 0 {
		return "", false
	}

	isrc := utils.TrimASCII(buf[9:21])
	if isrc == "" {
		return "", false
	}

	return isrc, true
}

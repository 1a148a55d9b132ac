// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// CRC-16/CCITT as used by the CD Q subchannel and CD-TEXT packs (polynomial 0x1021, initial
// value zero, result stored inverted).

package utils

var crc16Table [256]uint16

func init() {
	for i := 0; i < 256; i++ {
		crc := uint16(i) << 8

		for j := 0; j < 8; j++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}

		crc16Table[i] = crc
	}
}

// Crc16Ccitt returns the inverted CRC-16/CCITT of buf.
func Crc16Ccitt(buf []byte) uint16 {
	var crc uint16

	for _, b := range buf {
		crc = crc<<8 ^ crc16Table[byte(crc>>8)^b]
	}

	return ^crc
}

// CheckCrc16 computes the CRC over the first n bytes of buf and returns it in stored (big-endian)
// byte order, ready to be compared against the two bytes that follow.
func CheckCrc16(buf []byte, n int) [2]byte {
	crc := Crc16Ccitt(buf[:n])
	return [2]byte{byte(crc >> 8), byte(crc)}
}

// Crc16Matches reports whether the CRC of buf[:n] matches the two bytes stored at buf[n:n+2].
// A mismatch is only a flag; no decoder treats it as an error.
func Crc16Matches(buf []byte, n int) bool {
	if len(buf) < n+2 {
		return false
	}

	crc := CheckCrc16(buf, n)
	return crc[0] == buf[n] && crc[1] == buf[n+1]
}

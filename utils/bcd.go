// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Binary-coded decimal helpers.

package utils

// BcdToBinary converts a packed BCD digit pair to its binary value.
func BcdToBinary(b byte) byte {
	return (b>>4)*10 + b&0x0f
}

// BinaryToBcd converts a value in the range 0-99 to a packed BCD digit pair.
func BinaryToBcd(b byte) byte {
	return (b/10)<<4 | b%10
}

// McnDigits unpacks a sequence of BCD nibbles into ASCII digits, high nibble first. Nibbles
// above 9 are not digits and are dropped.
func McnDigits(packed []byte, count int) string {
	out := make([]byte, 0, count)

	for i := 0; i < len(packed) && len(out) < count; i++ {
		for _, n := range [2]byte{packed[i] >> 4, packed[i] & 0x0f} {
			if len(out) == count {
				break
			}

			if n <= 9 {
				out = append(out, '0'+n)
			}
		}
	}

	return string(out)
}

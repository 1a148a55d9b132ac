// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Character tables for the ISRC and MCN encodings carried in the Q subchannel.

package utils

// isrcTable maps the 6-bit ISRC character codes. Reserved codes are empty strings.
var isrcTable = func() [64]string {
	var t [64]string

	for i := 0; i <= 9; i++ {
		t[i] = string(rune('0' + i))
	}

	for i := 0; i < 26; i++ {
		t[0x11+i] = string(rune('A' + i))
	}

	return t
}()

// IsrcChar returns the character for a 6-bit ISRC code, or an empty string for reserved codes.
func IsrcChar(code byte) string {
	return isrcTable[code&0x3f]
}

// IsrcCode returns the 6-bit code for an ISRC character, and false if the character cannot be
// encoded.
func IsrcCode(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'A' && c <= 'Z':
		return c - 'A' + 0x11, true
	case c >= 'a' && c <= 'z':
		return c - 'a' + 0x11, true
	}

	return 0, false
}

// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Miscellaneous utility functions

package utils

import (
	"bytes"
	"encoding/binary"
)

// Uint16BE returns the big-endian uint16 at off. The caller is responsible for bounds checking.
func Uint16BE(buf []byte, off int) uint16 {
	return binary.BigEndian.Uint16(buf[off:])
}

// Uint24BE returns the big-endian 24-bit value at off as a uint32.
func Uint24BE(buf []byte, off int) uint32 {
	return uint32(buf[off])<<16 | uint32(buf[off+1])<<8 | uint32(buf[off+2])
}

// Uint32BE returns the big-endian uint32 at off. The caller is responsible for bounds checking.
func Uint32BE(buf []byte, off int) uint32 {
	return binary.BigEndian.Uint32(buf[off:])
}

// Uint64BE returns the big-endian uint64 at off.
func Uint64BE(buf []byte, off int) uint64 {
	return binary.BigEndian.Uint64(buf[off:])
}

// TrimASCII converts a fixed-width, space or NUL padded ASCII field to a string.
func TrimASCII(b []byte) string {
	return string(bytes.TrimRight(bytes.TrimLeft(b, " \x00"), " \x00"))
}

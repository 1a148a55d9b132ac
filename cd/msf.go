// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Package cd decodes Compact Disc structures returned by MMC devices and synthesises the ones a
// device cannot supply.
package cd

// Number of sectors between MSF 00:00:00 and LBA 0
const LeadInOffset = 150

// LbaToMsf converts a sector address to minute, second and frame. The conventional two second
// offset is applied.
func LbaToMsf(sector int64) (m, s, f uint8) {
	v := sector + LeadInOffset
	return uint8(v / 4500), uint8(v / 75 % 60), uint8(v % 75)
}

// MsfToLba is the inverse of LbaToMsf.
func MsfToLba(m, s, f uint8) int64 {
	return int64(m)*4500 + int64(s)*75 + int64(f) - LeadInOffset
}

// durationToMsf splits a sector count without applying the lead-in offset.
func durationToMsf(sectors int64) (m, s, f uint8) {
	return uint8(sectors / 4500), uint8(sectors / 75 % 60), uint8(sectors % 75)
}

// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Package videonow recognises VideoNow Color discs. These are audio-only CDs carrying video
// frames that start with a fixed marker every nine sectors.
package videonow

import "github.com/dswarbrick/optical/utils"

const (
	SectorSize = 2352

	// Sectors per video frame
	FrameSectors = 9
	FrameSize    = FrameSectors * SectorSize
)

// FrameMarker opens every video frame.
var FrameMarker = []byte{
	0x81, 0xe3, 0xe3, 0xc7, 0xc7, 0x81, 0x81, 0xe3,
	0xc7, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00,
}

// IsVideoNowColor reports whether sector, the first sector of the first track, contains a frame
// marker.
func IsVideoNowColor(sector []byte) bool {
	_, ok := utils.FindPattern(sector, FrameMarker)
	return ok
}

// GetOffset returns the combined read offset in bytes, given a frame's worth of data read from
// the start of the first track. A marker found in the second half of the frame belongs to the
// following frame, so the drive reads early and the offset is negative.
func GetOffset(data []byte) (int, bool) {
	if len(data) > FrameSize {
		data = data[:FrameSize]
	}

	pos, ok := utils.FindPattern(data, FrameMarker)
	if !ok {
		return 0, false
	}

	if pos > FrameSize/2 {
		return pos - FrameSize, true
	}

	return pos, true
}

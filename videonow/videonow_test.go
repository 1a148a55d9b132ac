// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package videonow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func frameWithMarkerAt(pos int) []byte {
	data := make([]byte, FrameSize)
	for i := range data {
		data[i] = 0x55
	}
	copy(data[pos:], FrameMarker)
	return data
}

func TestIsVideoNowColor(t *testing.T) {
	assert.True(t, IsVideoNowColor(frameWithMarkerAt(100)[:SectorSize]))
	assert.False(t, IsVideoNowColor(make([]byte, SectorSize)))
}

func TestGetOffset(t *testing.T) {
	tests := []struct {
		pos  int
		want int
	}{
		{0, 0},
		{1176, 1176},
		{FrameSize - 2352, -2352},
	}

	for _, tc := range tests {
		off, ok := GetOffset(frameWithMarkerAt(tc.pos))
		assert.True(t, ok)
		assert.Equal(t, tc.want, off)
	}

	_, ok := GetOffset(make([]byte, FrameSize))
	assert.False(t, ok)
}

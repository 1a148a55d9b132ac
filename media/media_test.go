// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseType(t *testing.T) {
	assert := assert.New(t)

	mt, err := ParseType("xgd3")
	assert.NoError(err)
	assert.Equal(XGD3, mt)

	mt, err = ParseType("ISO_10090")
	assert.NoError(err)
	assert.Equal(ISO_10090, mt)

	_, err = ParseType("LaserDisc")
	assert.Error(err)
}

func TestFamilies(t *testing.T) {
	assert := assert.New(t)

	assert.True(CDRW.IsCD())
	assert.True(VideoNowColor.IsCD())
	assert.False(DVDROM.IsCD())
	assert.True(XGD2.IsDVD())
	assert.True(XGD2.IsXbox())
	assert.False(XGD4.IsXbox())
	assert.True(HDDVDRAM.IsHDDVD())
	assert.True(BDRE.IsBD())
	assert.Equal("DVD-R DL", DVDRDL.String())
	assert.Equal("Type(9999)", Type(9999).String())
}

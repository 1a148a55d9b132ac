// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package drivedb

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dswarbrick/optical/media"
)

const testDb = `
drives:
  - family: "$Id: test $"
  - family: DEFAULT
    warning: default entry
  - family: Specific firmware
    vendor_regex: "^ACME"
    model_regex: "^WRITER"
    firmware_regex: "^1\\."
    read_offset: -12
  - family: Any firmware
    vendor_regex: "^ACME"
    model_regex: "^WRITER"
    plextor_read_cdda: true
fingerprints:
  - media: ZIP100
    vendor_regex: "^IOMEGA"
    blocks: 196608
  - media: FlashDrive
    usb: true
`

func TestLookupDrive(t *testing.T) {
	db, err := ParseDriveDb(strings.NewReader(testDb))
	require.NoError(t, err)

	// Earlier entries take precedence
	d := db.LookupDrive("ACME", "WRITER 52X", "1.02")
	assert.Equal(t, "Specific firmware", d.Family)
	require.NotNil(t, d.ReadOffset)
	assert.Equal(t, -12, *d.ReadOffset)

	d = db.LookupDrive("ACME", "WRITER 52X", "2.00")
	assert.Equal(t, "Any firmware", d.Family)
	assert.True(t, d.PlextorReadCdda)
	assert.Nil(t, d.ReadOffset)

	// Placeholder entry is never returned; DEFAULT is the fallback
	d = db.LookupDrive("OTHER", "DRIVE", "1.00")
	assert.Equal(t, "DEFAULT", d.Family)
	assert.Equal(t, "default entry", d.WarningMsg)
}

func TestLookupMedia(t *testing.T) {
	db, err := ParseDriveDb(strings.NewReader(testDb))
	require.NoError(t, err)

	mt, ok := db.LookupMedia(DeviceInfo{Vendor: "IOMEGA", Model: "ZIP 100", Blocks: 196608})
	assert.True(t, ok)
	assert.Equal(t, media.ZIP100, mt)

	mt, ok = db.LookupMedia(DeviceInfo{Vendor: "IOMEGA", Model: "ZIP 100", Blocks: 196607, USB: true})
	assert.True(t, ok)
	assert.Equal(t, media.FlashDrive, mt)

	_, ok = db.LookupMedia(DeviceInfo{Vendor: "IOMEGA", Blocks: 1})
	assert.False(t, ok)
}

func TestParseDriveDbErrors(t *testing.T) {
	_, err := ParseDriveDb(strings.NewReader("fingerprints:\n  - media: NOPE\n"))
	assert.Error(t, err)

	_, err = ParseDriveDb(strings.NewReader("drives:\n  - family: x\n    model_regex: \"(\"\n"))
	assert.Error(t, err)

	_, err = OpenDriveDb("/nonexistent/drivedb.yaml")
	assert.Error(t, err)
}

func TestDefaultDriveDb(t *testing.T) {
	db := DefaultDriveDb()

	d := db.LookupDrive("PLEXTOR", "DVDR   PX-716A", "1.11")
	assert.True(t, d.PlextorReadCdda)
	assert.True(t, d.ScrambledRead)

	mt, ok := db.LookupMedia(DeviceInfo{ScsiType: 0, Blocks: 2880, BlockSize: 512})
	assert.True(t, ok)
	assert.Equal(t, media.DOS_35_HD, mt)

	mt, ok = db.LookupMedia(DeviceInfo{ScsiType: 1, DensityCode: 0x42})
	assert.True(t, ok)
	assert.Equal(t, media.LTO2, mt)
}

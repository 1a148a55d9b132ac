// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Package drivedb holds optical drive quirks and a table of media fingerprints for devices that
// cannot describe their own media.
package drivedb

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/dswarbrick/optical/media"
)

//go:embed drivedb.yaml
var defaultDb []byte

// DriveModel describes the capabilities and quirks of a family of drives.
type DriveModel struct {
	Family        string `yaml:"family"`
	VendorRegex   string `yaml:"vendor_regex,omitempty"`
	ModelRegex    string `yaml:"model_regex,omitempty"`
	FirmwareRegex string `yaml:"firmware_regex,omitempty"`
	WarningMsg    string `yaml:"warning,omitempty"`

	// Drive returns scrambled sectors with READ CD on data tracks
	ScrambledRead bool `yaml:"scrambled_read,omitempty"`
	// Drive implements the vendor READ CD-DA (D8h) command
	PlextorReadCdda bool `yaml:"plextor_read_cdda,omitempty"`
	// Known read offset in samples, if any
	ReadOffset *int `yaml:"read_offset,omitempty"`

	vendorRe   *regexp.Regexp
	modelRe    *regexp.Regexp
	firmwareRe *regexp.Regexp
}

// Fingerprint maps device and medium characteristics to a media type. Nil numeric fields and
// empty regexes match anything.
type Fingerprint struct {
	Media       string  `yaml:"media"`
	ScsiType    *uint8  `yaml:"scsi_type,omitempty"`
	VendorRegex string  `yaml:"vendor_regex,omitempty"`
	ModelRegex  string  `yaml:"model_regex,omitempty"`
	MediumType  *uint8  `yaml:"medium_type,omitempty"`
	DensityCode *uint8  `yaml:"density_code,omitempty"`
	Blocks      *uint64 `yaml:"blocks,omitempty"`
	BlockSize   *uint32 `yaml:"block_size,omitempty"`
	USB         *bool   `yaml:"usb,omitempty"`

	mediaType media.Type
	vendorRe  *regexp.Regexp
	modelRe   *regexp.Regexp
}

// DeviceInfo is what a fingerprint is matched against.
type DeviceInfo struct {
	ScsiType    uint8
	Vendor      string
	Model       string
	MediumType  uint8
	DensityCode uint8
	Blocks      uint64
	BlockSize   uint32
	USB         bool
}

type DriveDb struct {
	Drives       []DriveModel  `yaml:"drives"`
	Fingerprints []Fingerprint `yaml:"fingerprints"`
}

func matches(re *regexp.Regexp, s string) bool {
	return re == nil || re.MatchString(s)
}

// LookupDrive returns the most appropriate DriveModel for the given INQUIRY identification. The
// DEFAULT entry is returned when no other entry matches.
func (db *DriveDb) LookupDrive(vendor, model, firmware string) DriveModel {
	var dm DriveModel

	for _, d := range db.Drives {
		// Skip placeholder entry
		if strings.HasPrefix(d.Family, "$Id") {
			continue
		}

		if d.Family == "DEFAULT" {
			dm = d
			continue
		}

		if matches(d.vendorRe, vendor) && matches(d.modelRe, model) &&
			matches(d.firmwareRe, firmware) {
			return d
		}
	}

	return dm
}

// LookupMedia returns the media type of the first fingerprint matching info.
func (db *DriveDb) LookupMedia(info DeviceInfo) (media.Type, bool) {
	for _, f := range db.Fingerprints {
		if f.ScsiType != nil && *f.ScsiType != info.ScsiType {
			continue
		}
		if f.MediumType != nil && *f.MediumType != info.MediumType {
			continue
		}
		if f.DensityCode != nil && *f.DensityCode != info.DensityCode {
			continue
		}
		if f.Blocks != nil && *f.Blocks != info.Blocks {
			continue
		}
		if f.BlockSize != nil && *f.BlockSize != info.BlockSize {
			continue
		}
		if f.USB != nil && *f.USB != info.USB {
			continue
		}
		if !matches(f.vendorRe, info.Vendor) || !matches(f.modelRe, info.Model) {
			continue
		}

		return f.mediaType, true
	}

	return media.Unknown, false
}

func compile(expr string) (*regexp.Regexp, error) {
	if expr == "" {
		return nil, nil
	}

	return regexp.Compile(expr)
}

// ParseDriveDb reads a YAML-formatted drive database and compiles its patterns.
func ParseDriveDb(r io.Reader) (DriveDb, error) {
	var db DriveDb

	if err := yaml.NewDecoder(r).Decode(&db); err != nil {
		return db, err
	}

	for i := range db.Drives {
		d := &db.Drives[i]
		var err error

		if d.vendorRe, err = compile(d.VendorRegex); err != nil {
			return db, fmt.Errorf("drive %q: %w", d.Family, err)
		}
		if d.modelRe, err = compile(d.ModelRegex); err != nil {
			return db, fmt.Errorf("drive %q: %w", d.Family, err)
		}
		if d.firmwareRe, err = compile(d.FirmwareRegex); err != nil {
			return db, fmt.Errorf("drive %q: %w", d.Family, err)
		}
	}

	for i := range db.Fingerprints {
		f := &db.Fingerprints[i]
		var err error

		if f.mediaType, err = media.ParseType(f.Media); err != nil {
			return db, fmt.Errorf("fingerprint %d: %w", i, err)
		}
		if f.vendorRe, err = compile(f.VendorRegex); err != nil {
			return db, fmt.Errorf("fingerprint %d: %w", i, err)
		}
		if f.modelRe, err = compile(f.ModelRegex); err != nil {
			return db, fmt.Errorf("fingerprint %d: %w", i, err)
		}
	}

	return db, nil
}

// OpenDriveDb opens a YAML-formatted drive database, unmarshalls it, and returns a DriveDb.
func OpenDriveDb(dbfile string) (DriveDb, error) {
	f, err := os.Open(dbfile)
	if err != nil {
		return DriveDb{}, err
	}

	defer f.Close()

	return ParseDriveDb(f)
}

// DefaultDriveDb returns the built-in drive database.
func DefaultDriveDb() DriveDb {
	db, err := ParseDriveDb(bytes.NewReader(defaultDb))
	if err != nil {
		panic("drivedb: built-in database: " + err.Error())
	}

	return db
}

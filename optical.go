// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Package optical identifies the media in an optical (or other removable media) drive.
//
// A Resolver probes a scsi.Device with a fixed sequence of commands and narrows the answers down
// to a single media.Type. Probes that fail are skipped; only an absent medium stops resolution.
package optical

import (
	"errors"
	"path/filepath"
)

// ErrNoMedia is returned when the drive still reports no medium after polling.
var ErrNoMedia = errors.New("no medium in drive")

// ScanDevices returns the device nodes of all SCSI CD-ROM class devices.
func ScanDevices() []string {
	var devices []string

	files, err := filepath.Glob("/dev/sr[0-9]*")
	if err != nil {
		return devices
	}

	devices = append(devices, files...)

	return devices
}

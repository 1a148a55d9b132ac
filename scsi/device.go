// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Package scsi defines the boundary between response decoding and the device transport.
package scsi

// Device executes commands against a single drive. Implementations own CDB construction, timeouts
// and retries. A command that completes with a non-good status returns a *SenseError.
// A Device is used by one caller at a time.
type Device interface {
	Execute(cmd Command) ([]byte, error)
}

// BusReporter is implemented by devices that know which bus they are attached to.
type BusReporter interface {
	IsUSB() bool
}

// IsUSB reports whether dev is attached via USB. Devices that do not implement BusReporter are
// assumed not to be.
func IsUSB(dev Device) bool {
	if br, ok := dev.(BusReporter); ok {
		return br.IsUSB()
	}

	return false
}

// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package optical

import (
	"time"

	"github.com/go-logr/logr"

	"github.com/dswarbrick/optical/drivedb"
	"github.com/dswarbrick/optical/logging"
)

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger. The default discards all output.
func WithLogger(log logr.Logger) Option {
	return func(r *Resolver) {
		r.log = logging.NewLogger(log)
	}
}

// WithDriveDb replaces the built-in drive database.
func WithDriveDb(db drivedb.DriveDb) Option {
	return func(r *Resolver) {
		r.db = &db
	}
}

// WithSleep replaces time.Sleep for readiness polling.
func WithSleep(sleep func(time.Duration)) Option {
	return func(r *Resolver) {
		r.sleep = sleep
	}
}

// WithScrambledRead overrides the drive database on whether the drive returns scrambled data
// sectors when reading them as audio.
func WithScrambledRead(supported bool) Option {
	return func(r *Resolver) {
		r.scrambled = &supported
	}
}

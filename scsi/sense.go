// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// SCSI sense data and command errors.

package scsi

import (
	"errors"
	"fmt"
)

// Sense keys
const (
	SENSE_NO_SENSE        = 0x00
	SENSE_RECOVERED_ERROR = 0x01
	SENSE_NOT_READY       = 0x02
	SENSE_MEDIUM_ERROR    = 0x03
	SENSE_HARDWARE_ERROR  = 0x04
	SENSE_ILLEGAL_REQUEST = 0x05
	SENSE_UNIT_ATTENTION  = 0x06
	SENSE_DATA_PROTECT    = 0x07
	SENSE_BLANK_CHECK     = 0x08
	SENSE_ABORTED_COMMAND = 0x0b
)

// Additional sense codes
const (
	ASC_NO_ADDITIONAL_INFO       = 0x00
	ASC_LUN_NOT_READY            = 0x04
	ASC_INVALID_COMMAND          = 0x20
	ASC_LBA_OUT_OF_RANGE         = 0x21
	ASC_INVALID_FIELD_IN_CDB     = 0x24
	ASC_NOT_READY_TO_READY       = 0x28
	ASC_INCOMPATIBLE_MEDIUM      = 0x30
	ASC_MEDIUM_NOT_PRESENT       = 0x3a
	ASC_COPY_PROTECTION_FAILURE  = 0x6f
	ASCQ_BECOMING_READY          = 0x01
	ASCQ_MEDIUM_NOT_PRESENT_TRAY = 0x02
)

// Response codes
const (
	SENSE_FIXED_CURRENT       = 0x70
	SENSE_FIXED_DEFERRED      = 0x71
	SENSE_DESCRIPTOR_CURRENT  = 0x72
	SENSE_DESCRIPTOR_DEFERRED = 0x73
)

var senseKeyNames = map[uint8]string{
	SENSE_NO_SENSE:        "no sense",
	SENSE_RECOVERED_ERROR: "recovered error",
	SENSE_NOT_READY:       "not ready",
	SENSE_MEDIUM_ERROR:    "medium error",
	SENSE_HARDWARE_ERROR:  "hardware error",
	SENSE_ILLEGAL_REQUEST: "illegal request",
	SENSE_UNIT_ATTENTION:  "unit attention",
	SENSE_DATA_PROTECT:    "data protect",
	SENSE_BLANK_CHECK:     "blank check",
	SENSE_ABORTED_COMMAND: "aborted command",
}

// Sense is the decoded form of a sense buffer.
type Sense struct {
	ResponseCode uint8
	Key          uint8
	ASC          uint8
	ASCQ         uint8
}

func (s Sense) String() string {
	name, ok := senseKeyNames[s.Key]
	if !ok {
		name = fmt.Sprintf("sense key %#02x", s.Key)
	}

	return fmt.Sprintf("%s, ASC %#02x, ASCQ %#02x", name, s.ASC, s.ASCQ)
}

// DecodeSense decodes fixed and descriptor format sense data. It returns false if buf does not
// carry a recognised response code or is too short for its format.
func DecodeSense(buf []byte) (Sense, bool) {
	var s Sense

	if len(buf) < 1 {
		return s, false
	}

	s.ResponseCode = buf[0] & 0x7f

	switch s.ResponseCode {
	case SENSE_FIXED_CURRENT, SENSE_FIXED_DEFERRED:
		if len(buf) < 14 {
			return s, false
		}
		s.Key = buf[2] & 0x0f
		s.ASC = buf[12]
		s.ASCQ = buf[13]
	case SENSE_DESCRIPTOR_CURRENT, SENSE_DESCRIPTOR_DEFERRED:
		if len(buf) < 4 {
			return s, false
		}
		s.Key = buf[1] & 0x0f
		s.ASC = buf[2]
		s.ASCQ = buf[3]
	default:
		return s, false
	}

	return s, true
}

// SenseError is returned by a Device when a command completes with a non-good status.
type SenseError struct {
	ScsiStatus   uint8
	HostStatus   uint16
	DriverStatus uint16
	SenseBuf     []byte
}

func (e *SenseError) Error() string {
	if s, ok := DecodeSense(e.SenseBuf); ok {
		return fmt.Sprintf("SCSI status: %#02x, %s", e.ScsiStatus, s)
	}

	return fmt.Sprintf("SCSI status: %#02x, host status: %#02x, driver status: %#02x",
		e.ScsiStatus, e.HostStatus, e.DriverStatus)
}

// Sense decodes the error's sense buffer.
func (e *SenseError) Sense() (Sense, bool) {
	return DecodeSense(e.SenseBuf)
}

// SenseFromError extracts decoded sense data from anywhere in err's chain.
func SenseFromError(err error) (Sense, bool) {
	var se *SenseError

	if !errors.As(err, &se) {
		return Sense{}, false
	}

	return se.Sense()
}

// NewCheckCondition builds a SenseError carrying fixed format sense data, as returned for a
// CHECK CONDITION status.
func NewCheckCondition(key, asc, ascq uint8) *SenseError {
	buf := make([]byte, 18)
	buf[0] = SENSE_FIXED_CURRENT
	buf[2] = key
	buf[7] = 10
	buf[12] = asc
	buf[13] = ascq

	return &SenseError{ScsiStatus: 0x02, SenseBuf: buf}
}

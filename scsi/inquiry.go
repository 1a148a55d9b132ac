// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package scsi

import (
	"bytes"

	"github.com/lunixbochs/struc"

	"github.com/dswarbrick/optical/utils"
)

// Peripheral device types
const (
	TYPE_DIRECT_ACCESS = 0x00
	TYPE_SEQUENTIAL    = 0x01
	TYPE_WORM          = 0x04
	TYPE_MULTIMEDIA    = 0x05
	TYPE_OPTICAL       = 0x07
	TYPE_SIMPLIFIED    = 0x0e
)

// SCSI INQUIRY response
type inquiryResponse struct {
	Peripheral   uint8 // peripheral qualifier, device type
	Flags1       uint8 // RMB
	Version      uint8
	Flags3       uint8 // NormACA, HiSup, response data format
	AddLen       uint8
	Flags5       uint8
	Flags6       uint8
	Flags7       uint8
	VendorIdent  [8]byte
	ProductIdent [16]byte
	ProductRev   [4]byte
}

// Inquiry is a decoded standard INQUIRY response.
type Inquiry struct {
	DeviceType     uint8
	Removable      bool
	Version        uint8
	Vendor         string
	Product        string
	Revision       string
	VendorSpecific []byte

	// KreonFirmware is set when the vendor specific area identifies Kreon firmware.
	KreonFirmware bool
}

var kreonSignature = []byte("KREON")

// DecodeInquiry decodes a standard INQUIRY response. It returns nil if buf is shorter than
// INQ_REPLY_LEN.
func DecodeInquiry(buf []byte) *Inquiry {
	var resp inquiryResponse

	if len(buf) < INQ_REPLY_LEN {
		return nil
	}

	if err := struc.Unpack(bytes.NewReader(buf[:INQ_REPLY_LEN]), &resp); err != nil {
		return nil
	}

	inq := &Inquiry{
		DeviceType: resp.Peripheral & 0x1f,
		Removable:  resp.Flags1&0x80 != 0,
		Version:    resp.Version,
		Vendor:     utils.TrimASCII(resp.VendorIdent[:]),
		Product:    utils.TrimASCII(resp.ProductIdent[:]),
		Revision:   utils.TrimASCII(resp.ProductRev[:]),
	}

	if len(buf) > INQ_REPLY_LEN {
		inq.VendorSpecific = buf[INQ_REPLY_LEN:]
		inq.KreonFirmware = bytes.HasPrefix(inq.VendorSpecific, kreonSignature)
	}

	return inq
}

// IsMultimedia reports whether the device is an MMC device.
func (inq *Inquiry) IsMultimedia() bool {
	return inq.DeviceType == TYPE_MULTIMEDIA
}

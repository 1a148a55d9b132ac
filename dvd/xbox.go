// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package dvd

import "github.com/dswarbrick/optical/utils"

const (
	ssExtentCountOffset = 1632
	ssExtentOffset      = 1633
	ssExtentSize        = 9
	ssMaxExtents        = 23
)

// SecurityExtent is one protected PSN range of an Xbox security sector.
type SecurityExtent struct {
	Unknown  uint32
	StartPSN uint32
	EndPSN   uint32
}

// SecuritySector is the Xbox security sector returned by the Kreon extract command. Its first
// bytes share the PFI layout.
type SecuritySector struct {
	PFI
	Extents []SecurityExtent
}

// DecodeSecuritySector decodes an Xbox security sector response.
func DecodeSecuritySector(buf []byte) *SecuritySector {
	if len(buf) < StructureSize {
		return nil
	}

	// The Kreon response carries no structure header length
	ss := &SecuritySector{PFI: *decodeLayerDescriptor(buf)}

	n := int(buf[ssExtentCountOffset])
	if n > ssMaxExtents {
		n = ssMaxExtents
	}

	for i := 0; i < n; i++ {
		off := ssExtentOffset + i*ssExtentSize
		ss.Extents = append(ss.Extents, SecurityExtent{
			Unknown:  utils.Uint24BE(buf, off),
			StartPSN: utils.Uint24BE(buf, off+3),
			EndPSN:   utils.Uint24BE(buf, off+6),
		})
	}

	return ss
}

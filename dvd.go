// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package optical

import (
	"github.com/dswarbrick/optical/dvd"
	"github.com/dswarbrick/optical/media"
	"github.com/dswarbrick/optical/scsi"
)

// XGD3 discs carry an Xbox 360 DMI but one of these block counts
var xgd3Blocks = map[uint64]bool{
	25063:   true,
	4229664: true,
	4246304: true,
}

// refineDVD reads the physical format and manufacturing information. The PFI book type replaces a
// guess, except that a DVD-ROM book type never replaces a more specific guess: recordable discs
// are routinely written with the DVD-ROM book type.
func (r *Resolver) refineDVD(dev scsi.Device, res *Result) {
	if buf, err := dev.Execute(cmdDiscStructure(scsi.DVD_PHYSICAL_INFORMATION, 0)); err != nil {
		r.log.Debug("reading PFI failed", "err", err)
	} else if res.PFI = dvd.DecodePFI(buf); res.PFI != nil {
		r.log.Debug("PFI", "pfi", res.PFI)

		if mt, ok := res.PFI.MediaType(); ok {
			if mt != media.DVDROM || res.MediaType == media.Unknown {
				res.MediaType = mt
			}
		}
	}

	buf, err := dev.Execute(cmdDiscStructure(scsi.DVD_DISC_MANUFACTURING_INFORMATION, 0))
	if err != nil {
		r.log.Debug("reading DMI failed", "err", err)
		return
	}

	res.DMI = dvd.DecodeDMI(buf)
	res.XboxDMI = dvd.DecodeXboxDMI(buf)

	switch {
	case dvd.IsXbox(buf):
		res.MediaType = media.XGD
	case dvd.IsXbox360(buf):
		if xgd3Blocks[res.Blocks] {
			res.MediaType = media.XGD3
		} else {
			res.MediaType = media.XGD2
		}
	}
}

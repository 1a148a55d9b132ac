// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package optical

import (
	"time"

	"github.com/dswarbrick/optical/cd"
	"github.com/dswarbrick/optical/discinfo"
	"github.com/dswarbrick/optical/drivedb"
	"github.com/dswarbrick/optical/dvd"
	"github.com/dswarbrick/optical/features"
	"github.com/dswarbrick/optical/logging"
	"github.com/dswarbrick/optical/media"
	"github.com/dswarbrick/optical/scsi"
)

const (
	readyInterval = 2 * time.Second

	// Polls while the drive reports no medium, and while it reports becoming ready
	noMediumRetries      = 5
	becomingReadyRetries = 10
)

// Result is everything learnt about the medium during one Resolve call.
type Result struct {
	MediaType media.Type

	Blocks    uint64
	BlockSize uint32

	Inquiry   *scsi.Inquiry
	Drive     drivedb.DriveModel
	USB       bool
	ModeSense *scsi.ModeSense

	Configuration features.ConfigurationHeader
	Features      map[uint16]features.Feature

	PFI            *dvd.PFI
	DMI            *dvd.DMI
	XboxDMI        *dvd.XboxDMI
	SecuritySector *dvd.SecuritySector
	Xgd            *XgdInfo

	TOC             *cd.TOC
	FullTOC         *cd.FullTOC
	Session         *cd.Session
	PMA             *cd.PMA
	ATIP            *cd.ATIP
	CDText          *cd.CDText
	MCN             string
	ISRCs           map[uint8]string
	DiscInformation *discinfo.Standard
	Tracks          []cd.Track
}

// Resolver identifies media. It holds no per-call state and may be reused, but a device must not
// be shared between concurrent calls.
type Resolver struct {
	log       *logging.Logger
	db        *drivedb.DriveDb
	sleep     func(time.Duration)
	scrambled *bool
}

// NewResolver returns a Resolver using the built-in drive database unless overridden.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		log:   logging.Discard(),
		sleep: time.Sleep,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.db == nil {
		db := drivedb.DefaultDriveDb()
		r.db = &db
	}

	return r
}

// Resolve probes dev and classifies its medium. The only error returned is ErrNoMedia.
func (r *Resolver) Resolve(dev scsi.Device) (*Result, error) {
	res := &Result{ISRCs: make(map[uint8]string), USB: scsi.IsUSB(dev)}

	if err := r.waitReady(dev); err != nil {
		return nil, err
	}

	r.identify(dev, res)
	r.readCapacity(dev, res)
	r.modeSense(dev, res)
	r.classifyProfile(dev, res)

	mmc := res.Inquiry == nil || res.Inquiry.IsMultimedia()

	if res.MediaType.IsDVD() || res.MediaType.IsHDDVD() || (res.MediaType == media.Unknown && mmc) {
		r.refineDVD(dev, res)
	}

	switch res.MediaType {
	case media.CD, media.CDR, media.CDROM, media.CDRW, media.Unknown:
		if mmc {
			r.refineCD(dev, res)
		}
	}

	if res.MediaType.IsXbox() {
		r.probeXbox(dev, res)
	}

	r.inspectContent(dev, res)
	r.fallback(res)

	r.log.Info("media identified", "type", res.MediaType, "blocks", res.Blocks,
		"block_size", res.BlockSize)

	return res, nil
}

// waitReady polls TEST UNIT READY while the drive reports no medium or becoming ready. Any other
// failure is left for the following probes to run into.
func (r *Resolver) waitReady(dev scsi.Device) error {
	var noMedium, becoming int

	for {
		_, err := dev.Execute(cmdTestUnitReady)
		if err == nil {
			return nil
		}

		sense, ok := scsi.SenseFromError(err)
		if !ok {
			r.log.Debug("test unit ready failed", "err", err)
			return nil
		}

		switch {
		case sense.ASC == scsi.ASC_MEDIUM_NOT_PRESENT:
			if noMedium >= noMediumRetries {
				return ErrNoMedia
			}
			noMedium++
			r.log.Info("no medium, waiting", "attempt", noMedium)
		case sense.ASC == scsi.ASC_LUN_NOT_READY && sense.ASCQ == scsi.ASCQ_BECOMING_READY:
			if becoming >= becomingReadyRetries {
				return ErrNoMedia
			}
			becoming++
			r.log.Info("drive becoming ready, waiting", "attempt", becoming)
		default:
			r.log.Debug("test unit ready failed", "sense", sense)
			return nil
		}

		r.sleep(readyInterval)
	}
}

func (r *Resolver) identify(dev scsi.Device, res *Result) {
	buf, err := dev.Execute(cmdInquiry)
	if err != nil {
		r.log.Debug("inquiry failed", "err", err)
		res.Drive = r.db.LookupDrive("", "", "")
		return
	}

	res.Inquiry = scsi.DecodeInquiry(buf)
	if res.Inquiry == nil {
		r.log.Debug("short inquiry response", "len", len(buf))
		res.Drive = r.db.LookupDrive("", "", "")
		return
	}

	res.Drive = r.db.LookupDrive(res.Inquiry.Vendor, res.Inquiry.Product, res.Inquiry.Revision)
	r.log.Debug("drive identified", "vendor", res.Inquiry.Vendor, "product", res.Inquiry.Product,
		"revision", res.Inquiry.Revision, "family", res.Drive.Family, "kreon", res.Inquiry.KreonFirmware)

	if res.Drive.WarningMsg != "" {
		r.log.Info(res.Drive.WarningMsg, "family", res.Drive.Family)
	}
}

// readCapacity tries READ CAPACITY(10) first. READ CAPACITY(16) is used when that fails or
// reports a last LBA that needs the longer form, and takes precedence when it succeeds.
func (r *Resolver) readCapacity(dev scsi.Device, res *Result) {
	var (
		c  scsi.Capacity
		ok bool
	)

	buf, err := dev.Execute(cmdReadCapacity10)
	if err == nil {
		c, ok = scsi.DecodeCapacity10(buf)
	}

	if err != nil || !ok || c.LastLBA == 0 || c.LastLBA == 0xffffffff {
		if buf, err16 := dev.Execute(cmdReadCapacity16); err16 == nil {
			if c16, ok16 := scsi.DecodeCapacity16(buf); ok16 {
				c, ok = c16, true
			}
		}
	}

	if !ok {
		if res.Inquiry != nil && !res.Inquiry.IsMultimedia() {
			r.log.Error(err, "unable to read medium capacity")
		} else {
			r.log.Debug("unable to read medium capacity", "err", err)
		}
		return
	}

	res.Blocks = c.Blocks()
	res.BlockSize = c.BlockLength
}

func (r *Resolver) modeSense(dev scsi.Device, res *Result) {
	if buf, err := dev.Execute(cmdModeSense10); err == nil {
		if res.ModeSense = scsi.DecodeModeSense10(buf); res.ModeSense != nil {
			return
		}
	}

	buf, err := dev.Execute(cmdModeSense6)
	if err != nil {
		r.log.Debug("mode sense failed", "err", err)
		return
	}

	res.ModeSense = scsi.DecodeModeSense6(buf)
}

// fallback consults the fingerprint table and the catch-all rules for media still unknown.
func (r *Resolver) fallback(res *Result) {
	if res.MediaType != media.Unknown {
		return
	}

	info := drivedb.DeviceInfo{
		Blocks:    res.Blocks,
		BlockSize: res.BlockSize,
		USB:       res.USB,
	}
	if res.Inquiry != nil {
		info.ScsiType = res.Inquiry.DeviceType
		info.Vendor = res.Inquiry.Vendor
		info.Model = res.Inquiry.Product
	}
	if res.ModeSense != nil {
		info.MediumType = res.ModeSense.MediumType
		info.DensityCode = res.ModeSense.DensityCode
	}

	if mt, ok := r.db.LookupMedia(info); ok {
		r.log.Debug("media matched fingerprint", "type", mt)
		res.MediaType = mt
		return
	}

	if res.USB && res.ModeSense != nil && res.ModeSense.HasPage(scsi.FLEXIBLE_DISK_PAGE) {
		switch res.ModeSense.MediumType {
		case 0x40, 0x41, 0x42:
			res.MediaType = media.FlashDrive
			return
		}
	}

	if res.Inquiry != nil && !res.Inquiry.Removable {
		res.MediaType = media.GENERIC_HDD
	}
}

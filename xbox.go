// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package optical

import (
	"fmt"

	"github.com/dswarbrick/optical/dvd"
	"github.com/dswarbrick/optical/scsi"
)

// XgdInfo is the partition layout of an Xbox game disc, in sectors.
type XgdInfo struct {
	L0Video    uint64
	L1Video    uint64
	MiddleZone uint64
	GameSize   uint64
	TotalSize  uint64
	LayerBreak uint64
}

func (x *XgdInfo) String() string {
	return fmt.Sprintf("video L0 %d, video L1 %d, middle zone %d, game %d, total %d, layer break %d",
		x.L0Video, x.L1Video, x.MiddleZone, x.GameSize, x.TotalSize, x.LayerBreak)
}

// probeXbox walks a Kreon drive through its lock states to measure the video and game
// partitions. Any failed step abandons the probe without touching the result.
func (r *Resolver) probeXbox(dev scsi.Device, res *Result) {
	if res.Inquiry == nil || !res.Inquiry.KreonFirmware {
		r.log.Info("xbox disc needs a drive with Kreon firmware to be measured")
		return
	}

	ss, xgd, err := measureXbox(dev)
	if err != nil {
		r.log.Error(err, "xbox partition probe aborted")
		return
	}

	res.SecuritySector = ss
	res.Xgd = xgd
	r.log.Debug("xbox partitions", "layout", xgd)
}

func xboxCapacity(dev scsi.Device, state string) (scsi.Capacity, error) {
	buf, err := dev.Execute(cmdReadCapacity10)
	if err != nil {
		return scsi.Capacity{}, fmt.Errorf("reading %s capacity: %w", state, err)
	}

	c, ok := scsi.DecodeCapacity10(buf)
	if !ok {
		return scsi.Capacity{}, fmt.Errorf("reading %s capacity: short response", state)
	}

	return c, nil
}

func xboxPFI(dev scsi.Device, state string) (*dvd.PFI, error) {
	buf, err := dev.Execute(cmdDiscStructure(scsi.DVD_PHYSICAL_INFORMATION, 0))
	if err != nil {
		return nil, fmt.Errorf("reading %s PFI: %w", state, err)
	}

	pfi := dvd.DecodePFI(buf)
	if pfi == nil {
		return nil, fmt.Errorf("reading %s PFI: short response", state)
	}

	return pfi, nil
}

func measureXbox(dev scsi.Device) (*dvd.SecuritySector, *XgdInfo, error) {
	buf, err := dev.Execute(cmdKreonExtractSS)
	if err != nil {
		return nil, nil, fmt.Errorf("extracting security sector: %w", err)
	}

	ss := dvd.DecodeSecuritySector(buf)
	if ss == nil {
		return nil, nil, fmt.Errorf("extracting security sector: short response")
	}

	if _, err := dev.Execute(cmdKreonLock); err != nil {
		return nil, nil, fmt.Errorf("locking drive: %w", err)
	}

	video, err := xboxCapacity(dev, "video")
	if err != nil {
		return nil, nil, err
	}

	videoPFI, err := xboxPFI(dev, "video")
	if err != nil {
		return nil, nil, err
	}

	if _, err := dev.Execute(cmdKreonUnlockXtreme); err != nil {
		return nil, nil, fmt.Errorf("unlocking drive (xtreme): %w", err)
	}

	game, err := xboxCapacity(dev, "game")
	if err != nil {
		return nil, nil, err
	}

	if _, err := dev.Execute(cmdKreonUnlockWxripper); err != nil {
		return nil, nil, fmt.Errorf("unlocking drive (wxripper): %w", err)
	}

	total, err := xboxCapacity(dev, "unlocked")
	if err != nil {
		return nil, nil, err
	}

	totalPFI, err := xboxPFI(dev, "unlocked")
	if err != nil {
		return nil, nil, err
	}

	xgd, err := xboxLayout(videoPFI, video, game, totalPFI, total)
	if err != nil {
		return nil, nil, err
	}

	return ss, xgd, nil
}

// xboxLayout derives the partition sizes from the three capacity readings and the layer 0
// boundaries reported while locked and unlocked.
func xboxLayout(videoPFI *dvd.PFI, video, game scsi.Capacity, totalPFI *dvd.PFI, total scsi.Capacity) (*XgdInfo, error) {
	l0Video := int64(videoPFI.Layer0EndPSN) - int64(videoPFI.DataAreaStartPSN) + 1
	l1Video := int64(video.LastLBA) - l0Video + 1
	gameSize := int64(game.LastLBA) + 1
	middleZone := int64(total.LastLBA) -
		(int64(totalPFI.Layer0EndPSN) - int64(totalPFI.DataAreaStartPSN) + 1) - gameSize + 1

	if l0Video <= 0 || l1Video <= 0 || middleZone < 0 {
		return nil, fmt.Errorf("inconsistent partition sizes: L0 video %d, L1 video %d, middle zone %d",
			l0Video, l1Video, middleZone)
	}

	return &XgdInfo{
		L0Video:    uint64(l0Video),
		L1Video:    uint64(l1Video),
		MiddleZone: uint64(middleZone),
		GameSize:   uint64(gameSize),
		TotalSize:  uint64(l0Video + l1Video + 2*middleZone + gameSize),
		LayerBreak: uint64(l0Video + middleZone + gameSize/2),
	}, nil
}

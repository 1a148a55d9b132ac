// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package optical

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dswarbrick/optical/cd"
	"github.com/dswarbrick/optical/dvd"
	"github.com/dswarbrick/optical/features"
	"github.com/dswarbrick/optical/media"
	"github.com/dswarbrick/optical/scsi"
)

// countingDevice records how often each operation was issued.
type countingDevice struct {
	*scsi.ReplayDevice
	calls map[scsi.Operation]int
}

func (d *countingDevice) Execute(cmd scsi.Command) ([]byte, error) {
	d.calls[cmd.Op]++
	return d.ReplayDevice.Execute(cmd)
}

func replay(usb bool, exchanges ...scsi.Exchange) *countingDevice {
	return &countingDevice{
		ReplayDevice: scsi.NewReplayDevice(&scsi.Capture{USB: usb, Exchanges: exchanges}),
		calls:        make(map[scsi.Operation]int),
	}
}

func exchange(cmd scsi.Command, data []byte) scsi.Exchange {
	return scsi.Exchange{
		Op:        cmd.Op,
		Format:    cmd.Format,
		Track:     cmd.Track,
		MSF:       cmd.MSF,
		Layer:     cmd.Layer,
		MediaType: cmd.MediaType,
		Address:   cmd.Address,
		Length:    cmd.Length,
		Data:      data,
	}
}

func failure(cmd scsi.Command, key, asc, ascq uint8) scsi.Exchange {
	e := exchange(cmd, nil)
	e.Sense = scsi.NewCheckCondition(key, asc, ascq).SenseBuf
	return e
}

func inquiryData(devType uint8, removable bool, vendor, product string, extra string) []byte {
	buf := make([]byte, scsi.INQ_REPLY_LEN)
	buf[0] = devType
	if removable {
		buf[1] = 0x80
	}
	buf[4] = scsi.INQ_REPLY_LEN - 5 + byte(len(extra))
	copy(buf[8:16], "        ")
	copy(buf[8:16], vendor)
	copy(buf[16:32], "                ")
	copy(buf[16:32], product)
	copy(buf[32:36], "1.00")

	return append(buf, extra...)
}

func mmcInquiry() scsi.Exchange {
	return exchange(cmdInquiry, inquiryData(scsi.TYPE_MULTIMEDIA, true, "ACME", "DVD-ROM", ""))
}

func kreonInquiry() scsi.Exchange {
	return exchange(cmdInquiry, inquiryData(scsi.TYPE_MULTIMEDIA, true, "TSSTcorp", "DVD-ROM TS-H943A",
		"KREON V1.00"))
}

func capacityData(lastLBA, blockLength uint32) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint32(buf, lastLBA)
	binary.BigEndian.PutUint32(buf[4:], blockLength)
	return buf
}

func profileData(profile uint16) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint32(buf, 4)
	binary.BigEndian.PutUint16(buf[6:], profile)
	return buf
}

func modeSense10Data(mediumType uint8, pages ...byte) []byte {
	buf := []byte{0, 0, mediumType, 0, 0, 0, 0, 0}
	buf = append(buf, pages...)
	binary.BigEndian.PutUint16(buf, uint16(len(buf)-2))
	return buf
}

func pfiData(category, version byte, start, l0End uint32) []byte {
	buf := make([]byte, dvd.StructureSize)
	binary.BigEndian.PutUint16(buf, dvd.StructureSize-2)
	buf[4] = category<<4 | version
	buf[6] = 1 << 5
	buf[9], buf[10], buf[11] = byte(start>>16), byte(start>>8), byte(start)
	buf[13], buf[14], buf[15] = 0xfc, 0xff, 0xff
	buf[17], buf[18], buf[19] = byte(l0End>>16), byte(l0End>>8), byte(l0End)
	return buf
}

func xboxDMIData() []byte {
	buf := make([]byte, dvd.StructureSize)
	binary.LittleEndian.PutUint32(buf[4:], 1)
	copy(buf[12:], "MS04001A")
	binary.LittleEndian.PutUint64(buf[20:], 126543168000000000)
	return buf
}

func xbox360DMIData() []byte {
	buf := make([]byte, dvd.StructureSize)
	binary.LittleEndian.PutUint32(buf[0x7ec:], 0x584f4258)
	return buf
}

type tocEntry struct {
	track   uint8
	control uint8
	lba     uint32
}

func tocData(entries ...tocEntry) []byte {
	buf := make([]byte, 4, 4+8*len(entries))
	buf[2], buf[3] = entries[0].track, entries[len(entries)-2].track

	for _, e := range entries {
		d := make([]byte, 8)
		d[1] = 0x10 | e.control
		d[2] = e.track
		binary.BigEndian.PutUint32(d[4:], e.lba)
		buf = append(buf, d...)
	}

	binary.BigEndian.PutUint16(buf, uint16(len(buf)-2))
	return buf
}

func resolve(t *testing.T, dev scsi.Device, opts ...Option) *Result {
	t.Helper()

	opts = append([]Option{WithSleep(func(time.Duration) {})}, opts...)
	res, err := NewResolver(opts...).Resolve(dev)
	require.NoError(t, err)
	require.NotNil(t, res)

	return res
}

func TestWaitReady(t *testing.T) {
	tests := []struct {
		name      string
		exchanges []scsi.Exchange
		err       error
		turs      int
		sleeps    int
	}{
		{
			name: "no medium",
			exchanges: []scsi.Exchange{
				failure(cmdTestUnitReady, scsi.SENSE_NOT_READY, scsi.ASC_MEDIUM_NOT_PRESENT, 0),
			},
			err:    ErrNoMedia,
			turs:   noMediumRetries + 1,
			sleeps: noMediumRetries,
		},
		{
			name: "never becomes ready",
			exchanges: []scsi.Exchange{
				failure(cmdTestUnitReady, scsi.SENSE_NOT_READY, scsi.ASC_LUN_NOT_READY, scsi.ASCQ_BECOMING_READY),
			},
			err:    ErrNoMedia,
			turs:   becomingReadyRetries + 1,
			sleeps: becomingReadyRetries,
		},
		{
			name: "ready after spin up",
			exchanges: []scsi.Exchange{
				failure(cmdTestUnitReady, scsi.SENSE_NOT_READY, scsi.ASC_LUN_NOT_READY, scsi.ASCQ_BECOMING_READY),
				failure(cmdTestUnitReady, scsi.SENSE_NOT_READY, scsi.ASC_MEDIUM_NOT_PRESENT, 0),
				exchange(cmdTestUnitReady, nil),
			},
			turs:   3,
			sleeps: 2,
		},
		{
			name: "other sense is left to later probes",
			exchanges: []scsi.Exchange{
				failure(cmdTestUnitReady, scsi.SENSE_UNIT_ATTENTION, scsi.ASC_NOT_READY_TO_READY, 0),
			},
			turs: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := replay(false, tt.exchanges...)
			sleeps := 0

			r := NewResolver(WithSleep(func(d time.Duration) {
				assert.Equal(t, readyInterval, d)
				sleeps++
			}))

			res, err := r.Resolve(dev)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				assert.Nil(t, res)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, res)
			}

			assert.Equal(t, tt.turs, dev.calls[scsi.OpTestUnitReady])
			assert.Equal(t, tt.sleeps, sleeps)
		})
	}
}

func TestResolveDVDBookType(t *testing.T) {
	tests := []struct {
		name     string
		profile  uint16
		category byte
		version  byte
		want     media.Type
	}{
		{"dual layer DVD-R in a DVD-ROM profile", features.PROFILE_DVD_ROM, dvd.CATEGORY_DVD_R, 6, media.DVDRDL},
		{"single layer DVD-R", features.PROFILE_DVD_ROM, dvd.CATEGORY_DVD_R, 5, media.DVDR},
		{"DVD-ROM book type keeps DVD+R", features.PROFILE_DVD_PLUS_R, dvd.CATEGORY_DVD_ROM, 1, media.DVDPR},
		{"DVD-ROM", features.PROFILE_DVD_ROM, dvd.CATEGORY_DVD_ROM, 1, media.DVDROM},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := replay(false,
				mmcInquiry(),
				exchange(cmdReadCapacity10, capacityData(2295103, 2048)),
				exchange(cmdConfiguration, profileData(tt.profile)),
				exchange(cmdDiscStructure(scsi.DVD_PHYSICAL_INFORMATION, 0),
					pfiData(tt.category, tt.version, 0x030000, 0x0fffff)),
			)

			res := resolve(t, dev)
			assert.Equal(t, tt.want, res.MediaType)
			require.NotNil(t, res.PFI)
			assert.Equal(t, uint64(2295104), res.Blocks)
			assert.Equal(t, uint32(2048), res.BlockSize)
		})
	}
}

func TestResolveXbox360(t *testing.T) {
	tests := []struct {
		lastLBA uint32
		want    media.Type
	}{
		{4229663, media.XGD3},
		{4229662, media.XGD2},
		{4246303, media.XGD3},
		{7650645, media.XGD2},
	}

	for _, tt := range tests {
		dev := replay(false,
			mmcInquiry(),
			exchange(cmdReadCapacity10, capacityData(tt.lastLBA, 2048)),
			exchange(cmdConfiguration, profileData(features.PROFILE_DVD_ROM)),
			exchange(cmdDiscStructure(scsi.DVD_DISC_MANUFACTURING_INFORMATION, 0), xbox360DMIData()),
		)

		res := resolve(t, dev)
		assert.Equal(t, tt.want, res.MediaType, "last LBA %d", tt.lastLBA)
		assert.NotNil(t, res.DMI)

		// Only a Kreon drive can measure the partitions
		assert.Nil(t, res.Xgd)
		assert.Zero(t, dev.calls[scsi.OpKreonExtractSS])
	}
}

func xboxExchanges(unlock scsi.Exchange) []scsi.Exchange {
	pfi := cmdDiscStructure(scsi.DVD_PHYSICAL_INFORMATION, 0)

	return []scsi.Exchange{
		kreonInquiry(),
		exchange(cmdConfiguration, profileData(features.PROFILE_DVD_ROM)),
		exchange(cmdDiscStructure(scsi.DVD_DISC_MANUFACTURING_INFORMATION, 0), xboxDMIData()),
		exchange(cmdKreonExtractSS, make([]byte, dvd.StructureSize)),
		exchange(cmdKreonLock, nil),
		unlock,
		exchange(cmdKreonUnlockWxripper, nil),

		// Initial, video, game and unlocked capacities in that order
		exchange(cmdReadCapacity10, capacityData(1000000, 2048)),
		exchange(cmdReadCapacity10, capacityData(1000000, 2048)),
		exchange(cmdReadCapacity10, capacityData(3000000, 2048)),
		exchange(cmdReadCapacity10, capacityData(5000000, 2048)),

		// Initial, video and unlocked PFI
		exchange(pfi, pfiData(dvd.CATEGORY_DVD_ROM, 1, 0x030000, 0x0bffff)),
		exchange(pfi, pfiData(dvd.CATEGORY_DVD_ROM, 1, 0x030000, 0x0bffff)),
		exchange(pfi, pfiData(dvd.CATEGORY_DVD_ROM, 1, 0x030000, 0x20339f)),
	}
}

func TestResolveXboxPartitions(t *testing.T) {
	dev := replay(false, xboxExchanges(exchange(cmdKreonUnlockXtreme, nil))...)

	res := resolve(t, dev)
	assert.Equal(t, media.XGD, res.MediaType)
	require.NotNil(t, res.XboxDMI)
	assert.Equal(t, "MS-04001-A", res.XboxDMI.CatalogNumber)
	require.NotNil(t, res.SecuritySector)

	assert.Equal(t, &XgdInfo{
		L0Video:    589824,
		L1Video:    410177,
		MiddleZone: 86240,
		GameSize:   3000001,
		TotalSize:  4172482,
		LayerBreak: 2176064,
	}, res.Xgd)
}

func TestResolveXboxProbeAborted(t *testing.T) {
	dev := replay(false, xboxExchanges(
		failure(cmdKreonUnlockXtreme, scsi.SENSE_ILLEGAL_REQUEST, scsi.ASC_INVALID_COMMAND, 0))...)

	res := resolve(t, dev)
	assert.Equal(t, media.XGD, res.MediaType)
	assert.Nil(t, res.Xgd)
	assert.Nil(t, res.SecuritySector)
	assert.Zero(t, dev.calls[scsi.OpKreonUnlockWxripper])
}

func TestXboxLayoutInconsistent(t *testing.T) {
	pfi := dvd.DecodePFI(pfiData(dvd.CATEGORY_DVD_ROM, 1, 0x030000, 0x0bffff))
	require.NotNil(t, pfi)

	// Locked capacity smaller than layer 0 video
	_, err := xboxLayout(pfi, scsi.Capacity{LastLBA: 1000}, scsi.Capacity{LastLBA: 3000000}, pfi,
		scsi.Capacity{LastLBA: 5000000})
	assert.Error(t, err)
}

func TestResolveRemovableDisk(t *testing.T) {
	tests := []struct {
		name       string
		mediumType uint8
		lastLBA    uint32
		want       media.Type
	}{
		{"PD-650 WORM", MEDIUM_TYPE_PD650, pd650WormBlocks - 1, media.PD650WORM},
		{"PD-650", MEDIUM_TYPE_PD650, 1298496 - 1, media.PD650},
		{"REV 35GB", MEDIUM_TYPE_REV, 17090880 - 1, media.REV35},
		{"REV of unknown size", MEDIUM_TYPE_REV, 1000, media.Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := replay(false,
				exchange(cmdInquiry, inquiryData(scsi.TYPE_OPTICAL, true, "IOMEGA", "REV", "")),
				exchange(cmdReadCapacity10, capacityData(tt.lastLBA, 512)),
				exchange(cmdModeSense10, modeSense10Data(tt.mediumType)),
				exchange(cmdConfiguration, profileData(features.PROFILE_REMOVABLE)),
			)

			res := resolve(t, dev)
			assert.Equal(t, tt.want, res.MediaType)
			require.NotNil(t, res.ModeSense)
			assert.Equal(t, tt.mediumType, res.ModeSense.MediumType)

			// Not an MMC device, so no disc structures are read
			assert.Zero(t, dev.calls[scsi.OpReadTocPmaAtip])
			assert.Zero(t, dev.calls[scsi.OpReadDiscStructure])
		})
	}
}

func atipData(rewritable bool) []byte {
	buf := make([]byte, 28)
	binary.BigEndian.PutUint16(buf, 26)
	if rewritable {
		buf[6] = 0x40
	}
	return buf
}

func discInfoData(discType uint8) []byte {
	buf := make([]byte, 34)
	binary.BigEndian.PutUint16(buf, 32)
	buf[2] = 0x0e
	buf[3], buf[4], buf[5], buf[6] = 1, 1, 1, 1
	buf[8] = discType
	return buf
}

func TestResolveCD(t *testing.T) {
	audioTOC := tocData(
		tocEntry{1, 0, 0},
		tocEntry{2, 0, 15000},
		tocEntry{cd.LeadOutTrack, 0, 30000},
	)
	dataTOC := tocData(
		tocEntry{1, cd.FlagDataTrack, 0},
		tocEntry{cd.LeadOutTrack, cd.FlagDataTrack, 30000},
	)

	tests := []struct {
		name      string
		exchanges []scsi.Exchange
		want      media.Type
	}{
		{
			name: "audio",
			exchanges: []scsi.Exchange{
				exchange(cmdReadToc(scsi.TOC_FORMAT_TOC), audioTOC),
			},
			want: media.CDDA,
		},
		{
			name: "data",
			exchanges: []scsi.Exchange{
				exchange(cmdReadToc(scsi.TOC_FORMAT_TOC), dataTOC),
			},
			want: media.CDROM,
		},
		{
			name: "recordable",
			exchanges: []scsi.Exchange{
				exchange(cmdReadToc(scsi.TOC_FORMAT_TOC), audioTOC),
				exchange(cmdReadToc(scsi.TOC_FORMAT_ATIP), atipData(false)),
			},
			want: media.CDR,
		},
		{
			name: "rewritable",
			exchanges: []scsi.Exchange{
				exchange(cmdReadToc(scsi.TOC_FORMAT_TOC), dataTOC),
				exchange(cmdReadToc(scsi.TOC_FORMAT_ATIP), atipData(true)),
			},
			want: media.CDRW,
		},
		{
			name: "XA disc type",
			exchanges: []scsi.Exchange{
				exchange(cmdReadToc(scsi.TOC_FORMAT_TOC), dataTOC),
				exchange(cmdDiscInfo, discInfoData(0x20)),
			},
			want: media.CDROMXA,
		},
		{
			name: "CD-i disc type",
			exchanges: []scsi.Exchange{
				exchange(cmdReadToc(scsi.TOC_FORMAT_TOC), dataTOC),
				exchange(cmdDiscInfo, discInfoData(0x10)),
			},
			want: media.CDI,
		},
		{
			name: "disc information with bad length",
			exchanges: []scsi.Exchange{
				exchange(cmdReadToc(scsi.TOC_FORMAT_TOC), dataTOC),
				exchange(cmdDiscInfo, append(discInfoData(0x20), 0, 0)),
			},
			want: media.CDROM,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exchanges := append([]scsi.Exchange{
				mmcInquiry(),
				exchange(cmdReadCapacity10, capacityData(29999, 2048)),
				exchange(cmdConfiguration, profileData(features.PROFILE_CD_ROM)),
			}, tt.exchanges...)

			res := resolve(t, replay(false, exchanges...))
			assert.Equal(t, tt.want, res.MediaType)
			require.NotNil(t, res.TOC)
			assert.NotEmpty(t, res.Tracks)
		})
	}
}

func TestResolveEnhancedCD(t *testing.T) {
	tracks := []cd.Track{
		{Session: 1, Sequence: 1, Type: cd.TrackAudio, StartSector: 0, EndSector: 9999},
		{Session: 1, Sequence: 2, Type: cd.TrackAudio, StartSector: 10000, EndSector: 19999},
		{Session: 2, Sequence: 3, Type: cd.TrackMode2Form1, StartSector: 31400, EndSector: 39999},
	}
	fullTOC := cd.CreateFullTOC(tracks, nil, false).Encode()

	dev := replay(false,
		mmcInquiry(),
		exchange(cmdReadCapacity10, capacityData(39999, 2048)),
		exchange(cmdConfiguration, profileData(features.PROFILE_CD_ROM)),
		exchange(cmdReadToc(scsi.TOC_FORMAT_TOC), tocData(
			tocEntry{1, 0, 0},
			tocEntry{2, 0, 10000},
			tocEntry{3, cd.FlagDataTrack, 31400},
			tocEntry{cd.LeadOutTrack, cd.FlagDataTrack, 40000},
		)),
		exchange(cmdReadToc(scsi.TOC_FORMAT_RAW), fullTOC),
	)

	res := resolve(t, dev)
	assert.Equal(t, media.CDPLUS, res.MediaType)
	require.NotNil(t, res.FullTOC)
	require.Len(t, res.Tracks, 3)
	assert.Equal(t, uint16(2), res.Tracks[2].Session)
	assert.Equal(t, int64(39999), res.Tracks[2].EndSector)
}

func TestResolveNoTOC(t *testing.T) {
	dev := replay(false,
		mmcInquiry(),
		exchange(cmdConfiguration, profileData(features.PROFILE_CD_ROM)),
		failure(cmdReadToc(scsi.TOC_FORMAT_TOC), scsi.SENSE_ILLEGAL_REQUEST, scsi.ASC_INCOMPATIBLE_MEDIUM, 0),
	)

	res := resolve(t, dev)
	assert.Equal(t, media.CDROM, res.MediaType)
	assert.Nil(t, res.TOC)
	assert.Empty(t, res.Tracks)
	assert.Zero(t, dev.calls[scsi.OpReadSubchannel])
}

func TestResolveFallback(t *testing.T) {
	flexiblePage := []byte{scsi.FLEXIBLE_DISK_PAGE, 2, 0, 0}

	tests := []struct {
		name      string
		usb       bool
		exchanges []scsi.Exchange
		want      media.Type
	}{
		{
			name: "flash drive",
			usb:  true,
			exchanges: []scsi.Exchange{
				exchange(cmdInquiry, inquiryData(scsi.TYPE_DIRECT_ACCESS, true, "Generic", "Flash Disk", "")),
				exchange(cmdReadCapacity10, capacityData(7864319, 512)),
				exchange(cmdModeSense10, modeSense10Data(0x40, flexiblePage...)),
			},
			want: media.FlashDrive,
		},
		{
			name: "USB reader without flexible disk page",
			usb:  true,
			exchanges: []scsi.Exchange{
				exchange(cmdInquiry, inquiryData(scsi.TYPE_DIRECT_ACCESS, true, "Generic", "Card Reader", "")),
				exchange(cmdReadCapacity10, capacityData(7864319, 512)),
				exchange(cmdModeSense10, modeSense10Data(0x40)),
			},
			want: media.Unknown,
		},
		{
			name: "hard disk",
			exchanges: []scsi.Exchange{
				exchange(cmdInquiry, inquiryData(scsi.TYPE_DIRECT_ACCESS, false, "ATA", "Disk", "")),
				exchange(cmdReadCapacity10, capacityData(976773167, 512)),
			},
			want: media.GENERIC_HDD,
		},
		{
			name: "floppy fingerprint",
			usb:  true,
			exchanges: []scsi.Exchange{
				exchange(cmdInquiry, inquiryData(scsi.TYPE_DIRECT_ACCESS, true, "TEAC", "FD-05PUB", "")),
				exchange(cmdReadCapacity10, capacityData(2879, 512)),
			},
			want: media.DOS_35_HD,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := resolve(t, replay(tt.usb, tt.exchanges...))
			assert.Equal(t, tt.want, res.MediaType)
			assert.Equal(t, tt.usb, res.USB)
		})
	}
}

func TestResolveCapacity16(t *testing.T) {
	long := make([]byte, 32)
	binary.BigEndian.PutUint64(long, 4999999999)
	binary.BigEndian.PutUint32(long[8:], 2048)

	tests := []struct {
		name      string
		exchanges []scsi.Exchange
		blocks    uint64
	}{
		{
			name: "last LBA needs the long form",
			exchanges: []scsi.Exchange{
				exchange(cmdReadCapacity10, capacityData(0xffffffff, 2048)),
				exchange(cmdReadCapacity16, long),
			},
			blocks: 5000000000,
		},
		{
			name: "short form refused",
			exchanges: []scsi.Exchange{
				failure(cmdReadCapacity10, scsi.SENSE_ILLEGAL_REQUEST, scsi.ASC_INVALID_COMMAND, 0),
				exchange(cmdReadCapacity16, long),
			},
			blocks: 5000000000,
		},
		{
			name: "short form only",
			exchanges: []scsi.Exchange{
				exchange(cmdReadCapacity10, capacityData(12219391, 2048)),
			},
			blocks: 12219392,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exchanges := append([]scsi.Exchange{
				mmcInquiry(),
				exchange(cmdConfiguration, profileData(features.PROFILE_BD_ROM)),
			}, tt.exchanges...)

			res := resolve(t, replay(false, exchanges...))
			assert.Equal(t, media.BDROM, res.MediaType)
			assert.Equal(t, tt.blocks, res.Blocks)
			assert.Equal(t, uint32(2048), res.BlockSize)
		})
	}
}

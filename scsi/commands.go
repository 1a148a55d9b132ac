// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// SCSI / MMC command definitions.

package scsi

import (
	"fmt"
	"strings"
)

const (
	// SCSI commands used by this package
	SCSI_TEST_UNIT_READY       = 0x00
	SCSI_INQUIRY               = 0x12
	SCSI_MODE_SENSE_6          = 0x1a
	SCSI_READ_CAPACITY_10      = 0x25
	SCSI_READ_10               = 0x28
	SCSI_READ_SUBCHANNEL       = 0x42
	SCSI_READ_TOC_PMA_ATIP     = 0x43
	SCSI_GET_CONFIGURATION     = 0x46
	SCSI_READ_DISC_INFORMATION = 0x51
	SCSI_MODE_SENSE_10         = 0x5a
	SCSI_SERVICE_ACTION_IN_16  = 0x9e
	SCSI_READ_MEDIA_SERIAL     = 0xab
	SCSI_READ_DISC_STRUCTURE   = 0xad
	SCSI_READ_CD               = 0xbe

	// Vendor commands
	PLEXTOR_READ_CDDA = 0xd8
	KREON_COMMAND     = 0xff

	// READ CAPACITY(16) service action
	SAI_READ_CAPACITY_16 = 0x10

	// Minimum length of standard INQUIRY response
	INQ_REPLY_LEN = 36

	// Mode pages
	RIGID_DISK_DRIVE_GEOMETRY_PAGE = 0x04
	FLEXIBLE_DISK_PAGE             = 0x05
	ALL_MODE_PAGES                 = 0x3f

	// Mode page control field
	MPAGE_CONTROL_CURRENT = 0
	MPAGE_CONTROL_DEFAULT = 2
)

// READ TOC/PMA/ATIP formats
const (
	TOC_FORMAT_TOC     = 0x00
	TOC_FORMAT_SESSION = 0x01
	TOC_FORMAT_RAW     = 0x02
	TOC_FORMAT_PMA     = 0x03
	TOC_FORMAT_ATIP    = 0x04
	TOC_FORMAT_CDTEXT  = 0x05
)

// READ SUB-CHANNEL formats
const (
	SUBCHANNEL_CURRENT_POSITION = 0x01
	SUBCHANNEL_MCN              = 0x02
	SUBCHANNEL_ISRC             = 0x03
)

// READ DISC INFORMATION data types
const (
	DISC_INFO_STANDARD        = 0x00
	DISC_INFO_TRACK_RESOURCES = 0x01
	DISC_INFO_POW_RESOURCES   = 0x02
)

// GET CONFIGURATION request types
const (
	GET_CONFIG_ALL     = 0x00
	GET_CONFIG_CURRENT = 0x01
	GET_CONFIG_SINGLE  = 0x02
)

// READ DISC STRUCTURE media types
const (
	STRUCTURE_MEDIA_DVD = 0x00
	STRUCTURE_MEDIA_BD  = 0x01
)

// READ DISC STRUCTURE formats. DVD and HD DVD formats use media type 0, BD formats media type 1.
const (
	DVD_PHYSICAL_INFORMATION           = 0x00
	DVD_COPYRIGHT_INFORMATION          = 0x01
	DVD_DISC_KEY                       = 0x02
	DVD_BURST_CUTTING_AREA             = 0x03
	DVD_DISC_MANUFACTURING_INFORMATION = 0x04
	DVD_COPYRIGHT_MANAGEMENT           = 0x05
	DVD_MEDIA_IDENTIFIER               = 0x06
	DVD_MEDIA_KEY_BLOCK                = 0x07
	DVDRAM_DDS                         = 0x08
	DVDRAM_MEDIUM_STATUS               = 0x09
	DVDRAM_SPARE_AREA_INFORMATION      = 0x0a
	DVDRAM_RECORDING_TYPE              = 0x0b
	DVD_LAST_BORDER_OUT_RMD            = 0x0c
	DVD_RECORDING_MANAGEMENT_AREA      = 0x0d
	DVD_PRE_RECORDED_INFO              = 0x0e
	DVDR_MEDIA_IDENTIFIER              = 0x0f
	DVDR_PHYSICAL_INFORMATION          = 0x10
	DVD_ADIP                           = 0x11
	HDDVD_COPYRIGHT_INFORMATION        = 0x12
	DVD_AACS                           = 0x15
	HDDVDR_MEDIUM_STATUS               = 0x19
	HDDVDR_LAST_RMD                    = 0x1a
	DVDR_LAYER_CAPACITY                = 0x20
	DVD_MIDDLE_ZONE_START              = 0x21
	DVD_JUMP_INTERVAL_SIZE             = 0x22
	DVD_MANUAL_LAYER_JUMP_START_LBA    = 0x23
	DVD_REMAP_ANCHOR_POINT             = 0x24
	DVD_DCB                            = 0x30

	BD_DISC_INFORMATION       = 0x00
	BD_BURST_CUTTING_AREA     = 0x03
	BD_DDS                    = 0x08
	BD_CARTRIDGE_STATUS       = 0x09
	BD_SPARE_AREA_INFORMATION = 0x0a
	BD_RAW_DFL                = 0x12
	BD_PAC                    = 0x30
)

// READ CD expected sector types
const (
	READ_CD_ALL_TYPES = 0x00
	READ_CD_CDDA      = 0x01
	READ_CD_MODE1     = 0x02
	READ_CD_MODE2     = 0x03
)

// Sector sizes
const (
	CD_RAW_SECTOR_SIZE  = 2352
	CD_USER_SECTOR_SIZE = 2048
	CD_SUBCHANNEL_SIZE  = 96
)

// Operation identifies a command issued through a Device. The transport collaborator turns an
// Operation and its parameters into a CDB; this package never builds CDBs itself.
type Operation int

const (
	OpTestUnitReady Operation = iota
	OpInquiry
	OpModeSense6
	OpModeSense10
	OpReadCapacity10
	OpReadCapacity16
	OpGetConfiguration
	OpReadTocPmaAtip
	OpReadSubchannel
	OpReadDiscInformation
	OpReadDiscStructure
	OpReadMediaSerialNumber
	OpRead10
	OpReadCd
	OpPlextorReadCdDa
	OpKreonExtractSS
	OpKreonLock
	OpKreonUnlockXtreme
	OpKreonUnlockWxripper
)

var opNames = map[Operation]string{
	OpTestUnitReady:         "test_unit_ready",
	OpInquiry:               "inquiry",
	OpModeSense6:            "mode_sense_6",
	OpModeSense10:           "mode_sense_10",
	OpReadCapacity10:        "read_capacity_10",
	OpReadCapacity16:        "read_capacity_16",
	OpGetConfiguration:      "get_configuration",
	OpReadTocPmaAtip:        "read_toc_pma_atip",
	OpReadSubchannel:        "read_subchannel",
	OpReadDiscInformation:   "read_disc_information",
	OpReadDiscStructure:     "read_disc_structure",
	OpReadMediaSerialNumber: "read_media_serial_number",
	OpRead10:                "read_10",
	OpReadCd:                "read_cd",
	OpPlextorReadCdDa:       "plextor_read_cdda",
	OpKreonExtractSS:        "kreon_extract_ss",
	OpKreonLock:             "kreon_lock",
	OpKreonUnlockXtreme:     "kreon_unlock_xtreme",
	OpKreonUnlockWxripper:   "kreon_unlock_wxripper",
}

// Opcode returns the SCSI operation code the transport sends for op.
func (op Operation) Opcode() uint8 {
	switch op {
	case OpTestUnitReady:
		return SCSI_TEST_UNIT_READY
	case OpInquiry:
		return SCSI_INQUIRY
	case OpModeSense6:
		return SCSI_MODE_SENSE_6
	case OpModeSense10:
		return SCSI_MODE_SENSE_10
	case OpReadCapacity10:
		return SCSI_READ_CAPACITY_10
	case OpReadCapacity16:
		return SCSI_SERVICE_ACTION_IN_16
	case OpGetConfiguration:
		return SCSI_GET_CONFIGURATION
	case OpReadTocPmaAtip:
		return SCSI_READ_TOC_PMA_ATIP
	case OpReadSubchannel:
		return SCSI_READ_SUBCHANNEL
	case OpReadDiscInformation:
		return SCSI_READ_DISC_INFORMATION
	case OpReadDiscStructure:
		return SCSI_READ_DISC_STRUCTURE
	case OpReadMediaSerialNumber:
		return SCSI_READ_MEDIA_SERIAL
	case OpRead10:
		return SCSI_READ_10
	case OpReadCd:
		return SCSI_READ_CD
	case OpPlextorReadCdDa:
		return PLEXTOR_READ_CDDA
	}

	return KREON_COMMAND
}

func (op Operation) String() string {
	if s, ok := opNames[op]; ok {
		return s
	}

	return fmt.Sprintf("Operation(%d)", int(op))
}

// ParseOperation looks up an operation by its name.
func ParseOperation(s string) (Operation, error) {
	for op, name := range opNames {
		if strings.EqualFold(name, s) {
			return op, nil
		}
	}

	return 0, fmt.Errorf("unknown operation %q", s)
}

// Command is the identity of a command together with the parameters that select which response
// the device returns. Fields that do not apply to an operation are left zero.
type Command struct {
	Op Operation

	// Format is the TOC format, disc structure format, disc information data type, sub-channel
	// data format, GET CONFIGURATION request type, READ CD expected sector type or mode page code.
	Format uint8

	// Track is the track or session number for READ TOC and READ SUB-CHANNEL.
	Track uint8

	// MSF selects MSF rather than LBA addressing for READ TOC.
	MSF bool

	// Layer and MediaType select a READ DISC STRUCTURE target.
	Layer     uint8
	MediaType uint8

	// Address is the starting LBA or feature number; Length is the transfer length in blocks.
	Address uint32
	Length  uint32
}

func (c Command) String() string {
	return fmt.Sprintf("%s(format=%#02x, track=%d, layer=%d, address=%d, length=%d)",
		c.Op, c.Format, c.Track, c.Layer, c.Address, c.Length)
}

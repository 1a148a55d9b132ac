// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package features

// Feature numbers
const (
	FEATURE_PROFILE_LIST                = 0x0000
	FEATURE_CORE                        = 0x0001
	FEATURE_MORPHING                    = 0x0002
	FEATURE_REMOVABLE_MEDIUM            = 0x0003
	FEATURE_WRITE_PROTECT               = 0x0004
	FEATURE_RANDOM_READABLE             = 0x0010
	FEATURE_MULTI_READ                  = 0x001d
	FEATURE_CD_READ                     = 0x001e
	FEATURE_DVD_READ                    = 0x001f
	FEATURE_RANDOM_WRITABLE             = 0x0020
	FEATURE_INCREMENTAL_STREAMING       = 0x0021
	FEATURE_SECTOR_ERASABLE             = 0x0022
	FEATURE_FORMATTABLE                 = 0x0023
	FEATURE_DEFECT_MANAGEMENT           = 0x0024
	FEATURE_WRITE_ONCE                  = 0x0025
	FEATURE_RESTRICTED_OVERWRITE        = 0x0026
	FEATURE_CDRW_CAV_WRITE              = 0x0027
	FEATURE_MRW                         = 0x0028
	FEATURE_ENHANCED_DEFECT_REPORTING   = 0x0029
	FEATURE_DVD_PLUS_RW                 = 0x002a
	FEATURE_DVD_PLUS_R                  = 0x002b
	FEATURE_RIGID_RESTRICTED_OVERWRITE  = 0x002c
	FEATURE_CD_TAO                      = 0x002d
	FEATURE_CD_MASTERING                = 0x002e
	FEATURE_DVD_R_RW_WRITE              = 0x002f
	FEATURE_DDCD_READ                   = 0x0030
	FEATURE_DDCD_R_WRITE                = 0x0031
	FEATURE_DDCD_RW_WRITE               = 0x0032
	FEATURE_LAYER_JUMP_RECORDING        = 0x0033
	FEATURE_STOP_LONG_OPERATION         = 0x0035
	FEATURE_CDRW_MEDIA_WRITE_SUPPORT    = 0x0037
	FEATURE_BDR_POW                     = 0x0038
	FEATURE_DVD_PLUS_RW_DL              = 0x003a
	FEATURE_DVD_PLUS_R_DL               = 0x003b
	FEATURE_BD_READ                     = 0x0040
	FEATURE_BD_WRITE                    = 0x0041
	FEATURE_TSR                         = 0x0042
	FEATURE_HDDVD_READ                  = 0x0050
	FEATURE_HDDVD_WRITE                 = 0x0051
	FEATURE_HDDVD_RW_FRAGMENT_RECORDING = 0x0052
	FEATURE_HYBRID_DISC                 = 0x0080
	FEATURE_POWER_MANAGEMENT            = 0x0100
	FEATURE_SMART                       = 0x0101
	FEATURE_EMBEDDED_CHANGER            = 0x0102
	FEATURE_CD_AUDIO_EXTERNAL_PLAY      = 0x0103
	FEATURE_FIRMWARE_UPGRADE            = 0x0104
	FEATURE_TIMEOUT                     = 0x0105
	FEATURE_DVD_CSS                     = 0x0106
	FEATURE_REAL_TIME_STREAMING         = 0x0107
	FEATURE_DRIVE_SERIAL_NUMBER         = 0x0108
	FEATURE_MEDIA_SERIAL_NUMBER         = 0x0109
	FEATURE_DCBS                        = 0x010a
	FEATURE_DVD_CPRM                    = 0x010b
	FEATURE_FIRMWARE_INFORMATION        = 0x010c
	FEATURE_AACS                        = 0x010d
	FEATURE_DVD_CSS_MANAGED_RECORDING   = 0x010e
	FEATURE_VCPS                        = 0x0110
	FEATURE_SECURDISC                   = 0x0113
	FEATURE_OSSC                        = 0x0142
)

var featureNames = map[uint16]string{
	FEATURE_PROFILE_LIST:                "Profile List",
	FEATURE_CORE:                        "Core",
	FEATURE_MORPHING:                    "Morphing",
	FEATURE_REMOVABLE_MEDIUM:            "Removable Medium",
	FEATURE_WRITE_PROTECT:               "Write Protect",
	FEATURE_RANDOM_READABLE:             "Random Readable",
	FEATURE_MULTI_READ:                  "Multi-Read",
	FEATURE_CD_READ:                     "CD Read",
	FEATURE_DVD_READ:                    "DVD Read",
	FEATURE_RANDOM_WRITABLE:             "Random Writable",
	FEATURE_INCREMENTAL_STREAMING:       "Incremental Streaming Writable",
	FEATURE_SECTOR_ERASABLE:             "Sector Erasable",
	FEATURE_FORMATTABLE:                 "Formattable",
	FEATURE_DEFECT_MANAGEMENT:           "Hardware Defect Management",
	FEATURE_WRITE_ONCE:                  "Write Once",
	FEATURE_RESTRICTED_OVERWRITE:        "Restricted Overwrite",
	FEATURE_CDRW_CAV_WRITE:              "CD-RW CAV Write",
	FEATURE_MRW:                         "MRW",
	FEATURE_ENHANCED_DEFECT_REPORTING:   "Enhanced Defect Reporting",
	FEATURE_DVD_PLUS_RW:                 "DVD+RW",
	FEATURE_DVD_PLUS_R:                  "DVD+R",
	FEATURE_RIGID_RESTRICTED_OVERWRITE:  "Rigid Restricted Overwrite",
	FEATURE_CD_TAO:                      "CD Track at Once",
	FEATURE_CD_MASTERING:                "CD Mastering",
	FEATURE_DVD_R_RW_WRITE:              "DVD-R/-RW Write",
	FEATURE_DDCD_READ:                   "DDCD Read",
	FEATURE_DDCD_R_WRITE:                "DDCD-R Write",
	FEATURE_DDCD_RW_WRITE:               "DDCD-RW Write",
	FEATURE_LAYER_JUMP_RECORDING:        "Layer Jump Recording",
	FEATURE_STOP_LONG_OPERATION:         "Stop Long Operation",
	FEATURE_CDRW_MEDIA_WRITE_SUPPORT:    "CD-RW Media Write Support",
	FEATURE_BDR_POW:                     "BD-R Pseudo-Overwrite",
	FEATURE_DVD_PLUS_RW_DL:              "DVD+RW Dual Layer",
	FEATURE_DVD_PLUS_R_DL:               "DVD+R Dual Layer",
	FEATURE_BD_READ:                     "BD Read",
	FEATURE_BD_WRITE:                    "BD Write",
	FEATURE_TSR:                         "Timely Safe Recording",
	FEATURE_HDDVD_READ:                  "HD DVD Read",
	FEATURE_HDDVD_WRITE:                 "HD DVD Write",
	FEATURE_HDDVD_RW_FRAGMENT_RECORDING: "HD DVD-RW Fragment Recording",
	FEATURE_HYBRID_DISC:                 "Hybrid Disc",
	FEATURE_POWER_MANAGEMENT:            "Power Management",
	FEATURE_SMART:                       "S.M.A.R.T.",
	FEATURE_EMBEDDED_CHANGER:            "Embedded Changer",
	FEATURE_CD_AUDIO_EXTERNAL_PLAY:      "CD Audio External Play",
	FEATURE_FIRMWARE_UPGRADE:            "Microcode Upgrade",
	FEATURE_TIMEOUT:                     "Timeout",
	FEATURE_DVD_CSS:                     "DVD CSS",
	FEATURE_REAL_TIME_STREAMING:         "Real Time Streaming",
	FEATURE_DRIVE_SERIAL_NUMBER:         "Drive Serial Number",
	FEATURE_MEDIA_SERIAL_NUMBER:         "Media Serial Number",
	FEATURE_DCBS:                        "Disc Control Blocks",
	FEATURE_DVD_CPRM:                    "DVD CPRM",
	FEATURE_FIRMWARE_INFORMATION:        "Firmware Information",
	FEATURE_AACS:                        "AACS",
	FEATURE_DVD_CSS_MANAGED_RECORDING:   "DVD CSS Managed Recording",
	FEATURE_VCPS:                        "VCPS",
	FEATURE_SECURDISC:                   "SecurDisc",
	FEATURE_OSSC:                        "OSSC",
}

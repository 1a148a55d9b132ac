// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Package features decodes MMC GET CONFIGURATION responses.
//
// Every feature decoder checks that the descriptor carries its own feature number and that the
// additional length accounts for the whole descriptor. Fields added by later revisions of a
// feature are read only when the descriptor's version (and length) admits them.
package features

import (
	"fmt"

	"github.com/dswarbrick/optical/utils"
)

// Header is the common part of every feature descriptor.
type Header struct {
	Number     uint16
	Version    uint8
	Persistent bool
	Current    bool
}

// FeatureHeader returns the descriptor header.
func (h Header) FeatureHeader() Header {
	return h
}

// Feature is implemented by every decoded feature.
type Feature interface {
	FeatureHeader() Header
}

func header(desc []byte, number uint16) (Header, bool) {
	if len(desc) < 4 {
		return Header{}, false
	}

	if utils.Uint16BE(desc, 0) != number {
		return Header{}, false
	}

	if int(desc[3])+4 != len(desc) {
		return Header{}, false
	}

	return Header{
		Number:     number,
		Version:    (desc[2] & 0x3c) >> 2,
		Persistent: desc[2]&0x02 != 0,
		Current:    desc[2]&0x01 != 0,
	}, true
}

// ConfigurationHeader is the eight byte header of a GET CONFIGURATION response.
type ConfigurationHeader struct {
	DataLength     uint32
	CurrentProfile uint16
}

// Separate splits a GET CONFIGURATION response into its header and the raw feature descriptors.
// Each descriptor is sliced by its own additional length; a truncated trailing descriptor is
// dropped.
func Separate(resp []byte) (ConfigurationHeader, [][]byte) {
	var (
		hdr   ConfigurationHeader
		descs [][]byte
	)

	if len(resp) < 8 {
		return hdr, nil
	}

	hdr.DataLength = utils.Uint32BE(resp, 0)
	hdr.CurrentProfile = utils.Uint16BE(resp, 6)

	end := len(resp)
	if int(hdr.DataLength)+4 < end {
		end = int(hdr.DataLength) + 4
	}

	for off := 8; off+4 <= end; {
		n := 4 + int(resp[off+3])
		if off+n > end {
			break
		}

		descs = append(descs, resp[off:off+n])
		off += n
	}

	return hdr, descs
}

// Simple is a feature that carries no fields beyond its header.
type Simple struct {
	Header
}

func decodeSimple(desc []byte, number uint16) *Simple {
	h, ok := header(desc, number)
	if !ok {
		return nil
	}

	return &Simple{Header: h}
}

func bit(b byte, n uint) bool {
	return b&(1<<n) != 0
}

// entry adapts a typed decoder for the dispatch table, keeping a nil result a nil interface.
func entry[T any](fn func([]byte) *T) func([]byte) Feature {
	return func(desc []byte) Feature {
		f := fn(desc)
		if f == nil {
			return nil
		}
		return any(f).(Feature)
	}
}

var decoders = map[uint16]func([]byte) Feature{
	FEATURE_PROFILE_LIST:                entry(DecodeProfileList),
	FEATURE_CORE:                        entry(DecodeCore),
	FEATURE_MORPHING:                    entry(DecodeMorphing),
	FEATURE_REMOVABLE_MEDIUM:            entry(DecodeRemovableMedium),
	FEATURE_WRITE_PROTECT:               entry(DecodeWriteProtect),
	FEATURE_RANDOM_READABLE:             entry(DecodeRandomReadable),
	FEATURE_MULTI_READ:                  entry(DecodeMultiRead),
	FEATURE_CD_READ:                     entry(DecodeCDRead),
	FEATURE_DVD_READ:                    entry(DecodeDVDRead),
	FEATURE_RANDOM_WRITABLE:             entry(DecodeRandomWritable),
	FEATURE_INCREMENTAL_STREAMING:       entry(DecodeIncrementalStreaming),
	FEATURE_SECTOR_ERASABLE:             entry(DecodeSectorErasable),
	FEATURE_FORMATTABLE:                 entry(DecodeFormattable),
	FEATURE_DEFECT_MANAGEMENT:           entry(DecodeDefectManagement),
	FEATURE_WRITE_ONCE:                  entry(DecodeWriteOnce),
	FEATURE_RESTRICTED_OVERWRITE:        entry(DecodeRestrictedOverwrite),
	FEATURE_CDRW_CAV_WRITE:              entry(DecodeCDRWCAVWrite),
	FEATURE_MRW:                         entry(DecodeMRW),
	FEATURE_ENHANCED_DEFECT_REPORTING:   entry(DecodeEnhancedDefectReporting),
	FEATURE_DVD_PLUS_RW:                 entry(DecodeDVDPlusRW),
	FEATURE_DVD_PLUS_R:                  entry(DecodeDVDPlusR),
	FEATURE_RIGID_RESTRICTED_OVERWRITE:  entry(DecodeRigidRestrictedOverwrite),
	FEATURE_CD_TAO:                      entry(DecodeCDTrackAtOnce),
	FEATURE_CD_MASTERING:                entry(DecodeCDMastering),
	FEATURE_DVD_R_RW_WRITE:              entry(DecodeDVDRWrite),
	FEATURE_DDCD_READ:                   entry(DecodeDDCDRead),
	FEATURE_DDCD_R_WRITE:                entry(DecodeDDCDRWrite),
	FEATURE_DDCD_RW_WRITE:               entry(DecodeDDCDRWWrite),
	FEATURE_LAYER_JUMP_RECORDING:        entry(DecodeLayerJumpRecording),
	FEATURE_STOP_LONG_OPERATION:         entry(DecodeStopLongOperation),
	FEATURE_CDRW_MEDIA_WRITE_SUPPORT:    entry(DecodeCDRWMediaWriteSupport),
	FEATURE_BDR_POW:                     entry(DecodeBDRPOW),
	FEATURE_DVD_PLUS_RW_DL:              entry(DecodeDVDPlusRWDualLayer),
	FEATURE_DVD_PLUS_R_DL:               entry(DecodeDVDPlusRDualLayer),
	FEATURE_BD_READ:                     entry(DecodeBDRead),
	FEATURE_BD_WRITE:                    entry(DecodeBDWrite),
	FEATURE_TSR:                         entry(DecodeTSR),
	FEATURE_HDDVD_READ:                  entry(DecodeHDDVDRead),
	FEATURE_HDDVD_WRITE:                 entry(DecodeHDDVDWrite),
	FEATURE_HDDVD_RW_FRAGMENT_RECORDING: entry(DecodeHDDVDRWFragmentRecording),
	FEATURE_HYBRID_DISC:                 entry(DecodeHybridDisc),
	FEATURE_POWER_MANAGEMENT:            entry(DecodePowerManagement),
	FEATURE_SMART:                       entry(DecodeSMART),
	FEATURE_EMBEDDED_CHANGER:            entry(DecodeEmbeddedChanger),
	FEATURE_CD_AUDIO_EXTERNAL_PLAY:      entry(DecodeCDAudioExternalPlay),
	FEATURE_FIRMWARE_UPGRADE:            entry(DecodeFirmwareUpgrade),
	FEATURE_TIMEOUT:                     entry(DecodeTimeout),
	FEATURE_DVD_CSS:                     entry(DecodeDVDCSS),
	FEATURE_REAL_TIME_STREAMING:         entry(DecodeRealTimeStreaming),
	FEATURE_DRIVE_SERIAL_NUMBER:         entry(DecodeDriveSerialNumber),
	FEATURE_MEDIA_SERIAL_NUMBER:         entry(DecodeMediaSerialNumber),
	FEATURE_DCBS:                        entry(DecodeDCBs),
	FEATURE_DVD_CPRM:                    entry(DecodeDVDCPRM),
	FEATURE_FIRMWARE_INFORMATION:        entry(DecodeFirmwareInformation),
	FEATURE_AACS:                        entry(DecodeAACS),
	FEATURE_DVD_CSS_MANAGED_RECORDING:   entry(DecodeDVDCSSManagedRecording),
	FEATURE_VCPS:                        entry(DecodeVCPS),
	FEATURE_SECURDISC:                   entry(DecodeSecurDisc),
	FEATURE_OSSC:                        entry(DecodeOSSC),
}

// Decode decodes a single feature descriptor with the decoder registered for its number. It
// returns nil for unknown features and for descriptors the decoder rejects.
func Decode(desc []byte) Feature {
	if len(desc) < 2 {
		return nil
	}

	fn, ok := decoders[utils.Uint16BE(desc, 0)]
	if !ok {
		return nil
	}

	return fn(desc)
}

// DecodeAll decodes every descriptor of a GET CONFIGURATION response, keyed by feature number.
// Descriptors that fail to decode are omitted.
func DecodeAll(resp []byte) (ConfigurationHeader, map[uint16]Feature) {
	hdr, descs := Separate(resp)
	out := make(map[uint16]Feature, len(descs))

	for _, d := range descs {
		if f := Decode(d); f != nil {
			out[f.FeatureHeader().Number] = f
		}
	}

	return hdr, out
}

// FeatureName returns a human readable name for a feature number.
func FeatureName(number uint16) string {
	if name, ok := featureNames[number]; ok {
		return name
	}

	return fmt.Sprintf("feature %04Xh", number)
}

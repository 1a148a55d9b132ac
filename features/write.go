// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Recording features.

package features

import (
	"github.com/dswarbrick/optical/utils"
)

// RandomWritable is feature 0020h.
type RandomWritable struct {
	Header
	LastLBA          uint32
	LogicalBlockSize uint32
	Blocking         uint16
	PP               bool
}

func DecodeRandomWritable(desc []byte) *RandomWritable {
	h, ok := header(desc, FEATURE_RANDOM_WRITABLE)
	if !ok || len(desc) < 16 {
		return nil
	}

	return &RandomWritable{
		Header:           h,
		LastLBA:          utils.Uint32BE(desc, 4),
		LogicalBlockSize: utils.Uint32BE(desc, 8),
		Blocking:         utils.Uint16BE(desc, 12),
		PP:               bit(desc[14], 0),
	}
}

// IncrementalStreaming is feature 0021h.
type IncrementalStreaming struct {
	Header
	DataTypeSupported uint16
	// Buffer underrun free
	BUF bool
	// Address reservation (version 1)
	ARSV bool
	// Track resources information (version 1)
	TRIO      bool
	LinkSizes []byte
}

func DecodeIncrementalStreaming(desc []byte) *IncrementalStreaming {
	h, ok := header(desc, FEATURE_INCREMENTAL_STREAMING)
	if !ok || len(desc) < 8 {
		return nil
	}

	f := &IncrementalStreaming{
		Header:            h,
		DataTypeSupported: utils.Uint16BE(desc, 4),
		BUF:               bit(desc[6], 0),
	}

	if h.Version >= 1 {
		f.ARSV = bit(desc[6], 2)
		f.TRIO = bit(desc[6], 1)
	}

	n := int(desc[7])
	if 8+n <= len(desc) {
		f.LinkSizes = desc[8 : 8+n]
	}

	return f
}

// DecodeSectorErasable decodes feature 0022h.
func DecodeSectorErasable(desc []byte) *Simple {
	return decodeSimple(desc, FEATURE_SECTOR_ERASABLE)
}

// Formattable is feature 0023h.
type Formattable struct {
	Header
	// BD-RE without spare areas
	RENoSA bool
	// Expansion of certified area
	Expand bool
	// Quick certification
	QCert bool
	// Full certification
	Cert bool
	// FRF: full format of BD-R
	FRF bool
	// Random recording mode
	RRM bool
}

func DecodeFormattable(desc []byte) *Formattable {
	h, ok := header(desc, FEATURE_FORMATTABLE)
	if !ok {
		return nil
	}

	f := &Formattable{Header: h}

	if h.Version >= 1 && len(desc) >= 12 {
		f.RENoSA = bit(desc[4], 3)
		f.Expand = bit(desc[4], 2)
		f.QCert = bit(desc[4], 1)
		f.Cert = bit(desc[4], 0)
		f.RRM = bit(desc[8], 0)
	}

	if h.Version >= 2 && len(desc) >= 12 {
		f.FRF = bit(desc[4], 7)
	}

	return f
}

// DefectManagement is feature 0024h.
type DefectManagement struct {
	Header
	// Spare area information (version 1)
	SSA bool
}

func DecodeDefectManagement(desc []byte) *DefectManagement {
	h, ok := header(desc, FEATURE_DEFECT_MANAGEMENT)
	if !ok {
		return nil
	}

	f := &DefectManagement{Header: h}

	if h.Version >= 1 && len(desc) >= 8 {
		f.SSA = bit(desc[4], 7)
	}

	return f
}

// WriteOnce is feature 0025h.
type WriteOnce struct {
	Header
	LogicalBlockSize uint32
	Blocking         uint16
	PP               bool
}

func DecodeWriteOnce(desc []byte) *WriteOnce {
	h, ok := header(desc, FEATURE_WRITE_ONCE)
	if !ok || len(desc) < 12 {
		return nil
	}

	return &WriteOnce{
		Header:           h,
		LogicalBlockSize: utils.Uint32BE(desc, 4),
		Blocking:         utils.Uint16BE(desc, 8),
		PP:               bit(desc[10], 0),
	}
}

// DecodeRestrictedOverwrite decodes feature 0026h.
func DecodeRestrictedOverwrite(desc []byte) *Simple {
	return decodeSimple(desc, FEATURE_RESTRICTED_OVERWRITE)
}

// DecodeCDRWCAVWrite decodes feature 0027h.
func DecodeCDRWCAVWrite(desc []byte) *Simple {
	return decodeSimple(desc, FEATURE_CDRW_CAV_WRITE)
}

// MRW is feature 0028h.
type MRW struct {
	Header
	Write bool
	// DVD+MRW read and write (version 1)
	DVDPRead  bool
	DVDPWrite bool
}

func DecodeMRW(desc []byte) *MRW {
	h, ok := header(desc, FEATURE_MRW)
	if !ok || len(desc) < 8 {
		return nil
	}

	f := &MRW{Header: h, Write: bit(desc[4], 0)}

	if h.Version >= 1 {
		f.DVDPRead = bit(desc[4], 1)
		f.DVDPWrite = bit(desc[4], 2)
	}

	return f
}

// EnhancedDefectReporting is feature 0029h.
type EnhancedDefectReporting struct {
	Header
	DRTDM                 bool
	NumberOfDBICacheZones uint8
	NumberOfEntries       uint16
}

func DecodeEnhancedDefectReporting(desc []byte) *EnhancedDefectReporting {
	h, ok := header(desc, FEATURE_ENHANCED_DEFECT_REPORTING)
	if !ok || len(desc) < 8 {
		return nil
	}

	return &EnhancedDefectReporting{
		Header:                h,
		DRTDM:                 bit(desc[4], 0),
		NumberOfDBICacheZones: desc[5],
		NumberOfEntries:       utils.Uint16BE(desc, 6),
	}
}

// DVDPlusRW is feature 002Ah.
type DVDPlusRW struct {
	Header
	Write      bool
	QuickStart bool
	CloseOnly  bool
}

func DecodeDVDPlusRW(desc []byte) *DVDPlusRW {
	h, ok := header(desc, FEATURE_DVD_PLUS_RW)
	if !ok || len(desc) < 8 {
		return nil
	}

	return &DVDPlusRW{
		Header:     h,
		Write:      bit(desc[4], 0),
		QuickStart: bit(desc[5], 1),
		CloseOnly:  bit(desc[5], 0),
	}
}

// DVDPlusR is feature 002Bh.
type DVDPlusR struct {
	Header
	Write bool
}

func DecodeDVDPlusR(desc []byte) *DVDPlusR {
	h, ok := header(desc, FEATURE_DVD_PLUS_R)
	if !ok || len(desc) < 8 {
		return nil
	}

	return &DVDPlusR{Header: h, Write: bit(desc[4], 0)}
}

// RigidRestrictedOverwrite is feature 002Ch.
type RigidRestrictedOverwrite struct {
	Header
	// Defect status data generate
	DSDG bool
	// Defect status data read
	DSDR         bool
	Intermediate bool
	Blank        bool
}

func DecodeRigidRestrictedOverwrite(desc []byte) *RigidRestrictedOverwrite {
	h, ok := header(desc, FEATURE_RIGID_RESTRICTED_OVERWRITE)
	if !ok || len(desc) < 8 {
		return nil
	}

	return &RigidRestrictedOverwrite{
		Header:       h,
		DSDG:         bit(desc[4], 3),
		DSDR:         bit(desc[4], 2),
		Intermediate: bit(desc[4], 1),
		Blank:        bit(desc[4], 0),
	}
}

// CDTrackAtOnce is feature 002Dh.
type CDTrackAtOnce struct {
	Header
	BUF bool
	// R-W raw (version 2)
	RWRaw        bool
	RWPack       bool
	TestWrite    bool
	CDRW         bool
	RWSubchannel bool
	// Data types supported (version 1)
	DataTypeSupported uint16
}

func DecodeCDTrackAtOnce(desc []byte) *CDTrackAtOnce {
	h, ok := header(desc, FEATURE_CD_TAO)
	if !ok || len(desc) < 8 {
		return nil
	}

	f := &CDTrackAtOnce{
		Header:       h,
		BUF:          bit(desc[4], 6),
		RWPack:       bit(desc[4], 3),
		TestWrite:    bit(desc[4], 2),
		CDRW:         bit(desc[4], 1),
		RWSubchannel: bit(desc[4], 0),
	}

	if h.Version >= 1 {
		f.DataTypeSupported = utils.Uint16BE(desc, 6)
	}

	if h.Version >= 2 {
		f.RWRaw = bit(desc[4], 4)
	}

	return f
}

// CDMastering is feature 002Eh.
type CDMastering struct {
	Header
	BUF bool
	// Session at once
	SAO bool
	// Raw multi-session
	RawMS     bool
	Raw       bool
	TestWrite bool
	CDRW      bool
	RW        bool
	// Maximum cue sheet length
	MaxCueSheet uint32
}

func DecodeCDMastering(desc []byte) *CDMastering {
	h, ok := header(desc, FEATURE_CD_MASTERING)
	if !ok || len(desc) < 8 {
		return nil
	}

	return &CDMastering{
		Header:      h,
		BUF:         bit(desc[4], 6),
		SAO:         bit(desc[4], 5),
		RawMS:       bit(desc[4], 4),
		Raw:         bit(desc[4], 3),
		TestWrite:   bit(desc[4], 2),
		CDRW:        bit(desc[4], 1),
		RW:          bit(desc[4], 0),
		MaxCueSheet: utils.Uint24BE(desc, 5),
	}
}

// DVDRWrite is feature 002Fh.
type DVDRWrite struct {
	Header
	BUF bool
	// Dual layer DVD-R recording (version 2)
	RDL       bool
	TestWrite bool
	// DVD-RW recording (version 1)
	DVDRW bool
}

func DecodeDVDRWrite(desc []byte) *DVDRWrite {
	h, ok := header(desc, FEATURE_DVD_R_RW_WRITE)
	if !ok || len(desc) < 8 {
		return nil
	}

	f := &DVDRWrite{
		Header:    h,
		BUF:       bit(desc[4], 6),
		TestWrite: bit(desc[4], 2),
	}

	if h.Version >= 1 {
		f.DVDRW = bit(desc[4], 1)
	}

	if h.Version >= 2 {
		f.RDL = bit(desc[4], 3)
	}

	return f
}

// DecodeDDCDRead decodes feature 0030h.
func DecodeDDCDRead(desc []byte) *Simple {
	return decodeSimple(desc, FEATURE_DDCD_READ)
}

// DDCDRWrite is feature 0031h.
type DDCDRWrite struct {
	Header
	TestWrite bool
}

func DecodeDDCDRWrite(desc []byte) *DDCDRWrite {
	h, ok := header(desc, FEATURE_DDCD_R_WRITE)
	if !ok || len(desc) < 8 {
		return nil
	}

	return &DDCDRWrite{Header: h, TestWrite: bit(desc[4], 2)}
}

// DDCDRWWrite is feature 0032h.
type DDCDRWWrite struct {
	Header
	Intermediate bool
	Blank        bool
}

func DecodeDDCDRWWrite(desc []byte) *DDCDRWWrite {
	h, ok := header(desc, FEATURE_DDCD_RW_WRITE)
	if !ok || len(desc) < 8 {
		return nil
	}

	return &DDCDRWWrite{
		Header:       h,
		Intermediate: bit(desc[4], 1),
		Blank:        bit(desc[4], 0),
	}
}

// LayerJumpRecording is feature 0033h.
type LayerJumpRecording struct {
	Header
	LinkSizes []byte
}

func DecodeLayerJumpRecording(desc []byte) *LayerJumpRecording {
	h, ok := header(desc, FEATURE_LAYER_JUMP_RECORDING)
	if !ok || len(desc) < 8 {
		return nil
	}

	f := &LayerJumpRecording{Header: h}

	n := int(desc[7])
	if 8+n <= len(desc) {
		f.LinkSizes = desc[8 : 8+n]
	}

	return f
}

// DecodeStopLongOperation decodes feature 0035h.
func DecodeStopLongOperation(desc []byte) *Simple {
	return decodeSimple(desc, FEATURE_STOP_LONG_OPERATION)
}

// CDRWMediaWriteSupport is feature 0037h. Bit n of SubtypeSupport is set when CD-RW media
// subtype n can be written.
type CDRWMediaWriteSupport struct {
	Header
	SubtypeSupport uint8
}

func DecodeCDRWMediaWriteSupport(desc []byte) *CDRWMediaWriteSupport {
	h, ok := header(desc, FEATURE_CDRW_MEDIA_WRITE_SUPPORT)
	if !ok || len(desc) < 8 {
		return nil
	}

	return &CDRWMediaWriteSupport{Header: h, SubtypeSupport: desc[5]}
}

// DecodeBDRPOW decodes feature 0038h.
func DecodeBDRPOW(desc []byte) *Simple {
	return decodeSimple(desc, FEATURE_BDR_POW)
}

// DVDPlusRWDualLayer is feature 003Ah.
type DVDPlusRWDualLayer struct {
	Header
	Write      bool
	QuickStart bool
	CloseOnly  bool
}

func DecodeDVDPlusRWDualLayer(desc []byte) *DVDPlusRWDualLayer {
	h, ok := header(desc, FEATURE_DVD_PLUS_RW_DL)
	if !ok || len(desc) < 8 {
		return nil
	}

	return &DVDPlusRWDualLayer{
		Header:     h,
		Write:      bit(desc[4], 0),
		QuickStart: bit(desc[5], 1),
		CloseOnly:  bit(desc[5], 0),
	}
}

// DVDPlusRDualLayer is feature 003Bh.
type DVDPlusRDualLayer struct {
	Header
	Write bool
}

func DecodeDVDPlusRDualLayer(desc []byte) *DVDPlusRDualLayer {
	h, ok := header(desc, FEATURE_DVD_PLUS_R_DL)
	if !ok || len(desc) < 8 {
		return nil
	}

	return &DVDPlusRDualLayer{Header: h, Write: bit(desc[4], 0)}
}

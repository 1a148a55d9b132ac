// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// BD, HD DVD, device management and content protection features.

package features

import (
	"strconv"
	"time"

	"github.com/dswarbrick/optical/utils"
)

// BDRead is feature 0040h. Each bitmap has one bit per media version, indexed by class.
type BDRead struct {
	Header
	REClass  [4]uint16
	RClass   [4]uint16
	ROMClass [4]uint16
}

func DecodeBDRead(desc []byte) *BDRead {
	h, ok := header(desc, FEATURE_BD_READ)
	if !ok || len(desc) < 32 {
		return nil
	}

	f := &BDRead{Header: h}

	for i := 0; i < 4; i++ {
		f.REClass[i] = utils.Uint16BE(desc, 8+2*i)
		f.RClass[i] = utils.Uint16BE(desc, 16+2*i)
		f.ROMClass[i] = utils.Uint16BE(desc, 24+2*i)
	}

	return f
}

// BDWrite is feature 0041h.
type BDWrite struct {
	Header
	// Supports verify not required
	SVNR    bool
	REClass [4]uint16
	RClass  [4]uint16
}

func DecodeBDWrite(desc []byte) *BDWrite {
	h, ok := header(desc, FEATURE_BD_WRITE)
	if !ok || len(desc) < 24 {
		return nil
	}

	f := &BDWrite{Header: h}

	if h.Version >= 1 {
		f.SVNR = bit(desc[4], 0)
	}

	for i := 0; i < 4; i++ {
		f.REClass[i] = utils.Uint16BE(desc, 8+2*i)
		f.RClass[i] = utils.Uint16BE(desc, 16+2*i)
	}

	return f
}

// DecodeTSR decodes feature 0042h.
func DecodeTSR(desc []byte) *Simple {
	return decodeSimple(desc, FEATURE_TSR)
}

// HDDVDRead is feature 0050h.
type HDDVDRead struct {
	Header
	HDDVDR   bool
	HDDVDRAM bool
}

func DecodeHDDVDRead(desc []byte) *HDDVDRead {
	h, ok := header(desc, FEATURE_HDDVD_READ)
	if !ok || len(desc) < 8 {
		return nil
	}

	return &HDDVDRead{Header: h, HDDVDR: bit(desc[4], 0), HDDVDRAM: bit(desc[6], 0)}
}

// HDDVDWrite is feature 0051h.
type HDDVDWrite struct {
	Header
	HDDVDR   bool
	HDDVDRAM bool
}

func DecodeHDDVDWrite(desc []byte) *HDDVDWrite {
	h, ok := header(desc, FEATURE_HDDVD_WRITE)
	if !ok || len(desc) < 8 {
		return nil
	}

	return &HDDVDWrite{Header: h, HDDVDR: bit(desc[4], 0), HDDVDRAM: bit(desc[6], 0)}
}

// HDDVDRWFragmentRecording is feature 0052h.
type HDDVDRWFragmentRecording struct {
	Header
	// Background padding
	BGP bool
}

func DecodeHDDVDRWFragmentRecording(desc []byte) *HDDVDRWFragmentRecording {
	h, ok := header(desc, FEATURE_HDDVD_RW_FRAGMENT_RECORDING)
	if !ok || len(desc) < 8 {
		return nil
	}

	return &HDDVDRWFragmentRecording{Header: h, BGP: bit(desc[4], 0)}
}

// HybridDisc is feature 0080h.
type HybridDisc struct {
	Header
	// Reset immunity
	RI bool
}

func DecodeHybridDisc(desc []byte) *HybridDisc {
	h, ok := header(desc, FEATURE_HYBRID_DISC)
	if !ok || len(desc) < 8 {
		return nil
	}

	return &HybridDisc{Header: h, RI: bit(desc[4], 0)}
}

// DecodePowerManagement decodes feature 0100h.
func DecodePowerManagement(desc []byte) *Simple {
	return decodeSimple(desc, FEATURE_POWER_MANAGEMENT)
}

// SMART is feature 0101h.
type SMART struct {
	Header
	// Fault / failure reporting control page present
	PP bool
}

func DecodeSMART(desc []byte) *SMART {
	h, ok := header(desc, FEATURE_SMART)
	if !ok || len(desc) < 8 {
		return nil
	}

	return &SMART{Header: h, PP: bit(desc[4], 0)}
}

// EmbeddedChanger is feature 0102h.
type EmbeddedChanger struct {
	Header
	// Side change capable
	SCC bool
	// Supports disc present
	SDP               bool
	HighestSlotNumber uint8
}

func DecodeEmbeddedChanger(desc []byte) *EmbeddedChanger {
	h, ok := header(desc, FEATURE_EMBEDDED_CHANGER)
	if !ok || len(desc) < 8 {
		return nil
	}

	return &EmbeddedChanger{
		Header:            h,
		SCC:               bit(desc[4], 4),
		SDP:               bit(desc[4], 2),
		HighestSlotNumber: desc[7] & 0x1f,
	}
}

// CDAudioExternalPlay is feature 0103h.
type CDAudioExternalPlay struct {
	Header
	Scan bool
	// Separate channel mute
	SCM bool
	// Separate volume levels
	SV           bool
	VolumeLevels uint16
}

func DecodeCDAudioExternalPlay(desc []byte) *CDAudioExternalPlay {
	h, ok := header(desc, FEATURE_CD_AUDIO_EXTERNAL_PLAY)
	if !ok || len(desc) < 8 {
		return nil
	}

	return &CDAudioExternalPlay{
		Header:       h,
		Scan:         bit(desc[4], 2),
		SCM:          bit(desc[4], 1),
		SV:           bit(desc[4], 0),
		VolumeLevels: utils.Uint16BE(desc, 6),
	}
}

// FirmwareUpgrade is feature 0104h.
type FirmwareUpgrade struct {
	Header
	// Supports WRITE BUFFER mode 5 (version 1)
	M5 bool
}

func DecodeFirmwareUpgrade(desc []byte) *FirmwareUpgrade {
	h, ok := header(desc, FEATURE_FIRMWARE_UPGRADE)
	if !ok {
		return nil
	}

	f := &FirmwareUpgrade{Header: h}

	if h.Version >= 1 && len(desc) >= 8 {
		f.M5 = bit(desc[4], 0)
	}

	return f
}

// Timeout is feature 0105h.
type Timeout struct {
	Header
	// Group 3 timeouts (version 1)
	Group3     bool
	UnitLength uint16
}

func DecodeTimeout(desc []byte) *Timeout {
	h, ok := header(desc, FEATURE_TIMEOUT)
	if !ok {
		return nil
	}

	f := &Timeout{Header: h}

	if h.Version >= 1 && len(desc) >= 8 {
		f.Group3 = bit(desc[4], 0)
		f.UnitLength = utils.Uint16BE(desc, 6)
	}

	return f
}

// DVDCSS is feature 0106h.
type DVDCSS struct {
	Header
	CSSVersion uint8
}

func DecodeDVDCSS(desc []byte) *DVDCSS {
	h, ok := header(desc, FEATURE_DVD_CSS)
	if !ok || len(desc) < 8 {
		return nil
	}

	return &DVDCSS{Header: h, CSSVersion: desc[7]}
}

// RealTimeStreaming is feature 0107h.
type RealTimeStreaming struct {
	Header
	// Read buffer capacity block (version 3)
	RBCB bool
	// Set CD speed (version 1)
	SCS bool
	// Mode page 2A (version 1)
	MP2A bool
	// Write speed performance descriptor (version 1)
	WSPD bool
	// Stream writing
	SW bool
}

func DecodeRealTimeStreaming(desc []byte) *RealTimeStreaming {
	h, ok := header(desc, FEATURE_REAL_TIME_STREAMING)
	if !ok || len(desc) < 8 {
		return nil
	}

	f := &RealTimeStreaming{Header: h, SW: bit(desc[4], 0)}

	if h.Version >= 1 {
		f.WSPD = bit(desc[4], 1)
		f.MP2A = bit(desc[4], 2)
		f.SCS = bit(desc[4], 3)
	}

	if h.Version >= 3 {
		f.RBCB = bit(desc[4], 4)
	}

	return f
}

// DriveSerialNumber is feature 0108h.
type DriveSerialNumber struct {
	Header
	Serial string
}

func DecodeDriveSerialNumber(desc []byte) *DriveSerialNumber {
	h, ok := header(desc, FEATURE_DRIVE_SERIAL_NUMBER)
	if !ok {
		return nil
	}

	return &DriveSerialNumber{Header: h, Serial: utils.TrimASCII(desc[4:])}
}

// DecodeMediaSerialNumber decodes feature 0109h.
func DecodeMediaSerialNumber(desc []byte) *Simple {
	return decodeSimple(desc, FEATURE_MEDIA_SERIAL_NUMBER)
}

// DCBs is feature 010Ah.
type DCBs struct {
	Header
	DCBs []uint32
}

func DecodeDCBs(desc []byte) *DCBs {
	h, ok := header(desc, FEATURE_DCBS)
	if !ok {
		return nil
	}

	f := &DCBs{Header: h}

	for off := 4; off+4 <= len(desc); off += 4 {
		f.DCBs = append(f.DCBs, utils.Uint32BE(desc, off))
	}

	return f
}

// DVDCPRM is feature 010Bh.
type DVDCPRM struct {
	Header
	CPRMVersion uint8
}

func DecodeDVDCPRM(desc []byte) *DVDCPRM {
	h, ok := header(desc, FEATURE_DVD_CPRM)
	if !ok || len(desc) < 8 {
		return nil
	}

	return &DVDCPRM{Header: h, CPRMVersion: desc[7]}
}

// FirmwareInformation is feature 010Ch.
type FirmwareInformation struct {
	Header
	// Zero if the drive reported an unparseable date
	Date time.Time
}

func DecodeFirmwareInformation(desc []byte) *FirmwareInformation {
	h, ok := header(desc, FEATURE_FIRMWARE_INFORMATION)
	if !ok || len(desc) < 20 {
		return nil
	}

	f := &FirmwareInformation{Header: h}

	// Century, year, month, day, hour, minute and second as pairs of ASCII digits
	var v [7]int
	for i := range v {
		n, err := strconv.Atoi(string(desc[4+2*i : 6+2*i]))
		if err != nil {
			return f
		}
		v[i] = n
	}

	f.Date = time.Date(v[0]*100+v[1], time.Month(v[2]), v[3], v[4], v[5], v[6], 0, time.UTC)

	return f
}

// AACS is feature 010Dh.
type AACS struct {
	Header
	// Read drive certificate (version 2)
	RDC bool
	// Read media key block of CPRM (version 2)
	RMC bool
	// Write bus encryption (version 2)
	WBE bool
	// Bus encryption (version 2)
	BEC bool
	// Binding nonce generation
	BNG                       bool
	BlockCountForBindingNonce uint8
	NumberOfAGIDs             uint8
	AACSVersion               uint8
}

func DecodeAACS(desc []byte) *AACS {
	h, ok := header(desc, FEATURE_AACS)
	if !ok || len(desc) < 8 {
		return nil
	}

	f := &AACS{
		Header:                    h,
		BNG:                       bit(desc[4], 0),
		BlockCountForBindingNonce: desc[5],
		NumberOfAGIDs:             desc[6] & 0x0f,
		AACSVersion:               desc[7],
	}

	if h.Version >= 2 {
		f.RDC = bit(desc[4], 4)
		f.RMC = bit(desc[4], 3)
		f.WBE = bit(desc[4], 2)
		f.BEC = bit(desc[4], 1)
	}

	return f
}

// DVDCSSManagedRecording is feature 010Eh.
type DVDCSSManagedRecording struct {
	Header
	MaxScrambleExtentInformationEntries uint8
}

func DecodeDVDCSSManagedRecording(desc []byte) *DVDCSSManagedRecording {
	h, ok := header(desc, FEATURE_DVD_CSS_MANAGED_RECORDING)
	if !ok || len(desc) < 8 {
		return nil
	}

	return &DVDCSSManagedRecording{Header: h, MaxScrambleExtentInformationEntries: desc[4]}
}

// DecodeVCPS decodes feature 0110h.
func DecodeVCPS(desc []byte) *Simple {
	return decodeSimple(desc, FEATURE_VCPS)
}

// DecodeSecurDisc decodes feature 0113h.
func DecodeSecurDisc(desc []byte) *Simple {
	return decodeSimple(desc, FEATURE_SECURDISC)
}

// OSSC is feature 0142h.
type OSSC struct {
	Header
	// Pseudo security area unit
	PSAU bool
	// Linked OSPB
	LOSPB bool
	// Mandatory encryption
	ME       bool
	Profiles []uint16
}

func DecodeOSSC(desc []byte) *OSSC {
	h, ok := header(desc, FEATURE_OSSC)
	if !ok || len(desc) < 8 {
		return nil
	}

	f := &OSSC{
		Header: h,
		PSAU:   bit(desc[4], 7),
		LOSPB:  bit(desc[4], 6),
		ME:     bit(desc[4], 0),
	}

	for i, off := 0, 8; i < int(desc[7]) && off+2 <= len(desc); i, off = i+1, off+2 {
		f.Profiles = append(f.Profiles, utils.Uint16BE(desc, off))
	}

	return f
}

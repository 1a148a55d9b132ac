// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dswarbrick/optical/cd"
	"github.com/dswarbrick/optical/utils"
)

var tocResponse = []byte{
	0x00, 0x1a, 0x01, 0x02,
	0x00, 0x10, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x14, 0x02, 0x00, 0x00, 0x00, 0x3a, 0x98,
	0x00, 0x14, 0xaa, 0x00, 0x00, 0x00, 0x75, 0x30,
}

func TestDecoders(t *testing.T) {
	var out bytes.Buffer

	require.True(t, decoders["toc"](&out, tocResponse))
	assert.Contains(t, out.String(), "track  1  audio")
	assert.Contains(t, out.String(), "track  2  data")

	assert.False(t, decoders["toc"](&out, tocResponse[:10]))
	assert.False(t, decoders["pfi"](&out, make([]byte, 8)))
	assert.False(t, decoders["features"](&out, []byte{0, 0}))
}

func TestDecodeSubchannelLBA(t *testing.T) {
	// First track pointer, as found in the lead-in
	q := []byte{0x01, 0x00, 0xa0, 0, 0, 0, 0, 0x01, 0x00, 0x00}
	crc := utils.CheckCrc16(q, 10)
	q = append(q, crc[0], crc[1])

	planar := make([]byte, cd.SubchannelSize)
	copy(planar[12:], q)
	wire := cd.Interleave(planar)

	defer func() { decodeLBA = 0 }()

	var out bytes.Buffer
	require.True(t, decoders["subchannel"](&out, wire))
	assert.NotContains(t, out.String(), "first track")

	out.Reset()
	decodeLBA = -150
	require.True(t, decoders["subchannel"](&out, wire))
	assert.Contains(t, out.String(), "first track 1")
}

func TestDecoderKinds(t *testing.T) {
	kinds := decoderKinds()
	assert.Len(t, kinds, len(decoders))
	assert.Contains(t, kinds, "fulltoc")
	assert.IsIncreasing(t, kinds)
}

func TestReadResponse(t *testing.T) {
	dir := t.TempDir()

	hexFile := filepath.Join(dir, "toc.txt")
	require.NoError(t, os.WriteFile(hexFile, []byte("00 1a 01 02\n00 10 01 00"), 0o644))

	buf, err := readResponse(hexFile, true)
	require.NoError(t, err)
	assert.Equal(t, tocResponse[:8], buf)

	binFile := filepath.Join(dir, "toc.bin")
	require.NoError(t, os.WriteFile(binFile, tocResponse, 0o644))

	buf, err = readResponse(binFile, false)
	require.NoError(t, err)
	assert.Equal(t, tocResponse, buf)

	require.NoError(t, os.WriteFile(hexFile, []byte("zz"), 0o644))
	_, err = readResponse(hexFile, true)
	assert.Error(t, err)

	_, err = readResponse(filepath.Join(dir, "missing"), false)
	assert.Error(t, err)
}

// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Subchannel bit plane conversion.

package cd

import (
	"github.com/dswarbrick/optical/utils"
)

const (
	SubchannelSize = 96
	channelLen     = 12
)

// Interleave converts planar subchannel data (twelve bytes of P, then Q, through W) to the form
// read from the disc, in which bit 7 of every byte belongs to P and bit 0 to W. Only whole 96 byte
// blocks are converted; a trailing partial block is dropped.
func Interleave(planar []byte) []byte {
	blocks := len(planar) / SubchannelSize
	out := make([]byte, blocks*SubchannelSize)

	for b := 0; b < blocks; b++ {
		in := planar[b*SubchannelSize : (b+1)*SubchannelSize]
		o := out[b*SubchannelSize : (b+1)*SubchannelSize]

		for c := uint(0); c < 8; c++ {
			plane := in[c*channelLen : (c+1)*channelLen]
			for n := 0; n < SubchannelSize; n++ {
				bit := (plane[n/8] >> (7 - uint(n%8))) & 1
				o[n] |= bit << (7 - c)
			}
		}
	}

	return out
}

// Deinterleave is the inverse of Interleave. A trailing partial block is dropped.
func Deinterleave(wire []byte) []byte {
	blocks := len(wire) / SubchannelSize
	out := make([]byte, blocks*SubchannelSize)

	for b := 0; b < blocks; b++ {
		in := wire[b*SubchannelSize : (b+1)*SubchannelSize]
		o := out[b*SubchannelSize : (b+1)*SubchannelSize]

		for c := uint(0); c < 8; c++ {
			plane := o[c*channelLen : (c+1)*channelLen]
			for n := 0; n < SubchannelSize; n++ {
				bit := (in[n] >> (7 - c)) & 1
				plane[n/8] |= bit << (7 - uint(n%8))
			}
		}
	}

	return out
}

// BcdToBinaryQ converts bytes 1 to 9 of a Q block from BCD in place.
func BcdToBinaryQ(q []byte) {
	for i := 1; i <= 9 && i < len(q); i++ {
		q[i] = utils.BcdToBinary(q[i])
	}
}

// BinaryToBcdQ converts bytes 1 to 9 of a Q block to BCD in place.
func BinaryToBcdQ(q []byte) {
	for i := 1; i <= 9 && i < len(q); i++ {
		q[i] = utils.BinaryToBcd(q[i])
	}
}

// QFromSubchannel extracts the Q block from one 96 byte block of interleaved subchannel data.
func QFromSubchannel(wire []byte) (q [12]byte) {
	if len(wire) < SubchannelSize {
		return q
	}

	planar := Deinterleave(wire[:SubchannelSize])
	copy(q[:], planar[channelLen:2*channelLen])

	return q
}

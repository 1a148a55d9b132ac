// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dswarbrick/optical/cd"
	"github.com/dswarbrick/optical/discinfo"
	"github.com/dswarbrick/optical/dvd"
	"github.com/dswarbrick/optical/features"
)

// decoder prints one kind of response. It returns false if the response does not decode.
type decoder func(w io.Writer, buf []byte) bool

func printValue(w io.Writer, v interface{}) bool {
	fmt.Fprintf(w, "%+v\n", v)
	return true
}

var decoders = map[string]decoder{
	"toc": func(w io.Writer, buf []byte) bool {
		toc := cd.DecodeTOC(buf)
		if toc == nil {
			return false
		}
		for _, t := range cd.TracksFromTOC(toc) {
			fmt.Fprintf(w, "track %2d  %-13s %8d - %d\n", t.Sequence, t.Type, t.StartSector, t.EndSector)
		}
		return true
	},
	"session": func(w io.Writer, buf []byte) bool {
		s := cd.DecodeSession(buf)
		return s != nil && printValue(w, s)
	},
	"fulltoc": func(w io.Writer, buf []byte) bool {
		toc := cd.DecodeFullTOC(buf)
		if toc == nil {
			return false
		}
		for _, d := range toc.Descriptors {
			fmt.Fprintf(w, "%+v\n", d)
		}
		return true
	},
	"pma": func(w io.Writer, buf []byte) bool {
		pma := cd.DecodePMA(buf)
		return pma != nil && printValue(w, pma)
	},
	"atip": func(w io.Writer, buf []byte) bool {
		a := cd.DecodeATIP(buf)
		return a != nil && printValue(w, a.String())
	},
	"cdtext": func(w io.Writer, buf []byte) bool {
		t := cd.DecodeCDText(buf)
		if t == nil {
			return false
		}
		for _, p := range t.Packs {
			fmt.Fprintf(w, "%-28s %q\n", p.Classify(), p.TextData[:])
		}
		return true
	},
	"mcn": func(w io.Writer, buf []byte) bool {
		mcn, ok := cd.DecodeMCN(buf)
		return ok && printValue(w, mcn)
	},
	"isrc": func(w io.Writer, buf []byte) bool {
		isrc, ok := cd.DecodeISRC(buf)
		return ok && printValue(w, isrc)
	},
	"subchannel": func(w io.Writer, buf []byte) bool {
		if len(buf) < cd.SubchannelSize {
			return false
		}
		lba := decodeLBA
		for off := 0; off+cd.SubchannelSize <= len(buf); off += cd.SubchannelSize {
			q := cd.QFromSubchannel(buf[off : off+cd.SubchannelSize])
			fmt.Fprintln(w, cd.DescribeQ(q, true, lba))
			lba++
		}
		return true
	},
	"features": func(w io.Writer, buf []byte) bool {
		if len(buf) < 8 {
			return false
		}

		hdr, feats := features.DecodeAll(buf)

		fmt.Fprintf(w, "Current profile: %s\n", features.ProfileName(hdr.CurrentProfile))

		numbers := make([]int, 0, len(feats))
		for n := range feats {
			numbers = append(numbers, int(n))
		}
		sort.Ints(numbers)

		for _, n := range numbers {
			fmt.Fprintf(w, "%-40s %+v\n", features.FeatureName(uint16(n)), feats[uint16(n)])
		}
		return true
	},
	"discinfo": func(w io.Writer, buf []byte) bool {
		if d := discinfo.DecodeStandard(buf); d != nil {
			return printValue(w, d.String())
		}
		if d := discinfo.DecodeTrackResources(buf); d != nil {
			return printValue(w, d)
		}
		if d := discinfo.DecodePOWResources(buf); d != nil {
			return printValue(w, d)
		}
		return false
	},
	"pfi": func(w io.Writer, buf []byte) bool {
		p := dvd.DecodePFI(buf)
		return p != nil && printValue(w, p.String())
	},
	"dmi": func(w io.Writer, buf []byte) bool {
		if d := dvd.DecodeXboxDMI(buf); d != nil {
			return printValue(w, d.String())
		}
		d := dvd.DecodeDMI(buf)
		return d != nil && printValue(w, fmt.Sprintf("DMI, %d bytes", d.DataLength))
	},
	"ss": func(w io.Writer, buf []byte) bool {
		ss := dvd.DecodeSecuritySector(buf)
		if ss == nil {
			return false
		}
		fmt.Fprintln(w, ss.PFI.String())
		for i, e := range ss.Extents {
			fmt.Fprintf(w, "extent %2d: %#06x - %#06x\n", i, e.StartPSN, e.EndPSN)
		}
		return true
	},
}

func decoderKinds() []string {
	kinds := make([]string, 0, len(decoders))
	for k := range decoders {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)

	return kinds
}

var (
	decodeHex bool
	decodeLBA int64
)

var decodeCmd = &cobra.Command{
	Use:   "decode [kind] [file]",
	Short: "Decode a single command response",
	Long: fmt.Sprintf(`Decode a command response saved to a file. The file holds the raw response, or
whitespace separated hex with --hex. Use "-" to read standard input.

Kinds: %s`, strings.Join(decoderKinds(), ", ")),
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dec, ok := decoders[args[0]]
		if !ok {
			return fmt.Errorf("unknown response kind %q", args[0])
		}

		buf, err := readResponse(args[1], decodeHex)
		if err != nil {
			return err
		}

		if !dec(cmd.OutOrStdout(), buf) {
			return fmt.Errorf("%d byte response does not decode as %s", len(buf), args[0])
		}

		return nil
	},
}

func init() {
	decodeCmd.Flags().BoolVar(&decodeHex, "hex", false, "input is hex text rather than binary")
	decodeCmd.Flags().Int64Var(&decodeLBA, "lba", 0, "sector address of the first subchannel block, negative in the lead-in")
}

func readResponse(filename string, isHex bool) ([]byte, error) {
	var (
		buf []byte
		err error
	)

	if filename == "-" {
		buf, err = io.ReadAll(os.Stdin)
	} else {
		buf, err = os.ReadFile(filename)
	}

	if err != nil {
		return nil, err
	}

	if !isHex {
		return buf, nil
	}

	b, err := hex.DecodeString(strings.Join(strings.Fields(string(buf)), ""))
	if err != nil {
		return nil, fmt.Errorf("parsing hex input: %w", err)
	}

	return b, nil
}

// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/dswarbrick/optical"
	"github.com/dswarbrick/optical/cd"
	"github.com/dswarbrick/optical/scsi"
)

var identifyCmd = &cobra.Command{
	Use:   "identify [capture]",
	Short: "Identify the medium of a captured drive session",
	Long: `Replay a captured drive session through the resolver and print the media type,
together with the structures read from the disc along the way.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, _, _, err := resolveCapture(args[0])
		if err != nil {
			return err
		}

		printResult(cmd.OutOrStdout(), res)
		return nil
	},
}

// resolveCapture loads a capture and runs the resolver over it.
func resolveCapture(filename string) (*optical.Result, scsi.Device, *optical.Resolver, error) {
	capture, err := scsi.LoadCapture(filename)
	if err != nil {
		return nil, nil, nil, err
	}

	r, err := newResolver(newLogger())
	if err != nil {
		return nil, nil, nil, err
	}

	dev := scsi.NewReplayDevice(capture)
	p := startProgress(fmt.Sprintf("probing %s", filename))

	res, err := r.Resolve(dev)
	if err != nil {
		p.fail(err.Error())
		return nil, nil, nil, fmt.Errorf("resolving %s: %w", filename, err)
	}

	p.stop(res.MediaType.String())

	return res, dev, r, nil
}

func printResult(w io.Writer, res *optical.Result) {
	fmt.Fprintf(w, "Media type:   %s (%s)\n", res.MediaType, res.MediaType.Ident())

	if res.Inquiry != nil {
		fmt.Fprintf(w, "Drive:        %s %s %s\n", res.Inquiry.Vendor, res.Inquiry.Product, res.Inquiry.Revision)
	}
	if res.Drive.Family != "" {
		fmt.Fprintf(w, "Drive family: %s\n", res.Drive.Family)
	}
	if res.Blocks > 0 {
		fmt.Fprintf(w, "Capacity:     %d blocks of %d bytes [%s]\n", res.Blocks, res.BlockSize,
			optical.FormatBytes(res.Size()))
	}
	if res.USB {
		fmt.Fprintln(w, "Bus:          USB")
	}

	if res.PFI != nil {
		fmt.Fprintf(w, "PFI:          %s\n", res.PFI)
	}
	if res.XboxDMI != nil {
		fmt.Fprintf(w, "DMI:          %s\n", res.XboxDMI)
	}
	if res.Xgd != nil {
		fmt.Fprintf(w, "XGD layout:   %s\n", res.Xgd)
	}
	if res.ATIP != nil {
		fmt.Fprintf(w, "ATIP:         %s\n", res.ATIP)
	}
	if res.DiscInformation != nil {
		fmt.Fprintf(w, "Disc info:    %s\n", res.DiscInformation)
	}
	if res.MCN != "" {
		fmt.Fprintf(w, "MCN:          %s\n", res.MCN)
	}

	if len(res.Tracks) > 0 {
		fmt.Fprintln(w, "\nSession Track Type            Start      End")
		for _, t := range res.Tracks {
			fmt.Fprintf(w, "%7d %5d %-13s %8d %8d", t.Session, t.Sequence, t.Type, t.IndexOne(), t.EndSector)
			if isrc, ok := res.ISRCs[uint8(t.Sequence)]; ok {
				fmt.Fprintf(w, "  ISRC %s", isrc)
			}
			fmt.Fprintln(w)
		}
	}

	if res.CDText != nil {
		texts := res.CDText.Strings()
		keys := make([]cd.TextKey, 0, len(texts))
		for k := range texts {
			keys = append(keys, k)
		}

		sort.Slice(keys, func(i, j int) bool {
			a, b := keys[i], keys[j]
			if a.Block != b.Block {
				return a.Block < b.Block
			}
			if a.Track != b.Track {
				return a.Track < b.Track
			}
			return a.PackType < b.PackType
		})

		fmt.Fprintln(w, "\nCD-TEXT")
		for _, k := range keys {
			fmt.Fprintf(w, "  track %2d %-20s %s\n", k.Track, cd.PackTypeName(k.PackType), texts[k])
		}
	}
}

var offsetCmd = &cobra.Command{
	Use:   "offset [capture]",
	Short: "Detect the drive's combined read offset",
	Long: `Identify the medium of a captured drive session, then determine the drive's
combined read and write offset from the data and audio sectors on the disc.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, dev, r, err := resolveCapture(args[0])
		if err != nil {
			return err
		}

		if !res.MediaType.IsCD() {
			return fmt.Errorf("read offsets only apply to CDs, not %s", res.MediaType)
		}

		off, err := r.DetectOffset(dev, res.Tracks, res.Drive, res.MediaType)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Combined offset: %d bytes (%d samples)\n", off, off/4)
		return nil
	},
}

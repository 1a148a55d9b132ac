// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"unsafe"

	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"

	"github.com/dswarbrick/optical"
)

const (
	_LINUX_CAPABILITY_VERSION_3 = 0x20080522

	CAP_SYS_RAWIO = 1 << 17
	CAP_SYS_ADMIN = 1 << 21
)

type capHeader struct {
	version uint32
	pid     int
}

type capData struct {
	effective   uint32
	permitted   uint32
	inheritable uint32
}

type capsV3 struct {
	hdr  capHeader
	data [2]capData
}

// checkCaps invokes the capget syscall to check for the capabilities needed to send commands to
// a drive. Running as root implies all of them.
func checkCaps(w io.Writer) {
	caps := new(capsV3)
	caps.hdr.version = _LINUX_CAPABILITY_VERSION_3

	// Use RawSyscall since we do not expect it to block
	_, _, e1 := unix.RawSyscall(unix.SYS_CAPGET, uintptr(unsafe.Pointer(&caps.hdr)), uintptr(unsafe.Pointer(&caps.data)), 0)
	if e1 != 0 {
		fmt.Fprintln(w, "capget() failed:", e1.Error())
		return
	}

	if (caps.data[0].effective&CAP_SYS_RAWIO == 0) && (caps.data[0].effective&CAP_SYS_ADMIN == 0) {
		fmt.Fprintln(w, "Neither cap_sys_rawio nor cap_sys_admin are in effect. Sending commands to these drives will probably fail.")
	}
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List optical drives",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		devices := optical.ScanDevices()
		if len(devices) == 0 {
			return fmt.Errorf("no optical drives found")
		}

		for _, d := range devices {
			fmt.Fprintln(cmd.OutOrStdout(), d)
		}

		checkCaps(cmd.ErrOrStderr())
		return nil
	},
}

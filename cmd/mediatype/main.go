// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Media type identification reference implementation.
//
// Commands run against captured drive sessions (see scsi.Capture) so that the resolver can be
// exercised without a device transport.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dswarbrick/optical"
	"github.com/dswarbrick/optical/drivedb"
	"github.com/dswarbrick/optical/logging"
)

var (
	verbosity  int
	noColor    bool
	driveDbArg string
)

var rootCmd = &cobra.Command{
	Use:   "mediatype",
	Short: "Identify optical and removable media",
	Long: `mediatype - identify the medium in an optical or removable media drive.

Drive sessions are replayed from YAML captures, each holding the commands issued
to a drive and the responses it returned.

Examples:
  mediatype identify capture.yaml
  mediatype offset -v capture.yaml
  mediatype decode toc response.bin
  mediatype decode --hex features response.txt
  mediatype scan`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity (-v debug, -vv trace)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable coloured log output")
	rootCmd.PersistentFlags().StringVar(&driveDbArg, "drivedb", "", "drive database to use instead of the built-in one")

	rootCmd.AddCommand(identifyCmd, offsetCmd, decodeCmd, scanCmd)
}

func newLogger() logr.Logger {
	useColor := !noColor && term.IsTerminal(int(os.Stderr.Fd()))
	return logging.NewTextLogger(os.Stderr, verbosity, useColor)
}

// newResolver builds a resolver from the global flags.
func newResolver(log logr.Logger) (*optical.Resolver, error) {
	opts := []optical.Option{optical.WithLogger(log)}

	if driveDbArg != "" {
		db, err := drivedb.OpenDriveDb(driveDbArg)
		if err != nil {
			return nil, fmt.Errorf("loading drive database: %w", err)
		}
		opts = append(opts, optical.WithDriveDb(db))
	}

	return optical.NewResolver(opts...), nil
}

func main() {
	rootCmd.Version = fmt.Sprintf("built with %s on %s (%s)", runtime.Version(), runtime.GOOS, runtime.GOARCH)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/theckman/yacspin"
	"golang.org/x/term"
)

// progress shows a spinner while the resolver probes the drive. It does nothing when stdout is
// not a terminal.
type progress struct {
	spinner *yacspin.Spinner
}

func startProgress(message string) *progress {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return &progress{}
	}

	cfg := yacspin.Config{
		Frequency:         100 * time.Millisecond,
		CharSet:           yacspin.CharSets[14],
		Suffix:            " ",
		Message:           message,
		Colors:            []string{"fgHiCyan"},
		StopColors:        []string{"fgHiGreen"},
		StopFailColors:    []string{"fgHiRed"},
		StopCharacter:     "✓",
		StopFailCharacter: "✗",
	}

	s, err := yacspin.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize spinner: %v\n", err)
		return &progress{}
	}

	if err := s.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start spinner: %v\n", err)
		return &progress{}
	}

	return &progress{spinner: s}
}

func (p *progress) stop(message string) {
	if p.spinner == nil {
		return
	}

	p.spinner.StopMessage(message)
	_ = p.spinner.Stop()
}

func (p *progress) fail(message string) {
	if p.spinner == nil {
		return
	}

	p.spinner.StopFailMessage(message)
	_ = p.spinner.StopFail()
}

// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Replay of captured command responses.

package scsi

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v2"
)

// ErrNotCaptured is returned by a ReplayDevice for commands absent from its capture.
var ErrNotCaptured = errors.New("command not present in capture")

// HexBytes is a byte slice serialised as whitespace separated hex.
type HexBytes []byte

func (h HexBytes) MarshalYAML() (interface{}, error) {
	var sb strings.Builder

	for i, b := range h {
		if i > 0 {
			if i%16 == 0 {
				sb.WriteByte('\n')
			} else {
				sb.WriteByte(' ')
			}
		}
		fmt.Fprintf(&sb, "%02x", b)
	}

	return sb.String(), nil
}

func (h *HexBytes) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string

	if err := unmarshal(&s); err != nil {
		return err
	}

	b, err := hex.DecodeString(strings.Join(strings.Fields(s), ""))
	if err != nil {
		return err
	}

	*h = b
	return nil
}

func (op Operation) MarshalYAML() (interface{}, error) {
	return op.String(), nil
}

func (op *Operation) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string

	if err := unmarshal(&s); err != nil {
		return err
	}

	v, err := ParseOperation(s)
	if err != nil {
		return err
	}

	*op = v
	return nil
}

// Exchange is one captured command and its outcome. A non-empty Sense marks a failed command.
type Exchange struct {
	Op        Operation `yaml:"op"`
	Format    uint8     `yaml:"format,omitempty"`
	Track     uint8     `yaml:"track,omitempty"`
	MSF       bool      `yaml:"msf,omitempty"`
	Layer     uint8     `yaml:"layer,omitempty"`
	MediaType uint8     `yaml:"media_type,omitempty"`
	Address   uint32    `yaml:"address,omitempty"`
	Length    uint32    `yaml:"length,omitempty"`
	Data      HexBytes  `yaml:"data,omitempty"`
	Sense     HexBytes  `yaml:"sense,omitempty"`
}

func (e Exchange) command() Command {
	return Command{
		Op:        e.Op,
		Format:    e.Format,
		Track:     e.Track,
		MSF:       e.MSF,
		Layer:     e.Layer,
		MediaType: e.MediaType,
		Address:   e.Address,
		Length:    e.Length,
	}
}

// Capture is a recorded session against one drive.
type Capture struct {
	Device    string     `yaml:"device,omitempty"`
	USB       bool       `yaml:"usb,omitempty"`
	Exchanges []Exchange `yaml:"exchanges"`
}

// ReadCapture parses a YAML capture.
func ReadCapture(r io.Reader) (*Capture, error) {
	var c Capture

	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

// LoadCapture reads a YAML capture from a file.
func LoadCapture(filename string) (*Capture, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	c, err := ReadCapture(f)
	if err != nil {
		return nil, fmt.Errorf("parsing capture %s: %w", filename, err)
	}

	return c, nil
}

// Write serialises the capture as YAML.
func (c *Capture) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(c); err != nil {
		return err
	}

	return enc.Close()
}

// ReplayDevice answers commands from a Capture. Commands captured more than once are answered in
// capture order; once exhausted the last answer repeats.
type ReplayDevice struct {
	capture *Capture
	answers map[Command][]Exchange
	served  map[Command]int
}

// NewReplayDevice returns a Device backed by c.
func NewReplayDevice(c *Capture) *ReplayDevice {
	d := &ReplayDevice{
		capture: c,
		answers: make(map[Command][]Exchange),
		served:  make(map[Command]int),
	}

	for _, e := range c.Exchanges {
		cmd := e.command()
		d.answers[cmd] = append(d.answers[cmd], e)
	}

	return d
}

func (d *ReplayDevice) Execute(cmd Command) ([]byte, error) {
	answers, ok := d.answers[cmd]
	if !ok {
		return nil, fmt.Errorf("%s: %w", cmd, ErrNotCaptured)
	}

	n := d.served[cmd]
	if n >= len(answers) {
		n = len(answers) - 1
	}
	d.served[cmd]++

	e := answers[n]
	if len(e.Sense) > 0 {
		return nil, &SenseError{ScsiStatus: 0x02, SenseBuf: e.Sense}
	}

	return e.Data, nil
}

func (d *ReplayDevice) IsUSB() bool {
	return d.capture.USB
}

// Recorder wraps a Device and appends every exchange to a Capture.
type Recorder struct {
	Device
	Capture *Capture
}

func (r *Recorder) Execute(cmd Command) ([]byte, error) {
	data, err := r.Device.Execute(cmd)

	e := Exchange{
		Op:        cmd.Op,
		Format:    cmd.Format,
		Track:     cmd.Track,
		MSF:       cmd.MSF,
		Layer:     cmd.Layer,
		MediaType: cmd.MediaType,
		Address:   cmd.Address,
		Length:    cmd.Length,
		Data:      data,
	}

	var se *SenseError
	if errors.As(err, &se) {
		e.Sense = se.SenseBuf
	}

	if err == nil || se != nil {
		r.Capture.Exchanges = append(r.Capture.Exchanges, e)
	}

	return data, err
}

func (r *Recorder) IsUSB() bool {
	return IsUSB(r.Device)
}

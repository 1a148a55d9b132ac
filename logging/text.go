// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/go-logr/logr"
)

type levelLabel struct {
	text string
	c    *color.Color
}

var (
	labelError  = levelLabel{"ERR", color.New(color.FgRed, color.Bold)}
	labelLevels = []levelLabel{
		{"INF", color.New(color.FgGreen)},
		{"DBG", color.New(color.FgCyan)},
		{"TRC", color.New(color.FgMagenta)},
	}
	keyColor = color.New(color.Faint)
)

// textSink writes one line per message: a level label, the logger name, the message and the
// key/value pairs as key=value.
type textSink struct {
	out       *syncWriter
	verbosity int
	useColor  bool
	name      string
	values    []interface{}
}

// syncWriter serialises writes from sinks derived from the same logger.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewTextLogger returns a logr.Logger writing human readable lines to w (stderr if nil). Messages
// above verbosity are dropped.
func NewTextLogger(w io.Writer, verbosity int, useColor bool) logr.Logger {
	if w == nil {
		w = os.Stderr
	}

	return logr.New(&textSink{out: &syncWriter{w: w}, verbosity: verbosity, useColor: useColor})
}

func (s *textSink) Init(logr.RuntimeInfo) {}

func (s *textSink) Enabled(level int) bool {
	return level <= s.verbosity
}

func (s *textSink) Info(level int, msg string, keysAndValues ...interface{}) {
	l := labelLevels[len(labelLevels)-1]
	if level < len(labelLevels) {
		l = labelLevels[level]
	}

	s.write(l, msg, keysAndValues)
}

func (s *textSink) Error(err error, msg string, keysAndValues ...interface{}) {
	kv := append([]interface{}{"err", err}, keysAndValues...)
	s.write(labelError, msg, kv)
}

func (s *textSink) WithValues(keysAndValues ...interface{}) logr.LogSink {
	c := *s
	c.values = append(append([]interface{}{}, s.values...), keysAndValues...)
	return &c
}

func (s *textSink) WithName(name string) logr.LogSink {
	c := *s
	if c.name != "" {
		c.name += "/" + name
	} else {
		c.name = name
	}
	return &c
}

func (s *textSink) paint(c *color.Color, text string) string {
	if !s.useColor {
		return text
	}

	return c.Sprint(text)
}

func (s *textSink) write(l levelLabel, msg string, kv []interface{}) {
	var b strings.Builder

	b.WriteString(s.paint(l.c, l.text))
	if s.name != "" {
		fmt.Fprintf(&b, " %s:", s.name)
	}
	b.WriteByte(' ')
	b.WriteString(msg)

	all := append(append([]interface{}{}, s.values...), kv...)
	for i := 0; i < len(all); i += 2 {
		key := fmt.Sprint(all[i])
		var val interface{} = "(missing)"
		if i+1 < len(all) {
			val = all[i+1]
		}
		fmt.Fprintf(&b, " %s=%v", s.paint(keyColor, key), val)
	}
	b.WriteByte('\n')

	s.out.mu.Lock()
	defer s.out.mu.Unlock()
	io.WriteString(s.out.w, b.String())
}

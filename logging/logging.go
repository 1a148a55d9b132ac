// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Package logging wraps a logr.Logger with the verbosity levels used throughout the module.
package logging

import "github.com/go-logr/logr"

const (
	LEVEL_INFO  = 0
	LEVEL_DEBUG = 1
	LEVEL_TRACE = 2
)

// Logger wraps logr.Logger. The zero value discards everything.
type Logger struct {
	log logr.Logger
}

// NewLogger wraps log. A logger without a sink is replaced by one that discards.
func NewLogger(log logr.Logger) *Logger {
	if log.GetSink() == nil {
		log = logr.Discard()
	}

	return &Logger{log: log}
}

// Discard returns a Logger that drops all messages.
func Discard() *Logger {
	return &Logger{log: logr.Discard()}
}

func (l *Logger) sink() logr.Logger {
	if l == nil || l.log.GetSink() == nil {
		return logr.Discard()
	}

	return l.log
}

// WithName returns a Logger with name appended to the logger's name.
func (l *Logger) WithName(name string) *Logger {
	return &Logger{log: l.sink().WithName(name)}
}

// WithValues returns a Logger that adds keysAndValues to every message.
func (l *Logger) WithValues(keysAndValues ...interface{}) *Logger {
	return &Logger{log: l.sink().WithValues(keysAndValues...)}
}

func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.sink().Info(msg, keysAndValues...)
}

func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.sink().V(LEVEL_DEBUG).Info(msg, keysAndValues...)
}

func (l *Logger) Trace(msg string, keysAndValues ...interface{}) {
	l.sink().V(LEVEL_TRACE).Info(msg, keysAndValues...)
}

func (l *Logger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.sink().Error(err, msg, keysAndValues...)
}

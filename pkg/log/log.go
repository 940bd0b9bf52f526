// Package log provides the logging interface used throughout the
// emulator, backed by logrus.
package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Fatal(str string)
}

type logger struct {
	l *logrus.Logger
}

// New returns a Logger writing to stderr at info level.
func New() Logger {
	return NewWithLevel("info", os.Stderr)
}

// NewWithLevel returns a Logger writing to w at the named level
// (panic, fatal, error, warn, info, debug, trace). Unknown level
// names fall back to info.
func NewWithLevel(level string, w io.Writer) Logger {
	l := logrus.New()
	l.SetOutput(w)
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}
	return &logger{l: l}
}

func (l *logger) Infof(format string, args ...interface{}) {
	l.l.Infof(format, args...)
}

func (l *logger) Errorf(format string, args ...interface{}) {
	l.l.Errorf(format, args...)
}

func (l *logger) Debugf(format string, args ...interface{}) {
	l.l.Debugf(format, args...)
}

func (l *logger) Fatal(str string) {
	l.l.Fatal(str)
}

// discard drops every message, it is the default for components
// constructed without a logger.
type discard struct{}

func (discard) Infof(string, ...interface{})  {}
func (discard) Errorf(string, ...interface{}) {}
func (discard) Debugf(string, ...interface{}) {}
func (discard) Fatal(string)                  {}

// NewNullLogger returns a logger that does nothing.
func NewNullLogger() Logger {
	return discard{}
}

// Package log provides the logger used throughout the emulator. It is a
// thin wrapper around logrus, so that components only depend on the
// small Logger interface.
package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the interface the emulated hardware logs through.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Fatal(str string)
}

type logger struct {
	*logrus.Logger
}

// New returns a Logger writing to stderr at the info level.
func New() Logger {
	return NewWithWriter(os.Stderr, logrus.InfoLevel)
}

// NewWithWriter returns a Logger writing plain, unquoted lines to w,
// dropping messages below level.
func NewWithWriter(w io.Writer, level logrus.Level) Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(level)
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}
	return &logger{Logger: l}
}

// ParseLevel parses a level name such as "debug" or "error".
func ParseLevel(level string) (logrus.Level, error) {
	return logrus.ParseLevel(level)
}

func (l *logger) Fatal(str string) {
	l.Logger.Fatal(str)
}

// NewNullLogger returns a Logger that discards everything, used by
// components that were not given one.
func NewNullLogger() Logger {
	return &nullLogger{}
}

type nullLogger struct{}

func (nullLogger) Infof(string, ...interface{})  {}
func (nullLogger) Errorf(string, ...interface{}) {}
func (nullLogger) Debugf(string, ...interface{}) {}
func (nullLogger) Fatal(string)                  {}

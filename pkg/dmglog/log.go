// Package dmglog wraps logrus behind a narrow interface so the rest of the
// emulator depends on a handful of methods rather than the logging package
// directly.
package dmglog

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the logging surface every subsystem is constructed with.
type Logger interface {
	Debugf(format string, args ...interface{})
	Tracef(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type logger struct {
	l *logrus.Logger
}

// Options configures the top-level logger constructed by New.
type Options struct {
	// Debug enables debug-level output (-d/--debug).
	Debug bool
	// Trace enables trace-level output (-t/--trace), implies Debug.
	Trace bool
	// Disabled discards all output (--disable-logging).
	Disabled bool
	// Output is where log lines are written; defaults to os.Stderr.
	Output io.Writer
}

// New builds a Logger from the CLI's logging flags.
func New(opts Options) Logger {
	l := logrus.New()
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}

	switch {
	case opts.Disabled:
		l.SetOutput(io.Discard)
	case opts.Output != nil:
		l.SetOutput(opts.Output)
	default:
		l.SetOutput(os.Stderr)
	}

	switch {
	case opts.Trace:
		l.SetLevel(logrus.TraceLevel)
	case opts.Debug:
		l.SetLevel(logrus.DebugLevel)
	default:
		l.SetLevel(logrus.InfoLevel)
	}

	return &logger{l: l}
}

// Null returns a Logger that discards everything, for tests and library
// callers that don't want log output.
func Null() Logger {
	return New(Options{Disabled: true})
}

func (g *logger) Debugf(format string, args ...interface{}) { g.l.Debugf(format, args...) }
func (g *logger) Tracef(format string, args ...interface{}) { g.l.Tracef(format, args...) }
func (g *logger) Infof(format string, args ...interface{})  { g.l.Infof(format, args...) }
func (g *logger) Warnf(format string, args ...interface{})  { g.l.Warnf(format, args...) }
func (g *logger) Errorf(format string, args ...interface{}) { g.l.Errorf(format, args...) }

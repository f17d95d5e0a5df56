// Package logging provides the levelled, colourised operator output used by every command.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

// Logger writes informational lines to Out and warnings and errors to Err.
// It is safe for concurrent use.
type Logger struct {
	Out   io.Writer
	Err   io.Writer
	Quiet bool
	Debug bool

	mu sync.Mutex
}

// New returns a Logger writing to stdout and stderr.
func New(quiet, debug bool) *Logger {
	return &Logger{Out: os.Stdout, Err: os.Stderr, Quiet: quiet, Debug: debug}
}

// Discard returns a Logger that drops everything.
func Discard() *Logger {
	return &Logger{Out: io.Discard, Err: io.Discard}
}

// Printf writes an unprefixed line to Out, unless quiet.
func (l *Logger) Printf(msg string, args ...any) {
	if l.Quiet {
		return
	}

	l.write(l.Out, "", msg, args...)
}

// Infof writes an informational line to Out, unless quiet.
func (l *Logger) Infof(msg string, args ...any) {
	if l.Quiet {
		return
	}

	l.write(l.Out, color.GreenString("[info] "), msg, args...)
}

// Debugf writes a debug line to Out when debugging is enabled.
func (l *Logger) Debugf(msg string, args ...any) {
	if !l.Debug {
		return
	}

	l.write(l.Out, color.CyanString("[debug] "), msg, args...)
}

// Warnf writes a warning to Err.
func (l *Logger) Warnf(msg string, args ...any) {
	l.write(l.Err, color.YellowString("[warn] "), msg, args...)
}

// Errorf writes an error to Err.
func (l *Logger) Errorf(msg string, args ...any) {
	l.write(l.Err, color.RedString("[error] "), msg, args...)
}

func (l *Logger) write(w io.Writer, prefix, msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(w, prefix+msg+"\n", args...)
}

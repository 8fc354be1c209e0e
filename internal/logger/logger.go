// Package logger provides minimal logging for the CLI.
//
// Debug output is disabled by default and enabled with the --verbose flag.
// All output goes to stderr so that command output on stdout stays clean
// for piping.
package logger

import (
	"log"
	"os"
	"sync/atomic"
)

var (
	verbose atomic.Bool

	std = log.New(os.Stderr, "", log.LstdFlags)
)

// SetVerbose enables or disables debug output.
func SetVerbose(v bool) {
	verbose.Store(v)
}

// Debugf logs a message only when verbose mode is enabled.
func Debugf(format string, args ...any) {
	if verbose.Load() {
		std.Printf("debug: "+format, args...)
	}
}

// Errorf logs an error message.
func Errorf(format string, args ...any) {
	std.Printf("error: "+format, args...)
}

// Package log is a small leveled wrapper around the standard logger.
package log

import (
	"fmt"
	"io"
	"log"
	"os"

	"go.uber.org/atomic"
)

var (
	stdLogFlags      = log.LstdFlags | log.LUTC
	stdDebugLogFlags = log.LstdFlags | log.Lshortfile | log.LUTC
	outputCallDepth  = 2

	DebugLogger = log.New(os.Stderr, "DEBUG: ", stdDebugLogFlags)
	InfoLogger  = log.New(os.Stderr, "INFO: ", stdLogFlags)
	ErrorLogger = log.New(os.Stderr, "ERROR: ", stdLogFlags)
	FatalLogger = log.New(os.Stderr, "FATAL: ", log.LstdFlags|log.Llongfile|log.LUTC)
)

var debug atomic.Bool

// SuppressOutput discards everything but fatal output while suppress is
// true. Used in tests.
func SuppressOutput(suppress bool) {
	var w io.Writer = os.Stderr
	if suppress {
		w = io.Discard
	}
	DebugLogger.SetOutput(w)
	InfoLogger.SetOutput(w)
	ErrorLogger.SetOutput(w)
}

// SetDebug turns debug output on or off.
func SetDebug(val bool) {
	debug.Store(val)
	if val {
		InfoLogger.SetFlags(stdDebugLogFlags)
		ErrorLogger.SetFlags(stdDebugLogFlags)
	} else {
		InfoLogger.SetFlags(stdLogFlags)
		ErrorLogger.SetFlags(stdLogFlags)
	}
}

func Debugf(format string, args ...interface{}) {
	if !debug.Load() {
		return
	}
	DebugLogger.Output(outputCallDepth, fmt.Sprintf(format, args...))
}

func Infof(format string, args ...interface{}) {
	InfoLogger.Output(outputCallDepth, fmt.Sprintf(format, args...))
}

func Errorf(format string, args ...interface{}) {
	ErrorLogger.Output(outputCallDepth, fmt.Sprintf(format, args...))
}

func Fatalf(format string, args ...interface{}) {
	FatalLogger.Output(outputCallDepth, fmt.Sprintf(format, args...))
	os.Exit(1)
}

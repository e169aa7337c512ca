// ABOUTME: Shared CLI/TUI run options and debug-log setup
// ABOUTME: Grounded on the teacher's common.go RunOptions/SetupDebugLog/debugf shape

package main

import (
	"io"
	"log"
	"os"
)

// RunOptions collects everything main.go parses from flags before handing
// off to RunCLI or the TUI.
type RunOptions struct {
	ProblemPath string
	ConfigPath  string
	OutPath     string
	Seed        int64
	Generations int
	Population  int
	Debug       bool
	Visual      bool
}

// SetupDebugLog opens (or discards) the debug log, matching the teacher's
// log.Logger-to-file idiom: no logging framework, just a plain file sink
// enabled by -debug.
func SetupDebugLog(enabled bool) (*log.Logger, func(), error) {
	if !enabled {
		return log.New(io.Discard, "", 0), func() {}, nil
	}
	f, err := os.OpenFile("debug.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := log.New(f, "", log.LstdFlags|log.Lmicroseconds)
	return logger, func() { f.Close() }, nil
}

func debugf(logger *log.Logger, format string, args ...any) {
	if logger == nil {
		return
	}
	logger.Printf(format, args...)
}

// Package logutil provides a process-wide diagnostic log with named
// per-package loggers. Output is discarded until explicitly directed to
// a writer or file, so interactive sessions stay quiet by default.
package logutil

import (
	"io"
	"log"
	"os"
	"sync"
)

var (
	mu      sync.Mutex
	out     io.Writer = io.Discard
	outFile *os.File
	loggers []*log.Logger
)

// GetLogger returns a logger that writes to the shared output with the
// given prefix. Packages call this to initialize a package-level logger.
func GetLogger(prefix string) *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	logger := log.New(out, prefix, log.LstdFlags)
	loggers = append(loggers, logger)
	return logger
}

// SetOutput redirects all loggers, current and future, to w.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	closeFile()
	outFile = nil
	out = w
	apply()
}

// SetOutputFile redirects all loggers to the named file, creating it if
// needed and appending if it exists. An empty name discards output.
func SetOutputFile(fname string) error {
	mu.Lock()
	defer mu.Unlock()
	closeFile()
	if fname == "" {
		outFile = nil
		out = io.Discard
	} else {
		f, err := os.OpenFile(fname, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		outFile = f
		out = f
	}
	apply()
	return nil
}

func closeFile() {
	if outFile != nil {
		outFile.Close()
	}
}

func apply() {
	for _, logger := range loggers {
		logger.SetOutput(out)
	}
}

package term

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// Reader reads events from the terminal.
type Reader interface {
	// ReadEvent reads a single event from the terminal.
	ReadEvent() (Event, error)
	// ReadRawEvent reads a single raw event from the terminal, without
	// parsing escape sequences.
	ReadRawEvent() (Event, error)
	// Close releases resources associated with the Reader. Any outstanding
	// ReadEvent or ReadRawEvent call will be aborted, returning
	// ErrStopped.
	Close()
}

// ErrStopped is returned by Reader when Close is called during a ReadEvent
// or ReadRawEvent method.
var ErrStopped = errors.New("stopped")

var errTimeout = errors.New("timed out")

type seqError struct {
	msg string
	seq string
}

func (err seqError) Error() string {
	return fmt.Sprintf("%s: %q", err.msg, err.seq)
}

// NewReader creates a new Reader on the given terminal file.
func NewReader(f *os.File) (Reader, error) {
	return newReader(f)
}

// IsReadErrorRecoverable returns whether an error returned by Reader is
// recoverable.
func IsReadErrorRecoverable(err error) bool {
	if _, ok := err.(seqError); ok {
		return true
	}
	return err == ErrStopped || err == errTimeout
}

// A byte reader with read timeouts, used by the event decoder.
type byteReaderWithTimeout interface {
	// ReadByteWithTimeout reads a single byte with a timeout. A negative
	// timeout means no timeout.
	ReadByteWithTimeout(timeout time.Duration) (byte, error)
}

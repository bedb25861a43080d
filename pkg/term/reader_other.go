//go:build !unix

package term

import (
	"errors"
	"os"
)

var errNotSupported = errors.New("terminal reading not supported on this platform")

func newReader(f *os.File) (*reader, error) {
	return nil, errNotSupported
}

type reader struct{}

func (rd *reader) ReadEvent() (Event, error)    { return nil, errNotSupported }
func (rd *reader) ReadRawEvent() (Event, error) { return nil, errNotSupported }
func (rd *reader) Close()                       {}

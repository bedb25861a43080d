//go:build !unix

package term

import "os"

func setup(in, out *os.File) (func() error, error) {
	return nil, errNotSupported
}

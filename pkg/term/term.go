// Package term provides functionality for working with terminals: reading
// and decoding input events, and writing styled screen buffers with delta
// updates.
package term

import "github.com/liushihao456/emacs-mini-modeline/pkg/logutil"

var logger = logutil.GetLogger("[term] ")

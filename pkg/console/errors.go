package console

import "errors"

// errOversizedPaste is returned by SetCutText when a client-provided
// clipboard string exceeds the 65535-byte cap.
var errOversizedPaste = errors.New("console: oversized paste rejected")

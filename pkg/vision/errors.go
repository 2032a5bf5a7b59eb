package vision

import "errors"

// ErrAnchorNotFound is returned when the anchor pattern cannot be located
// with enough confidence. Extraction aborts; nothing partial is returned.
var ErrAnchorNotFound = errors.New("anchor pattern not found")

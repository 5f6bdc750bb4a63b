package snapstore

import "errors"

// Sentinel kinds for snapshot store errors.
var (
	ErrEncodeFailed = errors.New("snapshot encode failed")
	ErrDecodeFailed = errors.New("snapshot decode failed")
	ErrStoreFailed  = errors.New("snapshot store operation failed")
)

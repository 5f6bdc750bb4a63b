package source

import "errors"

// Sentinel kinds for dataset fetch errors.
var (
	ErrFetchFailed  = errors.New("dataset fetch failed")
	ErrDecodeFailed = errors.New("dataset decode failed")
)

package service

import "errors"

// Sentinel kinds for engine errors.
var (
	ErrPlayerNotFound  = errors.New("player not found")
	ErrReloadInFlight  = errors.New("reload already in flight")
	ErrReloadFailed    = errors.New("reload failed")
	ErrNoDataSource    = errors.New("no data source configured")
	ErrInvalidSourceID = errors.New("invalid data source identifier")
)

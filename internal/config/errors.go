package config

import "errors"

// Sentinel errors surfaced by model operations. Callers match them with
// errors.Is; the wrapped message carries the offending identifier.
var (
	ErrUnknownServer      = errors.New("unknown server")
	ErrUnknownEnvironment = errors.New("unknown environment")
	ErrPresetNotFound     = errors.New("preset not found")
	ErrDanglingReference  = errors.New("dangling server reference")
)

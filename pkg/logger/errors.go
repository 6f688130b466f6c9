package logger

import "errors"

// Sentinel errors for logger configuration.
var (
	ErrInvalidLevel  = errors.New("logger: invalid level")
	ErrInvalidFormat = errors.New("logger: invalid format")
)

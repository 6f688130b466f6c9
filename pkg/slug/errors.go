package slug

import "errors"

// Sentinel errors for slug operations.
var (
	// ErrInvalidArgument is returned when the input is not textual.
	ErrInvalidArgument = errors.New("slug: invalid argument")

	// ErrUnknownMode is returned when the requested mode has no preset.
	ErrUnknownMode = errors.New("slug: unknown mode")

	// ErrInvalidTable is returned when a substitution table cannot be decoded.
	ErrInvalidTable = errors.New("slug: invalid substitution table")
)

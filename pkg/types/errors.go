package types

import "errors"

// Input-shape errors. Any of these aborts an export run.
var (
	ErrUnknownVariant = errors.New("unknown enum variant")
	ErrMissingField   = errors.New("required field missing")
)

package settings

import "errors"

var (
	ErrMissingKey      = errors.New("missing configuration key")
	ErrInvalidPattern  = errors.New("invalid uri pattern")
	ErrInvalidTemplate = errors.New("invalid element template")
	ErrNotRegistered   = errors.New("no configuration registered")
)

package entity

import (
	"errors"
)

var (
	ErrNotFound          = errors.New("entity not found")
	ErrUnknownType       = errors.New("unknown entity type")
	ErrMalformedTemplate = errors.New("malformed link template")
	ErrInvalidType       = errors.New("invalid entity type definition")
)

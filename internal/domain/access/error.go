package access

import "errors"

var (
	ErrDenied             = errors.New("access denied")
	ErrInvalidRequirement = errors.New("invalid access requirement")
)

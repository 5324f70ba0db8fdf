package account

import "errors"

var (
	ErrNotFound     = errors.New("account not found")
	ErrInvalidAuth  = errors.New("invalid credentials")
	ErrInvalidInput = errors.New("invalid input")
	ErrLoginTaken   = errors.New("login already taken")
)

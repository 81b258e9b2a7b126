package service

import "errors"

var (
	ErrMissingFields      = errors.New("required fields are missing")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

package domain

import "errors"

var (
	ErrUnauthenticated    = errors.New("authentication required")
	ErrNotCreator         = errors.New("only the product creator may delete it")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email is already registered")
)

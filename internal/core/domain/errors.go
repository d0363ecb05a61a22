package domain

import "errors"

var (
	// ErrInvalidCredentials covers both unknown username and wrong password,
	// deliberately indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("username already taken")
	ErrUserNotFound       = errors.New("user not found")

	// ErrTokenInvalid covers malformed, tampered and expired tokens uniformly.
	ErrTokenInvalid = errors.New("invalid token")

	ErrBookNotFound = errors.New("book not found")
	ErrBookExists   = errors.New("book name already taken")

	ErrInvalidInput = errors.New("invalid input")
)

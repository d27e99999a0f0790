package usecase

import (
	"context"
	"errors"
)

var (
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidCredentials covers both unknown username and wrong
	// password so a caller cannot tell which check failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserDirectory is the registry of accounts allowed to hold bearer tokens.
type UserDirectory interface {
	Register(ctx context.Context, username, password string) error
	VerifyCredentials(ctx context.Context, username, password string) error
	Exists(ctx context.Context, username string) (bool, error)
}

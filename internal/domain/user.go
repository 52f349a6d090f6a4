package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrEmailTaken    = errors.New("email already registered")
	ErrWrongPassword = errors.New("wrong password")
	ErrTokenInvalid  = errors.New("token is invalid or expired")
)

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Birthdate    time.Time
	CreatedAt    time.Time
}

// Principal is the identity resolved from a verified access token.
// It lives only for the duration of a request and is never persisted.
type Principal struct {
	Email  string
	UserID string
}

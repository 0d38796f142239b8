package auth

import (
	"errors"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateUser      = errors.New("user with same email already exists")
	ErrInvalid            = errors.New("invalid auth input")
)

// User is an authenticated operator of the system. PasswordHash is a bcrypt
// digest and never leaves the package.
type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

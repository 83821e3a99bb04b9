package auth

import "errors"

var (
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	ErrDuplicatePhone = errors.New("a user with this phone number already exists")

	ErrTokenMalformed = errors.New("session token is malformed")
	ErrTokenExpired   = errors.New("session token has expired")
	ErrTokenSignature = errors.New("session token signature is invalid")
)

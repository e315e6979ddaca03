package auth

import "errors"

// ErrMissingToken is returned when the request carries no Authorization header.
var ErrMissingToken = errors.New("authorization header missing")

// ErrMalformedHeader is returned when the header is not exactly "Bearer <token>".
var ErrMalformedHeader = errors.New("authorization header is not in bearer format")

// ErrInvalidToken is returned when a token fails signature, algorithm or claim checks.
var ErrInvalidToken = errors.New("invalid token")

// ErrMissingSubject is returned when a verified token has no user id claim.
var ErrMissingSubject = errors.New("token is missing the id claim")

// ErrGenToken is returned when we cannot sign a token.
var ErrGenToken = errors.New("failed to generate token")

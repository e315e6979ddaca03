package users

import "errors"

// ErrUserExists is returned when the email is already registered.
var ErrUserExists = errors.New("user already exists")

// ErrUserNotFound is returned by repositories when a lookup matches nothing.
var ErrUserNotFound = errors.New("user not found")

// ErrInvalidBody is returned when the registration payload cannot be decoded.
var ErrInvalidBody = errors.New("invalid request body")

// ErrDestinationMissing is returned when either destination coordinate is absent.
var ErrDestinationMissing = errors.New("destination coordinates missing")

// ErrDestinationInvalid is returned when a destination coordinate is not a finite number.
var ErrDestinationInvalid = errors.New("destination coordinates are not valid numbers")

// ErrWeekNumberMissing is returned when week_number is absent or blank.
var ErrWeekNumberMissing = errors.New("week_number missing")

// ErrWeekNumberInvalid is returned when any week_number entry is not an integer in [0,6].
var ErrWeekNumberInvalid = errors.New("week_number out of range")

// ValidationError names the first registration field that failed.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message
}

package errors

import "errors"

var (
	// ErrDuplicateUsername is returned when the username is already taken.
	ErrDuplicateUsername = errors.New("username already taken")
	// ErrDuplicateEmail is returned when the email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidCredentials is returned when username or password is incorrect.
	// Unknown username and wrong password both map here.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrMalformedSeries is returned when a time series cannot be charted.
	ErrMalformedSeries = errors.New("series contains a non-numeric close price")
)

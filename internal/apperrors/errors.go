package apperrors

import "errors"

var (
	ErrNoSubjects      = errors.New("no valid subjects")
	ErrOffline         = errors.New("planner api unreachable")
	ErrNotSignedIn     = errors.New("not signed in")
	ErrInvalidDuration = errors.New("duration must be a positive number of minutes")
	ErrInvalidInput    = errors.New("invalid input")
)

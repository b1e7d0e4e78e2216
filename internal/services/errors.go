package services

import (
	"errors"
)

var (
	// ErrPageNotFound is returned when the referenced page does not exist.
	ErrPageNotFound = errors.New("page not found")
	// ErrAlreadyViewed is returned when the one-time-view latch for a
	// (page, viewer) pair has already been consumed.
	ErrAlreadyViewed = errors.New("page already viewed")
	// ErrNoVote is returned when retracting a vote that does not exist.
	ErrNoVote = errors.New("no vote to retract")
)

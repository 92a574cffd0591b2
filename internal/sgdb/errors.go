package sgdb

import (
	"errors"
	"fmt"
)

// Sentinel errors for SteamGridDB API operations.
var (
	// ErrInvalidKey means the API rejected our credential. Fatal to the run.
	ErrInvalidKey = errors.New("sgdb: invalid API key")
	// ErrRateLimited means the server kept returning 429 after the retry.
	ErrRateLimited = errors.New("sgdb: rate limited by server")
	// ErrUnavailable means a 5xx or transport failure survived the retry.
	ErrUnavailable = errors.New("sgdb: service unavailable")
	// ErrNotFound means the requested game or platform id does not exist.
	ErrNotFound = errors.New("sgdb: not found")
)

// Error wraps an underlying error with operation context.
type Error struct {
	Op     string // Operation: "search", "assets", "game", "image"
	Target string // Search term, game id, or URL as appropriate
	Err    error
}

func (e *Error) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("sgdb %s [%s]: %v", e.Op, e.Target, e.Err)
	}
	return fmt.Sprintf("sgdb %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// wrapError creates an Error with context.
func wrapError(op, target string, err error) error {
	return &Error{Op: op, Target: target, Err: err}
}

package terminal

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("terminal: aborted")
	// ErrMissingDriver is returned when Collect has no prompt driver.
	ErrMissingDriver = errors.New("terminal: missing prompt driver")
)

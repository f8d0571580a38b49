package button

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidName reports a button name that cannot be used in a URL path.
	ErrInvalidName = errors.New("button: invalid name")
	// ErrMissingTitle reports an empty title.
	ErrMissingTitle = errors.New("button: missing title")
	// ErrMissingCallback reports a nil callback.
	ErrMissingCallback = errors.New("button: missing callback")
)

// HTTPError lets callbacks and guards choose the response status.
type HTTPError interface {
	error
	StatusCode() int
}

// StatusError is a ready-made HTTPError.
type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.StatusCode())
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// StatusCode extracts the status carried by err, or fallback.
func StatusCode(err error, fallback int) int {
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		if code := httpErr.StatusCode(); code > 0 {
			return code
		}
	}
	return fallback
}

// WriteError writes the plain status text for err, like http.Error.
func WriteError(w http.ResponseWriter, err error, fallback int) {
	code := StatusCode(err, fallback)
	http.Error(w, http.StatusText(code), code)
}

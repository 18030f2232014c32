// Package mark tags errors with a well-known sentinel so that transport code
// can pick a status without knowing the concrete error type.
package mark

import "errors"

// Sentinels understood by the HTTP and MCP boundaries. Keep this list short:
// a mark only matters when a caller handles it differently from an
// unexpected error.
var (
	ErrNotFound   = errors.New("not found")
	ErrBadRequest = errors.New("bad request")
)

// With wraps err so that errors.Is and errors.As match both err and markErr.
func With(err, markErr error) error {
	if err == nil {
		return nil
	}
	return marked{wrapped: err, mark: markErr}
}

type marked struct {
	wrapped error
	mark    error
}

func (m marked) Is(target error) bool {
	return errors.Is(m.mark, target)
}

func (m marked) As(target any) bool {
	return errors.As(m.mark, target)
}

func (m marked) Unwrap() error {
	return m.wrapped
}

func (m marked) Error() string {
	return m.mark.Error() + ": " + m.wrapped.Error()
}

package gate

import "errors"

var (
	// ErrUnauthenticated is returned for the zero subject.
	ErrUnauthenticated = errors.New("gate: no subject")
	// ErrForbidden is returned when the profile or a resource policy denies the action.
	ErrForbidden = errors.New("gate: forbidden")
)

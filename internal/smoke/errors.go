package smoke

import "errors"

// Error constants.
var (
	ErrUnhealthy        = errors.New("service is not healthy")
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrMismatch         = errors.New("response does not match expectation")
	ErrInvalidConfig    = errors.New("invalid smoke config")
)

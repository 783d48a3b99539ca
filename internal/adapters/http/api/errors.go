package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBodyTooLarge = errors.New("request body too large")
)

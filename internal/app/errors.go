package service

import "errors"

// ErrNotStarted is returned by registry calls made before Start.
var ErrNotStarted = errors.New("service not started")

package repository

import "errors"

// ErrClosed is returned by writes after Close.
var ErrClosed = errors.New("store closed")

package store

import "errors"

var (
	ErrNotFound = errors.New("record not found")
	ErrPersist  = errors.New("persist collection")
)

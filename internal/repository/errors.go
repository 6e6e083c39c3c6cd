package repository

import "errors"

var (
	// ErrNotFound means nothing is stored under the key yet.
	ErrNotFound = errors.New("not found")

	// ErrCorrupt means a stored snapshot could not be decoded.
	ErrCorrupt = errors.New("stored data is corrupt")
)

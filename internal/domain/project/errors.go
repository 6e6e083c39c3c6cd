package project

import "errors"

var (
	// ErrProjectNotFound indicates the project doesn't exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrInvalidInput indicates invalid project input.
	ErrInvalidInput = errors.New("invalid project input")
	// ErrDuplicateTag indicates the tag is already attached to the project.
	ErrDuplicateTag = errors.New("tag already exists")
	// ErrEmptyTag indicates a blank tag was supplied.
	ErrEmptyTag = errors.New("tag is empty")
	// ErrEmptyEntry indicates a blank activity log entry was supplied.
	ErrEmptyEntry = errors.New("activity entry is empty")
)

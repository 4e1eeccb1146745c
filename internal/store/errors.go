package store

import "errors"

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a uniqueness constraint,
// such as a second application for the same (job, student) pair or a
// registration reusing an email.
var ErrDuplicate = errors.New("duplicate record")

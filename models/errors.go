package models

import "errors"

// Sentinel errors for the storage layer. Callers branch with errors.Is, so
// "no matching rows" stays distinguishable from "the store itself failed".
var (
	// ErrNotFound means a lookup matched zero rows. It is a valid outcome,
	// not a storage failure.
	ErrNotFound = errors.New("record not found")
	// ErrStorageUnavailable wraps pool exhaustion, timeouts and statement
	// failures.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrParentNotFound means a comment referenced a post that does not
	// exist.
	ErrParentNotFound = errors.New("parent post not found")
)

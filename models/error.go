package models

import "errors"

// Sentinel errors shared across the storage and service layers. All of them
// are recoverable; callers surface a message and leave prior state intact.
var (
	// ErrNotFound means the requested case, entry or file id has no match
	ErrNotFound = errors.New("record not found")

	// ErrNoPendingHearing means completeHearing was called on a case with no
	// nextHearingDate set
	ErrNoPendingHearing = errors.New("case has no pending hearing")

	// ErrQuotaExceeded means the underlying store rejected a write for size
	ErrQuotaExceeded = errors.New("storage quota exceeded")

	// ErrValidation means the input was rejected before any mutation
	ErrValidation = errors.New("validation failed")

	// ErrNoCurrentUser means an operation requiring a session ran signed out
	ErrNoCurrentUser = errors.New("no user is signed in")

	// ErrInvalidBackup means the import document is not a usable backup
	ErrInvalidBackup = errors.New("invalid backup document")

	// ErrFileTooLarge means an attachment exceeded the per-file size ceiling
	ErrFileTooLarge = errors.New("file exceeds size limit")
)

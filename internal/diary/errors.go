package diary

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyEntry rejects saving an entry with no text, no mood and no
	// images. Detected before any network call.
	ErrEmptyEntry = errors.New("entry is empty")

	// ErrIndexOutOfRange is returned for an invalid attachment removal index.
	ErrIndexOutOfRange = errors.New("attachment index out of range")

	// ErrNoDateSelected is returned when an operation needs a loaded session.
	ErrNoDateSelected = errors.New("no date selected")

	// ErrNoEntry is returned when deleting a date that has no persisted entry.
	ErrNoEntry = errors.New("no entry exists for this date")

	// ErrOperationInFlight rejects a save or delete while another one is
	// still running; the core does not interleave writes.
	ErrOperationInFlight = errors.New("another save or delete is in flight")

	// ErrInvalidDate is returned for a malformed or impossible calendar date.
	ErrInvalidDate = errors.New("invalid date")
)

// UploadError reports which pending image failed during reconciliation.
// Position is 1-based among the pending items, for display to the user.
type UploadError struct {
	Position int
	Err      error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload of image %d failed: %v", e.Position, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

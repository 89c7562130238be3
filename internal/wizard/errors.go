package wizard

import "errors"

var (
	// ErrAuthRequired means no identity was available for the operation.
	ErrAuthRequired = errors.New("authentication required")

	// ErrCommitInProgress rejects a second finish call while one is in flight.
	ErrCommitInProgress = errors.New("commit already in progress")

	// ErrNotAtSummary rejects finish before the summary step.
	ErrNotAtSummary = errors.New("finish is only available on the summary step")

	// ErrUnknownSlot rejects document slots outside the required set.
	ErrUnknownSlot = errors.New("unknown document slot")

	// ErrUploadFailed wraps object store rejections during staging.
	ErrUploadFailed = errors.New("upload failed")
)

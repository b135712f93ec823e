// Package service implements the content pipeline: capability resolution,
// image acquisition coordination, record submission, listings, and the
// event log.
package service

import "errors"

// Pipeline failures. All are recoverable; none abort the process.
var (
	// ErrSubmissionInFlight is returned when a draft is re-submitted while a
	// prior submission is still in flight. The attempt is a no-op.
	ErrSubmissionInFlight = errors.New("a submission for this draft is already in progress")

	// ErrUploadRequired is returned when a required image field has no
	// resolved URL. No insert is issued.
	ErrUploadRequired = errors.New("please upload an image before submitting")

	// ErrNotAuthenticated is returned when the acting identity cannot be
	// resolved. Usually indicates a stale session. No insert is issued.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNotFound is returned when a record to delete does not exist.
	ErrNotFound = errors.New("record not found")
)

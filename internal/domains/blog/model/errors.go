package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeValidation         = "BLG001"
	ErrCodeSubmissionNotFound = "BLG002"
	ErrCodePostNotFound       = "BLG003"
	ErrCodeDuplicateRequestID = "BLG004"
	ErrCodeStorage            = "BLG005"
)

// Errors
var (
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrPostNotFound       = errors.New("published post not found")

	// ErrDuplicateRequestID signals a concurrent insert collided on the
	// idempotency key. Recovered inside the admission pipeline by
	// re-reading the winner's record; never surfaced to clients.
	ErrDuplicateRequestID = errors.New("duplicate request id")

	// ErrAlreadyPublished signals a concurrent approve already created
	// the published record for this submission.
	ErrAlreadyPublished = errors.New("submission already published")
)

// BlogError custom error type
type BlogError struct {
	Code    string
	Message string
	Err     error
}

func (e *BlogError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BlogError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewValidationError(err error) *BlogError {
	return &BlogError{
		Code:    ErrCodeValidation,
		Message: "Missing or invalid required fields",
		Err:     err,
	}
}

func NewSubmissionNotFoundError() *BlogError {
	return &BlogError{
		Code:    ErrCodeSubmissionNotFound,
		Message: "Submission not found or already resolved",
		Err:     ErrSubmissionNotFound,
	}
}

func NewPostNotFoundError() *BlogError {
	return &BlogError{
		Code:    ErrCodePostNotFound,
		Message: "Blog not found",
		Err:     ErrPostNotFound,
	}
}

func NewStorageError(err error) *BlogError {
	return &BlogError{
		Code:    ErrCodeStorage,
		Message: "Storage unavailable",
		Err:     err,
	}
}

package entity

import "errors"

// Workflow error taxonomy. Services return these (possibly wrapped) so
// controllers can map them to user-facing responses without string matching.
var (
	ErrDuplicateRequest   = errors.New("an active request already exists for this role")
	ErrRequestNotFound    = errors.New("request not found")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrAlreadyProcessed   = errors.New("request already processed")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrPrerequisitesUnmet = errors.New("prerequisites not met")
)

// DocumentUploadError names the failing document type so the user-facing
// message can point at the exact file that aborted the submission.
type DocumentUploadError struct {
	DocumentType string
	Err          error
}

func (e *DocumentUploadError) Error() string {
	return "failed to store document '" + e.DocumentType + "': " + e.Err.Error()
}

func (e *DocumentUploadError) Unwrap() error {
	return e.Err
}

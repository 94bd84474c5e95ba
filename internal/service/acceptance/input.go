package acceptance

import (
	"github.com/google/uuid"

	"github.com/heartmarshall/askdev-backend/internal/domain"
)

// AcceptInput holds the parameters for accepting an answer.
type AcceptInput struct {
	RequesterID uuid.UUID
	QuestionID  uuid.UUID
	AnswerID    uuid.UUID
	// ExpectedVersion is the question version the caller last saw. When set
	// and stale, Accept fails with a ConflictError instead of retrying.
	// Votes on the question bump the same version, so a vote landing after
	// the caller's read also makes it stale. Status returns the current one.
	ExpectedVersion *int64
}

// Validate checks all fields and collects all errors.
func (i AcceptInput) Validate() error {
	var errs []domain.FieldError

	if i.RequesterID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "requester_id", Message: "required"})
	}
	if i.QuestionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "question_id", Message: "required"})
	}
	if i.AnswerID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "answer_id", Message: "required"})
	}
	if i.ExpectedVersion != nil && *i.ExpectedVersion < 0 {
		errs = append(errs, domain.FieldError{Field: "expected_version", Message: "must be >= 0"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UnacceptInput holds the parameters for clearing the accepted answer.
type UnacceptInput struct {
	RequesterID uuid.UUID
	QuestionID  uuid.UUID
	// ExpectedVersion behaves as in AcceptInput, votes included.
	ExpectedVersion *int64
}

// Validate checks all fields and collects all errors.
func (i UnacceptInput) Validate() error {
	var errs []domain.FieldError

	if i.RequesterID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "requester_id", Message: "required"})
	}
	if i.QuestionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "question_id", Message: "required"})
	}
	if i.ExpectedVersion != nil && *i.ExpectedVersion < 0 {
		errs = append(errs, domain.FieldError{Field: "expected_version", Message: "must be >= 0"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Result is the acceptance state after a call. Changed is false for an
// idempotent no-op, in which case EventID is uuid.Nil.
type Result struct {
	QuestionID       uuid.UUID
	AcceptedAnswerID *uuid.UUID
	PreviousAnswerID *uuid.UUID
	Version          int64
	Changed          bool
	EventID          uuid.UUID
}

package content

import (
	"github.com/google/uuid"

	"github.com/heartmarshall/askdev-backend/internal/domain"
)

// RegisterQuestionInput holds the parameters for registering a question.
// QuestionID may be set to reuse the content store's id.
type RegisterQuestionInput struct {
	QuestionID uuid.UUID
	AuthorID   uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i RegisterQuestionInput) Validate() error {
	if i.AuthorID == uuid.Nil {
		return domain.NewValidationError("author_id", "required")
	}
	return nil
}

// PostAnswerInput holds the parameters for registering an answer.
type PostAnswerInput struct {
	AnswerID   uuid.UUID
	QuestionID uuid.UUID
	AuthorID   uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i PostAnswerInput) Validate() error {
	var errs []domain.FieldError

	if i.QuestionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "question_id", Message: "required"})
	}
	if i.AuthorID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "author_id", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

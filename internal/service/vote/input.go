package vote

import (
	"github.com/google/uuid"

	"github.com/heartmarshall/askdev-backend/internal/domain"
)

// CastVoteInput holds the parameters for casting a vote.
type CastVoteInput struct {
	VoterID   uuid.UUID
	Target    domain.TargetRef
	Direction domain.VoteDirection
}

// Validate checks all fields and collects all errors.
func (i CastVoteInput) Validate() error {
	var errs []domain.FieldError

	if i.VoterID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "voter_id", Message: "required"})
	}
	if !i.Target.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "target_type", Message: "must be QUESTION or ANSWER"})
	}
	if i.Target.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "target_id", Message: "required"})
	}
	if !i.Direction.IsValid() {
		errs = append(errs, domain.FieldError{Field: "direction", Message: "must be UP or DOWN"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// VoteResult is the outcome of a committed cast.
type VoteResult struct {
	Target  domain.TargetRef
	Tally   int64
	Delta   int64
	Outcome domain.VoteOutcome
	EventID uuid.UUID
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// VoteRecord is one voter's current vote on one target.
type VoteRecord struct {
	VoterID   uuid.UUID
	Target    TargetRef
	Direction VoteDirection
	CastAt    time.Time
}

// VoteWrite is a compare-and-swap on a target's tally together with the
// matching change to the voter's record.
//
// Outcome selects the record change: CAST inserts, CHANGED replaces the
// direction, RETRACTED deletes. Direction is the record's direction after a
// CAST or CHANGED and the removed direction for RETRACTED.
type VoteWrite struct {
	VoterID         uuid.UUID
	Target          TargetRef
	Outcome         VoteOutcome
	Direction       VoteDirection
	TallyDelta      int64
	ExpectedVersion int64
	At              time.Time
}

// PlanVote decides what casting dir does given the voter's existing record
// (nil when none). Same direction retracts, opposite direction flips.
func PlanVote(existing *VoteRecord, dir VoteDirection) (VoteOutcome, int64) {
	switch {
	case existing == nil:
		return VoteOutcomeCast, dir.Weight()
	case existing.Direction == dir:
		return VoteOutcomeRetracted, -dir.Weight()
	default:
		return VoteOutcomeChanged, 2 * dir.Weight()
	}
}

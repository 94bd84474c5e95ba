package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the slice of an identity-provider account that this service owns:
// its reputation. Profile data lives with the identity provider.
type User struct {
	ID         uuid.UUID
	Reputation int64
	CreatedAt  time.Time
}

// ReputationBadge is the tier a user's reputation places them in.
type ReputationBadge string

const (
	BadgeNewcomer ReputationBadge = "NEWCOMER"
	BadgeHelper   ReputationBadge = "HELPER"
	BadgeExpert   ReputationBadge = "EXPERT"
	BadgeLegend   ReputationBadge = "LEGEND"
)

func (b ReputationBadge) String() string { return string(b) }

// Standing summarizes a user's reputation for display.
type Standing struct {
	UserID            uuid.UUID
	Reputation        int64
	Level             int64
	PointsIntoLevel   int64
	PointsToNextLevel int64
	Badge             ReputationBadge
}

// PointsPerLevel is the reputation needed to advance one level.
const PointsPerLevel = 100

// NewStanding derives level and badge from a (clamped) reputation value.
func NewStanding(userID uuid.UUID, reputation int64) Standing {
	rep := max(reputation, 0)
	level := rep/PointsPerLevel + 1
	into := rep % PointsPerLevel

	return Standing{
		UserID:            userID,
		Reputation:        reputation,
		Level:             level,
		PointsIntoLevel:   into,
		PointsToNextLevel: PointsPerLevel - into,
		Badge:             badgeFor(rep),
	}
}

func badgeFor(rep int64) ReputationBadge {
	switch {
	case rep >= 1000:
		return BadgeLegend
	case rep >= 500:
		return BadgeExpert
	case rep >= 100:
		return BadgeHelper
	default:
		return BadgeNewcomer
	}
}

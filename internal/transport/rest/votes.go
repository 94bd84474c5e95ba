package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/askdev-backend/internal/domain"
	"github.com/heartmarshall/askdev-backend/internal/service/vote"
)

type voteService interface {
	CastVote(ctx context.Context, input vote.CastVoteInput) (*vote.VoteResult, error)
}

// VoteHandler serves the vote endpoint.
type VoteHandler struct {
	svc voteService
	log *slog.Logger
}

// NewVoteHandler creates a VoteHandler.
func NewVoteHandler(svc voteService, logger *slog.Logger) *VoteHandler {
	return &VoteHandler{svc: svc, log: logger.With("handler", "vote")}
}

type castVoteRequest struct {
	TargetType string    `json:"targetType"`
	TargetID   uuid.UUID `json:"targetId"`
	Direction  string    `json:"direction"`
}

type castVoteResponse struct {
	TargetType string `json:"targetType"`
	TargetID   string `json:"targetId"`
	Tally      int64  `json:"tally"`
	Outcome    string `json:"outcome"`
}

// Cast handles POST /v1/votes. Casting the same direction twice retracts.
func (h *VoteHandler) Cast(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req castVoteRequest
	if !decodeBody(w, r, &req, false) {
		return
	}

	result, err := h.svc.CastVote(r.Context(), vote.CastVoteInput{
		VoterID:   userID,
		Target:    domain.TargetRef{Type: domain.TargetType(req.TargetType), ID: req.TargetID},
		Direction: domain.VoteDirection(req.Direction),
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, castVoteResponse{
		TargetType: result.Target.Type.String(),
		TargetID:   result.Target.ID.String(),
		Tally:      result.Tally,
		Outcome:    result.Outcome.String(),
	})
}

package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/askdev-backend/internal/domain"
	"github.com/heartmarshall/askdev-backend/internal/service/acceptance"
)

type acceptanceService interface {
	Accept(ctx context.Context, input acceptance.AcceptInput) (*acceptance.Result, error)
	Unaccept(ctx context.Context, input acceptance.UnacceptInput) (*acceptance.Result, error)
	Status(ctx context.Context, questionID uuid.UUID) (*domain.AcceptanceState, error)
}

// AcceptanceHandler serves the accepted-answer endpoints.
type AcceptanceHandler struct {
	svc acceptanceService
	log *slog.Logger
}

// NewAcceptanceHandler creates an AcceptanceHandler.
func NewAcceptanceHandler(svc acceptanceService, logger *slog.Logger) *AcceptanceHandler {
	return &AcceptanceHandler{svc: svc, log: logger.With("handler", "acceptance")}
}

type acceptRequest struct {
	AnswerID        uuid.UUID `json:"answerId"`
	ExpectedVersion *int64    `json:"expectedVersion,omitempty"`
}

type unacceptRequest struct {
	ExpectedVersion *int64 `json:"expectedVersion,omitempty"`
}

type acceptanceResponse struct {
	QuestionID       string  `json:"questionId"`
	AcceptedAnswerID *string `json:"acceptedAnswerId"`
	Version          int64   `json:"version"`
	Changed          *bool   `json:"changed,omitempty"`
}

// Accept handles POST /v1/questions/{id}/accept.
func (h *AcceptanceHandler) Accept(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	questionID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req acceptRequest
	if !decodeBody(w, r, &req, false) {
		return
	}

	result, err := h.svc.Accept(r.Context(), acceptance.AcceptInput{
		RequesterID:     userID,
		QuestionID:      questionID,
		AnswerID:        req.AnswerID,
		ExpectedVersion: req.ExpectedVersion,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toAcceptanceResponse(result))
}

// Unaccept handles DELETE /v1/questions/{id}/accept.
func (h *AcceptanceHandler) Unaccept(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	questionID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req unacceptRequest
	if !decodeBody(w, r, &req, true) {
		return
	}

	result, err := h.svc.Unaccept(r.Context(), acceptance.UnacceptInput{
		RequesterID:     userID,
		QuestionID:      questionID,
		ExpectedVersion: req.ExpectedVersion,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toAcceptanceResponse(result))
}

// Status handles GET /v1/questions/{id}/acceptance.
func (h *AcceptanceHandler) Status(w http.ResponseWriter, r *http.Request) {
	questionID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	state, err := h.svc.Status(r.Context(), questionID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, acceptanceResponse{
		QuestionID:       state.QuestionID.String(),
		AcceptedAnswerID: idString(state.AcceptedAnswerID),
		Version:          state.Version,
	})
}

func toAcceptanceResponse(r *acceptance.Result) acceptanceResponse {
	changed := r.Changed
	return acceptanceResponse{
		QuestionID:       r.QuestionID.String(),
		AcceptedAnswerID: idString(r.AcceptedAnswerID),
		Version:          r.Version,
		Changed:          &changed,
	}
}

func idString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

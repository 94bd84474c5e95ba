package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/askdev-backend/internal/domain"
	"github.com/heartmarshall/askdev-backend/internal/service/content"
)

type contentService interface {
	RegisterQuestion(ctx context.Context, input content.RegisterQuestionInput) (*domain.Question, error)
	PostAnswer(ctx context.Context, input content.PostAnswerInput) (*domain.Answer, error)
}

// ContentHandler serves content intake: questions and answers registered
// from the content store.
type ContentHandler struct {
	svc contentService
	log *slog.Logger
}

// NewContentHandler creates a ContentHandler.
func NewContentHandler(svc contentService, logger *slog.Logger) *ContentHandler {
	return &ContentHandler{svc: svc, log: logger.With("handler", "content")}
}

type registerRequest struct {
	ID uuid.UUID `json:"id"`
}

type questionResponse struct {
	ID               string    `json:"id"`
	AuthorID         string    `json:"authorId"`
	AcceptedAnswerID *string   `json:"acceptedAnswerId"`
	VoteTally        int64     `json:"voteTally"`
	Version          int64     `json:"version"`
	CreatedAt        time.Time `json:"createdAt"`
}

type answerResponse struct {
	ID         string    `json:"id"`
	QuestionID string    `json:"questionId"`
	AuthorID   string    `json:"authorId"`
	IsAccepted bool      `json:"isAccepted"`
	VoteTally  int64     `json:"voteTally"`
	Version    int64     `json:"version"`
	CreatedAt  time.Time `json:"createdAt"`
}

// RegisterQuestion handles POST /v1/questions. The requester becomes the
// author; the body may carry the content store's id.
func (h *ContentHandler) RegisterQuestion(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req registerRequest
	if !decodeBody(w, r, &req, true) {
		return
	}

	q, err := h.svc.RegisterQuestion(r.Context(), content.RegisterQuestionInput{
		QuestionID: req.ID,
		AuthorID:   userID,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, questionResponse{
		ID:               q.ID.String(),
		AuthorID:         q.AuthorID.String(),
		AcceptedAnswerID: idString(q.AcceptedAnswerID),
		VoteTally:        q.VoteTally,
		Version:          q.Version,
		CreatedAt:        q.CreatedAt,
	})
}

// PostAnswer handles POST /v1/questions/{id}/answers.
func (h *ContentHandler) PostAnswer(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	questionID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req registerRequest
	if !decodeBody(w, r, &req, true) {
		return
	}

	a, err := h.svc.PostAnswer(r.Context(), content.PostAnswerInput{
		AnswerID:   req.ID,
		QuestionID: questionID,
		AuthorID:   userID,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, answerResponse{
		ID:         a.ID.String(),
		QuestionID: a.QuestionID.String(),
		AuthorID:   a.AuthorID.String(),
		IsAccepted: a.IsAccepted,
		VoteTally:  a.VoteTally,
		Version:    a.Version,
		CreatedAt:  a.CreatedAt,
	})
}

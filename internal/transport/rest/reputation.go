package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/askdev-backend/internal/domain"
)

type reputationService interface {
	Standing(ctx context.Context, userID uuid.UUID) (*domain.Standing, error)
}

// ReputationHandler serves user reputation.
type ReputationHandler struct {
	svc reputationService
	log *slog.Logger
}

// NewReputationHandler creates a ReputationHandler.
func NewReputationHandler(svc reputationService, logger *slog.Logger) *ReputationHandler {
	return &ReputationHandler{svc: svc, log: logger.With("handler", "reputation")}
}

type standingResponse struct {
	UserID            string `json:"userId"`
	Reputation        int64  `json:"reputation"`
	Level             int64  `json:"level"`
	PointsIntoLevel   int64  `json:"pointsIntoLevel"`
	PointsToNextLevel int64  `json:"pointsToNextLevel"`
	Badge             string `json:"badge"`
}

// Get handles GET /v1/users/{id}/reputation.
func (h *ReputationHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	st, err := h.svc.Standing(r.Context(), userID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, standingResponse{
		UserID:            st.UserID.String(),
		Reputation:        st.Reputation,
		Level:             st.Level,
		PointsIntoLevel:   st.PointsIntoLevel,
		PointsToNextLevel: st.PointsToNextLevel,
		Badge:             st.Badge.String(),
	})
}

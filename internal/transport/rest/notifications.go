package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/askdev-backend/internal/domain"
	"github.com/heartmarshall/askdev-backend/internal/service/notification"
)

type notificationService interface {
	List(ctx context.Context, input notification.ListInput) (*notification.ListResult, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int, error)
}

// NotificationHandler serves the requester's inbox.
type NotificationHandler struct {
	svc notificationService
	log *slog.Logger
}

// NewNotificationHandler creates a NotificationHandler.
func NewNotificationHandler(svc notificationService, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{svc: svc, log: logger.With("handler", "notification")}
}

type notificationResponse struct {
	ID            string          `json:"id"`
	Kind          string          `json:"kind"`
	Message       string          `json:"message"`
	Payload       json.RawMessage `json:"payload"`
	Read          bool            `json:"read"`
	SourceEventID string          `json:"sourceEventId"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type notificationListResponse struct {
	Items []notificationResponse `json:"items"`
	Total int                    `json:"total"`
}

// List handles GET /v1/notifications?unread=&kind=&limit=&offset=.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	input, err := listInput(r, userID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	result, err := h.svc.List(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := notificationListResponse{
		Items: make([]notificationResponse, 0, len(result.Notifications)),
		Total: result.Total,
	}
	for _, n := range result.Notifications {
		payload, err := domain.MarshalNotificationPayload(n.Payload)
		if err != nil {
			handleError(w, r, h.log, err)
			return
		}
		resp.Items = append(resp.Items, notificationResponse{
			ID:            n.ID.String(),
			Kind:          string(n.Kind),
			Message:       n.Message(),
			Payload:       payload,
			Read:          n.Read,
			SourceEventID: n.SourceEventID.String(),
			CreatedAt:     n.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// MarkRead handles POST /v1/notifications/{id}/read.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	notificationID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.MarkRead(r.Context(), userID, notificationID); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// MarkAllRead handles POST /v1/notifications/read-all.
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	n, err := h.svc.MarkAllRead(r.Context(), userID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"marked": n})
}

// UnreadCount handles GET /v1/notifications/unread-count.
func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	n, err := h.svc.UnreadCount(r.Context(), userID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"unread": n})
}

func listInput(r *http.Request, userID uuid.UUID) (notification.ListInput, error) {
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		return notification.ListInput{}, err
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		return notification.ListInput{}, err
	}

	q := r.URL.Query()
	input := notification.ListInput{
		UserID:     userID,
		UnreadOnly: q.Get("unread") == "true" || q.Get("unread") == "1",
		Limit:      limit,
		Offset:     offset,
	}
	for _, k := range q["kind"] {
		input.Kinds = append(input.Kinds, domain.NotificationKind(k))
	}
	return input, nil
}

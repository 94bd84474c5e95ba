// Package ctxutil carries per-request values through a context: the
// authenticated requester and the request id.
package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type (
	requesterKey struct{}
	requestIDKey struct{}
)

// WithRequester stores the authenticated requester's user id.
func WithRequester(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, requesterKey{}, id)
}

// RequesterFromCtx returns the requester's user id. ok is false for
// anonymous requests and for a stored uuid.Nil.
func RequesterFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(requesterKey{}).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// WithRequestID stores the request id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromCtx returns the request id, or "" if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

package rest

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/heartmarshall/askdev-backend/internal/domain"
	"github.com/heartmarshall/askdev-backend/pkg/ctxutil"
)

const maxBodyBytes = 1 << 16

// errorBody is the envelope of every non-2xx response.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Kind    domain.ErrorKind    `json:"kind"`
	Message string              `json:"message"`
	Fields  []domain.FieldError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, kind domain.ErrorKind, message string) {
	writeJSON(w, status, errorBody{Error: errorDetail{Kind: kind, Message: message}})
}

// statusFor maps an error kind to its HTTP status.
func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindUnauthenticated:
		return http.StatusUnauthorized
	case domain.KindAuthorization:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindTransient:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// handleError writes the envelope for a service error. Internal and
// transient errors are logged and their details withheld.
func handleError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	kind := domain.KindOf(err)
	status := statusFor(kind)
	detail := errorDetail{Kind: kind, Message: err.Error()}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		detail.Fields = verr.Errors
	}

	switch kind {
	case domain.KindTransient:
		log.WarnContext(r.Context(), "store unavailable", slog.String("error", err.Error()))
		detail.Message = "service temporarily unavailable, retry later"
		w.Header().Set("Retry-After", "1")
	case domain.KindInternal:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		detail.Message = "internal server error"
	}

	writeJSON(w, status, errorBody{Error: detail})
}

// requireUser returns the authenticated requester or writes a 401.
func requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := ctxutil.RequesterFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, domain.KindUnauthenticated, "authentication required")
		return uuid.Nil, false
	}
	return userID, true
}

// pathID parses the {name} path segment as a uuid or writes a 400.
func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		writeError(w, http.StatusBadRequest, domain.KindValidation, name+": must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

// decodeBody decodes a JSON request body into dst. An empty body is allowed
// when optional is true.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any, optional bool) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return true
		}
		writeError(w, http.StatusBadRequest, domain.KindValidation, "invalid request body")
		return false
	}
	return true
}

// queryInt reads a non-negative integer query parameter, def when absent.
func queryInt(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, domain.NewValidationError(name, "must be an integer")
	}
	return n, nil
}

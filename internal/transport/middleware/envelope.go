package middleware

import (
	"net/http"
	"strconv"
)

// writeEnvelope writes the error envelope used by the REST handlers.
func writeEnvelope(w http.ResponseWriter, status int, kind, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":{"kind":` + strconv.Quote(kind) + `,"message":` + strconv.Quote(message) + "}}\n"))
}

// Package api contains the HTTP handlers for the gateway's local routes. Each
// handler validates caller parameters, delegates to the provider client, and
// relays or reshapes the response.
package api

import (
	"log/slog"
	"net/http"
	"strings"

	"aurahub-gateway/internal/streamtape"
)

// Handler serves the local route set. Tape is the provider client; it is the
// only downstream dependency.
type Handler struct {
	Tape   *streamtape.Client
	Logger *slog.Logger
}

// NewHandler constructs a Handler around the provider client.
func NewHandler(tape *streamtape.Client, logger *slog.Logger) *Handler {
	return &Handler{Tape: tape, Logger: logger}
}

// Root confirms the gateway is running.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeErrorMessage(w, http.StatusNotFound, "not found")
		return
	}
	if r.Method != http.MethodGet {
		writeErrorMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "AuraHub API gateway is running",
	})
}

// Health reports liveness. The gateway holds no local state, so being able to
// answer is the whole check; provider reachability is not probed here.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErrorMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// pathParam extracts the single trailing path parameter after prefix.
// An empty remainder or one containing further segments yields "".
func pathParam(r *http.Request, prefix string) string {
	rest := strings.TrimPrefix(r.URL.Path, prefix)
	if rest == r.URL.Path || rest == "" || strings.Contains(rest, "/") {
		return ""
	}
	return strings.TrimSpace(rest)
}

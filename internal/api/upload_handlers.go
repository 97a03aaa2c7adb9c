package api

import (
	"net/http"
	"strconv"
	"strings"

	"aurahub-gateway/internal/streamtape"
)

// GetUploadURL handles GET /get_upload_url: retrieves a unique upload URL
// from the provider. Files shall be POSTed to the returned URL directly.
func (h *Handler) GetUploadURL(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErrorMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	query := r.URL.Query()
	opts := streamtape.UploadURLOptions{
		Folder: strings.TrimSpace(query.Get("folder")),
		SHA256: strings.TrimSpace(query.Get("sha256")),
	}
	if raw := strings.TrimSpace(query.Get("httponly")); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			writeErrorMessage(w, http.StatusBadRequest, "httponly must be a boolean")
			return
		}
		opts.HTTPOnly = &value
	}

	target, err := h.Tape.UploadURL(r.Context(), opts)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, target)
}

package api

import "net/http"

// RunningConverts handles GET /converts/running: conversions currently in
// progress, relayed as the provider's list.
func (h *Handler) RunningConverts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErrorMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	converts, err := h.Tape.RunningConverts(r.Context())
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, converts)
}

// FailedConverts handles GET /converts/failed.
func (h *Handler) FailedConverts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErrorMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	converts, err := h.Tape.FailedConverts(r.Context())
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, converts)
}

// Thumbnail handles GET /thumbnail/{id}: the direct URL of a video file's
// thumbnail image.
func (h *Handler) Thumbnail(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "/thumbnail/")
	if id == "" {
		writeErrorMessage(w, http.StatusNotFound, "file id missing")
		return
	}
	if r.Method != http.MethodGet {
		writeErrorMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	url, err := h.Tape.Thumbnail(r.Context(), id)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"thumbnail_url": url})
}

package api

import (
	"net/http"
	"strings"

	"aurahub-gateway/internal/streamtape"
)

// AddRemoteUpload handles POST /remote_upload/add: queues a provider-managed
// fetch of a caller-given URL. The provider owns the task lifecycle.
func (h *Handler) AddRemoteUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErrorMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	query := r.URL.Query()
	req := streamtape.RemoteUploadRequest{
		URL:     strings.TrimSpace(query.Get("url")),
		Folder:  strings.TrimSpace(query.Get("folder")),
		Headers: query.Get("headers"),
		Name:    strings.TrimSpace(query.Get("name")),
	}
	if req.URL == "" {
		writeErrorMessage(w, http.StatusBadRequest, "url is required")
		return
	}

	task, err := h.Tape.AddRemoteUpload(r.Context(), req)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// RemoveRemoteUpload handles DELETE /remote_upload/remove/{id}. The sentinel
// id "all" removes every task and passes through unchanged.
func (h *Handler) RemoveRemoteUpload(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "/remote_upload/remove/")
	if id == "" {
		writeErrorMessage(w, http.StatusNotFound, "remote upload id missing")
		return
	}
	if r.Method != http.MethodDelete {
		writeErrorMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ok, err := h.Tape.RemoveRemoteUpload(r.Context(), id)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"result": ok})
}

// RemoteUploadStatus handles GET /remote_upload/status/{id}.
func (h *Handler) RemoteUploadStatus(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "/remote_upload/status/")
	if id == "" {
		writeErrorMessage(w, http.StatusNotFound, "remote upload id missing")
		return
	}
	if r.Method != http.MethodGet {
		writeErrorMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	status, err := h.Tape.RemoteUploadStatus(r.Context(), id)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

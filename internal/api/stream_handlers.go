package api

import (
	"net/http"
	"strings"
)

// maxFileInfoIDs is the provider's documented cap for a single info call.
const maxFileInfoIDs = 100

// DownloadTicket handles GET /stream/ticket/{id}: prepares a download ticket
// the caller passes back to /stream/link. The provider enforces wait time and
// expiry; the gateway tracks nothing.
func (h *Handler) DownloadTicket(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "/stream/ticket/")
	if id == "" {
		writeErrorMessage(w, http.StatusNotFound, "file id missing")
		return
	}
	if r.Method != http.MethodGet {
		writeErrorMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ticket, err := h.Tape.GetDownloadTicket(r.Context(), id)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ticket)
}

// DownloadLink handles GET /stream/link/{id}: exchanges a valid ticket for
// the final direct download link. Account credentials are never attached to
// this outbound call.
func (h *Handler) DownloadLink(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "/stream/link/")
	if id == "" {
		writeErrorMessage(w, http.StatusNotFound, "file id missing")
		return
	}
	if r.Method != http.MethodGet {
		writeErrorMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	query := r.URL.Query()
	ticket := strings.TrimSpace(query.Get("ticket"))
	if ticket == "" {
		writeErrorMessage(w, http.StatusBadRequest, "ticket is required")
		return
	}

	link, err := h.Tape.GetDownloadLink(r.Context(), id, ticket, strings.TrimSpace(query.Get("captcha_response")))
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, link)
}

// FileInfo handles GET /file_info/{ids}. The comma-joined id list is relayed
// to the provider exactly as supplied; only the count is checked locally.
func (h *Handler) FileInfo(w http.ResponseWriter, r *http.Request) {
	ids := pathParam(r, "/file_info/")
	if ids == "" {
		writeErrorMessage(w, http.StatusNotFound, "file ids missing")
		return
	}
	if r.Method != http.MethodGet {
		writeErrorMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if strings.Count(ids, ",")+1 > maxFileInfoIDs {
		writeErrorMessage(w, http.StatusBadRequest, "at most 100 file ids per request")
		return
	}

	info, err := h.Tape.FileInfo(r.Context(), ids)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

package api

import (
	"net/http"
	"strings"
)

// ListContents handles GET /file_manager/list_contents. folder_id is
// mandatory; the superseded optional-root behavior is intentionally gone.
func (h *Handler) ListContents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErrorMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	folderID := strings.TrimSpace(r.URL.Query().Get("folder_id"))
	if folderID == "" {
		writeErrorMessage(w, http.StatusBadRequest, "folder_id is required")
		return
	}

	contents, err := h.Tape.ListFolder(r.Context(), folderID)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contents)
}

// CreateFolder handles POST /file_manager/create_folder. The local
// parent_folder_id parameter maps to the provider's pid.
func (h *Handler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErrorMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	query := r.URL.Query()
	name := strings.TrimSpace(query.Get("name"))
	if name == "" {
		writeErrorMessage(w, http.StatusBadRequest, "name is required")
		return
	}

	folder, err := h.Tape.CreateFolder(r.Context(), name, strings.TrimSpace(query.Get("parent_folder_id")))
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, folder)
}

// RenameFolder handles PUT /file_manager/rename_folder/{id}. The path id maps
// to the provider's folder parameter and new_name to name.
func (h *Handler) RenameFolder(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "/file_manager/rename_folder/")
	if id == "" {
		writeErrorMessage(w, http.StatusNotFound, "folder id missing")
		return
	}
	if r.Method != http.MethodPut {
		writeErrorMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	newName := strings.TrimSpace(r.URL.Query().Get("new_name"))
	if newName == "" {
		writeErrorMessage(w, http.StatusBadRequest, "new_name is required")
		return
	}

	ok, err := h.Tape.RenameFolder(r.Context(), id, newName)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"result": ok})
}

// DeleteFolder handles DELETE /file_manager/delete_folder/{id}. Repeating the
// call for an already-deleted folder surfaces whatever the provider returns;
// no local idempotence guard applies.
func (h *Handler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "/file_manager/delete_folder/")
	if id == "" {
		writeErrorMessage(w, http.StatusNotFound, "folder id missing")
		return
	}
	if r.Method != http.MethodDelete {
		writeErrorMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ok, err := h.Tape.DeleteFolder(r.Context(), id)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"result": ok})
}

// RenameFile handles PUT /file_manager/rename_file/{id}.
func (h *Handler) RenameFile(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "/file_manager/rename_file/")
	if id == "" {
		writeErrorMessage(w, http.StatusNotFound, "file id missing")
		return
	}
	if r.Method != http.MethodPut {
		writeErrorMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	newName := strings.TrimSpace(r.URL.Query().Get("new_name"))
	if newName == "" {
		writeErrorMessage(w, http.StatusBadRequest, "new_name is required")
		return
	}

	ok, err := h.Tape.RenameFile(r.Context(), id, newName)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"result": ok})
}

// MoveFile handles PUT /file_manager/move_file/{id}. destination_folder_id
// maps to the provider's folder parameter.
func (h *Handler) MoveFile(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "/file_manager/move_file/")
	if id == "" {
		writeErrorMessage(w, http.StatusNotFound, "file id missing")
		return
	}
	if r.Method != http.MethodPut {
		writeErrorMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	destination := strings.TrimSpace(r.URL.Query().Get("destination_folder_id"))
	if destination == "" {
		writeErrorMessage(w, http.StatusBadRequest, "destination_folder_id is required")
		return
	}

	ok, err := h.Tape.MoveFile(r.Context(), id, destination)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"result": ok})
}

// DeleteFile handles DELETE /file_manager/delete_file/{id}.
func (h *Handler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "/file_manager/delete_file/")
	if id == "" {
		writeErrorMessage(w, http.StatusNotFound, "file id missing")
		return
	}
	if r.Method != http.MethodDelete {
		writeErrorMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ok, err := h.Tape.DeleteFile(r.Context(), id)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"result": ok})
}

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"aurahub-gateway/internal/streamtape"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeErrorMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// WriteError is an exported helper for returning JSON API errors.
func WriteError(w http.ResponseWriter, status int, err error) {
	writeError(w, status, err)
}

// writeUpstreamError maps a provider-client error onto the local response.
// Remote business failures keep the provider's own status code; result-shape
// mismatches are internal inconsistencies (500); anything else is a transport
// failure on the outbound leg (502). Nothing is silently recovered.
func writeUpstreamError(w http.ResponseWriter, err error) {
	var remote *streamtape.Error
	if errors.As(err, &remote) {
		status := remote.Status
		if status < 100 || status > 599 {
			status = http.StatusInternalServerError
		}
		writeErrorMessage(w, status, remote.Message)
		return
	}
	var shape *streamtape.ShapeError
	if errors.As(err, &shape) {
		writeError(w, http.StatusInternalServerError, shape)
		return
	}
	writeError(w, http.StatusBadGateway, err)
}

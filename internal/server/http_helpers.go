package server

import (
	"net/http"

	"aurahub-gateway/internal/api"
)

// writeMiddlewareError normalises middleware error responses to the API JSON shape.
func writeMiddlewareError(w http.ResponseWriter, status int, message string) {
	api.WriteError(w, status, middlewareError(message))
}

type middlewareError string

func (e middlewareError) Error() string { return string(e) }

package middleware

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/github/selective-mcp-server/pkg/http/headers"
	"github.com/github/selective-mcp-server/pkg/http/mark"
)

// StatusForError maps marked errors to an HTTP status code.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, mark.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, mark.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes err as a JSON body of the form {"error": "..."}.
func WriteError(w http.ResponseWriter, err error) {
	w.Header().Set(headers.ContentTypeHeader, headers.ContentTypeJSON)
	w.WriteHeader(StatusForError(err))
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

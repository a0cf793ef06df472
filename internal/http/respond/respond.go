// Package respond writes the JSON envelope every API response uses:
// {"success": bool, "data": ..., "error": {"kind", "message"}}.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/MrJamesThe3rd/wayfare/internal/apperr"
)

type envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func JSON(w http.ResponseWriter, status int, data any) {
	write(w, status, envelope{Success: true, Data: data})
}

// Error maps err to its HTTP status. Internal errors are logged and their
// detail is never sent to the client.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)

	if kind == apperr.KindInternal {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}

	write(w, kind.HTTPStatus(), envelope{
		Error: &errorBody{Kind: kind.String(), Message: apperr.Message(err)},
	})
}

func write(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

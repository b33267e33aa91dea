package transport

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the error envelope shared by every endpoint. Detail is
// only populated in development mode.
type ErrorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
	Detail  string            `json:"error,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, message string, details map[string]string) {
	WriteJSON(w, status, ErrorResponse{
		Message: message,
		Errors:  details,
	})
}

// WriteInternalError hides the underlying error from callers unless the
// process runs in development mode.
func WriteInternalError(w http.ResponseWriter, message, detail string, dev bool) {
	resp := ErrorResponse{Message: message}
	if dev {
		resp.Detail = detail
	}
	WriteJSON(w, http.StatusInternalServerError, resp)
}

package utils

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the JSON error envelope returned by the API.
type ErrorBody struct {
	Message string `json:"message"`
}

// WriteJSON encodes v with the given status. Encoding failures are ignored:
// the status line has already been written.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes the standard error envelope.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorBody{Message: message})
}

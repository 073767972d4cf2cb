package server

import (
	"encoding/json"
	"net/http"
)

// APIError is an error with an HTTP status, rendered as the standard error
// envelope {"status":"error","message":...}.
type APIError struct {
	Message string
	Status  int
}

func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates an APIError.
func NewAPIError(message string, status int) *APIError {
	return &APIError{Message: message, Status: status}
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes the standard error envelope.
func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{
		"status":  "error",
		"message": message,
	})
}

// writeAPIError renders an error, mapping APIError statuses and defaulting
// everything else to 500.
func writeAPIError(w http.ResponseWriter, err error) {
	if apiErr, ok := err.(*APIError); ok {
		writeError(w, apiErr.Message, apiErr.Status)
		return
	}
	writeError(w, err.Error(), http.StatusInternalServerError)
}

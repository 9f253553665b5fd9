// Package httpapi exposes the HTTP API layer of the service.
package httpapi

import (
	"encoding/json"
	"net/http"
)

// failure is the error envelope shared by every failing response:
// success=false, a human-readable message and optionally the underlying
// error text.
type failure struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// writeJSON writes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes the failure envelope. err may be nil when the
// message alone is the diagnosis.
func writeError(w http.ResponseWriter, status int, message string, err error) {
	f := failure{Message: message}
	if err != nil {
		f.Error = err.Error()
	}
	writeJSON(w, status, f)
}

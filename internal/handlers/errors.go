package handlers

import (
	"encoding/json"
	"net/http"
)

// ErrMessageInternal is the generic message for 500 responses. Do not expose internal details to clients.
const ErrMessageInternal = "internal server error"

// JSONError sends the standard failure payload: {"success":false,"error":...}.
func JSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "error": message})
}

// JSONValidationError sends a failure payload with optional "fields" for field-level details.
// status is typically http.StatusBadRequest (400).
func JSONValidationError(w http.ResponseWriter, message string, fields map[string]string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	out := map[string]interface{}{"success": false, "error": message}
	if len(fields) > 0 {
		out["fields"] = fields
	}
	json.NewEncoder(w).Encode(out)
}

// JSONOk sends a success payload, merging extra fields into {"success":true}.
func JSONOk(w http.ResponseWriter, extra map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	out := map[string]interface{}{"success": true}
	for k, v := range extra {
		out[k] = v
	}
	json.NewEncoder(w).Encode(out)
}

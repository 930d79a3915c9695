// Package middleware provides HTTP middleware for the AdForge API server.
package middleware

import (
	"encoding/json"
	"net/http"
)

// writeJSONError emits the API's uniform error payload.
func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

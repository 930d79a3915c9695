// Package handlers implements the HTTP endpoints of the AdForge API:
// authentication, ad-project CRUD, AI copy generation, and media upload.
// Every endpoint speaks JSON; errors use the uniform {"error": "..."} shape.
package handlers

import (
	"encoding/json"
	"net/http"
)

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// errorJSON writes the uniform error payload.
func errorJSON(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// decodeJSON parses the request body into dst, rejecting unknown fields
// so client typos surface as 400s instead of silently dropped data.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

package api

import (
	"encoding/json"
	"log"
	"net/http"
)

// Stable machine-readable reasons carried by every error response. Clients
// get one of these and nothing else: no stack traces, and no hint of whether
// an email or a password was the part that failed.
const (
	ReasonValidation         = "validation_error"
	ReasonInvalidCredentials = "invalid_credentials"
	ReasonUnauthenticated    = "unauthenticated"
	ReasonForbidden          = "forbidden"
	ReasonRateLimited        = "rate_limited"
	ReasonStorage            = "storage_error"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, reason string) {
	writeJSON(w, status, ErrorResponse{Error: reason})
}

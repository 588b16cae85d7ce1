package http

import (
	"encoding/json"
	"log"
	"net/http"
)

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// RespondJSON writes payload as the response body with the given status code.
func RespondJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// RespondError sends an error body {message, [error]}. The underlying error
// is logged server-side and never echoed to the caller.
func RespondError(w http.ResponseWriter, code int, message string, err error) {
	if err != nil {
		log.Printf("Error: %v", err)
	}
	RespondJSON(w, code, &errorResponse{Message: message})
}

// RespondErrorDetail is RespondError with a client-facing detail string, used
// for validation failures where the caller can act on the specifics.
func RespondErrorDetail(w http.ResponseWriter, code int, message string, detail string) {
	RespondJSON(w, code, &errorResponse{Message: message, Error: detail})
}

package auth

import (
	"encoding/json"
	"log"
	"net/http"

	"quill/internal/core/users"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(errorResponse{
		Error:   errorType,
		Message: message,
	}); err != nil {
		log.Printf("Failed to encode error response: %v", err)
	}
}

// handleServiceError maps user service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case err == users.ErrInvalidCredentials:
		writeError(w, http.StatusUnauthorized, "InvalidCredentials", err.Error())

	case users.IsConflict(err):
		writeError(w, http.StatusConflict, "AlreadyExists", err.Error())

	case users.IsValidationError(err):
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())

	case err == users.ErrUserNotFound:
		writeError(w, http.StatusNotFound, "NotFound", "User not found")

	default:
		// Don't leak internal error details to clients
		log.Printf("Unexpected error in auth handler: %v", err)
		writeError(w, http.StatusInternalServerError, "InternalServerError",
			"An internal error occurred")
	}
}

package auth

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"quill/internal/core/users"
)

// ForgotPasswordHandler accepts password reset requests
type ForgotPasswordHandler struct {
	service users.UserService
}

// NewForgotPasswordHandler creates a new forgot-password handler
func NewForgotPasswordHandler(service users.UserService) *ForgotPasswordHandler {
	return &ForgotPasswordHandler{service: service}
}

// HandleForgotPassword handles POST /api/auth/forgot-password.
// The response is identical whether or not the email is registered, so the
// endpoint cannot be used to enumerate accounts.
func (h *ForgotPasswordHandler) HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64*1024)

	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "email is required")
		return
	}

	if err := h.service.RequestPasswordReset(r.Context(), req.Email); err != nil {
		if users.IsValidationError(err) {
			writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
			return
		}
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{
		"message": "If an account with that email exists, a reset link has been sent.",
	}); err != nil {
		log.Printf("Failed to encode forgot-password response: %v", err)
	}
}

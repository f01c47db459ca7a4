package auth

import (
	"encoding/json"
	"log"
	"net/http"

	"quill/internal/core/users"
)

// LoginHandler handles credential verification requests
type LoginHandler struct {
	service users.UserService
}

// NewLoginHandler creates a new login handler
func NewLoginHandler(service users.UserService) *LoginHandler {
	return &LoginHandler{service: service}
}

// HandleLogin handles POST /api/auth/login
func (h *LoginHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64*1024)

	var req users.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("Failed to encode login response: %v", err)
	}
}

package routes

import (
	"github.com/go-chi/chi/v5"

	"quill/internal/api/handlers/auth"
	"quill/internal/core/users"
)

// RegisterAuthRoutes registers account endpoints on the router.
// All three are public: they exist to establish identity, not consume it.
func RegisterAuthRoutes(r chi.Router, service users.UserService) {
	registerHandler := auth.NewRegisterHandler(service)
	loginHandler := auth.NewLoginHandler(service)
	forgotHandler := auth.NewForgotPasswordHandler(service)

	r.Post("/api/auth/register", registerHandler.HandleRegister)
	r.Post("/api/auth/login", loginHandler.HandleLogin)
	r.Post("/api/auth/forgot-password", forgotHandler.HandleForgotPassword)
}

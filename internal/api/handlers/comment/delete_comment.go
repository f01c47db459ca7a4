package comment

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"quill/internal/api/middleware"
	"quill/internal/core/posts"
)

// DeleteHandler handles comment deletion requests
type DeleteHandler struct {
	service posts.Service
}

// NewDeleteHandler creates a new comment delete handler
func NewDeleteHandler(service posts.Service) *DeleteHandler {
	return &DeleteHandler{service: service}
}

// HandleDelete handles DELETE /api/posts/{id}/comments/{commentId}.
// Allowed for the comment's author and for the post's author.
func (h *DeleteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "AuthenticationRequired", "Authentication required")
		return
	}

	view, err := h.service.DeleteComment(r.Context(), userID,
		chi.URLParam(r, "id"), chi.URLParam(r, "commentId"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(view); err != nil {
		log.Printf("Failed to encode comment deletion response: %v", err)
	}
}

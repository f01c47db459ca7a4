package post

import (
	"encoding/json"
	"log"
	"net/http"

	"quill/internal/api/middleware"
	"quill/internal/core/posts"
)

// CreateHandler handles post creation requests
type CreateHandler struct {
	service posts.Service
}

// NewCreateHandler creates a new create handler
func NewCreateHandler(service posts.Service) *CreateHandler {
	return &CreateHandler{service: service}
}

// HandleCreate handles POST /api/posts.
// Accepts either a JSON body (image as a direct URL) or a multipart form
// with an uploaded image file.
func (h *CreateHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxMultipartMemory+1024*1024)

	userID := middleware.GetUserID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "AuthenticationRequired", "Authentication required")
		return
	}

	form, err := decodePostForm(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	view, err := h.service.CreatePost(r.Context(), posts.CreatePostRequest{
		AuthorID: userID,
		Title:    form.Title,
		Content:  form.Content,
		Image:    form.ImageURL,
		Upload:   form.Upload,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(view); err != nil {
		log.Printf("Failed to encode post creation response: %v", err)
	}
}

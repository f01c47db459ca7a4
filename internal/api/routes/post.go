package routes

import (
	"github.com/go-chi/chi/v5"

	"quill/internal/api/handlers/comment"
	"quill/internal/api/handlers/post"
	"quill/internal/api/middleware"
	"quill/internal/core/posts"
)

// RegisterPostRoutes registers post and comment endpoints on the router.
// Reads are public; every mutation goes through RequireAuth.
func RegisterPostRoutes(r chi.Router, service posts.Service, authMiddleware *middleware.AuthMiddleware) {
	createHandler := post.NewCreateHandler(service)
	getHandler := post.NewGetHandler(service)
	updateHandler := post.NewUpdateHandler(service)
	deleteHandler := post.NewDeleteHandler(service)
	likeHandler := post.NewLikeHandler(service)
	commentCreateHandler := comment.NewCreateHandler(service)
	commentDeleteHandler := comment.NewDeleteHandler(service)

	// Public reads
	r.Get("/api/posts", getHandler.HandleList)
	r.Get("/api/posts/{id}", getHandler.HandleGet)

	// Authenticated mutations
	r.With(authMiddleware.RequireAuth).Post("/api/posts", createHandler.HandleCreate)
	r.With(authMiddleware.RequireAuth).Put("/api/posts/{id}", updateHandler.HandleUpdate)
	r.With(authMiddleware.RequireAuth).Delete("/api/posts/{id}", deleteHandler.HandleDelete)
	r.With(authMiddleware.RequireAuth).Post("/api/posts/{id}/like", likeHandler.HandleToggleLike)
	r.With(authMiddleware.RequireAuth).Post("/api/posts/{id}/comments", commentCreateHandler.HandleCreate)
	r.With(authMiddleware.RequireAuth).Delete("/api/posts/{id}/comments/{commentId}", commentDeleteHandler.HandleDelete)
}

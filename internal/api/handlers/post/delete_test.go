package post

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"quill/internal/api/middleware"
	"quill/internal/core/posts"
)

func routeWithParam(handler http.HandlerFunc, method, pattern string) *chi.Mux {
	r := chi.NewRouter()
	r.MethodFunc(method, pattern, handler)
	return r
}

func TestDeleteHandler_Success(t *testing.T) {
	var gotActor, gotPost string
	mockService := &mockPostService{
		deleteFunc: func(ctx context.Context, actorID, postID string) error {
			gotActor, gotPost = actorID, postID
			return nil
		},
	}
	handler := NewDeleteHandler(mockService)
	router := routeWithParam(handler.HandleDelete, http.MethodDelete, "/api/posts/{id}")

	req := httptest.NewRequest(http.MethodDelete, "/api/posts/p1", nil)
	req = req.WithContext(middleware.SetTestUserID(req.Context(), "u1"))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotActor != "u1" || gotPost != "p1" {
		t.Errorf("Expected (u1, p1), got (%q, %q)", gotActor, gotPost)
	}
}

func TestDeleteHandler_NotAuthorMapsTo403(t *testing.T) {
	mockService := &mockPostService{
		deleteFunc: func(ctx context.Context, actorID, postID string) error {
			return posts.ErrNotAuthorized
		},
	}
	handler := NewDeleteHandler(mockService)
	router := routeWithParam(handler.HandleDelete, http.MethodDelete, "/api/posts/{id}")

	req := httptest.NewRequest(http.MethodDelete, "/api/posts/p1", nil)
	req = req.WithContext(middleware.SetTestUserID(req.Context(), "u2"))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("Expected status 403, got %d", rec.Code)
	}
}

func TestDeleteHandler_MissingMapsTo404(t *testing.T) {
	mockService := &mockPostService{
		deleteFunc: func(ctx context.Context, actorID, postID string) error {
			return posts.ErrNotFound
		},
	}
	handler := NewDeleteHandler(mockService)
	router := routeWithParam(handler.HandleDelete, http.MethodDelete, "/api/posts/{id}")

	req := httptest.NewRequest(http.MethodDelete, "/api/posts/missing", nil)
	req = req.WithContext(middleware.SetTestUserID(req.Context(), "u1"))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", rec.Code)
	}
}

func TestLikeHandler_TogglePassesActorAndPost(t *testing.T) {
	var gotActor, gotPost string
	mockService := &mockPostService{
		toggleFunc: func(ctx context.Context, actorID, postID string) (*posts.PostView, error) {
			gotActor, gotPost = actorID, postID
			return &posts.PostView{ID: postID, LikeCount: 1}, nil
		},
	}
	handler := NewLikeHandler(mockService)
	router := routeWithParam(handler.HandleToggleLike, http.MethodPost, "/api/posts/{id}/like")

	req := httptest.NewRequest(http.MethodPost, "/api/posts/p1/like", nil)
	req = req.WithContext(middleware.SetTestUserID(req.Context(), "u2"))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotActor != "u2" || gotPost != "p1" {
		t.Errorf("Expected (u2, p1), got (%q, %q)", gotActor, gotPost)
	}
}

func TestLikeHandler_Unauthenticated(t *testing.T) {
	handler := NewLikeHandler(&mockPostService{})
	router := routeWithParam(handler.HandleToggleLike, http.MethodPost, "/api/posts/{id}/like")

	req := httptest.NewRequest(http.MethodPost, "/api/posts/p1/like", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("Expected status 401, got %d", rec.Code)
	}
}

package post

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"quill/internal/api/middleware"
	"quill/internal/core/posts"
)

// mockPostService implements posts.Service for handler tests
type mockPostService struct {
	createFunc func(ctx context.Context, req posts.CreatePostRequest) (*posts.PostView, error)
	updateFunc func(ctx context.Context, actorID, postID string, req posts.UpdatePostRequest) (*posts.PostView, error)
	deleteFunc func(ctx context.Context, actorID, postID string) error
	toggleFunc func(ctx context.Context, actorID, postID string) (*posts.PostView, error)
}

func (m *mockPostService) CreatePost(ctx context.Context, req posts.CreatePostRequest) (*posts.PostView, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return &posts.PostView{ID: "p1", Title: req.Title, Content: req.Content}, nil
}

func (m *mockPostService) ListPosts(ctx context.Context) ([]*posts.PostView, error) {
	return []*posts.PostView{}, nil
}

func (m *mockPostService) GetPost(ctx context.Context, postID string) (*posts.PostView, error) {
	return nil, posts.ErrNotFound
}

func (m *mockPostService) UpdatePost(ctx context.Context, actorID, postID string, req posts.UpdatePostRequest) (*posts.PostView, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, actorID, postID, req)
	}
	return &posts.PostView{ID: postID}, nil
}

func (m *mockPostService) DeletePost(ctx context.Context, actorID, postID string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, actorID, postID)
	}
	return nil
}

func (m *mockPostService) ToggleLike(ctx context.Context, actorID, postID string) (*posts.PostView, error) {
	if m.toggleFunc != nil {
		return m.toggleFunc(ctx, actorID, postID)
	}
	return &posts.PostView{ID: postID}, nil
}

func (m *mockPostService) AddComment(ctx context.Context, actorID, postID, content string) (*posts.PostView, error) {
	return &posts.PostView{ID: postID}, nil
}

func (m *mockPostService) DeleteComment(ctx context.Context, actorID, postID, commentID string) (*posts.PostView, error) {
	return &posts.PostView{ID: postID}, nil
}

func authedJSONRequest(t *testing.T, method, target string, body interface{}, userID string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to marshal request: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req = req.WithContext(middleware.SetTestUserID(req.Context(), userID))
	}
	return req
}

func TestCreateHandler_Success(t *testing.T) {
	var gotAuthor string
	mockService := &mockPostService{
		createFunc: func(ctx context.Context, req posts.CreatePostRequest) (*posts.PostView, error) {
			gotAuthor = req.AuthorID
			return &posts.PostView{ID: "p1", Title: req.Title, Content: req.Content}, nil
		},
	}
	handler := NewCreateHandler(mockService)

	req := authedJSONRequest(t, http.MethodPost, "/api/posts",
		map[string]string{"title": "Hello", "content": "World"}, "u1")
	rec := httptest.NewRecorder()

	handler.HandleCreate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotAuthor != "u1" {
		t.Errorf("Expected author from auth context, got %q", gotAuthor)
	}

	var view posts.PostView
	if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if view.Title != "Hello" {
		t.Errorf("Expected title Hello, got %q", view.Title)
	}
}

func TestCreateHandler_Unauthenticated(t *testing.T) {
	handler := NewCreateHandler(&mockPostService{})

	req := authedJSONRequest(t, http.MethodPost, "/api/posts",
		map[string]string{"title": "Hello", "content": "World"}, "")
	rec := httptest.NewRecorder()

	handler.HandleCreate(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("Expected status 401, got %d", rec.Code)
	}
}

func TestCreateHandler_ValidationErrorMapsTo400(t *testing.T) {
	mockService := &mockPostService{
		createFunc: func(ctx context.Context, req posts.CreatePostRequest) (*posts.PostView, error) {
			return nil, posts.NewValidationError("title", "title is required")
		},
	}
	handler := NewCreateHandler(mockService)

	req := authedJSONRequest(t, http.MethodPost, "/api/posts",
		map[string]string{"content": "World"}, "u1")
	rec := httptest.NewRecorder()

	handler.HandleCreate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", rec.Code)
	}
}

func TestCreateHandler_InvalidBody(t *testing.T) {
	handler := NewCreateHandler(&mockPostService{})

	req := httptest.NewRequest(http.MethodPost, "/api/posts", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.SetTestUserID(req.Context(), "u1"))
	rec := httptest.NewRecorder()

	handler.HandleCreate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", rec.Code)
	}
}

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// stubVerifier accepts a single known token.
type stubVerifier struct {
	token  string
	userID string
}

func (s *stubVerifier) VerifyToken(token string) (string, error) {
	if token == s.token {
		return s.userID, nil
	}
	return "", errors.New("invalid token")
}

func echoUserID() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(GetUserID(r)))
	})
}

func TestRequireAuth_ValidToken(t *testing.T) {
	m := NewAuthMiddleware(&stubVerifier{token: "good-token", userID: "u1"})

	req := httptest.NewRequest(http.MethodPost, "/api/posts", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()

	m.RequireAuth(echoUserID()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", rec.Body.String())
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	m := NewAuthMiddleware(&stubVerifier{token: "good-token", userID: "u1"})

	req := httptest.NewRequest(http.MethodPost, "/api/posts", nil)
	rec := httptest.NewRecorder()

	m.RequireAuth(echoUserID()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "AuthenticationRequired")
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	m := NewAuthMiddleware(&stubVerifier{token: "good-token", userID: "u1"})

	req := httptest.NewRequest(http.MethodPost, "/api/posts", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()

	m.RequireAuth(echoUserID()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	m := NewAuthMiddleware(&stubVerifier{token: "good-token", userID: "u1"})

	req := httptest.NewRequest(http.MethodPost, "/api/posts", nil)
	req.Header.Set("Authorization", "Bearer forged-token")
	rec := httptest.NewRecorder()

	m.RequireAuth(echoUserID()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalAuth_AnonymousPassesThrough(t *testing.T) {
	m := NewAuthMiddleware(&stubVerifier{token: "good-token", userID: "u1"})

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	rec := httptest.NewRecorder()

	m.OptionalAuth(echoUserID()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestOptionalAuth_ValidTokenInjectsUser(t *testing.T) {
	m := NewAuthMiddleware(&stubVerifier{token: "good-token", userID: "u1"})

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()

	m.OptionalAuth(echoUserID()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", rec.Body.String())
}

func TestOptionalAuth_InvalidTokenContinuesAnonymously(t *testing.T) {
	m := NewAuthMiddleware(&stubVerifier{token: "good-token", userID: "u1"})

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	req.Header.Set("Authorization", "Bearer forged-token")
	rec := httptest.NewRecorder()

	m.OptionalAuth(echoUserID()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloghub-backend/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newProtectedRouter(mw gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.GET("/protected", mw, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString("user_id"),
		})
	})
	return router
}

// =====================================================
// AdminKey
// =====================================================

func TestAdminKey_ValidKey(t *testing.T) {
	router := newProtectedRouter(AdminKey("secret-key"))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("x-admin-key", "secret-key")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminKey_MissingOrWrongKey(t *testing.T) {
	router := newProtectedRouter(AdminKey("secret-key"))

	tests := []struct {
		name string
		key  string
	}{
		{"missing key", ""},
		{"wrong key", "guess"},
		{"prefix of key", "secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.key != "" {
				req.Header.Set("x-admin-key", tt.key)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusForbidden, w.Code)
		})
	}
}

// =====================================================
// Auth
// =====================================================

func TestAuth_ValidAccessToken(t *testing.T) {
	manager := jwt.NewManager("test-secret")
	router := newProtectedRouter(Auth(manager))

	token, err := manager.GenerateAccessToken("user-1", "alice@example.com", "user")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
}

func TestAuth_RejectsRefreshToken(t *testing.T) {
	manager := jwt.NewManager("test-secret")
	router := newProtectedRouter(Auth(manager))

	token, err := manager.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_RejectsBadHeader(t *testing.T) {
	manager := jwt.NewManager("test-secret")
	router := newProtectedRouter(Auth(manager))

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not.a.jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestAuth_RejectsForgedSignature(t *testing.T) {
	router := newProtectedRouter(Auth(jwt.NewManager("test-secret")))

	forged, err := jwt.NewManager("other-secret").GenerateAccessToken("user-1", "alice@example.com", "user")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// =====================================================
// RequestID
// =====================================================

func TestRequestID_KeepsIncoming(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("x-request-id", "client-id-42")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "client-id-42", w.Header().Get("X-Request-Id"))
}

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}

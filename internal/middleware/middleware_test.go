package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"rummy-service/internal/middleware"

	"github.com/gin-gonic/gin"
)

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(middleware.ContextRequestIDKey))
	})
	return r
}

func TestRequestID(t *testing.T) {
	r := newEngine(middleware.RequestID(), middleware.RequestLogger())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	minted := w.Header().Get(middleware.HeaderRequestID)
	if minted == "" || w.Body.String() != minted {
		t.Fatalf("expected a minted request id, header %q body %q", minted, w.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.HeaderRequestID, "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(middleware.HeaderRequestID); got != "abc" {
		t.Fatalf("expected the caller's id to be kept, got %q", got)
	}
}

func TestAPIKeyRequired(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		header string
		want   int
	}{
		{"open without key", "", "", http.StatusOK},
		{"missing header", "secret", "", http.StatusUnauthorized},
		{"wrong scheme", "secret", "Basic secret", http.StatusUnauthorized},
		{"wrong key", "secret", "Bearer nope", http.StatusUnauthorized},
		{"valid key", "secret", "Bearer secret", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newEngine(middleware.APIKeyRequired(tt.key))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, w.Code)
			}
		})
	}
}

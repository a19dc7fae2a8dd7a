package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emberlane/emberlane-backend/internal/platform/logger"
	"github.com/emberlane/emberlane-backend/internal/services"
	"github.com/emberlane/emberlane-backend/internal/store"
)

func testRouterWithAuth(tb testing.TB) (*gin.Engine, services.AuthService) {
	tb.Helper()
	gin.SetMode(gin.TestMode)
	logg, err := logger.New("test")
	if err != nil {
		tb.Fatalf("failed to init logger: %v", err)
	}
	auth := services.NewAuthService(store.NewMemoryStore(logg), logg, "test-secret", time.Hour)

	r := gin.New()
	mw := NewAuthMiddleware(logg, auth)
	r.GET("/protected", mw.RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": c.GetString(AdminEmailKey)})
	})
	return r, auth
}

func TestRequireAdminRejectsMissingHeader(t *testing.T) {
	r, _ := testRouterWithAuth(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireAdminRejectsMalformedHeader(t *testing.T) {
	r, _ := testRouterWithAuth(t)

	for _, header := range []string{"sometoken", "Basic abc", "Bearer"} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: unexpected status: got=%d want=%d", header, rec.Code, http.StatusUnauthorized)
		}
	}
}

func TestRequireAdminAcceptsValidToken(t *testing.T) {
	r, auth := testRouterWithAuth(t)

	token, err := auth.Login(context.Background(), store.DefaultAdminEmail, store.DefaultAdminPassword)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d body=%s", rec.Code, http.StatusOK, rec.Body.String())
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/ewesolon/gestaoescolar-sub002/internal/auth"

	"github.com/gin-gonic/gin"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/protected",
		AuthMiddleware(),
		RequireRole("NUTRICIONISTA"),
		func(c *gin.Context) {
			c.JSON(200, gin.H{"ok": true})
		},
	)
	return r
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	r := setupRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthMiddleware_ValidTokenAndRole(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret-key-12345")
	r := setupRouter()

	token, err := auth.GenerateToken("user-1", "n@example.com", "NUTRICIONISTA")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
}

func TestRequireRole_Forbidden(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret-key-12345")
	r := setupRouter()

	token, err := auth.GenerateToken("user-2", "d@example.com", "DIRETOR")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"echo-bloom/internal/service"
)

func setupIdentityRouter(verifier IdentityVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected/:user_id", JWTAuthMiddleware(verifier), func(c *gin.Context) {
		userID, ok := resolveUserID(c, c.Param("user_id"))
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return r
}

func TestJWTAuthMiddleware_AllowsValidAccessToken(t *testing.T) {
	jwtSvc := service.NewJWTService("secret", "echo-bloom", 15*time.Minute)
	token, err := jwtSvc.GenerateAccessToken("u1")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", JWTAuthMiddleware(jwtSvc), func(c *gin.Context) {
		claims, ok := GetAuthClaims(c)
		if !ok || claims.UserID != "u1" {
			c.Status(http.StatusUnauthorized)
			return
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestJWTAuthMiddleware_AnonymousWithoutHeader(t *testing.T) {
	jwtSvc := service.NewJWTService("secret", "echo-bloom", 15*time.Minute)
	r := setupIdentityRouter(jwtSvc)

	req := httptest.NewRequest(http.MethodGet, "/protected/u1", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestJWTAuthMiddleware_RejectsInvalidToken(t *testing.T) {
	jwtSvc := service.NewJWTService("secret", "echo-bloom", 15*time.Minute)
	r := setupIdentityRouter(jwtSvc)

	req := httptest.NewRequest(http.MethodGet, "/protected/u1", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestJWTAuthMiddleware_RejectsNonBearerScheme(t *testing.T) {
	jwtSvc := service.NewJWTService("secret", "echo-bloom", 15*time.Minute)
	r := setupIdentityRouter(jwtSvc)

	req := httptest.NewRequest(http.MethodGet, "/protected/u1", nil)
	req.Header.Set("Authorization", "Basic dTE6cGFzcw==")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestJWTAuthMiddleware_SkipsWhenDisabled(t *testing.T) {
	jwtSvc := service.NewJWTService("", "echo-bloom", 15*time.Minute)
	r := setupIdentityRouter(jwtSvc)

	req := httptest.NewRequest(http.MethodGet, "/protected/u1", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with identity disabled, got %d", rec.Code)
	}
}

func TestResolveUserID_ForbidsMismatch(t *testing.T) {
	jwtSvc := service.NewJWTService("secret", "echo-bloom", 15*time.Minute)
	token, err := jwtSvc.GenerateAccessToken("u1")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	r := setupIdentityRouter(jwtSvc)

	req := httptest.NewRequest(http.MethodGet, "/protected/u2", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"echo-bloom/internal/service"
)

const authClaimsKey = "auth_claims"

// IdentityVerifier valida access tokens; *service.JWTService lo implementa.
type IdentityVerifier interface {
	Enabled() bool
	ParseAccessToken(token string) (service.Claims, error)
}

// JWTAuthMiddleware valida el bearer token si viene y guarda claims en el contexto.
// Sin verificador habilitado o sin header la request sigue como anonima.
func JWTAuthMiddleware(verifier IdentityVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if verifier == nil || !verifier.Enabled() {
			c.Next()
			return
		}

		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			c.Next()
			return
		}
		if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		token := strings.TrimSpace(header[len("Bearer "):])
		claims, err := verifier.ParseAccessToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(authClaimsKey, claims)
		c.Next()
	}
}

// GetAuthClaims obtiene claims de JWT desde el contexto.
func GetAuthClaims(c *gin.Context) (service.Claims, bool) {
	val, ok := c.Get(authClaimsKey)
	if !ok {
		return service.Claims{}, false
	}
	claims, ok := val.(service.Claims)
	return claims, ok
}

// resolveUserID cruza el user id pedido con el del token. Si no coinciden responde 403.
func resolveUserID(c *gin.Context, requested string) (string, bool) {
	requested = strings.TrimSpace(requested)
	claims, ok := GetAuthClaims(c)
	if !ok {
		return requested, true
	}
	if requested == "" {
		return claims.UserID, true
	}
	if requested != claims.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "user mismatch"})
		return "", false
	}
	return requested, true
}

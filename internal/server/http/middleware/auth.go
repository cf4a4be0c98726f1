package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/modulixo/storefront/internal/domain/model"
	pkgAuth "github.com/modulixo/storefront/internal/pkg/auth"
)

const (
	// UserIDContextKey is a gin context key for authenticated user identifier.
	UserIDContextKey = "userID"
	// UserRoleContextKey is a gin context key for the authenticated role.
	UserRoleContextKey = "userRole"
	authCookieName     = "storefront_token"
)

// TokenParser validates bearer tokens for middleware.
type TokenParser interface {
	ParseToken(token string) (int64, model.Role, error)
}

// AuthRequired ensures user is authenticated before accessing handler.
func AuthRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		userID, role, err := parser.ParseToken(token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.Set(UserIDContextKey, userID)
		c.Set(UserRoleContextKey, role)
		c.Next()
	}
}

// OptionalAuth attaches identity when a valid token is present and lets
// anonymous requests through untouched.
func OptionalAuth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token != "" {
			if userID, role, err := parser.ParseToken(token); err == nil {
				c.Set(UserIDContextKey, userID)
				c.Set(UserRoleContextKey, role)
			}
		}
		c.Next()
	}
}

// AdminRequired rejects authenticated requests whose role is not admin. It
// must run after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		val, ok := c.Get(UserRoleContextKey)
		if !ok {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		role, _ := val.(model.Role)
		if role != model.RoleAdmin {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie writes auth token cookie to response.
func SetAuthCookie(c *gin.Context, token string) {
	c.SetCookie(authCookieName, token, 0, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}

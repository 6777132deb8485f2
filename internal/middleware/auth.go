package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/altynbek8/ServiceApp/internal/handler"
	"github.com/altynbek8/ServiceApp/internal/model"
	"github.com/altynbek8/ServiceApp/pkg/auth"
)

type AuthMiddleware struct {
	jwtSvc auth.JWTService
}

func NewAuthMiddleware(jwtSvc auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtSvc: jwtSvc}
}

// Authenticate verifies the bearer token and sets the user identity in
// context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("missing authorization header"))
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid authorization format"))
			c.Abort()
			return
		}

		claims, err := m.jwtSvc.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid token"))
			c.Abort()
			return
		}

		c.Set(handler.ContextUserID, claims.UserID)
		c.Set(handler.ContextUserEmail, claims.Email)
		c.Set(handler.ContextUserRole, claims.Role)
		c.Next()
	}
}

// RequireProvider gates routes for specialist and venue accounts.
func (m *AuthMiddleware) RequireProvider() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := model.UserRole(c.GetString(handler.ContextUserRole))
		if !role.IsProvider() {
			c.JSON(http.StatusForbidden, handler.NewErrorResponse("provider role required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin gates the moderation routes.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if model.UserRole(c.GetString(handler.ContextUserRole)) != model.RoleAdmin {
			c.JSON(http.StatusForbidden, handler.NewErrorResponse("admin role required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

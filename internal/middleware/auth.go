package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"hospital-management-server/internal/apperrors"
	"hospital-management-server/internal/config"
	"hospital-management-server/internal/models"
	"hospital-management-server/internal/utils"
)

// AuthMiddleware creates a middleware for JWT authentication. Unauthenticated
// callers are rejected before any handler runs.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Unauthorized(c, apperrors.AuthenticationRequired, "Authorization header required")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			utils.Unauthorized(c, apperrors.AuthenticationRequired, "Invalid authorization header format")
			c.Abort()
			return
		}

		tokenString := parts[1]
		claims, err := utils.ValidateToken(tokenString, cfg.JWTSecret)
		if err != nil {
			utils.Unauthorized(c, apperrors.AuthenticationRequired, "Invalid token: "+err.Error())
			c.Abort()
			return
		}

		// Set principal information in context for downstream handlers
		c.Set("userID", claims.UserID)
		c.Set("userRole", claims.Role)

		c.Next()
	}
}

// RoleAuthMiddleware creates a middleware for role-based authorization.
// It should be used *after* AuthMiddleware. A caller whose role is not in the
// permitted set is rejected with no mutation performed.
func RoleAuthMiddleware(allowedRoles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("userRole")
		if !exists {
			utils.Unauthorized(c, apperrors.AuthenticationRequired, "User role not found in context. AuthMiddleware might be missing.")
			c.Abort()
			return
		}

		role, ok := userRole.(models.Role)
		if !ok {
			utils.Unauthorized(c, apperrors.AuthenticationRequired, "User role in context is not of expected type.")
			c.Abort()
			return
		}

		isAllowed := false
		for _, allowedRole := range allowedRoles {
			if role == allowedRole {
				isAllowed = true
				break
			}
		}

		if !isAllowed {
			utils.Forbidden(c, apperrors.AuthorizationDenied, "You do not have permission to access this resource.")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetUserIDFromContext returns the authenticated account id set by AuthMiddleware.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		return "", false
	}
	idStr, ok := userID.(string)
	return idStr, ok
}

// GetUserRoleFromContext returns the authenticated role set by AuthMiddleware.
func GetUserRoleFromContext(c *gin.Context) (models.Role, bool) {
	userRole, exists := c.Get("userRole")
	if !exists {
		return "", false
	}
	role, ok := userRole.(models.Role)
	return role, ok
}

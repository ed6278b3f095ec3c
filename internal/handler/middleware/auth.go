package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"lashdiary/internal/domain/user"
	"lashdiary/internal/handler/httperr"
	"lashdiary/internal/pkg/cookie"
	"lashdiary/internal/pkg/errs"
	"lashdiary/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	errTokenRequired      = errs.New("access token required")
	errInsufficientRole   = errs.New("insufficient permissions")
	errMissingAuthContext = errs.New("role checked before authentication")
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
	logger         *slog.Logger
}

const (
	ctxUserIDKey   = "user_id"
	ctxUserRoleKey = "user_role"
)

func NewAuthMiddleware(tokenValidator usecase.TokenValidator, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
		logger:         logger,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			httperr.AbortWithReason(c, http.StatusUnauthorized, errTokenRequired, "Access token required", "unauthenticated")
			return
		}

		userID, role, err := m.tokenValidator.ValidateToken(c.Request.Context(), token)
		if err != nil {
			m.logger.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.AbortWithReason(c, http.StatusUnauthorized, err, "Invalid or expired token", "unauthenticated")
			return
		}

		c.Set(ctxUserIDKey, userID)
		c.Set(ctxUserRoleKey, role)
		c.Set("jwt_claims", map[string]any{
			"user_id": userID.String(),
			"role":    string(role),
		})
		c.Next()
	}
}

// RequireRoleAtLeast must run after RequireAuth.
func (m *AuthMiddleware) RequireRoleAtLeast(minRole user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRole(c)
		if !ok {
			httperr.AbortWithReason(c, http.StatusInternalServerError, errMissingAuthContext, "Internal server error", "internal")
			return
		}

		if !role.AtLeast(minRole) {
			httperr.AbortWithReason(c, http.StatusForbidden, errInsufficientRole, "Insufficient permissions", "forbidden")
			return
		}

		c.Next()
	}
}

// cookie first, then an Authorization bearer header
func extractToken(c *gin.Context) string {
	if token := cookie.GetAccessToken(c); token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := userID.(uuid.UUID)
	return id, ok
}

func GetUserRole(c *gin.Context) (user.Role, bool) {
	userRole, exists := c.Get(ctxUserRoleKey)
	if !exists {
		return "", false
	}

	role, ok := userRole.(user.Role)
	return role, ok
}

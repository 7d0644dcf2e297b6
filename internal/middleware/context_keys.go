package middleware

import (
	"context"

	"github.com/SscSPs/coop_savings_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// contextKey is the type of the keys this package stores in contexts.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey  = contextKey("logger")
	userIDKey     = contextKey("userID")
	roleKey       = contextKey("role")
	memberIDKey   = contextKey("memberID")
	authMethodKey = "authMethod"
)

// WithIdentity stores the authenticated actor in ctx.
func WithIdentity(ctx context.Context, userID string, role domain.Role, memberID string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	ctx = context.WithValue(ctx, roleKey, role)
	if memberID != "" {
		ctx = context.WithValue(ctx, memberIDKey, memberID)
	}
	return ctx
}

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// GetRoleFromContext retrieves the role of the authenticated actor.
func GetRoleFromContext(c *gin.Context) (domain.Role, bool) {
	role, ok := c.Request.Context().Value(roleKey).(domain.Role)
	return role, ok
}

// GetMemberIDFromContext retrieves the member ID bound to a member token.
func GetMemberIDFromContext(c *gin.Context) (string, bool) {
	memberID, ok := c.Request.Context().Value(memberIDKey).(string)
	if !ok || memberID == "" {
		return "", false
	}
	return memberID, true
}

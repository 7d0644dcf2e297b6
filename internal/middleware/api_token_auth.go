package middleware

import (
	"fmt"
	"log/slog"

	"github.com/SscSPs/coop_savings_app/internal/core/domain"
	"github.com/SscSPs/coop_savings_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// APIKeyAuth authenticates back-office integrations by the x-api-key header.
// A key matching one of the bcrypt hashes acts as staff with the ID "service:<index>".
// Requests without a valid key fall through to JWT auth.
func APIKeyAuth(keyHashes []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("x-api-key")
		if apiKey == "" || len(keyHashes) == 0 {
			c.Next() // No api key provided, let it continue
			return
		}

		for i, hash := range keyHashes {
			if !utils.CheckAPIKeyHash(apiKey, hash) {
				continue
			}
			serviceID := fmt.Sprintf("service:%d", i)
			logger := GetLoggerFromCtx(c.Request.Context()).With(slog.String("user_id", serviceID))
			ctx := WithIdentity(c.Request.Context(), serviceID, domain.RoleStaff, "")
			c.Request = c.Request.WithContext(WithLogger(ctx, logger))
			c.Set(authMethodKey, "api_key")
			break
		}
		c.Next()
	}
}

package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"bloghub-backend/internal/shared/response"
)

// AdminKey gates moderation endpoints behind a shared secret carried in
// the x-admin-key header. The comparison is constant-time so the key
// cannot be probed byte by byte.
func AdminKey(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader("x-admin-key")

		if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
			response.Forbidden(c, "Admin access required")
			c.Abort()
			return
		}

		c.Next()
	}
}

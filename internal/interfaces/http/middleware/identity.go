package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// userIDKey is the gin context key the caller's numeric id is stored under.
const userIDKey = "user_id"

// Identity resolves the calling user from the X-User-ID header. Requests
// without a parseable id still pass through; report endpoints that need an
// owner reject them via GetUserID.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := c.GetHeader("X-User-ID"); raw != "" {
			if id, err := strconv.ParseUint(raw, 10, 32); err == nil && id > 0 {
				c.Set(userIDKey, uint(id))
			}
		}
		c.Next()
	}
}

// GetUserID returns the authenticated user id from the context, and whether
// one was resolved.
func GetUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

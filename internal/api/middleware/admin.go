package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/isfaaghyth/kotlinconf-app/pkg/types"
)

// AdminSecretHeader carries the operator credential for admin endpoints.
const AdminSecretHeader = "X-Admin-Secret"

// AdminMiddleware creates a middleware that requires the configured admin
// secret. It guards the time override and announcement endpoints.
func AdminMiddleware(adminSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		presented := c.GetHeader(AdminSecretHeader)
		if subtle.ConstantTimeCompare([]byte(presented), []byte(adminSecret)) != 1 {
			c.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "invalid admin secret"})
			c.Abort()
			return
		}
		c.Next()
	}
}

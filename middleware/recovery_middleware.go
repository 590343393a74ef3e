package middleware

import (
	"fmt"
	"net/http"

	"github.com/BisiOlaYemi/Text2speech/application/ports/outbound"
	"github.com/gin-gonic/gin"
)

// RecoveryMiddleware converts any panic escaping a handler into a generic
// 500 response so a single bad request can never take the process down.
func RecoveryMiddleware(logger outbound.LoggerPort) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.ErrorWithFields(fmt.Errorf("%v", r), "panic while handling request", map[string]interface{}{
					"method": c.Request.Method,
					"path":   c.Request.URL.Path,
				})
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			}
		}()
		c.Next()
	}
}

package middleware

import (
	"time"

	"github.com/StudyXTeam23/aipodcast/application/ports/outbound"
	"github.com/gin-gonic/gin"
)

func RequestLogger(logger outbound.LoggerPort) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		fields := map[string]interface{}{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"client_ip":   c.ClientIP(),
		}

		if len(c.Errors) > 0 {
			logger.ErrorWithFields(c.Errors.Last().Err, "Request failed", fields)
			return
		}

		logger.InfoWithFields("Request completed", fields)
	}
}

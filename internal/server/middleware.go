package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rileyhilliard/sysmon/internal/logger"
)

// requestLogger logs one line per request, plus any handler errors at warn level.
func requestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Debug("%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start).Round(time.Microsecond))
		for _, e := range c.Errors {
			log.Warn("%s %s: %v", c.Request.Method, c.Request.URL.Path, e.Err)
		}
	}
}

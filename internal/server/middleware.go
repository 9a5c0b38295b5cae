package server

import (
	"fmt"

	"github.com/dustin/crop-recommender/pkg/logger"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
)

// accessLog writes one line per request through the service logger, so access lines
// share the log file and format with prediction events
func accessLog(log *logger.Logger, clock clockwork.Clock) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := clock.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		msg := fmt.Sprintf("%s %s %d %v from IP: %s request_id=%s",
			c.Request.Method, path, status, clock.Since(start), c.ClientIP(), requestid.Get(c))

		switch {
		case status >= 500:
			log.Error(msg)
		case status >= 400:
			log.Warn(msg)
		default:
			log.Info(msg)
		}
	}
}

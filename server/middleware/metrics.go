package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"tareasapi/observability"
)

// HTTPMetrics returns middleware recording request count and duration per
// route pattern. The provider is consulted per request, so instruments
// created after route registration are still picked up.
func HTTPMetrics(metrics func() *observability.Metrics) gin.HandlerFunc {
	if metrics == nil {
		metrics = func() *observability.Metrics { return nil }
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics().RecordHTTPRequest(
			c.Request.Context(),
			c.Request.Method,
			route,
			c.Writer.Status(),
			time.Since(start),
		)
	}
}

package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campushub/course-planner-api/internal/service"
)

// Requests that match no registered route share one label so probe scans
// and typo paths cannot grow the label space unbounded.
const unmatchedRoute = "unmatched"

// Metrics returns middleware that records per-route request metrics.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}

package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ManithKumarpace/Edu-Pilot/internal/service"
)

// unmatchedRoute labels requests that hit no registered route, keeping download tokens and
// random probe paths out of the metric label space.
const unmatchedRoute = "unmatched"

// Metrics records request count and latency per route template. Paths listed in skip
// (matched against the route template) are not observed.
func Metrics(metricsSvc *service.MetricsService, skip ...string) gin.HandlerFunc {
	ignored := make(map[string]struct{}, len(skip))
	for _, path := range skip {
		ignored[path] = struct{}{}
	}
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if _, ok := ignored[route]; ok {
			return
		}
		if route == "" {
			route = unmatchedRoute
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}

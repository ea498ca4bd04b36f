package middleware

import (
	"strconv"
	"time"

	"github.com/SscSPs/invoice_drafter/internal/observability"
	"github.com/gin-gonic/gin"
)

// Metrics records request counts and latency labelled by the matched route.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		m.InFlight.Inc()
		start := time.Now()
		c.Next()
		m.InFlight.Dec()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.ReqTotal.WithLabelValues(c.Request.Method, route, status).Inc()
		m.ReqDur.WithLabelValues(c.Request.Method, route).Observe(observability.DurationMillis(time.Since(start)))
	}
}

package middleware

import (
	"github.com/gin-gonic/gin"

	"farm-bridge.backend/internal/interfaces/http/response"
	"farm-bridge.backend/pkg/metrics"
)

// MetricsMiddleware counts rejected ledger operations by their stable error
// code, as recorded by the response package.
func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if code := c.GetString(response.ErrorCodeKey); code != "" {
			m.FailedOperations.WithLabelValues(code).Inc()
		}
	}
}

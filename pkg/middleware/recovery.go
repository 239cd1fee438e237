package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/richxcame/marketplace-intel/pkg/common"
	"github.com/richxcame/marketplace-intel/pkg/logger"
	"go.uber.org/zap"
)

var httpPanicsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "intel",
		Name:      "http_panics_total",
		Help:      "Handler panics turned into 500 responses",
	},
	[]string{"endpoint"},
)

// Recovery turns a handler panic into a 500 envelope. Sentry, when enabled, is installed
// after this middleware with Repanic so it reports first.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				endpoint := c.FullPath()
				if endpoint == "" {
					endpoint = "not_found"
				}
				httpPanicsTotal.WithLabelValues(endpoint).Inc()

				logger.WithContext(c.Request.Context()).Error("Panic recovered",
					zap.String("panic", fmt.Sprint(rec)),
					zap.String("endpoint", endpoint),
					zap.String("method", c.Request.Method),
					zap.Stack("stack"),
				)

				if c.Writer.Written() {
					c.Abort()
					return
				}
				common.AppErrorResponse(c, common.NewInternalServerError("internal server error"))
				c.Abort()
			}
		}()

		c.Next()
	}
}

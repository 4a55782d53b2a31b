package api

import (
	"medoffice-booking/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
)

type MetricsHandler struct {
	metrics *metrics.Metrics
}

func NewMetricsHandler(m *metrics.Metrics) *MetricsHandler {
	return &MetricsHandler{metrics: m}
}

// @Summary Prometheus metrics
// @Tags health
// @Produce plain
// @Success 200 {string} string
// @Router /metrics [get]
func (h *MetricsHandler) Serve(c *gin.Context) {
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

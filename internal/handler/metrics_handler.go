package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orariofacile/planner-wizard-api/internal/service"
)

// MetricsHandler exposes the observability endpoints. persistent reports
// whether durable snapshot storage is connected; without it the wizard still
// runs but sessions die with the process.
type MetricsHandler struct {
	metrics    *service.MetricsService
	persistent func() bool
}

// NewMetricsHandler constructs a metrics handler.
func NewMetricsHandler(metrics *service.MetricsService, persistent func() bool) *MetricsHandler {
	if persistent == nil {
		persistent = func() bool { return false }
	}
	return &MetricsHandler{metrics: metrics, persistent: persistent}
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Health responds with a liveness payload.
func (h *MetricsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports readiness along with the persistence mode.
func (h *MetricsHandler) Ready(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ready", "persistent": h.persistent()})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain/pricing/catalog"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/infrastructure/storage/postgres"
)

// HealthHandler provides health check endpoints.
type HealthHandler struct {
	pool  *postgres.Pool
	index *catalog.Index
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(pool *postgres.Pool, index *catalog.Index) *HealthHandler {
	return &HealthHandler{pool: pool, index: index}
}

// Live handles liveness probe (is the process alive?).
// GET /health/live
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Ready handles readiness probe (is the service ready to accept traffic?).
// The catalog index is reported but does not gate readiness: quotes can
// be drafted while the feed is down, prices just degrade to zero.
// GET /health/ready
func (h *HealthHandler) Ready(c *gin.Context) {
	catalogState := "loaded"
	if !h.index.Loaded() {
		catalogState = "not loaded"
	}

	if err := h.pool.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "error",
			"checks": map[string]string{
				"database": "unhealthy: " + err.Error(),
				"catalog":  catalogState,
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"checks": map[string]string{
			"database": "healthy",
			"catalog":  catalogState,
		},
	})
}

// Info returns application information.
// GET /health/info
func (h *HealthHandler) Info(c *gin.Context) {
	stat := h.pool.Stat()

	c.JSON(http.StatusOK, gin.H{
		"app":     "preventivatoreb2b",
		"version": "0.1.0",
		"database": map[string]any{
			"total_conns":    stat.TotalConns(),
			"acquired_conns": stat.AcquiredConns(),
			"idle_conns":     stat.IdleConns(),
			"max_conns":      stat.MaxConns(),
		},
		"catalog": map[string]any{
			"loaded":  h.index.Loaded(),
			"entries": h.index.Len(),
			"misses":  h.index.Misses(),
		},
	})
}

package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"echo-bloom/internal/domain"
)

const healthCheckTimeout = 2 * time.Second

// SeedSearcher es lo que el handler necesita de *service.SeedService.
type SeedSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]domain.ScoredSeed, error)
}

// Pinger lo cumple *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// MiscHandler agrupa busqueda de semillas, consentimiento, sensores y health.
type MiscHandler struct {
	logger *zap.Logger
	seeds  SeedSearcher
	db     Pinger
}

func NewMiscHandler(logger *zap.Logger, seeds SeedSearcher, db Pinger) *MiscHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MiscHandler{logger: logger, seeds: seeds, db: db}
}

// SearchSeeds maneja GET /api/search-seeds?query=&limit=.
func (h *MiscHandler) SearchSeeds(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		return
	}
	results, err := h.seeds.Search(c.Request.Context(), c.Query("query"), limit)
	if err != nil {
		respondError(c, h.logger, "could not search seeds", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// Consent maneja POST /api/consent. Solo acusa recibo; no se persiste.
func (h *MiscHandler) Consent(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Consent updated"})
}

// Sensors maneja POST /api/sensors. Solo acusa recibo.
func (h *MiscHandler) Sensors(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sensor data received"})
}

// Health maneja GET /healthz.
func (h *MiscHandler) Health(c *gin.Context) {
	if h.db == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()
	if err := h.db.Ping(ctx); err != nil {
		h.logger.Warn("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

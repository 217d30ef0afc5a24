package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"echo-bloom/internal/domain"
)

type AnalyticsReader interface {
	GetAnalytics(ctx context.Context, userID string) (domain.AnalyticsReport, error)
}

type AnalyticsHandler struct {
	logger    *zap.Logger
	analytics AnalyticsReader
}

func NewAnalyticsHandler(logger *zap.Logger, analytics AnalyticsReader) *AnalyticsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyticsHandler{logger: logger, analytics: analytics}
}

// GetAnalytics maneja GET /api/analytics/:user_id.
func (h *AnalyticsHandler) GetAnalytics(c *gin.Context) {
	userID, ok := resolveUserID(c, c.Param("user_id"))
	if !ok {
		return
	}

	report, err := h.analytics.GetAnalytics(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, "could not compute analytics", err)
		return
	}

	c.JSON(http.StatusOK, report)
}

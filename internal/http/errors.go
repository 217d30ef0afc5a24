package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"echo-bloom/internal/service"
)

// respondError traduce errores de servicio a status HTTP. Lo no reconocido es 500 y se loguea.
func respondError(c *gin.Context, logger *zap.Logger, fallback string, err error) {
	switch {
	case errors.Is(err, service.ErrMissingUserID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "user id required"})
	case errors.Is(err, service.ErrEchoInvalidInput),
		errors.Is(err, service.ErrActivityInvalidInput),
		errors.Is(err, service.ErrSeedInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
	case errors.Is(err, service.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user profile not found"})
	case errors.Is(err, service.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
	case errors.Is(err, service.ErrSeedSearchUnavailable),
		errors.Is(err, service.ErrEchoServiceNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service unavailable"})
	default:
		logger.Error(fallback, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// queryLimit lee ?limit; ausente devuelve 0 para que el servicio aplique su default.
func queryLimit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return 0, false
	}
	return limit, true
}

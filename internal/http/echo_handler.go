package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"echo-bloom/internal/domain"
	"echo-bloom/internal/service"
)

// EchoPipeline es lo que el handler necesita de *service.EchoService.
type EchoPipeline interface {
	SubmitEcho(ctx context.Context, in service.SubmitEchoInput) (service.EchoResult, error)
	ListEchoes(ctx context.Context, userID string, limit int) ([]domain.Echo, error)
}

// ProfileReader es lo que el handler necesita de *service.ProfileService.
type ProfileReader interface {
	GetProfile(ctx context.Context, userID string) (service.ProfileView, error)
}

// EchoHandler mantiene dependencias para endpoints de echoes y perfil.
type EchoHandler struct {
	logger   *zap.Logger
	echoes   EchoPipeline
	profiles ProfileReader
}

// NewEchoHandler crea una instancia de EchoHandler con dependencias necesarias.
func NewEchoHandler(logger *zap.Logger, echoes EchoPipeline, profiles ProfileReader) *EchoHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EchoHandler{
		logger:   logger,
		echoes:   echoes,
		profiles: profiles,
	}
}

// SubmitEcho maneja POST /api/echo.
func (h *EchoHandler) SubmitEcho(c *gin.Context) {
	var req struct {
		Input  string `json:"input"`
		UserID string `json:"userId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid echo request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	userID, ok := resolveUserID(c, req.UserID)
	if !ok {
		return
	}

	result, err := h.echoes.SubmitEcho(c.Request.Context(), service.SubmitEchoInput{
		UserID: userID,
		Text:   req.Input,
	})
	if err != nil {
		respondError(c, h.logger, "could not process echo", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListEchoes maneja GET /api/echoes/:user_id.
func (h *EchoHandler) ListEchoes(c *gin.Context) {
	userID, ok := resolveUserID(c, c.Param("user_id"))
	if !ok {
		return
	}
	limit, ok := queryLimit(c)
	if !ok {
		return
	}

	echoes, err := h.echoes.ListEchoes(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, h.logger, "could not list echoes", err)
		return
	}
	if echoes == nil {
		echoes = []domain.Echo{}
	}

	c.JSON(http.StatusOK, gin.H{"echoes": echoes})
}

// GetProfile maneja GET /api/profile/:user_id.
func (h *EchoHandler) GetProfile(c *gin.Context) {
	userID, ok := resolveUserID(c, c.Param("user_id"))
	if !ok {
		return
	}

	view, err := h.profiles.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, "could not load profile", err)
		return
	}

	c.JSON(http.StatusOK, view)
}

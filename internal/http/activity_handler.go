package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"echo-bloom/internal/domain"
	"echo-bloom/internal/service"
)

// ActivityTracker es lo que el handler necesita de *service.ActivityService.
type ActivityTracker interface {
	CreateBreathing(ctx context.Context, in domain.BreathingSession) (domain.BreathingSession, error)
	CreateJournal(ctx context.Context, in domain.JournalEntry) (domain.JournalEntry, error)
	CreateGratitude(ctx context.Context, in domain.GratitudeEntry) (domain.GratitudeEntry, error)
	CreateGrounding(ctx context.Context, in domain.GroundingSession) (domain.GroundingSession, error)
	ListBreathing(ctx context.Context, userID string, limit int) ([]domain.BreathingSession, int, error)
	ListJournal(ctx context.Context, userID, category string, limit int) ([]domain.JournalEntry, int, error)
	ListGratitude(ctx context.Context, userID string, limit int) ([]domain.GratitudeEntry, int, error)
	ListGrounding(ctx context.Context, userID string, limit int) ([]domain.GroundingSession, int, error)
	Stats(ctx context.Context, userID string) (service.ActivityStatsView, error)
}

// ActivityHandler expone los ejercicios guiados bajo /api/activities.
type ActivityHandler struct {
	logger     *zap.Logger
	activities ActivityTracker
}

func NewActivityHandler(logger *zap.Logger, activities ActivityTracker) *ActivityHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityHandler{logger: logger, activities: activities}
}

// CreateBreathing maneja POST /api/activities/breathing.
func (h *ActivityHandler) CreateBreathing(c *gin.Context) {
	var req struct {
		UserID          string   `json:"user_id"`
		CyclesCompleted int      `json:"cycles_completed"`
		DurationSeconds int      `json:"duration_seconds"`
		Technique       string   `json:"technique"`
		MoodBefore      *float64 `json:"mood_before"`
		MoodAfter       *float64 `json:"mood_after"`
		Notes           string   `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid breathing request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	userID, ok := resolveUserID(c, req.UserID)
	if !ok {
		return
	}

	session, err := h.activities.CreateBreathing(c.Request.Context(), domain.BreathingSession{
		UserID:          userID,
		CyclesCompleted: req.CyclesCompleted,
		DurationSeconds: req.DurationSeconds,
		Technique:       req.Technique,
		MoodBefore:      req.MoodBefore,
		MoodAfter:       req.MoodAfter,
		Notes:           req.Notes,
	})
	if err != nil {
		respondError(c, h.logger, "could not save breathing session", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"session": session,
		"message": "Breathing session saved successfully",
	})
}

// ListBreathing maneja GET /api/activities/breathing/:user_id.
func (h *ActivityHandler) ListBreathing(c *gin.Context) {
	userID, limit, ok := listParams(c)
	if !ok {
		return
	}
	sessions, total, err := h.activities.ListBreathing(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, h.logger, "could not list breathing sessions", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions, "total_sessions": total})
}

// CreateJournal maneja POST /api/activities/journal.
func (h *ActivityHandler) CreateJournal(c *gin.Context) {
	var req struct {
		UserID      string            `json:"user_id"`
		Category    string            `json:"category"`
		Prompts     []string          `json:"prompts"`
		Responses   map[string]string `json:"responses"`
		EmotionTags []string          `json:"emotion_tags"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid journal request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	userID, ok := resolveUserID(c, req.UserID)
	if !ok {
		return
	}

	entry, err := h.activities.CreateJournal(c.Request.Context(), domain.JournalEntry{
		UserID:      userID,
		Category:    req.Category,
		Prompts:     req.Prompts,
		Responses:   req.Responses,
		EmotionTags: req.EmotionTags,
	})
	if err != nil {
		respondError(c, h.logger, "could not save journal entry", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"entry":   entry,
		"message": "Journal entry saved successfully",
	})
}

// ListJournal maneja GET /api/activities/journal/:user_id?category=.
func (h *ActivityHandler) ListJournal(c *gin.Context) {
	userID, limit, ok := listParams(c)
	if !ok {
		return
	}
	entries, total, err := h.activities.ListJournal(c.Request.Context(), userID, c.Query("category"), limit)
	if err != nil {
		respondError(c, h.logger, "could not list journal entries", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries, "total_entries": total})
}

// CreateGratitude maneja POST /api/activities/gratitude.
func (h *ActivityHandler) CreateGratitude(c *gin.Context) {
	var req struct {
		UserID      string                 `json:"user_id"`
		Gratitudes  []domain.GratitudeItem `json:"gratitudes"`
		ProudMoment string                 `json:"proud_moment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid gratitude request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	userID, ok := resolveUserID(c, req.UserID)
	if !ok {
		return
	}

	entry, err := h.activities.CreateGratitude(c.Request.Context(), domain.GratitudeEntry{
		UserID:      userID,
		Gratitudes:  req.Gratitudes,
		ProudMoment: req.ProudMoment,
	})
	if err != nil {
		respondError(c, h.logger, "could not save gratitude entry", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"entry":   entry,
		"message": "Gratitude entry saved successfully",
	})
}

// ListGratitude maneja GET /api/activities/gratitude/:user_id.
func (h *ActivityHandler) ListGratitude(c *gin.Context) {
	userID, limit, ok := listParams(c)
	if !ok {
		return
	}
	entries, total, err := h.activities.ListGratitude(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, h.logger, "could not list gratitude entries", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries, "total_entries": total})
}

// CreateGrounding maneja POST /api/activities/grounding.
func (h *ActivityHandler) CreateGrounding(c *gin.Context) {
	var req struct {
		UserID              string   `json:"user_id"`
		SeeItems            []string `json:"see_items"`
		TouchItems          []string `json:"touch_items"`
		HearItems           []string `json:"hear_items"`
		SmellItems          []string `json:"smell_items"`
		TasteItems          []string `json:"taste_items"`
		DurationSeconds     int      `json:"duration_seconds"`
		AnxietyBefore       *float64 `json:"anxiety_before"`
		AnxietyAfter        *float64 `json:"anxiety_after"`
		EffectivenessRating *int     `json:"effectiveness_rating"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid grounding request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	userID, ok := resolveUserID(c, req.UserID)
	if !ok {
		return
	}

	session, err := h.activities.CreateGrounding(c.Request.Context(), domain.GroundingSession{
		UserID:              userID,
		SeeItems:            req.SeeItems,
		TouchItems:          req.TouchItems,
		HearItems:           req.HearItems,
		SmellItems:          req.SmellItems,
		TasteItems:          req.TasteItems,
		DurationSeconds:     req.DurationSeconds,
		AnxietyBefore:       req.AnxietyBefore,
		AnxietyAfter:        req.AnxietyAfter,
		EffectivenessRating: req.EffectivenessRating,
	})
	if err != nil {
		respondError(c, h.logger, "could not save grounding session", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"session": session,
		"message": "Grounding session saved successfully",
	})
}

// ListGrounding maneja GET /api/activities/grounding/:user_id.
func (h *ActivityHandler) ListGrounding(c *gin.Context) {
	userID, limit, ok := listParams(c)
	if !ok {
		return
	}
	sessions, total, err := h.activities.ListGrounding(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, h.logger, "could not list grounding sessions", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions, "total_sessions": total})
}

// Stats maneja GET /api/activities/stats/:user_id.
func (h *ActivityHandler) Stats(c *gin.Context) {
	userID, ok := resolveUserID(c, c.Param("user_id"))
	if !ok {
		return
	}
	stats, err := h.activities.Stats(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, "could not compute activity stats", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func listParams(c *gin.Context) (string, int, bool) {
	userID, ok := resolveUserID(c, c.Param("user_id"))
	if !ok {
		return "", 0, false
	}
	limit, ok := queryLimit(c)
	if !ok {
		return "", 0, false
	}
	return userID, limit, true
}

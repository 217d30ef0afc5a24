package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter configura el router de Gin con middlewares y rutas de la API.
func NewRouter(
	logger *zap.Logger,
	corsOrigins []string,
	identity IdentityVerifier,
	echoH *EchoHandler,
	analyticsH *AnalyticsHandler,
	activityH *ActivityHandler,
	miscH *MiscHandler,
) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := gin.New()

	// Middlewares basicos: logging, recovery, CORS y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), corsMiddleware(corsOrigins), jsonContentTypeMiddleware())

	r.GET("/healthz", miscH.Health)

	api := r.Group("/api")
	api.Use(JWTAuthMiddleware(identity))

	api.POST("/echo", echoH.SubmitEcho)
	api.GET("/echoes/:user_id", echoH.ListEchoes)
	api.GET("/profile/:user_id", echoH.GetProfile)

	api.GET("/analytics/:user_id", analyticsH.GetAnalytics)

	activities := api.Group("/activities")
	activities.POST("/breathing", activityH.CreateBreathing)
	activities.GET("/breathing/:user_id", activityH.ListBreathing)
	activities.POST("/journal", activityH.CreateJournal)
	activities.GET("/journal/:user_id", activityH.ListJournal)
	activities.POST("/gratitude", activityH.CreateGratitude)
	activities.GET("/gratitude/:user_id", activityH.ListGratitude)
	activities.POST("/grounding", activityH.CreateGrounding)
	activities.GET("/grounding/:user_id", activityH.ListGrounding)
	activities.GET("/stats/:user_id", activityH.Stats)

	api.GET("/search-seeds", miscH.SearchSeeds)
	api.POST("/consent", miscH.Consent)
	api.POST("/sensors", miscH.Sensors)

	return r
}

// corsMiddleware habilita al frontend web. Sin origenes configurados se aceptan todos.
func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}

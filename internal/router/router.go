package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ghostlake/jobtrack/internal/config"
	"github.com/ghostlake/jobtrack/internal/handlers"
	"github.com/ghostlake/jobtrack/internal/logging"
	"github.com/ghostlake/jobtrack/internal/middleware"
	"github.com/ghostlake/jobtrack/internal/token"
)

// Deps bundles everything the router needs.
type Deps struct {
	Log    *logging.Logger
	Config *config.Config
	Tokens *token.Manager
	Auth   *handlers.AuthHandler
	Apps   *handlers.ApplicationHandler
	AI     *handlers.AIHandler
}

// New assembles the gin engine: middleware chain, CORS, and all routes.
func New(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLog(d.Log))
	r.Use(middleware.Errors(d.Log, d.Config.Production()))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{d.Config.CORSOrigin}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	r.Use(cors.New(corsConfig))

	r.NoRoute(middleware.NotFoundHandler())

	r.GET("/health", handlers.HealthCheck)

	requireAuth := middleware.RequireAuth(d.Tokens)

	// Sensitive routes are throttled per source IP.
	limiter := middleware.NewRateLimiter(d.Config.RateLimit, d.Config.RateWindow)

	auth := r.Group("/auth", limiter.Middleware())
	{
		auth.POST("/register", d.Auth.Register)
		auth.POST("/login", d.Auth.Login)
		auth.GET("/me", requireAuth, d.Auth.Me)
	}

	apps := r.Group("/applications", requireAuth)
	{
		apps.GET("", d.Apps.List)
		apps.POST("", d.Apps.Create)
		apps.PATCH("/:id/status", d.Apps.UpdateStatus)
		apps.DELETE("/:id", d.Apps.Delete)
	}

	ai := r.Group("/ai", limiter.Middleware(), requireAuth)
	{
		ai.POST("/extract-skills", d.AI.ExtractSkills)
	}

	return r
}

package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"teachsim/internal/account"
)

// RouterConfig wires handlers and middleware into the router.
type RouterConfig struct {
	Handler      *Handler
	Accounts     *account.Service
	Log          *zap.SugaredLogger
	AllowOrigins []string
}

// NewRouter builds the HTTP routing table.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Log != nil {
		router.Use(RequestLogger(cfg.Log))
	}

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	h := cfg.Handler

	// Public
	router.GET("/healthz", h.Health)
	api := router.Group("/api")
	{
		api.POST("/register", h.Register)
		api.POST("/login", h.Login)
		api.GET("/scenarios", h.Scenarios)
	}

	// Protected
	protected := router.Group("/api")
	protected.Use(RequireAuth(cfg.Accounts))
	{
		protected.POST("/chat", h.Chat)
		protected.POST("/sessions/complete", h.CompleteSession)
		protected.GET("/sessions", h.Sessions)
		protected.GET("/profile", h.Profile)
		protected.POST("/events", h.TrackEvent)
	}

	return router
}

package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"judol-guard/api/handlers"
	"judol-guard/api/middleware"
	"judol-guard/config"
	"judol-guard/db"
	"judol-guard/models"
	"judol-guard/services"
)

func New(cfg config.AppConfig, blocklistSvc *services.BlocklistService, moderationSvc *services.ModerationService) (*gin.Engine, error) {
	// An unresolved account would otherwise surface as a gin panic deep in
	// BasicAuth; refuse to build the router instead.
	if cfg.Dashboard.Username == "" || cfg.Dashboard.Password == "" {
		return nil, fmt.Errorf("dashboard basic auth is not configured: set dashboard.username/password in config.yaml or DASHBOARD_USERNAME/DASHBOARD_PASSWORD")
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestTrace())
	r.Use(middleware.RequestLoggingMiddleware())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		if err := db.Pool().Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "postgres": "down", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Everything else sits behind the dashboard basic auth gate.
	authed := r.Group("/", gin.BasicAuth(gin.Accounts{
		cfg.Dashboard.Username: cfg.Dashboard.Password,
	}))

	api := authed.Group("/api/v1")
	{
		api.GET("/blocked-words", handlers.ListBlocklistHandler(blocklistSvc, models.BlocklistWords))
		api.GET("/blocked-channels", handlers.ListBlocklistHandler(blocklistSvc, models.BlocklistChannels))
	}

	jobs := handlers.NewJobTriggers(moderationSvc)
	jobGroup := authed.Group("/job")
	{
		jobGroup.POST("/collect-comment", jobs.CollectHandler())
		jobGroup.POST("/check-batch", jobs.CheckHandler())
	}

	return r, nil
}

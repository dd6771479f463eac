package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Database, cfg.Version)
	reports := NewReportsController(cfg.Reports, cfg.Cache)

	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	if cfg.Metrics != nil {
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	router.GET("/", reports.Welcome)
	router.GET(PathMostHelpfulReview, reports.MostHelpfulReview)
	router.GET(PathLeastHelpfulReview, reports.LeastHelpfulReview)
	router.GET(PathMostConciseReview, reports.MostConciseReview)
	router.GET(PathEarliestReview, reports.EarliestReview)
	router.GET(PathMostExpensiveBook, reports.MostExpensiveBook)
	router.GET(PathCheapestBook, reports.CheapestBook)
	router.GET("/api/stats", reports.Stats)

	if cfg.LoadRuns != nil {
		runs := NewLoadsController(cfg.LoadQueue, cfg.LoadRuns)
		router.GET("/api/runs/:id", runs.Run)
	}

	if cfg.LoadQueue != nil {
		loads := NewLoadsController(cfg.LoadQueue, cfg.LoadRuns)
		router.POST("/api/loads", loads.Trigger)
		router.GET("/api/loads/:id", loads.Status)
		if cfg.LoadRuns != nil {
			router.GET("/api/loads", loads.List)
		}
	}

	return router
}

package handler

import (
	"epass-service/internal/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterConfig struct {
	AllowedOrigins []string
	AuthMiddleware *AuthMiddleware
	AuthHandler    *AuthHandler
	PassHandler    *PassHandler
	AdminHandler   *AdminHandler
	Log            *logger.Logger
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(cfg.Log))
	r.Use(corsMiddleware(cfg.AllowedOrigins))

	r.GET("/health", cfg.AuthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/")
	api.Use(cfg.AuthMiddleware.Authenticate())

	auth := api.Group("/auth")
	{
		auth.POST("/login", cfg.AuthHandler.Login)
		auth.POST("/register", cfg.AuthHandler.Register)
		auth.POST("/logout", cfg.AuthHandler.Logout)
		auth.GET("/me", cfg.AuthHandler.Me)
	}

	api.GET("/categories", cfg.PassHandler.GetCategories)

	passes := api.Group("/passes")
	{
		passes.GET("", cfg.PassHandler.GetMyPasses)
		passes.POST("", cfg.PassHandler.Submit)
		passes.GET("/:id", cfg.PassHandler.GetPass)
	}

	admin := api.Group("/admin")
	admin.Use(cfg.AuthMiddleware.RequireAdmin())
	{
		admin.GET("/passes", cfg.AdminHandler.GetQueue)
		admin.POST("/passes/:id/decision", cfg.AdminHandler.Decide)
		admin.GET("/dashboard", cfg.AdminHandler.GetDashboard)
		admin.GET("/outbox/stats", cfg.AdminHandler.GetOutboxStats)
	}

	return r
}

// corsMiddleware allows any origin when none are configured.
func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Authorization", "Content-Type"},
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}

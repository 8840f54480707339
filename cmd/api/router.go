package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bloghub-backend/internal/shared/middleware"
	"bloghub-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	router.GET("/health", healthCheckHandler(c))

	api := router.Group("/api")
	{
		setupAuthRoutes(api, c)
		setupBlogRoutes(api, c)
		setupAdminRoutes(api, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(api *gin.RouterGroup, c *container.Container) {
	api.POST("/signup", c.UserHandler.Signup)
	api.POST("/login", c.UserHandler.Login)
	api.GET("/me", middleware.Auth(c.JWTManager), c.UserHandler.Me)
}

// ========================================
// BLOG ROUTES
// ========================================
func setupBlogRoutes(api *gin.RouterGroup, c *container.Container) {
	blogs := api.Group("/blogs")
	{
		blogs.POST("", c.BlogHandler.SubmitBlog)
		blogs.GET("", c.BlogHandler.ListBlogs)
		blogs.GET("/:id", c.BlogHandler.GetBlog)
		blogs.POST("/:id/like", c.BlogHandler.LikeBlog)
	}
}

// ========================================
// ADMIN ROUTES
// ========================================
func setupAdminRoutes(api *gin.RouterGroup, c *container.Container) {
	adminKey := middleware.AdminKey(c.Config.Admin.APIKey)

	api.GET("/notifications", adminKey, c.AdminHandler.Notifications)
	api.GET("/users", adminKey, c.UserHandler.ListUsers)

	admin := api.Group("/admin")
	admin.Use(adminKey)
	{
		admin.GET("/blogs/pending", c.AdminHandler.ListPending)
		admin.POST("/blogs/:id/approve", c.AdminHandler.ApproveBlog)
		admin.POST("/blogs/:id/reject", c.AdminHandler.RejectBlog)

		admin.GET("/users/pending", c.UserHandler.ListPending)
		admin.POST("/users/:id/approve", c.UserHandler.ApproveUser)
		admin.POST("/users/:id/reject", c.UserHandler.RejectUser)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		// Redis being down only degrades caching, not the service.
		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}

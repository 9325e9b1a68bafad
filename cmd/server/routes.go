package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"vendor-hub.backend/internal/interfaces/http/handlers"
	"vendor-hub.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler     *handlers.AuthHandler
	merchantHandler *handlers.MerchantHandler
	documentHandler *handlers.DocumentHandler
	adminHandler    *handlers.AdminHandler
	reviewHandler   *handlers.ReviewHandler
	authMiddleware  gin.HandlerFunc
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID", "Idempotency-Key"},
		ExposeHeaders:    []string{"X-Request-ID", "X-Idempotency-Hit"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "vendor-hub-backend",
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/refresh", d.authHandler.RefreshToken)
		}

		// Merchant routes
		merchants := v1.Group("/merchants")
		{
			// Public onboarding routes
			merchants.POST("/register", d.merchantHandler.Register)
			merchants.GET("/setup/:token", d.merchantHandler.GetSetupInfo)
			merchants.POST("/setup/:token", d.merchantHandler.CompleteSetup)

			// Admin provisioning
			merchants.POST("/admin/create", d.authMiddleware, middleware.RequireAdmin(), d.merchantHandler.AdminCreate)

			// Bulk operations (admin, idempotent)
			adminBulk := merchants.Group("")
			adminBulk.Use(d.authMiddleware, middleware.RequireAdmin(), middleware.IdempotencyMiddleware())
			{
				adminBulk.POST("/bulk-verify", d.adminHandler.BulkVerify)
				adminBulk.PUT("/bulk-status", d.adminHandler.BulkSetStatus)
				adminBulk.POST("/bulk-featured", d.adminHandler.BulkSetFeatured)
			}

			// Admin listing and document stats
			merchants.GET("", d.authMiddleware, middleware.RequireAdmin(), d.merchantHandler.List)
			merchants.GET("/documents/stats", d.authMiddleware, middleware.RequireAdmin(), d.documentHandler.Stats)

			// Per-merchant routes (owner or admin, checked in handlers)
			protected := merchants.Group("/:id")
			protected.Use(d.authMiddleware)
			{
				protected.GET("", d.merchantHandler.Get)
				protected.PUT("", d.merchantHandler.Update)
				protected.PUT("/documents", d.documentHandler.Upload)
				protected.GET("/documents", d.documentHandler.List)
				protected.GET("/documents/:type/view", d.documentHandler.View)
				protected.GET("/reviews", d.reviewHandler.List)
				protected.POST("/reviews", d.reviewHandler.Create)

				// Admin-only actions
				protected.PUT("/verify", middleware.RequireAdmin(), d.merchantHandler.Verify)
				protected.GET("/history", middleware.RequireAdmin(), d.merchantHandler.History)
			}
		}

		// Document review (admin)
		documents := v1.Group("/documents")
		documents.Use(d.authMiddleware, middleware.RequireAdmin())
		{
			documents.PUT("/:id/review", d.documentHandler.Review)
		}

		// Review editing
		reviews := v1.Group("/reviews")
		reviews.Use(d.authMiddleware)
		{
			reviews.PUT("/:id", d.reviewHandler.Update)
			reviews.DELETE("/:id", d.reviewHandler.Delete)
		}
	}
}

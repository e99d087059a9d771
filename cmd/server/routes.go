package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"realty-crm.backend/internal/interfaces/http/handlers"
	"realty-crm.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler    *handlers.AuthHandler
	leadHandler    *handlers.LeadHandler
	projectHandler *handlers.ProjectHandler
	bookingHandler *handlers.BookingHandler
	adminHandler   *handlers.AdminHandler
	authMiddleware gin.HandlerFunc
	optionalAuth   gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", d.authHandler.Signup)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/logout", d.authHandler.Logout)
			auth.POST("/refresh", d.authHandler.Refresh)
			auth.GET("/session", d.authHandler.Session)
			auth.PUT("/password", d.authMiddleware, d.authHandler.ChangePassword)
			auth.PUT("/profile", d.authMiddleware, d.authHandler.UpdateProfile)
		}

		// Public lead intake (website forms, unauthenticated)
		v1.POST("/leads/public", d.optionalAuth, middleware.IdempotencyMiddleware(), d.leadHandler.PublicIntake)

		// Lead routes (protected)
		leads := v1.Group("/leads")
		leads.Use(d.authMiddleware)
		{
			leads.GET("", d.leadHandler.List)
			leads.GET("/:id", d.leadHandler.Get)
			leads.PUT("/:id", d.leadHandler.Update)
			leads.POST("/:id/follow-ups", d.leadHandler.CreateFollowUp)
			leads.GET("/:id/follow-ups", d.leadHandler.ListFollowUps)
			leads.GET("/:id/activities", d.leadHandler.ListActivities)
		}

		followUps := v1.Group("/follow-ups")
		followUps.Use(d.authMiddleware)
		{
			followUps.PUT("/:id", d.leadHandler.UpdateFollowUp)
		}

		// Project routes (public read, staff write)
		projects := v1.Group("/projects")
		projects.Use(d.optionalAuth)
		{
			projects.GET("", d.projectHandler.List)
			projects.GET("/:id", d.projectHandler.Get)
			projects.GET("/:id/units", d.projectHandler.ListUnits)
		}

		projectsAdmin := v1.Group("/projects")
		projectsAdmin.Use(d.authMiddleware, middleware.RequireStaff())
		{
			projectsAdmin.POST("", d.projectHandler.Create)
			projectsAdmin.PUT("/:id", d.projectHandler.Update)
			projectsAdmin.DELETE("/:id", d.projectHandler.Delete)
			projectsAdmin.POST("/:id/units", d.projectHandler.AddUnit)
		}

		units := v1.Group("/units")
		units.Use(d.authMiddleware, middleware.RequireStaff())
		{
			units.PUT("/:id", d.projectHandler.UpdateUnit)
		}

		// Booking routes (protected)
		bookings := v1.Group("/bookings")
		bookings.Use(d.authMiddleware)
		{
			bookings.POST("", d.bookingHandler.Create)
			bookings.GET("", d.bookingHandler.List)
			bookings.GET("/:id", d.bookingHandler.Get)
			bookings.PUT("/:id/status", middleware.RequireStaff(), d.bookingHandler.UpdateStatus)
			bookings.POST("/:id/payments", middleware.RequireStaff(), d.bookingHandler.RecordPayment)
			bookings.GET("/:id/payments", d.bookingHandler.ListPayments)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware, middleware.RequireAdmin())
		{
			admin.GET("/users", d.adminHandler.ListUsers)
			admin.PUT("/users/:id/active", d.adminHandler.SetUserActive)
			admin.GET("/stats", d.adminHandler.Stats)
		}
	}
}

// applyCORSMiddleware reflects allowed origins and answers preflights
func applyCORSMiddleware(r *gin.Engine, allowedOrigins []string) {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && allowed[origin] {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, Idempotency-Key, X-Request-ID")
			c.Header("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "realty-crm-backend",
			"version": "0.1.0",
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

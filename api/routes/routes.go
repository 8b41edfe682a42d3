package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/givebridge/givebridge-backend/internal/config"
	"github.com/givebridge/givebridge-backend/internal/handlers"
	"github.com/givebridge/givebridge-backend/internal/middleware"
	"github.com/givebridge/givebridge-backend/internal/models"
)

// HandlerDependencies carries the constructed handlers into the router.
type HandlerDependencies struct {
	AuthHandler         *handlers.AuthHandler
	UserHandler         *handlers.UserHandler
	DonationHandler     *handlers.DonationHandler
	NGOHandler          *handlers.NGOHandler
	NotificationHandler *handlers.NotificationHandler
	EventHandler        *handlers.EventHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})

		auth := public.Group("/auth")
		{
			auth.POST("/register", deps.AuthHandler.Register)
			auth.POST("/login", deps.AuthHandler.Login)
		}

		// The directory and event calendar are browsable without an account.
		public.GET("/ngos", deps.NGOHandler.List)
		public.GET("/ngos/nearby", deps.NGOHandler.Nearby)
		public.GET("/ngos/:id", deps.NGOHandler.GetByID)
		public.GET("/events", deps.EventHandler.List)
		public.GET("/events/:id", deps.EventHandler.GetByID)
		public.GET("/users/levels", deps.UserHandler.Levels)
		public.GET("/users/leaderboard", deps.UserHandler.Leaderboard)
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		donations := protected.Group("/donations")
		{
			donations.POST("", deps.DonationHandler.Create)
			donations.POST("/money", deps.DonationHandler.CreateMoney)
			donations.GET("", deps.DonationHandler.GetMine)
			donations.GET("/assigned", middleware.RequireRole(models.RoleNGO, models.RoleAdmin), deps.DonationHandler.GetAssigned)
			donations.GET("/:id", deps.DonationHandler.GetByID)
			donations.GET("/:id/activity", deps.DonationHandler.GetActivity)
			donations.POST("/:id/accept", middleware.RequireRole(models.RoleNGO, models.RoleAdmin), deps.DonationHandler.Accept)
			donations.POST("/:id/reject", middleware.RequireRole(models.RoleNGO, models.RoleAdmin), deps.DonationHandler.Reject)
			donations.POST("/:id/start", middleware.RequireRole(models.RoleNGO, models.RoleAdmin), deps.DonationHandler.Start)
			donations.POST("/:id/complete", middleware.RequireRole(models.RoleNGO, models.RoleAdmin), deps.DonationHandler.Complete)
			donations.POST("/:id/cancel", deps.DonationHandler.Cancel)
		}

		users := protected.Group("/users")
		{
			users.GET("/me", deps.UserHandler.GetMe)
			users.GET("/me/badges", deps.UserHandler.GetBadges)
			users.GET("/me/certificates", deps.UserHandler.GetCertificates)
			users.GET("/me/points", deps.UserHandler.GetPointHistory)
			users.GET("/:id", deps.UserHandler.GetByID)
		}

		ngos := protected.Group("/ngos")
		{
			ngos.POST("", middleware.RequireRole(models.RoleNGO, models.RoleAdmin), deps.NGOHandler.Register)
			ngos.PUT("/:id/active", middleware.RequireRole(models.RoleAdmin), deps.NGOHandler.SetActive)
		}

		notifications := protected.Group("/notifications")
		{
			notifications.GET("", deps.NotificationHandler.List)
			notifications.GET("/unread-count", deps.NotificationHandler.UnreadCount)
			notifications.PUT("/:id/read", deps.NotificationHandler.MarkRead)
		}

		events := protected.Group("/events")
		{
			events.POST("", deps.EventHandler.Create)
			events.POST("/:id/complete", deps.EventHandler.Complete)
		}
	}

	return router
}

package routes

import (
	"admin-console/firebase"
	"admin-console/handlers"
	"admin-console/middleware"
	"admin-console/remote"

	"github.com/gin-gonic/gin"
)

// Session is the operator session shared by the auth endpoints and the
// bearer-token guard.
type Session interface {
	handlers.OperatorSession
	middleware.SessionProvider
}

type Dependencies struct {
	Session    Session
	Promotions handlers.PromotionService
	// Storage may be nil; uploads then answer 503.
	Storage firebase.StorageClient
	Remote  *remote.Client
	// LoginLimiter is optional.
	LoginLimiter *middleware.RateLimiter
}

func SetupRoutes(r *gin.Engine, deps Dependencies) {
	// Initialize handlers
	adminAPI := remote.NewAdminService(deps.Remote)
	authHandler := &handlers.AuthHandler{Session: deps.Session}
	promotionHandler := &handlers.PromotionHandler{Store: deps.Promotions, Storage: deps.Storage}
	categoryHandler := &handlers.CategoryHandler{API: remote.NewCategoryService(deps.Remote)}
	verificationHandler := &handlers.VerificationHandler{API: remote.NewVerificationService(deps.Remote)}
	userHandler := &handlers.UserHandler{API: adminAPI}
	notificationHandler := &handlers.NotificationHandler{API: adminAPI}
	profileHandler := &handlers.ProfileHandler{API: adminAPI}
	dashboardHandler := &handlers.DashboardHandler{API: adminAPI}

	api := r.Group("/api")

	// Auth routes
	login := []gin.HandlerFunc{authHandler.Login}
	if deps.LoginLimiter != nil {
		login = append([]gin.HandlerFunc{deps.LoginLimiter.Middleware()}, login...)
	}
	api.POST("/auth/login", login...)
	api.POST("/auth/logout", middleware.RequireSession(deps.Session), authHandler.Logout)
	api.GET("/auth/me", middleware.RequireSession(deps.Session), authHandler.Me)

	// Admin routes (require the signed-in admin's bearer token)
	admin := api.Group("/admin")
	admin.Use(middleware.RequireSession(deps.Session))
	admin.Use(middleware.AdminMiddleware())
	{
		// Promotions
		admin.GET("/promotions", promotionHandler.GetPromotions)
		admin.POST("/promotions/reload", promotionHandler.ReloadPromotions)
		admin.GET("/promotions/:id", promotionHandler.GetPromotion)
		admin.POST("/promotions", promotionHandler.CreatePromotion)
		admin.PUT("/promotions/:id", promotionHandler.UpdatePromotion)
		admin.DELETE("/promotions/:id", promotionHandler.DeletePromotion)

		// Categories
		admin.GET("/categories", categoryHandler.GetCategories)
		admin.GET("/categories/:id", categoryHandler.GetCategory)
		admin.POST("/categories", categoryHandler.CreateCategory)
		admin.PUT("/categories/:id", categoryHandler.UpdateCategory)
		admin.DELETE("/categories/:id", categoryHandler.DeleteCategory)

		// Provider verification
		admin.GET("/verifications", verificationHandler.ListPending)
		admin.GET("/verifications/:id", verificationHandler.GetDetails)
		admin.PATCH("/verifications/:id/approve", verificationHandler.Approve)
		admin.PATCH("/verifications/:id/reject", verificationHandler.Reject)

		// Users
		admin.GET("/users", userHandler.ListUsers)
		admin.PATCH("/users/:id/block", userHandler.BlockUser)
		admin.PATCH("/users/:id/unblock", userHandler.UnblockUser)
		admin.POST("/users/:id/notifications", userHandler.NotifyUser)

		// Notifications
		admin.POST("/notifications/broadcast", notificationHandler.Broadcast)
		admin.POST("/notifications/direct", notificationHandler.SendDirect)
		admin.GET("/notifications/provider", notificationHandler.ProviderFeed)

		// Own profile
		admin.GET("/profile", profileHandler.GetProfile)
		admin.PUT("/profile", profileHandler.UpdateProfile)
		admin.PATCH("/profile/password", profileHandler.ChangePassword)

		// Dashboard
		admin.GET("/dashboard/overview", dashboardHandler.Overview)
		admin.GET("/dashboard/user-overview", dashboardHandler.UserOverview)
		admin.GET("/dashboard/recent-users", dashboardHandler.RecentUsers)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}

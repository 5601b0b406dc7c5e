package routes

import (
	"net/http"
	"time"

	"taskhub/auth"
	userRepo "taskhub/database/repository/user"
	"taskhub/handlers"
	"taskhub/middleware"
	"taskhub/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter builds a gin engine with the middleware stack every service
// shares: recovery, structured error handling, request ids, rate limiting
// and CORS.
func NewRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	RegisterHealthRoute(router)
	return router
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "dependencies": utils.GetHealthStatus()})
	})
}

// RegisterAuthRoutes registers the identity endpoints. Identity-management
// endpoints run behind RequireUser: the auth service owns the user store and
// re-checks that the token's subject still exists.
func RegisterAuthRoutes(r *gin.Engine, ah *handlers.AuthHandler, codec *auth.TokenCodec, users userRepo.UserRepository) {
	api := r.Group("/api/auth")
	api.Use(middleware.Authenticate(codec))
	{
		api.POST("/register", ah.RegisterHandler)
		api.POST("/login", ah.LoginHandler)

		protected := api.Group("")
		protected.Use(middleware.RequireUser(users))
		protected.GET("/profile", ah.ProfileHandler)
		protected.PUT("/profile/update", ah.UpdateProfileHandler)
		protected.PATCH("/profile/update", ah.UpdateProfileHandler)
		protected.POST("/validate", ah.ValidateTokenHandler)
		protected.GET("/users", ah.ListUsersHandler)
	}
}

// RegisterTaskRoutes registers the work-tracking endpoints. Principals come
// from the verified token alone; this service never consults a user store.
func RegisterTaskRoutes(r *gin.Engine, th *handlers.TaskHandler, codec *auth.TokenCodec) {
	projects := r.Group("/api/projects")
	projects.Use(middleware.Authenticate(codec), middleware.RequireAuthenticated())
	{
		projects.POST("", th.CreateProjectHandler)
		projects.GET("", th.ListProjectsHandler)
		projects.GET("/:id", th.GetProjectHandler)
		projects.PATCH("/:id", th.UpdateProjectHandler)
		projects.DELETE("/:id", th.DeleteProjectHandler)
		projects.GET("/:id/statistics", th.ProjectStatisticsHandler)
	}

	tasks := r.Group("/api/tasks")
	tasks.Use(middleware.Authenticate(codec), middleware.RequireAuthenticated())
	{
		tasks.POST("", th.CreateTaskHandler)
		tasks.GET("", th.ListTasksHandler)
		tasks.GET("/:id", th.GetTaskHandler)
		tasks.PATCH("/:id", th.UpdateTaskHandler)
		tasks.DELETE("/:id", th.DeleteTaskHandler)
		tasks.GET("/:id/comments", th.ListCommentsHandler)
		tasks.POST("/:id/comments", th.AddCommentHandler)
	}
}

// RegisterNotificationRoutes registers the notification endpoints.
func RegisterNotificationRoutes(r *gin.Engine, nh *handlers.NotificationHandler, codec *auth.TokenCodec) {
	api := r.Group("/api/notifications")
	api.Use(middleware.Authenticate(codec), middleware.RequireAuthenticated())
	{
		api.GET("", nh.ListNotificationsHandler)
		api.POST("/create", nh.CreateNotificationHandler)
		api.GET("/unread-count", nh.UnreadCountHandler)
		api.POST("/:id/read", nh.MarkReadHandler)
		api.POST("/read-all", nh.MarkAllReadHandler)
	}
}

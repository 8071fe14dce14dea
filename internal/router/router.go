package router

import (
	"polemica/internal/handlers"
	"polemica/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	authHandler := handlers.NewAuthHandler()
	topicHandler := handlers.NewTopicHandler()
	voteHandler := handlers.NewVoteHandler()
	commentHandler := handlers.NewCommentHandler()
	bookmarkHandler := handlers.NewBookmarkHandler()
	notificationHandler := handlers.NewNotificationHandler()
	reportHandler := handlers.NewReportHandler()
	adminHandler := handlers.NewAdminHandler()

	api := r.Group("/api")

	// Public routes
	api.POST("/signup", authHandler.Signup)
	api.POST("/login", authHandler.Login)
	api.POST("/logout", authHandler.Logout)

	api.GET("/topics", topicHandler.List)
	api.GET("/topics/:slug", topicHandler.Get)
	api.GET("/topics/:slug/stats", topicHandler.Stats)
	api.GET("/topics/:slug/comments", commentHandler.List)

	// Authenticated routes
	authorized := api.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/me", authHandler.Me)

		authorized.POST("/topics", topicHandler.Create)
		authorized.POST("/topics/:slug/vote", voteHandler.Cast)
		authorized.DELETE("/topics/:slug/vote", voteHandler.Clear)
		authorized.POST("/topics/:slug/bookmark", bookmarkHandler.Toggle)
		authorized.GET("/bookmarks", bookmarkHandler.List)

		authorized.POST("/comments", commentHandler.Create)
		authorized.PATCH("/comments/:id", commentHandler.Update)
		authorized.DELETE("/comments/:id", commentHandler.Delete)
		authorized.POST("/comments/:id/vote", commentHandler.Vote)

		authorized.POST("/reports", reportHandler.Create)

		authorized.GET("/notifications", notificationHandler.List)
		authorized.POST("/notifications/:id/read", notificationHandler.Read)
		authorized.POST("/notifications/read-all", notificationHandler.ReadAll)
	}

	// Moderation routes
	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired())
	{
		admin.PATCH("/topics/:slug/status", middleware.ModRequired(), adminHandler.SetTopicStatus)
		admin.GET("/reports", middleware.ModRequired(), adminHandler.ListReports)
		admin.POST("/users/:id/punish", middleware.AdminRequired(), adminHandler.PunishUser)
	}
}

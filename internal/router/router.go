package router

import (
	"github.com/gin-gonic/gin"

	"campusanon/internal/handler"
	"campusanon/internal/middleware"
	"campusanon/internal/pkg"
	"campusanon/internal/repository/redis"
)

// Handlers bundles the wired handler set for route registration.
type Handlers struct {
	Auth          *handler.AuthHandler
	Community     *handler.CommunityHandler
	Post          *handler.PostHandler
	Comment       *handler.CommentHandler
	PostLike      *handler.PostLikeHandler
	Moderation    *handler.ModerationHandler
	Admin         *handler.AdminHandler
	Notifications *handler.NotificationHandler
}

func New(h Handlers, tokens *pkg.JWTManager, sessions *redis.SessionRepository) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RequestID())

	auth := middleware.Auth(tokens, sessions)

	// OTP auth
	otpGroup := r.Group("/api/otp")
	{
		otpGroup.POST("/send", h.Auth.SendOTP)
		otpGroup.POST("/verify", h.Auth.VerifyOTP)
	}

	// token refresh
	tokenGroup := r.Group("/api/token")
	{
		tokenGroup.POST("/refresh", h.Auth.Refresh)
	}

	// authenticated surface
	authGroup := r.Group("/api")
	authGroup.Use(auth)
	{
		authGroup.GET("/me", h.Auth.Me)
		authGroup.GET("/communities", h.Community.Mine)
		authGroup.GET("/communities/search", h.Community.Search)
		authGroup.GET("/notifications", h.Notifications.List)
	}

	// posts
	postGroup := r.Group("/api/post")
	postGroup.Use(auth)
	{
		postGroup.POST("/create", h.Post.Create)
		postGroup.GET("/feed/:community_id", h.Post.Feed)
		postGroup.DELETE("/:post_id", h.Post.Delete)
		postGroup.POST("/:post_id/like", h.PostLike.Toggle)
		postGroup.POST("/:post_id/report", h.Moderation.ReportPost)
		postGroup.POST("/:post_id/comment", h.Comment.Create)
		postGroup.GET("/:post_id/comments", h.Comment.ListByPost)
	}

	// comments
	commentGroup := r.Group("/api/comment")
	commentGroup.Use(auth)
	{
		commentGroup.POST("/:comment_id/report", h.Moderation.ReportComment)
	}

	// admin overrides
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(auth, middleware.AdminOnly())
	{
		adminGroup.POST("/post/:post_id/unhide", h.Admin.UnhidePost)
		adminGroup.POST("/comment/:comment_id/unhide", h.Admin.UnhideComment)
		adminGroup.POST("/user/:user_id/ban", h.Admin.BanUser)
		adminGroup.POST("/user/:user_id/unban", h.Admin.UnbanUser)
	}

	return r
}

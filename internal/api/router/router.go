package router

import (
	"vidtube-go/internal/api/handler"

	"github.com/gin-gonic/gin"
)

// Setup 注册所有业务路由
// rateLimit 为 nil 时评论写操作不限流
func Setup(
	r *gin.Engine,
	commentHandler *handler.CommentHandler,
	dashboardHandler *handler.DashboardHandler,
	authMiddleware gin.HandlerFunc,
	rateLimit gin.HandlerFunc,
) {
	v1 := r.Group("/api/v1", authMiddleware)

	writeChain := []gin.HandlerFunc{}
	if rateLimit != nil {
		writeChain = append(writeChain, rateLimit)
	}

	// --- 评论模块 ---
	comments := v1.Group("/comments")
	{
		comments.GET("/:videoId", commentHandler.ListByVideo)

		commentsWrite := comments.Group("", writeChain...)
		{
			commentsWrite.POST("/:videoId", commentHandler.Create)
			commentsWrite.PATCH("/:videoId/c/:commentId", commentHandler.Update)
			commentsWrite.DELETE("/c/:commentId", commentHandler.Delete)
		}
	}

	// --- 频道面板模块 ---
	dashboard := v1.Group("/dashboard")
	{
		dashboard.GET("/stats", dashboardHandler.GetChannelStats)
		dashboard.GET("/videos", dashboardHandler.GetChannelVideos)
	}
}

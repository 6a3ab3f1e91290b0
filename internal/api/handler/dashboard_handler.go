package handler

import (
	"context"

	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/api/response"
	"vidtube-go/internal/model"
	"vidtube-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DashboardService interface {
	GetChannelStats(ctx context.Context, p *model.Principal) (*dto.ChannelStats, error)
	GetChannelVideos(ctx context.Context, p *model.Principal) ([]model.ChannelVideo, error)
}

type DashboardHandler struct {
	dashboardService DashboardService
}

func NewDashboardHandler(dashboardService DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetChannelStats 获取当前用户频道统计
// @Summary 频道统计
// @Description 当前用户频道的总播放量、视频数、订阅数和点赞数
// @Tags 频道面板
// @Produce json
// @Success 200 {object} response.Response{data=dto.ChannelStats}
// @Failure 401 {object} response.Response
// @Security BearerAuth
// @Router /dashboard/stats [get]
func (h *DashboardHandler) GetChannelStats(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	stats, err := h.dashboardService.GetChannelStats(c.Request.Context(), p)
	if err != nil {
		logger.Error("Get channel stats failed", zap.String("user_id", p.ID.Hex()), zap.Error(err))
		response.InternalError(c, "获取频道统计失败")
		return
	}

	response.OK(c, "获取频道统计成功", stats)
}

// GetChannelVideos 获取当前用户频道的视频列表
// @Summary 频道视频列表
// @Tags 频道面板
// @Produce json
// @Success 200 {object} response.Response{data=[]model.ChannelVideo}
// @Failure 401 {object} response.Response
// @Security BearerAuth
// @Router /dashboard/videos [get]
func (h *DashboardHandler) GetChannelVideos(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	videos, err := h.dashboardService.GetChannelVideos(c.Request.Context(), p)
	if err != nil {
		logger.Error("Get channel videos failed", zap.String("user_id", p.ID.Hex()), zap.Error(err))
		response.InternalError(c, "获取频道视频失败")
		return
	}

	response.OK(c, "获取频道视频成功", videos)
}

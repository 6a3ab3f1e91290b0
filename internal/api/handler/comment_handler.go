package handler

import (
	"context"
	"errors"

	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/api/response"
	"vidtube-go/internal/model"
	"vidtube-go/internal/service"
	"vidtube-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CommentService interface {
	ListByVideo(ctx context.Context, videoID string, page, limit int) (*dto.CommentListData, error)
	Create(ctx context.Context, p *model.Principal, videoID, content string) (*dto.CommentInfo, error)
	Update(ctx context.Context, p *model.Principal, videoID, commentID, content string) (*dto.CommentInfo, error)
	Delete(ctx context.Context, p *model.Principal, commentID string) (*dto.CommentDeleteResult, error)
}

type CommentHandler struct {
	commentService CommentService
}

func NewCommentHandler(commentService CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// ListByVideo 获取视频评论列表
// @Summary 获取视频评论列表
// @Tags 评论
// @Produce json
// @Param videoId path string true "视频ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=dto.CommentListData}
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /comments/{videoId} [get]
func (h *CommentHandler) ListByVideo(c *gin.Context) {
	page, limit := parsePagination(c)

	data, err := h.commentService.ListByVideo(c.Request.Context(), c.Param("videoId"), page, limit)
	if err != nil {
		handleCommentError(c, err)
		return
	}

	response.OK(c, "获取评论列表成功", data)
}

// Create POST /api/v1/comments/:videoId
func (h *CommentHandler) Create(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req dto.CommentContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	info, err := h.commentService.Create(c.Request.Context(), p, c.Param("videoId"), req.Content)
	if err != nil {
		handleCommentError(c, err)
		return
	}

	response.OK(c, "发表评论成功", info)
}

// Update PATCH /api/v1/comments/:videoId/c/:commentId
func (h *CommentHandler) Update(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req dto.CommentContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	info, err := h.commentService.Update(c.Request.Context(), p, c.Param("videoId"), c.Param("commentId"), req.Content)
	if err != nil {
		handleCommentError(c, err)
		return
	}

	response.OK(c, "更新评论成功", info)
}

// Delete DELETE /api/v1/comments/c/:commentId
func (h *CommentHandler) Delete(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	result, err := h.commentService.Delete(c.Request.Context(), p, c.Param("commentId"))
	if err != nil {
		handleCommentError(c, err)
		return
	}

	response.OK(c, "删除评论成功", result)
}

func handleCommentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidVideoID),
		errors.Is(err, service.ErrInvalidCommentID),
		errors.Is(err, service.ErrVideoNotFound),
		errors.Is(err, service.ErrCommentNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrEmptyContent),
		errors.Is(err, service.ErrPageOutOfRange):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrCommentNoPermission):
		response.Forbidden(c, err.Error())
	default:
		logger.Error("Comment operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}

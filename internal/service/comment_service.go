package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"vidtube-go/internal/api/dto"
	infraKafka "vidtube-go/internal/infra/kafka"
	"vidtube-go/internal/model"
	"vidtube-go/pkg/logger"
	"vidtube-go/pkg/utils"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"
)

type CommentStore interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetByID(ctx context.Context, id bson.ObjectID) (*model.Comment, error)
	UpdateContent(ctx context.Context, id bson.ObjectID, content string) (*model.Comment, error)
	Delete(ctx context.Context, id bson.ObjectID) (bool, error)
	ListByVideo(ctx context.Context, videoID bson.ObjectID, skip, limit int64) ([]model.CommentWithOwner, int64, error)
	CountLikes(ctx context.Context, id bson.ObjectID) (int64, error)
}

type CommentLikeStore interface {
	DeleteByComment(ctx context.Context, commentID bson.ObjectID) (int64, error)
}

type VideoLookup interface {
	Exists(ctx context.Context, id bson.ObjectID) (bool, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event *infraKafka.CommentEvent) error
}

// CommentAuthorizer 判断当前用户能否修改/删除评论
type CommentAuthorizer func(p *model.Principal, c *model.Comment) bool

// OwnerOrAdmin 评论作者本人或管理员可以操作
func OwnerOrAdmin(p *model.Principal, c *model.Comment) bool {
	return p != nil && (p.ID == c.Owner || p.IsAdmin())
}

type CommentService struct {
	commentRepo CommentStore
	likeRepo    CommentLikeStore
	videoRepo   VideoLookup
	authorize   CommentAuthorizer
	events      EventPublisher
}

func NewCommentService(commentRepo CommentStore, likeRepo CommentLikeStore, videoRepo VideoLookup, authorize CommentAuthorizer, events EventPublisher) *CommentService {
	if authorize == nil {
		authorize = OwnerOrAdmin
	}
	return &CommentService{
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
		videoRepo:   videoRepo,
		authorize:   authorize,
		events:      events,
	}
}

// ListByVideo 分页获取视频评论
func (s *CommentService) ListByVideo(ctx context.Context, videoIDHex string, page, limit int) (*dto.CommentListData, error) {
	videoID, ok := utils.ParseID(videoIDHex)
	if !ok {
		return nil, ErrInvalidVideoID
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	if int64(page-1) > math.MaxInt64/int64(limit) {
		return nil, ErrPageOutOfRange
	}
	skip := int64(page-1) * int64(limit)
	comments, total, err := s.commentRepo.ListByVideo(ctx, videoID, skip, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	return &dto.CommentListData{
		Comments:   comments,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + int64(limit) - 1) / int64(limit),
	}, nil
}

// Create 发表评论
func (s *CommentService) Create(ctx context.Context, p *model.Principal, videoIDHex, content string) (*dto.CommentInfo, error) {
	videoID, ok := utils.ParseID(videoIDHex)
	if !ok {
		return nil, ErrInvalidVideoID
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	exists, err := s.videoRepo.Exists(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("check video: %w", err)
	}
	if !exists {
		return nil, ErrVideoNotFound
	}

	comment := &model.Comment{
		Content: content,
		Video:   videoID,
		Owner:   p.ID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.publish(ctx, infraKafka.CommentCreated, comment, 0)

	return toCommentInfo(comment, 0), nil
}

// Update 更新评论内容，评论必须属于路径中的视频
func (s *CommentService) Update(ctx context.Context, p *model.Principal, videoIDHex, commentIDHex, content string) (*dto.CommentInfo, error) {
	videoID, ok := utils.ParseID(videoIDHex)
	if !ok {
		return nil, ErrInvalidVideoID
	}
	commentID, ok := utils.ParseID(commentIDHex)
	if !ok {
		return nil, ErrInvalidCommentID
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	existing, err := s.loadComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if existing.Video != videoID {
		return nil, ErrCommentNotFound
	}
	if !s.authorize(p, existing) {
		return nil, ErrCommentNoPermission
	}

	updated, err := s.commentRepo.UpdateContent(ctx, commentID, content)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("update comment: %w", err)
	}

	likes, err := s.commentRepo.CountLikes(ctx, commentID)
	if err != nil {
		logger.Warn("Count comment likes failed", zap.String("comment_id", commentIDHex), zap.Error(err))
	}

	s.publish(ctx, infraKafka.CommentUpdated, updated, 0)

	return toCommentInfo(updated, likes), nil
}

// Delete 删除评论并级联删除该评论的全部点赞
func (s *CommentService) Delete(ctx context.Context, p *model.Principal, commentIDHex string) (*dto.CommentDeleteResult, error) {
	commentID, ok := utils.ParseID(commentIDHex)
	if !ok {
		return nil, ErrInvalidCommentID
	}

	existing, err := s.loadComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if !s.authorize(p, existing) {
		return nil, ErrCommentNoPermission
	}

	// 先删点赞再删评论，级联失败时评论仍在，重试可以完成删除
	removed, err := s.likeRepo.DeleteByComment(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("delete likes of comment %s: %w", commentIDHex, err)
	}

	deleted, err := s.commentRepo.Delete(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("delete comment: %w", err)
	}
	if !deleted {
		return nil, ErrCommentNotFound
	}

	s.publish(ctx, infraKafka.CommentDeleted, existing, removed)

	return &dto.CommentDeleteResult{IsDeleted: true}, nil
}

func (s *CommentService) loadComment(ctx context.Context, id bson.ObjectID) (*model.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return comment, nil
}

// publish 事件发送失败只记录日志，不影响请求结果
func (s *CommentService) publish(ctx context.Context, eventType string, c *model.Comment, likesRemoved int64) {
	if s.events == nil {
		return
	}
	event := &infraKafka.CommentEvent{
		Type:         eventType,
		CommentID:    c.ID.Hex(),
		VideoID:      c.Video.Hex(),
		OwnerID:      c.Owner.Hex(),
		LikesRemoved: likesRemoved,
	}
	if eventType != infraKafka.CommentDeleted {
		event.Content = c.Content
		event.Timestamp = c.UpdatedAt.UnixMilli()
	}
	if err := s.events.Publish(ctx, event); err != nil {
		logger.Warn("Publish comment event failed",
			zap.String("type", eventType),
			zap.String("comment_id", event.CommentID),
			zap.Error(err),
		)
	}
}

func toCommentInfo(c *model.Comment, likesCount int64) *dto.CommentInfo {
	return &dto.CommentInfo{
		ID:         c.ID,
		Content:    c.Content,
		Video:      c.Video,
		Owner:      c.Owner,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
		LikesCount: likesCount,
	}
}

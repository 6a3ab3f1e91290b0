package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	infraKafka "vidtube-go/internal/infra/kafka"
	"vidtube-go/pkg/logger"

	"go.uber.org/zap"
)

// ESCommentDoc ES 评论文档结构
type ESCommentDoc struct {
	CommentID string `json:"comment_id"`
	VideoID   string `json:"video_id"`
	OwnerID   string `json:"owner_id"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"created_at,omitempty"`
	UpdatedAt int64  `json:"updated_at"`
}

func eventToDoc(e *infraKafka.CommentEvent) *ESCommentDoc {
	doc := &ESCommentDoc{
		CommentID: e.CommentID,
		VideoID:   e.VideoID,
		OwnerID:   e.OwnerID,
		Content:   e.Content,
		UpdatedAt: e.Timestamp,
	}
	if e.Type == infraKafka.CommentCreated {
		doc.CreatedAt = e.Timestamp
	}
	return doc
}

// ApplyCommentEvent 将一条评论事件同步到 ES
func ApplyCommentEvent(ctx context.Context, e *infraKafka.CommentEvent) error {
	switch e.Type {
	case infraKafka.CommentCreated:
		return indexComment(ctx, eventToDoc(e))
	case infraKafka.CommentUpdated:
		return updateComment(ctx, e)
	case infraKafka.CommentDeleted:
		return deleteComment(ctx, e.CommentID)
	default:
		logger.Warn("Unknown comment event type", zap.String("type", e.Type))
		return nil
	}
}

func indexComment(ctx context.Context, doc *ESCommentDoc) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	resp, err := Index(ctx, CommentsIndex(), doc.CommentID, bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("index document failed: %s", resp.String())
	}

	logger.Debug("Comment synced to ES", zap.String("comment_id", doc.CommentID))
	return nil
}

// updateComment 只更新内容和时间，文档不存在时按完整文档写入
func updateComment(ctx context.Context, e *infraKafka.CommentEvent) error {
	doc := eventToDoc(e)
	body, err := json.Marshal(map[string]interface{}{
		"doc": map[string]interface{}{
			"content":    doc.Content,
			"updated_at": doc.UpdatedAt,
		},
		"upsert": doc,
	})
	if err != nil {
		return err
	}

	resp, err := Update(ctx, CommentsIndex(), e.CommentID, bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("update document failed: %s", resp.String())
	}
	return nil
}

func deleteComment(ctx context.Context, commentID string) error {
	resp, err := Delete(ctx, CommentsIndex(), commentID)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() && resp.StatusCode != 404 {
		return fmt.Errorf("delete document failed: %s", resp.String())
	}
	return nil
}

package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vidtube-go/internal/config"
	"vidtube-go/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// 评论事件类型
const (
	CommentCreated = "comment.created"
	CommentUpdated = "comment.updated"
	CommentDeleted = "comment.deleted"
)

// CommentEvent 评论变更事件消息体
type CommentEvent struct {
	Type         string `json:"type"`
	CommentID    string `json:"comment_id"`
	VideoID      string `json:"video_id"`
	OwnerID      string `json:"owner_id"`
	Content      string `json:"content,omitempty"`
	LikesRemoved int64  `json:"likes_removed,omitempty"`
	Timestamp    int64  `json:"timestamp"`
}

var producer *kafka.Writer

// InitProducer 初始化 Kafka 生产者
func InitProducer(cfg *config.KafkaConfig) error {
	if len(cfg.Brokers) == 0 {
		return fmt.Errorf("kafka brokers is empty")
	}

	producer = &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}

	logger.Info("Kafka producer initialized",
		zap.Strings("brokers", cfg.Brokers),
	)

	return nil
}

// CommentPublisher 将评论事件写入指定 topic，按评论 ID 分区保证同一评论的事件有序
type CommentPublisher struct {
	topic string
}

func NewCommentPublisher(topic string) *CommentPublisher {
	return &CommentPublisher{topic: topic}
}

func (p *CommentPublisher) Publish(ctx context.Context, event *CommentEvent) error {
	if producer == nil {
		return fmt.Errorf("kafka producer not initialized")
	}
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().UnixMilli()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal comment event: %w", err)
	}

	msg := kafka.Message{
		Topic: p.topic,
		Key:   []byte(event.CommentID),
		Value: payload,
	}
	if err := producer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to send comment event: %w", err)
	}

	logger.Debug("Comment event sent",
		zap.String("type", event.Type),
		zap.String("comment_id", event.CommentID),
		zap.String("topic", p.topic),
	)
	return nil
}

// CloseProducer 关闭生产者
func CloseProducer() error {
	if producer == nil {
		return nil
	}
	logger.Info("Kafka producer closed")
	return producer.Close()
}

package elasticsearch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vidtube-go/internal/config"
	"vidtube-go/pkg/logger"

	"go.uber.org/zap"
)

const commentsIndexMapping = `{
	"settings": {
		"number_of_shards": 1,
		"number_of_replicas": 0
	},
	"mappings": {
		"properties": {
			"comment_id": {"type": "keyword"},
			"video_id": {"type": "keyword"},
			"owner_id": {"type": "keyword"},
			"content": {"type": "text"},
			"created_at": {"type": "date", "format": "epoch_millis"},
			"updated_at": {"type": "date", "format": "epoch_millis"}
		}
	}
}`

// CommentsIndex 返回评论索引名
func CommentsIndex() string {
	if name := config.GetElasticsearch().Index["comments"]; name != "" {
		return name
	}
	return "comments"
}

// EnsureCommentsIndex 确保评论索引存在，不存在则创建
func EnsureCommentsIndex(ctx context.Context) error {
	indexName := CommentsIndex()

	exists, err := IndicesExists(ctx, indexName)
	if err != nil {
		return fmt.Errorf("check index exists: %w", err)
	}
	if exists {
		logger.Info("Elasticsearch comments index already exists", zap.String("index", indexName))
		return nil
	}

	resp, err := IndicesCreate(ctx, indexName, strings.NewReader(commentsIndexMapping))
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("create index failed: %s", resp.String())
	}

	logger.Info("Elasticsearch comments index created", zap.String("index", indexName))
	return nil
}

// InitIndexes 初始化所有索引（启动时调用）
func InitIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return EnsureCommentsIndex(ctx)
}

package mongo

import (
	"context"
	"fmt"

	"vidtube-go/internal/config"
	"vidtube-go/pkg/logger"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.uber.org/zap"
)

// 集合名称
const (
	CollectionComments      = "comments"
	CollectionLikes         = "likes"
	CollectionVideos        = "videos"
	CollectionSubscriptions = "subscriptions"
	CollectionUsers         = "users"
)

var (
	client *mongo.Client
	db     *mongo.Database
)

// Init 初始化文档数据库连接
func Init(cfg *config.MongoConfig) error {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeoutDuration())
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}
	if cfg.MinPoolSize > 0 {
		opts.SetMinPoolSize(cfg.MinPoolSize)
	}

	c, err := mongo.Connect(opts)
	if err != nil {
		return fmt.Errorf("failed to connect mongo: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeoutDuration())
	defer cancel()

	if err := c.Ping(ctx, readpref.Primary()); err != nil {
		_ = c.Disconnect(context.Background())
		return fmt.Errorf("failed to ping mongo: %w", err)
	}

	client = c
	db = c.Database(cfg.Database)

	logger.Info("Mongo connected",
		zap.String("database", cfg.Database),
		zap.Uint64("max_pool_size", cfg.MaxPoolSize),
	)

	return nil
}

// EnsureIndexes 创建查询和级联删除依赖的索引
func EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		CollectionComments: {
			{Keys: bson.D{{Key: "video", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "owner", Value: 1}}},
		},
		CollectionLikes: {
			{Keys: bson.D{{Key: "comment", Value: 1}}},
			{Keys: bson.D{{Key: "video", Value: 1}}},
		},
		CollectionVideos: {
			{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		CollectionSubscriptions: {
			{Keys: bson.D{{Key: "channel", Value: 1}}},
		},
	}

	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", name, err)
		}
	}

	logger.Info("Mongo indexes ensured", zap.Int("collections", len(indexes)))
	return nil
}

// Close 关闭连接
func Close() error {
	if client == nil {
		return nil
	}
	logger.Info("Mongo connection closed")
	return client.Disconnect(context.Background())
}

// Get 获取数据库实例
func Get() *mongo.Database {
	return db
}

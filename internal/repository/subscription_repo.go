package repository

import (
	"context"

	infraMongo "vidtube-go/internal/infra/mongo"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type SubscriptionRepository struct {
	db *mongo.Database
}

func NewSubscriptionRepository(db *mongo.Database) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// CountSubscribers 统计订阅该频道的用户数
func (r *SubscriptionRepository) CountSubscribers(ctx context.Context, channelID bson.ObjectID) (int64, error) {
	return CountRelated(ctx, r.db, channelID, infraMongo.CollectionSubscriptions, "channel")
}

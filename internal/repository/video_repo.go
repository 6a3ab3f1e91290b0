package repository

import (
	"context"

	infraMongo "vidtube-go/internal/infra/mongo"
	"vidtube-go/internal/model"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type VideoRepository struct {
	coll *mongo.Collection
}

func NewVideoRepository(db *mongo.Database) *VideoRepository {
	return &VideoRepository{coll: db.Collection(infraMongo.CollectionVideos)}
}

// Exists 判断视频是否存在
func (r *VideoRepository) Exists(ctx context.Context, id bson.ObjectID) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{{Key: "_id", Value: id}}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ChannelTotals 频道视频数与总播放量
type ChannelTotals struct {
	TotalVideos int64 `bson:"totalVideos"`
	TotalViews  int64 `bson:"totalViews"`
}

// TotalsByOwner 统计频道的视频总数与总播放量，无视频时返回零值
func (r *VideoRepository) TotalsByOwner(ctx context.Context, ownerID bson.ObjectID) (*ChannelTotals, error) {
	cursor, err := r.coll.Aggregate(ctx, channelTotalsPipeline(ownerID))
	if err != nil {
		return nil, err
	}

	var rows []ChannelTotals
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &ChannelTotals{}, nil
	}
	return &rows[0], nil
}

// ListByOwner 获取频道全部视频，附带点赞数与评论数
func (r *VideoRepository) ListByOwner(ctx context.Context, ownerID bson.ObjectID) ([]model.ChannelVideo, error) {
	cursor, err := r.coll.Aggregate(ctx, channelVideosPipeline(ownerID))
	if err != nil {
		return nil, err
	}

	videos := make([]model.ChannelVideo, 0)
	if err := cursor.All(ctx, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

func channelTotalsPipeline(ownerID bson.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		matchStage(bson.D{{Key: "owner", Value: ownerID}}),
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "totalVideos", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "totalViews", Value: bson.D{{Key: "$sum", Value: "$views"}}},
		}}},
	}
}

func channelVideosPipeline(ownerID bson.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		matchStage(bson.D{{Key: "owner", Value: ownerID}}),
		sortStage(bson.D{{Key: "createdAt", Value: -1}}),
		lookupCount(infraMongo.CollectionLikes, "video", "likes"),
		lookupCount(infraMongo.CollectionComments, "video", "comments"),
		projectStage(bson.D{
			{Key: "title", Value: 1},
			{Key: "thumbnail", Value: 1},
			{Key: "duration", Value: 1},
			{Key: "views", Value: 1},
			{Key: "createdAt", Value: 1},
			{Key: "updatedAt", Value: 1},
			{Key: "isPublished", Value: 1},
			{Key: "likesCount", Value: sizeOf("likes")},
			{Key: "commentsCount", Value: sizeOf("comments")},
		}),
	}
}

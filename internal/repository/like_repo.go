package repository

import (
	"context"

	infraMongo "vidtube-go/internal/infra/mongo"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type LikeRepository struct {
	coll *mongo.Collection
}

func NewLikeRepository(db *mongo.Database) *LikeRepository {
	return &LikeRepository{coll: db.Collection(infraMongo.CollectionLikes)}
}

// DeleteByComment 删除某条评论的全部点赞
func (r *LikeRepository) DeleteByComment(ctx context.Context, commentID bson.ObjectID) (int64, error) {
	result, err := r.coll.DeleteMany(ctx, bson.D{{Key: "comment", Value: commentID}})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// CountForChannel 统计频道所有视频收到的点赞数
func (r *LikeRepository) CountForChannel(ctx context.Context, ownerID bson.ObjectID) (int64, error) {
	cursor, err := r.coll.Aggregate(ctx, channelLikesPipeline(ownerID))
	if err != nil {
		return 0, err
	}

	var rows []struct {
		TotalLikes int64 `bson:"totalLikes"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].TotalLikes, nil
}

func channelLikesPipeline(ownerID bson.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		matchStage(bson.D{{Key: "video", Value: bson.D{{Key: "$exists", Value: true}, {Key: "$ne", Value: nil}}}}),
		lookupStage(infraMongo.CollectionVideos, "video", "_id", "ownedVideo", mongo.Pipeline{
			matchStage(bson.D{{Key: "owner", Value: ownerID}}),
			projectStage(bson.D{{Key: "_id", Value: 1}}),
		}),
		matchStage(bson.D{{Key: "ownedVideo.0", Value: bson.D{{Key: "$exists", Value: true}}}}),
		countStage("totalLikes"),
	}
}

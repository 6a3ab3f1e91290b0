package repository

import (
	"context"
	"time"

	infraMongo "vidtube-go/internal/infra/mongo"
	"vidtube-go/internal/model"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type CommentRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{db: db, coll: db.Collection(infraMongo.CollectionComments)}
}

// now 返回毫秒精度的 UTC 时间，与文档库存储精度一致
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	ts := now()
	comment.ID = bson.NewObjectID()
	comment.CreatedAt = ts
	comment.UpdatedAt = ts

	_, err := r.coll.InsertOne(ctx, comment)
	return err
}

func (r *CommentRepository) GetByID(ctx context.Context, id bson.ObjectID) (*model.Comment, error) {
	var comment model.Comment
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// UpdateContent 更新评论内容，返回更新后的文档
func (r *CommentRepository) UpdateContent(ctx context.Context, id bson.ObjectID, content string) (*model.Comment, error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "content", Value: content},
		{Key: "updatedAt", Value: now()},
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var comment model.Comment
	if err := r.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, update, opts).Decode(&comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// Delete 删除评论，返回是否确实删除了文档
func (r *CommentRepository) Delete(ctx context.Context, id bson.ObjectID) (bool, error) {
	result, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

// ListByVideo 分页获取视频评论，附带作者信息与点赞数
func (r *CommentRepository) ListByVideo(ctx context.Context, videoID bson.ObjectID, skip, limit int64) ([]model.CommentWithOwner, int64, error) {
	total, err := r.coll.CountDocuments(ctx, bson.D{{Key: "video", Value: videoID}})
	if err != nil {
		return nil, 0, err
	}

	cursor, err := r.coll.Aggregate(ctx, commentListPipeline(videoID, skip, limit))
	if err != nil {
		return nil, 0, err
	}

	comments := make([]model.CommentWithOwner, 0)
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}

// CountLikes 统计评论的点赞数
func (r *CommentRepository) CountLikes(ctx context.Context, id bson.ObjectID) (int64, error) {
	return CountRelated(ctx, r.db, id, infraMongo.CollectionLikes, "comment")
}

func commentListPipeline(videoID bson.ObjectID, skip, limit int64) mongo.Pipeline {
	return mongo.Pipeline{
		matchStage(bson.D{{Key: "video", Value: videoID}}),
		sortStage(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}),
		skipStage(skip),
		limitStage(limit),
		lookupCount(infraMongo.CollectionLikes, "comment", "likes"),
		lookupStage(infraMongo.CollectionUsers, "owner", "_id", "owner", mongo.Pipeline{
			projectStage(bson.D{
				{Key: "username", Value: 1},
				{Key: "fullName", Value: 1},
				{Key: "avatar", Value: 1},
				{Key: "_id", Value: 1},
			}),
		}),
		projectStage(bson.D{
			{Key: "content", Value: 1},
			{Key: "owner", Value: firstOf("owner")},
			{Key: "createdAt", Value: 1},
			{Key: "updatedAt", Value: 1},
			{Key: "likesCount", Value: sizeOf("likes")},
		}),
	}
}

package repository

import (
	"context"

	infraMongo "vidtube-go/internal/infra/mongo"
	"vidtube-go/internal/model"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(infraMongo.CollectionUsers)}
}

// GetByID 获取用户展示信息（不含密码等敏感字段）
func (r *UserRepository) GetByID(ctx context.Context, id bson.ObjectID) (*model.User, error) {
	opts := options.FindOne().SetProjection(bson.D{
		{Key: "password", Value: 0},
		{Key: "refreshToken", Value: 0},
	})

	var user model.User
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}, opts).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

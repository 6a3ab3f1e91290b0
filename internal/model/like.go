package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Like 点赞文档，comment 与 video 二选一
type Like struct {
	ID        bson.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Comment   *bson.ObjectID `bson:"comment,omitempty" json:"comment,omitempty"`
	Video     *bson.ObjectID `bson:"video,omitempty" json:"video,omitempty"`
	Owner     bson.ObjectID  `bson:"owner" json:"owner"`
	CreatedAt time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time      `bson:"updatedAt" json:"updatedAt"`
}

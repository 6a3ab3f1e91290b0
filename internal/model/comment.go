package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Comment 评论文档
type Comment struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Content   string        `bson:"content" json:"content"`
	Video     bson.ObjectID `bson:"video" json:"video"`
	Owner     bson.ObjectID `bson:"owner" json:"owner"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// CommentOwner 评论列表中内联的作者信息
type CommentOwner struct {
	ID       bson.ObjectID `bson:"_id" json:"_id"`
	Username string        `bson:"username" json:"username"`
	FullName string        `bson:"fullName" json:"fullName"`
	Avatar   string        `bson:"avatar" json:"avatar"`
}

// CommentWithOwner 评论列表聚合结果
type CommentWithOwner struct {
	ID         bson.ObjectID `bson:"_id" json:"_id"`
	Content    string        `bson:"content" json:"content"`
	Owner      *CommentOwner `bson:"owner" json:"owner"`
	CreatedAt  time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time     `bson:"updatedAt" json:"updatedAt"`
	LikesCount int64         `bson:"likesCount" json:"likesCount"`
}

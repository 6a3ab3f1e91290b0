package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Video 视频文档（本服务只读）
type Video struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Owner       bson.ObjectID `bson:"owner" json:"owner"`
	VideoFile   string        `bson:"videoFile" json:"videoFile"`
	Thumbnail   string        `bson:"thumbnail" json:"thumbnail"`
	Title       string        `bson:"title" json:"title"`
	Description string        `bson:"description" json:"description"`
	Duration    float64       `bson:"duration" json:"duration"`
	Views       int64         `bson:"views" json:"views"`
	IsPublished bool          `bson:"isPublished" json:"isPublished"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// ChannelVideo 频道视频列表聚合结果，附带点赞数和评论数
type ChannelVideo struct {
	ID            bson.ObjectID `bson:"_id" json:"_id"`
	Title         string        `bson:"title" json:"title"`
	Thumbnail     string        `bson:"thumbnail" json:"thumbnail"`
	Duration      float64       `bson:"duration" json:"duration"`
	Views         int64         `bson:"views" json:"views"`
	IsPublished   bool          `bson:"isPublished" json:"isPublished"`
	CreatedAt     time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time     `bson:"updatedAt" json:"updatedAt"`
	LikesCount    int64         `bson:"likesCount" json:"likesCount"`
	CommentsCount int64         `bson:"commentsCount" json:"commentsCount"`
}

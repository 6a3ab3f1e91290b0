package dto

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"vidtube-go/internal/model"
)

// CommentContentRequest 发表/更新评论请求，内容校验在 service 中完成
type CommentContentRequest struct {
	Content string `json:"content"`
}

// CommentInfo 评论信息
type CommentInfo struct {
	ID         bson.ObjectID `json:"_id"`
	Content    string        `json:"content"`
	Video      bson.ObjectID `json:"video"`
	Owner      bson.ObjectID `json:"owner"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
	LikesCount int64         `json:"likesCount"`
}

// CommentListData 评论列表数据
type CommentListData struct {
	Comments   []model.CommentWithOwner `json:"comments"`
	Total      int64                    `json:"total"`
	Page       int                      `json:"page"`
	Limit      int                      `json:"limit"`
	TotalPages int64                    `json:"totalPages"`
}

// CommentDeleteResult 删除评论结果
type CommentDeleteResult struct {
	IsDeleted bool `json:"isDeleted"`
}

package service

import "errors"

var (
	ErrInvalidVideoID      = errors.New("视频ID无效")
	ErrInvalidCommentID    = errors.New("评论ID无效")
	ErrEmptyContent        = errors.New("评论内容不能为空")
	ErrVideoNotFound       = errors.New("视频不存在")
	ErrCommentNotFound     = errors.New("评论不存在")
	ErrCommentNoPermission = errors.New("没有权限操作该评论")
	ErrPageOutOfRange      = errors.New("页码超出范围")
	ErrUserNotFound        = errors.New("用户不存在")
)

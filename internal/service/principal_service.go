package service

import (
	"context"
	"errors"
	"fmt"

	"vidtube-go/internal/model"
	"vidtube-go/pkg/utils"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type UserLookup interface {
	GetByID(ctx context.Context, id bson.ObjectID) (*model.User, error)
}

type PrincipalService struct {
	userRepo UserLookup
}

func NewPrincipalService(userRepo UserLookup) *PrincipalService {
	return &PrincipalService{userRepo: userRepo}
}

// Load 根据 token 中的用户 ID 加载当前用户
// ID 非法或用户不存在返回 ErrUserNotFound，其余为存储错误
func (s *PrincipalService) Load(ctx context.Context, userIDHex string) (*model.Principal, error) {
	id, ok := utils.ParseID(userIDHex)
	if !ok {
		return nil, ErrUserNotFound
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user.ToPrincipal(), nil
}

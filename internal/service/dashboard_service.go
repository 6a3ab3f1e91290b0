package service

import (
	"context"
	"fmt"

	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/model"
	"vidtube-go/internal/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/sync/errgroup"
)

type ChannelVideoStore interface {
	TotalsByOwner(ctx context.Context, ownerID bson.ObjectID) (*repository.ChannelTotals, error)
	ListByOwner(ctx context.Context, ownerID bson.ObjectID) ([]model.ChannelVideo, error)
}

type ChannelLikeStore interface {
	CountForChannel(ctx context.Context, ownerID bson.ObjectID) (int64, error)
}

type SubscriberCounter interface {
	CountSubscribers(ctx context.Context, channelID bson.ObjectID) (int64, error)
}

type DashboardService struct {
	videoRepo        ChannelVideoStore
	likeRepo         ChannelLikeStore
	subscriptionRepo SubscriberCounter
}

func NewDashboardService(videoRepo ChannelVideoStore, likeRepo ChannelLikeStore, subscriptionRepo SubscriberCounter) *DashboardService {
	return &DashboardService{
		videoRepo:        videoRepo,
		likeRepo:         likeRepo,
		subscriptionRepo: subscriptionRepo,
	}
}

// GetChannelStats 汇总当前用户频道的播放量、视频数、订阅数和点赞数
// 三个聚合互不依赖，并发执行
func (s *DashboardService) GetChannelStats(ctx context.Context, p *model.Principal) (*dto.ChannelStats, error) {
	var (
		totals      *repository.ChannelTotals
		likes       int64
		subscribers int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		totals, err = s.videoRepo.TotalsByOwner(gctx, p.ID)
		if err != nil {
			return fmt.Errorf("video totals: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		likes, err = s.likeRepo.CountForChannel(gctx, p.ID)
		if err != nil {
			return fmt.Errorf("channel likes: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		subscribers, err = s.subscriptionRepo.CountSubscribers(gctx, p.ID)
		if err != nil {
			return fmt.Errorf("channel subscribers: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &dto.ChannelStats{
		OwnerName:        p.DisplayName(),
		TotalSubscribers: subscribers,
		TotalLikes:       likes,
	}
	if totals != nil {
		stats.TotalViews = totals.TotalViews
		stats.TotalVideos = totals.TotalVideos
	}
	return stats, nil
}

// GetChannelVideos 获取当前用户频道的全部视频
func (s *DashboardService) GetChannelVideos(ctx context.Context, p *model.Principal) ([]model.ChannelVideo, error) {
	videos, err := s.videoRepo.ListByOwner(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("channel videos: %w", err)
	}
	if videos == nil {
		videos = []model.ChannelVideo{}
	}
	return videos, nil
}

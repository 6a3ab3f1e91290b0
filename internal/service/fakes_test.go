package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	infraKafka "vidtube-go/internal/infra/kafka"
	"vidtube-go/internal/model"
	"vidtube-go/internal/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// memoryStore 内存版文档库，同时实现评论、点赞、视频、订阅的存储接口
type memoryStore struct {
	mu            sync.Mutex
	calls         int
	comments      map[bson.ObjectID]*model.Comment
	likes         []model.Like
	videos        map[bson.ObjectID]*model.Video
	subscriptions []model.Subscription
	users         map[bson.ObjectID]*model.User

	// failLikeDeletes 接下来 DeleteByComment 连续失败的次数
	failLikeDeletes int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		comments: make(map[bson.ObjectID]*model.Comment),
		videos:   make(map[bson.ObjectID]*model.Video),
		users:    make(map[bson.ObjectID]*model.User),
	}
}

func (m *memoryStore) touch() {
	m.calls++
}

func (m *memoryStore) addVideo(owner bson.ObjectID, views int64) bson.ObjectID {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := bson.NewObjectID()
	m.videos[id] = &model.Video{ID: id, Owner: owner, Title: "video " + id.Hex(), Views: views, CreatedAt: time.Now()}
	return id
}

func (m *memoryStore) likeVideo(videoID, owner bson.ObjectID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := videoID
	m.likes = append(m.likes, model.Like{ID: bson.NewObjectID(), Video: &v, Owner: owner})
}

func (m *memoryStore) likeComment(commentID, owner bson.ObjectID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := commentID
	m.likes = append(m.likes, model.Like{ID: bson.NewObjectID(), Comment: &c, Owner: owner})
}

func (m *memoryStore) subscribe(channel bson.ObjectID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscriptions = append(m.subscriptions, model.Subscription{ID: bson.NewObjectID(), Subscriber: bson.NewObjectID(), Channel: channel})
}

func (m *memoryStore) commentLikes(id bson.ObjectID) int64 {
	var n int64
	for _, l := range m.likes {
		if l.Comment != nil && *l.Comment == id {
			n++
		}
	}
	return n
}

// CommentStore

func (m *memoryStore) Create(_ context.Context, c *model.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touch()
	ts := time.Now().UTC().Truncate(time.Millisecond)
	c.ID = bson.NewObjectID()
	c.CreatedAt, c.UpdatedAt = ts, ts
	stored := *c
	m.comments[c.ID] = &stored
	return nil
}

func (m *memoryStore) GetByID(_ context.Context, id bson.ObjectID) (*model.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touch()
	c, ok := m.comments[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *c
	return &cp, nil
}

func (m *memoryStore) UpdateContent(_ context.Context, id bson.ObjectID, content string) (*model.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touch()
	c, ok := m.comments[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	c.Content = content
	c.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)
	cp := *c
	return &cp, nil
}

func (m *memoryStore) Delete(_ context.Context, id bson.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touch()
	if _, ok := m.comments[id]; !ok {
		return false, nil
	}
	delete(m.comments, id)
	return true, nil
}

func (m *memoryStore) ListByVideo(_ context.Context, videoID bson.ObjectID, skip, limit int64) ([]model.CommentWithOwner, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touch()

	matched := make([]*model.Comment, 0)
	for _, c := range m.comments {
		if c.Video == videoID {
			matched = append(matched, c)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	out := make([]model.CommentWithOwner, 0)
	for i := skip; i < total && i < skip+limit; i++ {
		c := matched[i]
		item := model.CommentWithOwner{
			ID:         c.ID,
			Content:    c.Content,
			CreatedAt:  c.CreatedAt,
			UpdatedAt:  c.UpdatedAt,
			LikesCount: m.commentLikes(c.ID),
		}
		if u, ok := m.users[c.Owner]; ok {
			item.Owner = &model.CommentOwner{ID: u.ID, Username: u.Username, FullName: u.FullName, Avatar: u.Avatar}
		}
		out = append(out, item)
	}
	return out, total, nil
}

func (m *memoryStore) CountLikes(_ context.Context, id bson.ObjectID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touch()
	return m.commentLikes(id), nil
}

// CommentLikeStore / ChannelLikeStore

func (m *memoryStore) DeleteByComment(_ context.Context, commentID bson.ObjectID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touch()
	if m.failLikeDeletes > 0 {
		m.failLikeDeletes--
		return 0, errors.New("likes collection unavailable")
	}
	kept := m.likes[:0]
	var removed int64
	for _, l := range m.likes {
		if l.Comment != nil && *l.Comment == commentID {
			removed++
			continue
		}
		kept = append(kept, l)
	}
	m.likes = kept
	return removed, nil
}

func (m *memoryStore) CountForChannel(_ context.Context, ownerID bson.ObjectID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touch()
	var n int64
	for _, l := range m.likes {
		if l.Video == nil {
			continue
		}
		if v, ok := m.videos[*l.Video]; ok && v.Owner == ownerID {
			n++
		}
	}
	return n, nil
}

// VideoLookup / ChannelVideoStore

func (m *memoryStore) Exists(_ context.Context, id bson.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touch()
	_, ok := m.videos[id]
	return ok, nil
}

func (m *memoryStore) TotalsByOwner(_ context.Context, ownerID bson.ObjectID) (*repository.ChannelTotals, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touch()
	totals := &repository.ChannelTotals{}
	for _, v := range m.videos {
		if v.Owner == ownerID {
			totals.TotalVideos++
			totals.TotalViews += v.Views
		}
	}
	return totals, nil
}

func (m *memoryStore) ListByOwner(_ context.Context, ownerID bson.ObjectID) ([]model.ChannelVideo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touch()
	out := make([]model.ChannelVideo, 0)
	for _, v := range m.videos {
		if v.Owner != ownerID {
			continue
		}
		item := model.ChannelVideo{ID: v.ID, Title: v.Title, Views: v.Views, CreatedAt: v.CreatedAt}
		for _, l := range m.likes {
			if l.Video != nil && *l.Video == v.ID {
				item.LikesCount++
			}
		}
		for _, c := range m.comments {
			if c.Video == v.ID {
				item.CommentsCount++
			}
		}
		out = append(out, item)
	}
	return out, nil
}

// SubscriberCounter

func (m *memoryStore) CountSubscribers(_ context.Context, channelID bson.ObjectID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touch()
	var n int64
	for _, s := range m.subscriptions {
		if s.Channel == channelID {
			n++
		}
	}
	return n, nil
}

// recordingPublisher 记录发送的事件
type recordingPublisher struct {
	mu     sync.Mutex
	events []infraKafka.CommentEvent
	err    error
}

func (r *recordingPublisher) Publish(_ context.Context, e *infraKafka.CommentEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *e)
	return r.err
}

func (r *recordingPublisher) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

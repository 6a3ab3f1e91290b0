package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/api/middleware"
	"vidtube-go/internal/model"
	"vidtube-go/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubCommentService struct {
	err error

	gotVideoID   string
	gotCommentID string
	gotContent   string
	gotPage      int
	gotLimit     int
	gotPrincipal *model.Principal
}

func (s *stubCommentService) ListByVideo(_ context.Context, videoID string, page, limit int) (*dto.CommentListData, error) {
	s.gotVideoID, s.gotPage, s.gotLimit = videoID, page, limit
	if s.err != nil {
		return nil, s.err
	}
	return &dto.CommentListData{Comments: []model.CommentWithOwner{}, Page: page, Limit: limit}, nil
}

func (s *stubCommentService) Create(_ context.Context, p *model.Principal, videoID, content string) (*dto.CommentInfo, error) {
	s.gotPrincipal, s.gotVideoID, s.gotContent = p, videoID, content
	if s.err != nil {
		return nil, s.err
	}
	return &dto.CommentInfo{ID: bson.NewObjectID(), Content: content, Owner: p.ID}, nil
}

func (s *stubCommentService) Update(_ context.Context, p *model.Principal, videoID, commentID, content string) (*dto.CommentInfo, error) {
	s.gotPrincipal, s.gotVideoID, s.gotCommentID, s.gotContent = p, videoID, commentID, content
	if s.err != nil {
		return nil, s.err
	}
	return &dto.CommentInfo{Content: content}, nil
}

func (s *stubCommentService) Delete(_ context.Context, p *model.Principal, commentID string) (*dto.CommentDeleteResult, error) {
	s.gotPrincipal, s.gotCommentID = p, commentID
	if s.err != nil {
		return nil, s.err
	}
	return &dto.CommentDeleteResult{IsDeleted: true}, nil
}

type stubDashboardService struct {
	err    error
	stats  *dto.ChannelStats
	videos []model.ChannelVideo
}

func (s *stubDashboardService) GetChannelStats(context.Context, *model.Principal) (*dto.ChannelStats, error) {
	return s.stats, s.err
}

func (s *stubDashboardService) GetChannelVideos(context.Context, *model.Principal) ([]model.ChannelVideo, error) {
	return s.videos, s.err
}

type envelope struct {
	Status  int             `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Success bool            `json:"success"`
	Error   string          `json:"error"`
}

func withPrincipal(p *model.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		if p != nil {
			c.Set(middleware.ContextKeyPrincipal, p)
		}
		c.Next()
	}
}

func newEngine(p *model.Principal, ch *CommentHandler, dh *DashboardHandler) *gin.Engine {
	r := gin.New()
	g := r.Group("/api/v1", withPrincipal(p))
	g.GET("/comments/:videoId", ch.ListByVideo)
	g.POST("/comments/:videoId", ch.Create)
	g.PATCH("/comments/:videoId/c/:commentId", ch.Update)
	g.DELETE("/comments/c/:commentId", ch.Delete)
	g.GET("/dashboard/stats", dh.GetChannelStats)
	g.GET("/dashboard/videos", dh.GetChannelVideos)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body=%s)", err, w.Body.String())
	}
	if env.Status != w.Code {
		t.Fatalf("envelope status %d != http status %d", env.Status, w.Code)
	}
	return w, env
}

func TestListByVideoPagination(t *testing.T) {
	svc := &stubCommentService{}
	r := newEngine(&model.Principal{ID: bson.NewObjectID()}, NewCommentHandler(svc), NewDashboardHandler(&stubDashboardService{}))

	cases := []struct {
		query     string
		wantPage  int
		wantLimit int
	}{
		{"", 1, 10},
		{"?page=3&limit=5", 3, 5},
		{"?page=0&limit=-1", 1, 10},
		{"?page=abc&limit=xyz", 1, 10},
		{"?limit=1000", 1, 100},
	}
	for _, tc := range cases {
		w, env := do(t, r, http.MethodGet, "/api/v1/comments/vid"+tc.query, "")
		if w.Code != http.StatusOK || !env.Success {
			t.Fatalf("%q: expected 200 success, got %d %+v", tc.query, w.Code, env)
		}
		if svc.gotPage != tc.wantPage || svc.gotLimit != tc.wantLimit {
			t.Fatalf("%q: expected page=%d limit=%d, got page=%d limit=%d", tc.query, tc.wantPage, tc.wantLimit, svc.gotPage, svc.gotLimit)
		}
		if svc.gotVideoID != "vid" {
			t.Fatalf("expected videoId param to be forwarded, got %q", svc.gotVideoID)
		}
	}
}

func TestCommentErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{service.ErrInvalidVideoID, http.StatusNotFound},
		{service.ErrInvalidCommentID, http.StatusNotFound},
		{service.ErrVideoNotFound, http.StatusNotFound},
		{service.ErrCommentNotFound, http.StatusNotFound},
		{service.ErrEmptyContent, http.StatusBadRequest},
		{service.ErrPageOutOfRange, http.StatusBadRequest},
		{service.ErrCommentNoPermission, http.StatusForbidden},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}
	p := &model.Principal{ID: bson.NewObjectID()}
	for _, tc := range cases {
		svc := &stubCommentService{err: tc.err}
		r := newEngine(p, NewCommentHandler(svc), NewDashboardHandler(&stubDashboardService{}))

		w, env := do(t, r, http.MethodPost, "/api/v1/comments/vid", `{"content":"hi"}`)
		if w.Code != tc.want {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.want, w.Code)
		}
		if env.Success || env.Error == "" || string(env.Data) != "null" {
			t.Fatalf("%v: expected failure envelope, got %+v", tc.err, env)
		}
	}
}

func TestMutationsRequirePrincipal(t *testing.T) {
	svc := &stubCommentService{}
	r := newEngine(nil, NewCommentHandler(svc), NewDashboardHandler(&stubDashboardService{}))

	requests := []struct{ method, path, body string }{
		{http.MethodPost, "/api/v1/comments/vid", `{"content":"hi"}`},
		{http.MethodPatch, "/api/v1/comments/vid/c/cid", `{"content":"hi"}`},
		{http.MethodDelete, "/api/v1/comments/c/cid", ""},
		{http.MethodGet, "/api/v1/dashboard/stats", ""},
		{http.MethodGet, "/api/v1/dashboard/videos", ""},
	}
	for _, req := range requests {
		w, _ := do(t, r, req.method, req.path, req.body)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", req.method, req.path, w.Code)
		}
	}
	if svc.gotPrincipal != nil {
		t.Fatal("service must not be reached without a principal")
	}
}

func TestMalformedBodyIsBadRequest(t *testing.T) {
	svc := &stubCommentService{}
	r := newEngine(&model.Principal{ID: bson.NewObjectID()}, NewCommentHandler(svc), NewDashboardHandler(&stubDashboardService{}))

	w, _ := do(t, r, http.MethodPost, "/api/v1/comments/vid", `{"content":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if svc.gotPrincipal != nil {
		t.Fatal("service must not be reached on bind failure")
	}
}

func TestUpdateAndDeleteForwardParams(t *testing.T) {
	svc := &stubCommentService{}
	p := &model.Principal{ID: bson.NewObjectID()}
	r := newEngine(p, NewCommentHandler(svc), NewDashboardHandler(&stubDashboardService{}))

	w, env := do(t, r, http.MethodPatch, "/api/v1/comments/v1/c/c1", `{"content":"edited"}`)
	if w.Code != http.StatusOK || !env.Success {
		t.Fatalf("update: expected 200, got %d", w.Code)
	}
	if svc.gotVideoID != "v1" || svc.gotCommentID != "c1" || svc.gotContent != "edited" || svc.gotPrincipal != p {
		t.Fatalf("update: unexpected forwarded args %+v", svc)
	}

	w, env = do(t, r, http.MethodDelete, "/api/v1/comments/c/c2", "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", w.Code)
	}
	var result dto.CommentDeleteResult
	if err := json.Unmarshal(env.Data, &result); err != nil || !result.IsDeleted {
		t.Fatalf("delete: expected isDeleted=true, got %s", env.Data)
	}
	if svc.gotCommentID != "c2" {
		t.Fatalf("delete: expected commentId c2, got %q", svc.gotCommentID)
	}
}

func TestDashboardStatsKeys(t *testing.T) {
	ds := &stubDashboardService{stats: &dto.ChannelStats{OwnerName: "Alice", TotalViews: 7, TotalVideos: 2, TotalSubscribers: 1, TotalLikes: 3}}
	r := newEngine(&model.Principal{ID: bson.NewObjectID()}, NewCommentHandler(&stubCommentService{}), NewDashboardHandler(ds))

	w, env := do(t, r, http.MethodGet, "/api/v1/dashboard/stats", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var data map[string]interface{}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	for _, key := range []string{"ownerName", "Totalviews", "Totalvideos", "TotalSubscribers", "TotalLikes"} {
		if _, ok := data[key]; !ok {
			t.Fatalf("missing key %q in %s", key, env.Data)
		}
	}
}

func TestDashboardFailureIsInternalError(t *testing.T) {
	ds := &stubDashboardService{err: errors.New("boom")}
	r := newEngine(&model.Principal{ID: bson.NewObjectID()}, NewCommentHandler(&stubCommentService{}), NewDashboardHandler(ds))

	for _, path := range []string{"/api/v1/dashboard/stats", "/api/v1/dashboard/videos"} {
		w, env := do(t, r, http.MethodGet, path, "")
		if w.Code != http.StatusInternalServerError || env.Success {
			t.Fatalf("%s: expected 500 failure envelope, got %d", path, w.Code)
		}
	}
}

func TestDashboardVideosEmptyList(t *testing.T) {
	ds := &stubDashboardService{videos: []model.ChannelVideo{}}
	r := newEngine(&model.Principal{ID: bson.NewObjectID()}, NewCommentHandler(&stubCommentService{}), NewDashboardHandler(ds))

	_, env := do(t, r, http.MethodGet, "/api/v1/dashboard/videos", "")
	if string(env.Data) != "[]" {
		t.Fatalf("expected empty array, got %s", env.Data)
	}
}

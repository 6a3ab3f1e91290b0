package middleware

import (
	"context"
	"fmt"
	"math"
	"time"

	"vidtube-go/internal/api/response"
	"vidtube-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WindowCounter 固定窗口计数器，返回当前窗口内计数与窗口剩余时间
type WindowCounter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// RateLimit 按当前用户限制写操作频率，必须在 AuthRequired 之后使用
// 计数器不可用时放行请求
func RateLimit(counter WindowCounter, scope string, maxRequests int64, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := scope + ":" + c.ClientIP()
		if p, ok := GetPrincipal(c); ok {
			key = scope + ":" + p.ID.Hex()
		}

		count, resetIn, err := counter.Incr(c.Request.Context(), key, window)
		if err != nil {
			logger.Warn("Rate limit counter unavailable", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}

		remaining := maxRequests - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", maxRequests))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))

		if count > maxRequests {
			c.Header("Retry-After", fmt.Sprintf("%d", int64(math.Ceil(resetIn.Seconds()))))
			response.TooManyRequests(c, "操作过于频繁，请稍后再试")
			c.Abort()
			return
		}

		c.Next()
	}
}

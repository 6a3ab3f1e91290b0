package middleware

import (
	"context"
	"errors"
	"strings"

	"vidtube-go/internal/api/response"
	"vidtube-go/internal/model"
	"vidtube-go/internal/service"
	"vidtube-go/pkg/logger"
	"vidtube-go/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const ContextKeyPrincipal = "currentPrincipal"

// PrincipalLoader 根据 token 中的用户 ID 加载当前用户
// 用户不存在时应返回 service.ErrUserNotFound
type PrincipalLoader func(ctx context.Context, userID string) (*model.Principal, error)

// AuthRequired JWT 认证中间件，要求请求必须携带有效 Token 且用户存在
func AuthRequired(load PrincipalLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Unauthorized(c, "缺少认证令牌")
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			response.Unauthorized(c, "无效或过期的认证令牌")
			c.Abort()
			return
		}

		principal, err := load(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, service.ErrUserNotFound) {
				response.Unauthorized(c, "用户不存在")
			} else {
				logger.Error("Principal lookup failed", zap.String("user_id", claims.UserID), zap.Error(err))
				response.InternalError(c, "认证服务暂不可用")
			}
			c.Abort()
			return
		}
		if principal == nil {
			response.Unauthorized(c, "用户不存在")
			c.Abort()
			return
		}

		c.Set(ContextKeyPrincipal, principal)
		c.Next()
	}
}

// GetPrincipal 从 Gin Context 中获取当前登录用户
func GetPrincipal(c *gin.Context) (*model.Principal, bool) {
	val, exists := c.Get(ContextKeyPrincipal)
	if !exists {
		return nil, false
	}
	p, ok := val.(*model.Principal)
	return p, ok && p != nil
}

// extractToken 从 Authorization 头中提取 Bearer Token
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

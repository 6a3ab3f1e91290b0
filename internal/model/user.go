package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const RoleAdmin = "admin"

// User 用户文档，本服务只读取展示字段
type User struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Username  string        `bson:"username" json:"username"`
	Email     string        `bson:"email" json:"email"`
	FullName  string        `bson:"fullName" json:"fullName"`
	Avatar    string        `bson:"avatar" json:"avatar"`
	Role      string        `bson:"role,omitempty" json:"role,omitempty"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
}

// Principal 经过认证的当前请求用户
type Principal struct {
	ID       bson.ObjectID
	Username string
	FullName string
	Role     string
}

// DisplayName 频道展示名，fullName 缺失时回退到 username
func (p *Principal) DisplayName() string {
	if p.FullName != "" {
		return p.FullName
	}
	return p.Username
}

// IsAdmin 是否管理员
func (p *Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// ToPrincipal 从用户文档构造 Principal
func (u *User) ToPrincipal() *Principal {
	return &Principal{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Role:     u.Role,
	}
}

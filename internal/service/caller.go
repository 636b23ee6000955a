package service

import (
	"tec_learning_backend/internal/model"
	"tec_learning_backend/internal/util"
)

// Caller 当前请求的身份，由控制器从 JWT 中解析
type Caller struct {
	UserID string
	Role   model.UserRole
}

func CallerFromClaims(claims *util.Claims) Caller {
	if claims == nil {
		return Caller{}
	}
	return Caller{UserID: claims.UserID, Role: claims.Role}
}

func (c Caller) IsStudent() bool {
	return c.Role == model.Student
}

// IsStaff 教师或管理员
func (c Caller) IsStaff() bool {
	return c.Role == model.Teacher || c.Role == model.Admin
}

func (c Caller) IsAdmin() bool {
	return c.Role == model.Admin
}

package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
	Admin   UserRole = "admin"
)

// AgeGroup 学生年龄段
type AgeGroup string

const (
	AgeFoundation  AgeGroup = "5-8"
	AgeDevelopment AgeGroup = "9-12"
	AgeMastery     AgeGroup = "13-16"
)

func (a AgeGroup) Valid() bool {
	switch a {
	case AgeFoundation, AgeDevelopment, AgeMastery:
		return true
	}
	return false
}

// LearningLevel 与年龄段一一对应的学习阶段
type LearningLevel string

const (
	LevelFoundation  LearningLevel = "foundation"
	LevelDevelopment LearningLevel = "development"
	LevelMastery     LearningLevel = "mastery"
)

func (l LearningLevel) Valid() bool {
	switch l {
	case LevelFoundation, LevelDevelopment, LevelMastery:
		return true
	}
	return false
}

// LearningLevelForAge 根据年龄段推导学习阶段，未知年龄段返回空串
func LearningLevelForAge(a AgeGroup) LearningLevel {
	switch a {
	case AgeFoundation:
		return LevelFoundation
	case AgeDevelopment:
		return LevelDevelopment
	case AgeMastery:
		return LevelMastery
	}
	return ""
}

type SubscriptionType string

const (
	SubscriptionMonthly   SubscriptionType = "monthly"
	SubscriptionQuarterly SubscriptionType = "quarterly"
	SubscriptionAnnual    SubscriptionType = "annual"
)

// swagger:model User
type User struct {
	UUIDBase
	Email               string           `gorm:"size:100;uniqueIndex;not null" json:"email"`
	FullName            string           `gorm:"size:100;not null" json:"full_name"`
	Password            string           `gorm:"size:100;not null" json:"-"`
	Role                UserRole         `gorm:"size:20;default:'student'" json:"role"`
	AgeGroup            AgeGroup         `gorm:"size:10" json:"age_group,omitempty"`
	LearningLevel       LearningLevel    `gorm:"size:20" json:"learning_level,omitempty"`
	IsActive            bool             `gorm:"not null" json:"is_active"`
	SubscriptionType    SubscriptionType `gorm:"size:20" json:"subscription_type,omitempty"`
	SubscriptionExpires *time.Time       `json:"subscription_expires,omitempty"`
	TotalWatchTime      int              `gorm:"default:0" json:"total_watch_time"` // 分钟
	LastLogin           *time.Time       `json:"last_login,omitempty"`
	LastSeen            *time.Time       `json:"last_seen,omitempty"`
}

func (User) TableName() string {
	return "users"
}

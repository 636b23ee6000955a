package model

import (
	"time"

	"gorm.io/datatypes"
)

type ActivityType string

const (
	ActivityLogin            ActivityType = "login"
	ActivityLogout           ActivityType = "logout"
	ActivityCourseEnrollment ActivityType = "course_enrollment"
	ActivityCourseStarted    ActivityType = "course_started"
	ActivityCourseCompleted  ActivityType = "course_completed"
	ActivityPaymentInitiated ActivityType = "payment_initiated"
	ActivityWorkoutStarted   ActivityType = "workout_started"
	ActivityWorkoutCompleted ActivityType = "workout_completed"
	ActivityWorkoutSeeded    ActivityType = "workout_seeded"
	ActivityLessonCompleted  ActivityType = "lesson_completed"
	ActivityCoursePublished  ActivityType = "course_published"
	ActivityWorkoutCreated   ActivityType = "workout_created"
)

// ActivityLog 用户行为日志，用于教师端分析
type ActivityLog struct {
	ID           string            `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID       string            `gorm:"type:varchar(36);index:idx_activity_user_time,priority:1" json:"user_id"`
	ActivityType ActivityType      `gorm:"size:50;index" json:"activity_type"`
	Timestamp    time.Time         `gorm:"index:idx_activity_user_time,priority:2" json:"timestamp"`
	Details      datatypes.JSONMap `gorm:"type:json" json:"details"`
	IPAddress    string            `gorm:"size:64" json:"ip_address,omitempty"`
	UserAgent    string            `gorm:"size:255" json:"user_agent,omitempty"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}

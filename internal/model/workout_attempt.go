package model

import (
	"time"

	"gorm.io/datatypes"
)

// WorkoutAttempt 学生的一次训练作答。CompletedAt 为空即处于 open 状态，
// 提交后关闭且不再修改。
//
// swagger:model WorkoutAttempt
type WorkoutAttempt struct {
	UUIDBase
	StudentID        string         `gorm:"type:varchar(36);not null;index:idx_attempt_student_started,priority:1" json:"student_id"`
	WorkoutID        string         `gorm:"type:varchar(36);not null;index" json:"workout_id"`
	StartedAt        time.Time      `gorm:"index:idx_attempt_student_started,priority:2" json:"started_at"`
	CompletedAt      *time.Time     `json:"completed_at"`
	StudentAnswer    datatypes.JSON `gorm:"type:json" json:"student_answer"`
	IsCorrect        *bool          `json:"is_correct"`
	TimeSpentMinutes int            `gorm:"default:0" json:"time_spent_minutes"`
	HintsUsed        int            `gorm:"default:0" json:"hints_used"`
	AttemptsCount    int            `gorm:"default:1" json:"attempts_count"`
	Score            *int           `json:"score"`
}

func (WorkoutAttempt) TableName() string {
	return "workout_attempts"
}

func (a *WorkoutAttempt) IsOpen() bool {
	return a.CompletedAt == nil
}

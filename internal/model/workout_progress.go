package model

import (
	"fmt"
	"time"
)

// ProgressKey 统计记录的唯一键
type ProgressKey struct {
	StudentID     string
	WorkoutType   WorkoutType
	Difficulty    WorkoutDifficulty
	LearningLevel LearningLevel
}

func (k ProgressKey) String() string {
	return fmt.Sprintf("workout_progress:%s:%s:%s:%s", k.StudentID, k.WorkoutType, k.Difficulty, k.LearningLevel)
}

// WorkoutProgress 按 (学生, 类别, 难度, 阶段) 累计的训练统计，仅由训练服务写入
//
// swagger:model WorkoutProgress
type WorkoutProgress struct {
	UUIDBase
	StudentID          string            `gorm:"type:varchar(36);not null;uniqueIndex:idx_workout_progress_key,priority:1" json:"student_id"`
	WorkoutType        WorkoutType       `gorm:"size:50;not null;uniqueIndex:idx_workout_progress_key,priority:2" json:"workout_type"`
	Difficulty         WorkoutDifficulty `gorm:"size:20;not null;uniqueIndex:idx_workout_progress_key,priority:3" json:"difficulty"`
	LearningLevel      LearningLevel     `gorm:"size:20;not null;uniqueIndex:idx_workout_progress_key,priority:4" json:"learning_level"`
	TotalAttempts      int               `gorm:"default:0" json:"total_attempts"`
	SuccessfulAttempts int               `gorm:"default:0" json:"successful_attempts"`
	AverageScore       float64           `gorm:"default:0" json:"average_score"`
	AverageTimeMinutes float64           `gorm:"default:0" json:"average_time_minutes"`
	ImprovementRate    float64           `gorm:"default:0" json:"improvement_rate"`
	LastAttempt        *time.Time        `json:"last_attempt"`
	MasteryLevel       float64           `gorm:"default:0" json:"mastery_level"` // 0-100
}

func (WorkoutProgress) TableName() string {
	return "workout_progress"
}

func (p *WorkoutProgress) Key() ProgressKey {
	return ProgressKey{
		StudentID:     p.StudentID,
		WorkoutType:   p.WorkoutType,
		Difficulty:    p.Difficulty,
		LearningLevel: p.LearningLevel,
	}
}

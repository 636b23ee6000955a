package repository

import (
	"context"

	"tec_learning_backend/internal/model"

	"gorm.io/gorm"
)

type WorkoutAttemptRepository struct {
	DB *gorm.DB
}

func NewWorkoutAttemptRepository(db *gorm.DB) *WorkoutAttemptRepository {
	return &WorkoutAttemptRepository{DB: db}
}

func (r *WorkoutAttemptRepository) Create(ctx context.Context, a *model.WorkoutAttempt) error {
	return r.DB.WithContext(ctx).Create(a).Error
}

func (r *WorkoutAttemptRepository) FindOpen(ctx context.Context, id, studentID string) (*model.WorkoutAttempt, error) {
	var a model.WorkoutAttempt
	err := r.DB.WithContext(ctx).
		Where("id = ? AND student_id = ? AND completed_at IS NULL", id, studentID).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Close 条件更新，并发提交时只有一个请求能命中 completed_at IS NULL
func (r *WorkoutAttemptRepository) Close(ctx context.Context, a *model.WorkoutAttempt) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&model.WorkoutAttempt{}).
		Where("id = ? AND student_id = ? AND completed_at IS NULL", a.ID, a.StudentID).
		Updates(map[string]interface{}{
			"completed_at":       a.CompletedAt,
			"student_answer":     a.StudentAnswer,
			"is_correct":         a.IsCorrect,
			"time_spent_minutes": a.TimeSpentMinutes,
			"hints_used":         a.HintsUsed,
			"score":              a.Score,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *WorkoutAttemptRepository) ListRecentByStudent(ctx context.Context, studentID string, limit int) ([]model.WorkoutAttempt, error) {
	var attempts []model.WorkoutAttempt
	err := r.DB.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("started_at desc").
		Limit(limit).
		Find(&attempts).Error
	return attempts, err
}

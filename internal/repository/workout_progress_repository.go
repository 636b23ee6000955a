package repository

import (
	"context"

	"tec_learning_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WorkoutProgressRepository struct {
	DB *gorm.DB
}

func NewWorkoutProgressRepository(db *gorm.DB) *WorkoutProgressRepository {
	return &WorkoutProgressRepository{DB: db}
}

func (r *WorkoutProgressRepository) FindByKey(ctx context.Context, key model.ProgressKey, forUpdate bool) (*model.WorkoutProgress, error) {
	query := r.DB.WithContext(ctx)
	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var p model.WorkoutProgress
	err := query.Where("student_id = ? AND workout_type = ? AND difficulty = ? AND learning_level = ?",
		key.StudentID, key.WorkoutType, key.Difficulty, key.LearningLevel).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *WorkoutProgressRepository) Create(ctx context.Context, p *model.WorkoutProgress) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *WorkoutProgressRepository) Save(ctx context.Context, p *model.WorkoutProgress) error {
	return r.DB.WithContext(ctx).Save(p).Error
}

func (r *WorkoutProgressRepository) ListByStudent(ctx context.Context, studentID string) ([]model.WorkoutProgress, error) {
	var records []model.WorkoutProgress
	err := r.DB.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("workout_type asc, difficulty asc").
		Find(&records).Error
	return records, err
}

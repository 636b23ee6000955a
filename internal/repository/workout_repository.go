package repository

import (
	"context"

	"tec_learning_backend/internal/model"

	"gorm.io/gorm"
)

type WorkoutRepository struct {
	DB *gorm.DB
}

func NewWorkoutRepository(db *gorm.DB) *WorkoutRepository {
	return &WorkoutRepository{DB: db}
}

func (r *WorkoutRepository) Create(ctx context.Context, w *model.Workout) error {
	return r.DB.WithContext(ctx).Create(w).Error
}

func (r *WorkoutRepository) FindByID(ctx context.Context, id string) (*model.Workout, error) {
	var w model.Workout
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&w).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// List 只返回启用中的训练题
func (r *WorkoutRepository) List(ctx context.Context, filter model.WorkoutFilter) ([]model.Workout, error) {
	query := r.DB.WithContext(ctx).Model(&model.Workout{}).Where("is_active = ?", true)
	if filter.LearningLevel != "" {
		query = query.Where("learning_level = ?", filter.LearningLevel)
	}
	if filter.WorkoutType != "" {
		query = query.Where("workout_type = ?", filter.WorkoutType)
	}
	if filter.Difficulty != "" {
		query = query.Where("difficulty = ?", filter.Difficulty)
	}
	if filter.AgeGroup != "" {
		query = query.Where("age_group = ?", filter.AgeGroup)
	}

	var workouts []model.Workout
	err := query.Order("created_at asc").Find(&workouts).Error
	return workouts, err
}

func (r *WorkoutRepository) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Workout{}).Where("title = ?", title).Count(&count).Error
	return count > 0, err
}

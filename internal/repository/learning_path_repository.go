package repository

import (
	"context"

	"tec_learning_backend/internal/model"

	"gorm.io/gorm"
)

type LearningPathRepository struct {
	DB *gorm.DB
}

func NewLearningPathRepository(db *gorm.DB) *LearningPathRepository {
	return &LearningPathRepository{DB: db}
}

func (r *LearningPathRepository) FindByStudent(ctx context.Context, studentID string) (*model.LearningPath, error) {
	var path model.LearningPath
	err := r.DB.WithContext(ctx).Where("student_id = ?", studentID).First(&path).Error
	if err != nil {
		return nil, err
	}
	return &path, nil
}

func (r *LearningPathRepository) Create(ctx context.Context, path *model.LearningPath) error {
	return r.DB.WithContext(ctx).Create(path).Error
}

func (r *LearningPathRepository) Save(ctx context.Context, path *model.LearningPath) error {
	return r.DB.WithContext(ctx).Save(path).Error
}

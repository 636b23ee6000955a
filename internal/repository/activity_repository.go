package repository

import (
	"context"

	"tec_learning_backend/internal/model"

	"gorm.io/gorm"
)

type ActivityRepository struct {
	DB *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{DB: db}
}

func (r *ActivityRepository) Create(ctx context.Context, log *model.ActivityLog) error {
	return r.DB.WithContext(ctx).Create(log).Error
}

func (r *ActivityRepository) ListRecentByUser(ctx context.Context, userID string, limit int) ([]model.ActivityLog, error) {
	var logs []model.ActivityLog
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp desc").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

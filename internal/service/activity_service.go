package service

import (
	"context"
	"time"

	"tec_learning_backend/internal/model"
	"tec_learning_backend/internal/repository"
	"tec_learning_backend/internal/util"
	"tec_learning_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type ActivityService struct {
	Repo repository.ActivityStore
	Now  func() time.Time
}

func NewActivityService(repo repository.ActivityStore) *ActivityService {
	return &ActivityService{
		Repo: repo,
		Now:  func() time.Time { return time.Now().UTC() },
	}
}

// Log 写入行为日志，失败只记录错误，不影响业务请求
func (s *ActivityService) Log(ctx context.Context, userID string, activityType model.ActivityType, details map[string]interface{}) {
	if details == nil {
		details = map[string]interface{}{}
	}
	meta := util.RequestMetaFrom(ctx)
	entry := &model.ActivityLog{
		ID:           model.GenerateUUID(),
		UserID:       userID,
		ActivityType: activityType,
		Timestamp:    s.Now(),
		Details:      datatypes.JSONMap(details),
		IPAddress:    meta.IP,
		UserAgent:    meta.UserAgent,
	}
	if err := s.Repo.Create(ctx, entry); err != nil {
		logger.Log.Warn("Failed to log activity",
			zap.String("user_id", userID),
			zap.String("activity_type", string(activityType)),
			zap.Error(err))
	}
}

func (s *ActivityService) Recent(ctx context.Context, userID string, limit int) ([]model.ActivityLog, error) {
	if limit <= 0 {
		limit = util.DefaultRecentActivities
	}
	return s.Repo.ListRecentByUser(ctx, userID, limit)
}

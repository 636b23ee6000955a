package service

import (
	"context"
	"errors"
	"fmt"

	"tec_learning_backend/internal/model"
	"tec_learning_backend/internal/repository"
	"tec_learning_backend/internal/util"

	"gorm.io/gorm"
)

type AnalyticsService struct {
	UserRepo       repository.UserStore
	CourseRepo     repository.CourseStore
	EnrollmentRepo repository.EnrollmentStore
	PathRepo       repository.LearningPathStore
	Activity       *ActivityService
}

func NewAnalyticsService(
	userRepo repository.UserStore,
	courseRepo repository.CourseStore,
	enrollmentRepo repository.EnrollmentStore,
	pathRepo repository.LearningPathStore,
	activity *ActivityService,
) *AnalyticsService {
	return &AnalyticsService{
		UserRepo:       userRepo,
		CourseRepo:     courseRepo,
		EnrollmentRepo: enrollmentRepo,
		PathRepo:       pathRepo,
		Activity:       activity,
	}
}

type StudentAnalytics struct {
	UserID            string                 `json:"user_id"`
	FullName          string                 `json:"full_name"`
	Email             string                 `json:"email"`
	AgeGroup          model.AgeGroup         `json:"age_group"`
	LearningLevel     model.LearningLevel    `json:"learning_level"`
	SubscriptionType  model.SubscriptionType `json:"subscription_type"`
	SkillProgress     map[string]int         `json:"skill_progress"`
	LevelCompletion   float64                `json:"level_completion"`
	TotalLearningTime int                    `json:"total_learning_time"`
	RecentActivities  []model.ActivityLog    `json:"recent_activities"`
}

// Students 教师看到自己课程的学生，管理员看到全部学生
func (s *AnalyticsService) Students(ctx context.Context, caller Caller) ([]StudentAnalytics, error) {
	if !caller.IsStaff() {
		return nil, fmt.Errorf("%w: teacher access required", util.ErrPermissionDenied)
	}

	var users []model.User
	if caller.IsAdmin() {
		all, err := s.UserRepo.ListByRole(ctx, model.Student)
		if err != nil {
			return nil, err
		}
		users = all
	} else {
		courseIDs, err := s.CourseRepo.ListIDsByCreator(ctx, caller.UserID)
		if err != nil {
			return nil, err
		}
		studentIDs, err := s.EnrollmentRepo.ListStudentIDsByCourses(ctx, courseIDs)
		if err != nil {
			return nil, err
		}
		users, err = s.UserRepo.ListByIDs(ctx, studentIDs)
		if err != nil {
			return nil, err
		}
	}

	result := make([]StudentAnalytics, 0, len(users))
	for _, u := range users {
		item := StudentAnalytics{
			UserID:           u.ID,
			FullName:         u.FullName,
			Email:            u.Email,
			AgeGroup:         u.AgeGroup,
			LearningLevel:    u.LearningLevel,
			SubscriptionType: u.SubscriptionType,
			SkillProgress:    map[string]int{},
		}

		path, err := s.PathRepo.FindByStudent(ctx, u.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if path != nil {
			if skills := path.SkillProgress.Data(); skills != nil {
				item.SkillProgress = skills
			}
			item.LevelCompletion = path.LevelCompletionPercentage
			item.TotalLearningTime = path.TotalLearningTime
		}

		activities, err := s.Activity.Recent(ctx, u.ID, util.DefaultRecentActivities)
		if err != nil {
			return nil, err
		}
		if activities == nil {
			activities = []model.ActivityLog{}
		}
		item.RecentActivities = activities
		result = append(result, item)
	}
	return result, nil
}

package service

import (
	"context"
	"fmt"
	"strings"

	"tec_learning_backend/internal/model"
	"tec_learning_backend/internal/repository"
	"tec_learning_backend/internal/util"
	"tec_learning_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type CourseService struct {
	CourseRepo repository.CourseStore
	Activity   *ActivityService
}

func NewCourseService(courseRepo repository.CourseStore, activity *ActivityService) *CourseService {
	return &CourseService{CourseRepo: courseRepo, Activity: activity}
}

type CreateCourseRequest struct {
	Title           string              `json:"title" binding:"required"`
	Description     string              `json:"description"`
	LearningLevel   model.LearningLevel `json:"learning_level" binding:"required"`
	SkillAreas      []string            `json:"skill_areas"`
	AgeGroup        model.AgeGroup      `json:"age_group" binding:"required"`
	ThumbnailURL    string              `json:"thumbnail_url"`
	IsPremium       bool                `json:"is_premium"`
	DifficultyLevel int                 `json:"difficulty_level"`
	EstimatedHours  int                 `json:"estimated_hours"`
}

type CreateLessonRequest struct {
	Title           string `json:"title" binding:"required"`
	Description     string `json:"description"`
	Order           int    `json:"order"`
	DurationMinutes int    `json:"duration_minutes"`
	ContentURL      string `json:"content_url"`
}

func (r *CreateCourseRequest) validate() error {
	if r.DifficultyLevel == 0 {
		r.DifficultyLevel = 1
	}
	switch {
	case strings.TrimSpace(r.Title) == "":
		return fmt.Errorf("%w: title is required", util.ErrInvalidRequest)
	case !r.LearningLevel.Valid():
		return fmt.Errorf("%w: unknown learning_level %q", util.ErrInvalidRequest, r.LearningLevel)
	case !r.AgeGroup.Valid():
		return fmt.Errorf("%w: unknown age_group %q", util.ErrInvalidRequest, r.AgeGroup)
	case r.DifficultyLevel < 1 || r.DifficultyLevel > 5:
		return fmt.Errorf("%w: difficulty_level must be between 1 and 5", util.ErrInvalidRequest)
	case r.EstimatedHours < 0:
		return fmt.Errorf("%w: estimated_hours must not be negative", util.ErrInvalidRequest)
	}
	for _, s := range r.SkillAreas {
		if !model.SkillArea(s).Valid() {
			return fmt.Errorf("%w: unknown skill area %q", util.ErrInvalidRequest, s)
		}
	}
	return nil
}

func (s *CourseService) CreateCourse(ctx context.Context, caller Caller, req CreateCourseRequest) (*model.Course, error) {
	if !caller.IsStaff() {
		return nil, fmt.Errorf("%w: teacher access required", util.ErrPermissionDenied)
	}
	if err := req.validate(); err != nil {
		return nil, err
	}

	course := &model.Course{
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		LearningLevel:   req.LearningLevel,
		SkillAreas:      datatypes.NewJSONSlice(nonNil(req.SkillAreas)),
		AgeGroup:        req.AgeGroup,
		ThumbnailURL:    req.ThumbnailURL,
		IsPremium:       req.IsPremium,
		DifficultyLevel: req.DifficultyLevel,
		EstimatedHours:  req.EstimatedHours,
		CreatedBy:       caller.UserID,
	}
	if err := s.CourseRepo.Create(ctx, course); err != nil {
		return nil, err
	}

	s.Activity.Log(ctx, caller.UserID, model.ActivityCourseStarted, map[string]interface{}{
		"action":       "course_created",
		"course_id":    course.ID,
		"course_title": course.Title,
	})
	return course, nil
}

func (s *CourseService) ListCourses(ctx context.Context, filter model.CourseFilter) ([]model.Course, error) {
	switch {
	case filter.LearningLevel != "" && !filter.LearningLevel.Valid():
		return nil, fmt.Errorf("%w: learning_level %q", util.ErrInvalidFilter, filter.LearningLevel)
	case filter.AgeGroup != "" && !filter.AgeGroup.Valid():
		return nil, fmt.Errorf("%w: age_group %q", util.ErrInvalidFilter, filter.AgeGroup)
	case filter.SkillArea != "" && !filter.SkillArea.Valid():
		return nil, fmt.Errorf("%w: skill_area %q", util.ErrInvalidFilter, filter.SkillArea)
	}
	courses, err := s.CourseRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if courses == nil {
		courses = []model.Course{}
	}
	return courses, nil
}

// ownedCourse 课程创建者或管理员才能修改
func (s *CourseService) ownedCourse(ctx context.Context, caller Caller, courseID string) (*model.Course, error) {
	if !caller.IsStaff() {
		return nil, fmt.Errorf("%w: teacher access required", util.ErrPermissionDenied)
	}
	course, err := s.CourseRepo.FindByID(ctx, courseID)
	if err != nil {
		return nil, notFoundAs(err, util.ErrCourseNotFound)
	}
	if !caller.IsAdmin() && course.CreatedBy != caller.UserID {
		return nil, fmt.Errorf("%w: not the course owner", util.ErrPermissionDenied)
	}
	return course, nil
}

func (s *CourseService) PublishCourse(ctx context.Context, caller Caller, courseID string) (*model.Course, error) {
	course, err := s.ownedCourse(ctx, caller, courseID)
	if err != nil {
		return nil, err
	}
	if course.IsPublished {
		return course, nil
	}

	course.IsPublished = true
	if err := s.CourseRepo.Update(ctx, course); err != nil {
		return nil, err
	}

	s.Activity.Log(ctx, caller.UserID, model.ActivityCoursePublished, map[string]interface{}{
		"course_id":    course.ID,
		"course_title": course.Title,
	})
	logger.Log.Info("Course published", zap.String("course_id", course.ID))
	return course, nil
}

func (s *CourseService) AddLesson(ctx context.Context, caller Caller, courseID string, req CreateLessonRequest) (*model.Lesson, error) {
	course, err := s.ownedCourse(ctx, caller, courseID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", util.ErrInvalidRequest)
	}
	if req.DurationMinutes < 0 || req.Order < 0 {
		return nil, fmt.Errorf("%w: order and duration_minutes must not be negative", util.ErrInvalidRequest)
	}

	lesson := &model.Lesson{
		CourseID:        course.ID,
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		Order:           req.Order,
		DurationMinutes: req.DurationMinutes,
		ContentURL:      req.ContentURL,
	}
	if err := s.CourseRepo.CreateLesson(ctx, lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

// ListLessons 未发布课程的课时只对教师和管理员可见
func (s *CourseService) ListLessons(ctx context.Context, caller Caller, courseID string) ([]model.Lesson, error) {
	course, err := s.CourseRepo.FindByID(ctx, courseID)
	if err != nil {
		return nil, notFoundAs(err, util.ErrCourseNotFound)
	}
	if !course.IsPublished && !caller.IsStaff() {
		return nil, util.ErrCourseNotFound
	}
	lessons, err := s.CourseRepo.ListLessons(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if lessons == nil {
		lessons = []model.Lesson{}
	}
	return lessons, nil
}

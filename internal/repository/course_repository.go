package repository

import (
	"context"

	"tec_learning_backend/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(ctx context.Context, course *model.Course) error {
	return r.DB.WithContext(ctx).Create(course).Error
}

func (r *CourseRepository) FindByID(ctx context.Context, id string) (*model.Course, error) {
	var course model.Course
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) List(ctx context.Context, filter model.CourseFilter) ([]model.Course, error) {
	query := r.DB.WithContext(ctx).Model(&model.Course{})
	if filter.PublishedOnly {
		query = query.Where("is_published = ?", true)
	}
	if filter.LearningLevel != "" {
		query = query.Where("learning_level = ?", filter.LearningLevel)
	}
	if filter.AgeGroup != "" {
		query = query.Where("age_group = ?", filter.AgeGroup)
	}
	if filter.CreatedBy != "" {
		query = query.Where("created_by = ?", filter.CreatedBy)
	}
	if filter.SkillArea != "" {
		query = query.Where(datatypes.JSONArrayQuery("skill_areas").Contains(string(filter.SkillArea)))
	}

	var courses []model.Course
	err := query.Order("created_at desc").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) Update(ctx context.Context, course *model.Course) error {
	return r.DB.WithContext(ctx).Save(course).Error
}

func (r *CourseRepository) IncrementEnrollment(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Model(&model.Course{}).
		Where("id = ?", id).
		UpdateColumn("enrollment_count", gorm.Expr("enrollment_count + ?", 1)).
		Error
}

func (r *CourseRepository) ListIDsByCreator(ctx context.Context, creatorID string) ([]string, error) {
	var ids []string
	err := r.DB.WithContext(ctx).Model(&model.Course{}).
		Where("created_by = ?", creatorID).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *CourseRepository) CreateLesson(ctx context.Context, lesson *model.Lesson) error {
	return r.DB.WithContext(ctx).Create(lesson).Error
}

func (r *CourseRepository) FindLesson(ctx context.Context, courseID, lessonID string) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.WithContext(ctx).Where("id = ? AND course_id = ?", lessonID, courseID).First(&lesson).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *CourseRepository) ListLessons(ctx context.Context, courseID string) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.WithContext(ctx).Where("course_id = ?", courseID).Order("sort_order asc").Find(&lessons).Error
	return lessons, err
}

func (r *CourseRepository) CountLessons(ctx context.Context, courseID string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Lesson{}).Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}

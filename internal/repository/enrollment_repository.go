package repository

import (
	"context"

	"tec_learning_backend/internal/model"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

func (r *EnrollmentRepository) Create(ctx context.Context, e *model.Enrollment) error {
	return r.DB.WithContext(ctx).Create(e).Error
}

func (r *EnrollmentRepository) Find(ctx context.Context, studentID, courseID string) (*model.Enrollment, error) {
	var e model.Enrollment
	err := r.DB.WithContext(ctx).Where("student_id = ? AND course_id = ?", studentID, courseID).First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EnrollmentRepository) Save(ctx context.Context, e *model.Enrollment) error {
	return r.DB.WithContext(ctx).Save(e).Error
}

func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentID string) ([]model.Enrollment, error) {
	var list []model.Enrollment
	err := r.DB.WithContext(ctx).Where("student_id = ?", studentID).Order("created_at desc").Find(&list).Error
	return list, err
}

func (r *EnrollmentRepository) ListStudentIDsByCourses(ctx context.Context, courseIDs []string) ([]string, error) {
	if len(courseIDs) == 0 {
		return []string{}, nil
	}
	var ids []string
	err := r.DB.WithContext(ctx).Model(&model.Enrollment{}).
		Where("course_id IN ?", courseIDs).
		Distinct().
		Pluck("student_id", &ids).Error
	return ids, err
}

func (r *EnrollmentRepository) HasCompletion(ctx context.Context, enrollmentID, lessonID string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.LessonCompletion{}).
		Where("enrollment_id = ? AND lesson_id = ?", enrollmentID, lessonID).
		Count(&count).Error
	return count > 0, err
}

func (r *EnrollmentRepository) CreateCompletion(ctx context.Context, c *model.LessonCompletion) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

func (r *EnrollmentRepository) CountCompletions(ctx context.Context, enrollmentID string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.LessonCompletion{}).
		Where("enrollment_id = ?", enrollmentID).
		Count(&count).Error
	return count, err
}

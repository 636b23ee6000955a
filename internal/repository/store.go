package repository

import (
	"context"
	"time"

	"tec_learning_backend/internal/model"
)

// 业务层只依赖以下接口，记录不存在时统一返回 gorm.ErrRecordNotFound。

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	UpdateLastSeen(ctx context.Context, id string, at time.Time) error
	ListByRole(ctx context.Context, role model.UserRole) ([]model.User, error)
	ListByIDs(ctx context.Context, ids []string) ([]model.User, error)
}

type WorkoutStore interface {
	Create(ctx context.Context, w *model.Workout) error
	FindByID(ctx context.Context, id string) (*model.Workout, error)
	List(ctx context.Context, filter model.WorkoutFilter) ([]model.Workout, error)
	ExistsByTitle(ctx context.Context, title string) (bool, error)
}

type WorkoutAttemptStore interface {
	Create(ctx context.Context, a *model.WorkoutAttempt) error
	// FindOpen 查找属于该学生且未提交的作答
	FindOpen(ctx context.Context, id, studentID string) (*model.WorkoutAttempt, error)
	// Close 仅当作答仍为 open 时写入结果，返回是否由本次调用关闭
	Close(ctx context.Context, a *model.WorkoutAttempt) (bool, error)
	ListRecentByStudent(ctx context.Context, studentID string, limit int) ([]model.WorkoutAttempt, error)
}

type WorkoutProgressStore interface {
	FindByKey(ctx context.Context, key model.ProgressKey, forUpdate bool) (*model.WorkoutProgress, error)
	Create(ctx context.Context, p *model.WorkoutProgress) error
	Save(ctx context.Context, p *model.WorkoutProgress) error
	ListByStudent(ctx context.Context, studentID string) ([]model.WorkoutProgress, error)
}

// WorkoutTx 事务内可用的存储
type WorkoutTx interface {
	Attempts() WorkoutAttemptStore
	Progress() WorkoutProgressStore
}

type Transactor interface {
	InTx(ctx context.Context, fn func(tx WorkoutTx) error) error
}

type ActivityStore interface {
	Create(ctx context.Context, log *model.ActivityLog) error
	ListRecentByUser(ctx context.Context, userID string, limit int) ([]model.ActivityLog, error)
}

type LearningPathStore interface {
	FindByStudent(ctx context.Context, studentID string) (*model.LearningPath, error)
	Create(ctx context.Context, path *model.LearningPath) error
	Save(ctx context.Context, path *model.LearningPath) error
}

type CourseStore interface {
	Create(ctx context.Context, course *model.Course) error
	FindByID(ctx context.Context, id string) (*model.Course, error)
	List(ctx context.Context, filter model.CourseFilter) ([]model.Course, error)
	Update(ctx context.Context, course *model.Course) error
	IncrementEnrollment(ctx context.Context, id string) error
	ListIDsByCreator(ctx context.Context, creatorID string) ([]string, error)

	CreateLesson(ctx context.Context, lesson *model.Lesson) error
	FindLesson(ctx context.Context, courseID, lessonID string) (*model.Lesson, error)
	ListLessons(ctx context.Context, courseID string) ([]model.Lesson, error)
	CountLessons(ctx context.Context, courseID string) (int64, error)
}

type EnrollmentStore interface {
	Create(ctx context.Context, e *model.Enrollment) error
	Find(ctx context.Context, studentID, courseID string) (*model.Enrollment, error)
	Save(ctx context.Context, e *model.Enrollment) error
	ListByStudent(ctx context.Context, studentID string) ([]model.Enrollment, error)
	ListStudentIDsByCourses(ctx context.Context, courseIDs []string) ([]string, error)

	HasCompletion(ctx context.Context, enrollmentID, lessonID string) (bool, error)
	CreateCompletion(ctx context.Context, c *model.LessonCompletion) error
	CountCompletions(ctx context.Context, enrollmentID string) (int64, error)
}

type PaymentStore interface {
	Create(ctx context.Context, tx *model.PaymentTransaction) error
	FindBySession(ctx context.Context, sessionID string) (*model.PaymentTransaction, error)
}

type ProgramEnrollmentStore interface {
	Create(ctx context.Context, e *model.ProgramEnrollment) error
}

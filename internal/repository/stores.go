package repository

import "gorm.io/gorm"

// Stores 在同一个 *gorm.DB 上组装全部仓储，mysql 与内存 sqlite 共用
type Stores struct {
	DB *gorm.DB
}

func NewStores(db *gorm.DB) *Stores {
	return &Stores{DB: db}
}

func (s *Stores) Users() UserStore                 { return NewUserRepository(s.DB) }
func (s *Stores) Workouts() WorkoutStore           { return NewWorkoutRepository(s.DB) }
func (s *Stores) Attempts() WorkoutAttemptStore    { return NewWorkoutAttemptRepository(s.DB) }
func (s *Stores) Progress() WorkoutProgressStore   { return NewWorkoutProgressRepository(s.DB) }
func (s *Stores) Transactor() Transactor           { return NewGormTransactor(s.DB) }
func (s *Stores) Activities() ActivityStore        { return NewActivityRepository(s.DB) }
func (s *Stores) LearningPaths() LearningPathStore { return NewLearningPathRepository(s.DB) }
func (s *Stores) Courses() CourseStore             { return NewCourseRepository(s.DB) }
func (s *Stores) Enrollments() EnrollmentStore     { return NewEnrollmentRepository(s.DB) }
func (s *Stores) Payments() PaymentStore           { return NewPaymentRepository(s.DB) }

func (s *Stores) ProgramEnrollments() ProgramEnrollmentStore {
	return NewProgramEnrollmentRepository(s.DB)
}

package model

import (
	"time"
)

// Enrollment 学生与课程的关联及完成度
//
// swagger:model Enrollment
type Enrollment struct {
	UUIDBase
	StudentID          string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_enrollment_student_course,priority:1" json:"student_id"`
	CourseID           string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_enrollment_student_course,priority:2;index" json:"course_id"`
	ProgressPercentage float64    `gorm:"default:0" json:"progress_percentage"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

// LessonCompletion 学生完成课时的记录
type LessonCompletion struct {
	UUIDBase
	EnrollmentID string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_lesson_completion,priority:1" json:"enrollment_id"`
	LessonID     string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_lesson_completion,priority:2" json:"lesson_id"`
	CompletedAt  time.Time `json:"completed_at"`
}

func (LessonCompletion) TableName() string {
	return "lesson_completions"
}

type PaymentMethod string

const (
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentCheckout     PaymentMethod = "checkout"
)

// ProgramEnrollment 官网公开报名（无需登录），等待线下或在线付款
//
// swagger:model ProgramEnrollment
type ProgramEnrollment struct {
	UUIDBase
	StudentName   string        `gorm:"size:100;not null" json:"student_name"`
	ParentName    string        `gorm:"size:100" json:"parent_name"`
	Email         string        `gorm:"size:100;index;not null" json:"email"`
	Phone         string        `gorm:"size:30" json:"phone"`
	Address       string        `gorm:"size:255" json:"address"`
	ProgramID     string        `gorm:"size:50;not null" json:"program_id"`
	AgeRange      string        `gorm:"size:10" json:"age_range"`
	BillingCycle  string        `gorm:"size:20" json:"billing_cycle"`
	Amount        float64       `json:"amount"`
	PaymentMethod PaymentMethod `gorm:"size:20" json:"payment_method"`
	SessionID     string        `gorm:"size:255;index" json:"session_id,omitempty"`
	Status        PaymentStatus `gorm:"size:20;default:'pending_payment'" json:"status"`
}

func (ProgramEnrollment) TableName() string {
	return "program_enrollments"
}

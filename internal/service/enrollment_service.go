package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"tec_learning_backend/internal/model"
	"tec_learning_backend/internal/repository"
	"tec_learning_backend/internal/util"
	"tec_learning_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 官网公开报名的项目价格（LKR），未知计费周期按月付计算
var programPricing = map[string]map[string]float64{
	"foundation": {"monthly": 800, "quarterly": 2800},
	"explorers":  {"monthly": 1200, "quarterly": 4200},
	"smart":      {"monthly": 1500, "quarterly": 5250},
	"teens":      {"monthly": 2000, "quarterly": 7000},
	"leaders":    {"monthly": 2500, "quarterly": 8750},
}

func programAmount(programID, billingCycle string) (float64, bool) {
	prices, ok := programPricing[programID]
	if !ok {
		return 0, false
	}
	if amount, ok := prices[billingCycle]; ok {
		return amount, true
	}
	return prices["monthly"], true
}

type EnrollmentService struct {
	EnrollmentRepo repository.EnrollmentStore
	CourseRepo     repository.CourseStore
	ProgramRepo    repository.ProgramEnrollmentStore
	Learning       *LearningService
	Gateway        CheckoutGateway
	Activity       *ActivityService
	Currency       string
}

func NewEnrollmentService(
	enrollmentRepo repository.EnrollmentStore,
	courseRepo repository.CourseStore,
	programRepo repository.ProgramEnrollmentStore,
	learning *LearningService,
	gateway CheckoutGateway,
	activity *ActivityService,
	currency string,
) *EnrollmentService {
	if currency == "" {
		currency = "lkr"
	}
	return &EnrollmentService{
		EnrollmentRepo: enrollmentRepo,
		CourseRepo:     courseRepo,
		ProgramRepo:    programRepo,
		Learning:       learning,
		Gateway:        gateway,
		Activity:       activity,
		Currency:       currency,
	}
}

func (s *EnrollmentService) Enroll(ctx context.Context, caller Caller, courseID string) (*model.Enrollment, error) {
	if !caller.IsStudent() {
		return nil, fmt.Errorf("%w: only students can enroll", util.ErrPermissionDenied)
	}
	course, err := s.CourseRepo.FindByID(ctx, courseID)
	if err != nil {
		return nil, notFoundAs(err, util.ErrCourseNotFound)
	}
	if !course.IsPublished {
		return nil, util.ErrCourseNotFound
	}

	_, err = s.EnrollmentRepo.Find(ctx, caller.UserID, courseID)
	if err == nil {
		return nil, util.ErrAlreadyEnrolled
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	enrollment := &model.Enrollment{StudentID: caller.UserID, CourseID: courseID}
	if err := s.EnrollmentRepo.Create(ctx, enrollment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrAlreadyEnrolled
		}
		return nil, err
	}
	if err := s.CourseRepo.IncrementEnrollment(ctx, courseID); err != nil {
		logger.Log.Warn("Failed to update enrollment count", zap.String("course_id", courseID), zap.Error(err))
	}

	s.Activity.Log(ctx, caller.UserID, model.ActivityCourseEnrollment, map[string]interface{}{
		"course_id":    course.ID,
		"course_title": course.Title,
	})
	return enrollment, nil
}

// CompleteLesson 记录课时完成并按 已完成/总课时 重新计算进度，重复完成不重复计数
func (s *EnrollmentService) CompleteLesson(ctx context.Context, caller Caller, courseID, lessonID string) (*model.Enrollment, error) {
	if !caller.IsStudent() {
		return nil, fmt.Errorf("%w: only students can complete lessons", util.ErrPermissionDenied)
	}
	enrollment, err := s.EnrollmentRepo.Find(ctx, caller.UserID, courseID)
	if err != nil {
		return nil, notFoundAs(err, util.ErrNotEnrolled)
	}
	lesson, err := s.CourseRepo.FindLesson(ctx, courseID, lessonID)
	if err != nil {
		return nil, notFoundAs(err, util.ErrLessonNotFound)
	}

	done, err := s.EnrollmentRepo.HasCompletion(ctx, enrollment.ID, lesson.ID)
	if err != nil {
		return nil, err
	}
	if !done {
		completion := &model.LessonCompletion{
			EnrollmentID: enrollment.ID,
			LessonID:     lesson.ID,
			CompletedAt:  time.Now().UTC(),
		}
		if err := s.EnrollmentRepo.CreateCompletion(ctx, completion); err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		s.Activity.Log(ctx, caller.UserID, model.ActivityLessonCompleted, map[string]interface{}{
			"course_id": courseID,
			"lesson_id": lesson.ID,
		})
	}

	completed, err := s.EnrollmentRepo.CountCompletions(ctx, enrollment.ID)
	if err != nil {
		return nil, err
	}
	total, err := s.CourseRepo.CountLessons(ctx, courseID)
	if err != nil {
		return nil, err
	}
	enrollment.ProgressPercentage = completionPercentage(completed, total)

	justCompleted := enrollment.ProgressPercentage >= 100 && enrollment.CompletedAt == nil
	if justCompleted {
		now := time.Now().UTC()
		enrollment.CompletedAt = &now
	}
	if err := s.EnrollmentRepo.Save(ctx, enrollment); err != nil {
		return nil, err
	}

	if justCompleted {
		s.onCourseCompleted(ctx, caller, courseID)
	}
	return enrollment, nil
}

func (s *EnrollmentService) onCourseCompleted(ctx context.Context, caller Caller, courseID string) {
	course, err := s.CourseRepo.FindByID(ctx, courseID)
	if err != nil {
		logger.Log.Warn("Completed course not found", zap.String("course_id", courseID), zap.Error(err))
		return
	}
	lessons, err := s.CourseRepo.ListLessons(ctx, courseID)
	if err != nil {
		logger.Log.Warn("Failed to list lessons", zap.String("course_id", courseID), zap.Error(err))
	}
	minutes := 0
	for _, l := range lessons {
		minutes += l.DurationMinutes
	}
	if s.Learning != nil {
		if err := s.Learning.RecordCourseCompletion(ctx, caller.UserID, course, minutes); err != nil {
			logger.Log.Warn("Failed to update learning path", zap.String("user_id", caller.UserID), zap.Error(err))
		}
	}
	s.Activity.Log(ctx, caller.UserID, model.ActivityCourseCompleted, map[string]interface{}{
		"course_id":    course.ID,
		"course_title": course.Title,
	})
}

func completionPercentage(completed, total int64) float64 {
	if total <= 0 {
		return 0
	}
	pct := float64(completed) / float64(total) * 100
	return math.Min(100, math.Round(pct*100)/100)
}

func (s *EnrollmentService) ListEnrollments(ctx context.Context, caller Caller) ([]model.Enrollment, error) {
	if !caller.IsStudent() {
		return nil, fmt.Errorf("%w: only students have enrollments", util.ErrPermissionDenied)
	}
	list, err := s.EnrollmentRepo.ListByStudent(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []model.Enrollment{}
	}
	return list, nil
}

// ProgramEnrollmentRequest 官网公开报名表单
type ProgramEnrollmentRequest struct {
	StudentName      string  `json:"student_name" binding:"required"`
	ParentName       string  `json:"parent_name"`
	Email            string  `json:"email" binding:"required,email"`
	Phone            string  `json:"phone"`
	Address          string  `json:"address"`
	ProgramID        string  `json:"program_id" binding:"required"`
	AgeGroup         string  `json:"age_group"`
	SubscriptionType string  `json:"subscription_type"`
	Amount           float64 `json:"amount"`
	SuccessURL       string  `json:"success_url"`
	CancelURL        string  `json:"cancel_url"`
}

func (r *ProgramEnrollmentRequest) billingCycle() string {
	if r.SubscriptionType == "" {
		return string(model.SubscriptionMonthly)
	}
	return r.SubscriptionType
}

type BankTransferResult struct {
	Success      bool   `json:"success"`
	EnrollmentID string `json:"enrollment_id"`
	Message      string `json:"message"`
}

type CheckoutResult struct {
	CheckoutURL string `json:"checkout_url"`
	SessionID   string `json:"session_id"`
}

func (s *EnrollmentService) newProgramEnrollment(req ProgramEnrollmentRequest) *model.ProgramEnrollment {
	return &model.ProgramEnrollment{
		StudentName:  strings.TrimSpace(req.StudentName),
		ParentName:   req.ParentName,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:        req.Phone,
		Address:      req.Address,
		ProgramID:    req.ProgramID,
		AgeRange:     req.AgeGroup,
		BillingCycle: req.billingCycle(),
		Status:       model.PaymentPendingPayment,
	}
}

// BankTransferEnrollment 保存待线下付款的报名，金额以定价表为准
func (s *EnrollmentService) BankTransferEnrollment(ctx context.Context, req ProgramEnrollmentRequest) (*BankTransferResult, error) {
	record := s.newProgramEnrollment(req)
	record.PaymentMethod = model.PaymentBankTransfer
	if amount, ok := programAmount(req.ProgramID, record.BillingCycle); ok {
		record.Amount = amount
	} else {
		record.Amount = req.Amount
	}

	if err := s.ProgramRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	logger.Log.Info("Bank transfer enrollment submitted",
		zap.String("enrollment_id", record.ID),
		zap.String("program_id", record.ProgramID))

	return &BankTransferResult{
		Success:      true,
		EnrollmentID: record.ID,
		Message:      "Enrollment submitted. Please complete bank transfer.",
	}, nil
}

// CheckoutEnrollment 创建收银台会话并保存待付款报名
func (s *EnrollmentService) CheckoutEnrollment(ctx context.Context, req ProgramEnrollmentRequest) (*CheckoutResult, error) {
	if s.Gateway == nil {
		return nil, util.ErrPaymentNotConfigured
	}
	record := s.newProgramEnrollment(req)
	amount, ok := programAmount(req.ProgramID, record.BillingCycle)
	if !ok {
		return nil, util.ErrInvalidProgram
	}
	if req.SuccessURL == "" || req.CancelURL == "" {
		return nil, fmt.Errorf("%w: success_url and cancel_url are required", util.ErrInvalidRequest)
	}

	session, err := s.Gateway.CreateSession(ctx, CheckoutSessionRequest{
		Amount:     amount,
		Currency:   s.Currency,
		SuccessURL: req.SuccessURL,
		CancelURL:  req.CancelURL,
		Metadata: map[string]string{
			"student_name":    record.StudentName,
			"parent_name":     record.ParentName,
			"email":           record.Email,
			"phone":           record.Phone,
			"address":         record.Address,
			"program_id":      record.ProgramID,
			"age_range":       record.AgeRange,
			"billing_cycle":   record.BillingCycle,
			"enrollment_type": "public",
		},
	})
	if err != nil {
		return nil, err
	}

	record.Amount = amount
	record.PaymentMethod = model.PaymentCheckout
	record.SessionID = session.SessionID
	if err := s.ProgramRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	logger.Log.Info("Checkout enrollment created",
		zap.String("enrollment_id", record.ID),
		zap.String("session_id", session.SessionID))

	return &CheckoutResult{CheckoutURL: session.URL, SessionID: session.SessionID}, nil
}

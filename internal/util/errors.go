package util

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailRegistered      = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("incorrect email or password")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrWorkoutNotFound      = errors.New("workout not found")
	ErrAttemptNotFound      = errors.New("active attempt not found")
	ErrInvalidSubmission    = errors.New("invalid submission")
	ErrInvalidWorkout       = errors.New("invalid workout definition")
	ErrInvalidFilter        = errors.New("invalid filter")
	ErrInvalidRequest       = errors.New("invalid request")
	ErrCourseNotFound       = errors.New("course not found")
	ErrLessonNotFound       = errors.New("lesson not found")
	ErrAlreadyEnrolled      = errors.New("already enrolled in course")
	ErrNotEnrolled          = errors.New("not enrolled in course")
	ErrInvalidPlan          = errors.New("invalid subscription plan")
	ErrInvalidProgram       = errors.New("invalid program")
	ErrPaymentNotConfigured = errors.New("payment processing not configured")
)

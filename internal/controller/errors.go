package controller

import (
	"errors"
	"net/http"

	"tec_learning_backend/internal/service"
	"tec_learning_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// respondError 把服务层的哨兵错误映射成统一响应
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrPermissionDenied):
		util.ForbiddenWithMessage(ctx, err.Error())
	case errors.Is(err, util.ErrWorkoutNotFound),
		errors.Is(err, util.ErrAttemptNotFound),
		errors.Is(err, util.ErrCourseNotFound),
		errors.Is(err, util.ErrLessonNotFound),
		errors.Is(err, util.ErrUserNotFound),
		errors.Is(err, util.ErrNotEnrolled):
		util.NotFoundWithMessage(ctx, err.Error())
	case errors.Is(err, util.ErrInvalidSubmission),
		errors.Is(err, util.ErrInvalidWorkout),
		errors.Is(err, util.ErrInvalidFilter),
		errors.Is(err, util.ErrInvalidRequest),
		errors.Is(err, util.ErrInvalidPlan),
		errors.Is(err, util.ErrInvalidProgram):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrEmailRegistered),
		errors.Is(err, util.ErrAlreadyEnrolled):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrInvalidCredentials):
		util.Error(ctx, http.StatusUnauthorized, err.Error())
	case errors.Is(err, util.ErrPaymentNotConfigured):
		util.Error(ctx, http.StatusInternalServerError, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

func currentCaller(ctx *gin.Context) service.Caller {
	return service.CallerFromClaims(util.GetUserFromContext(ctx))
}

package controller

import (
	"tec_learning_backend/internal/model"
	"tec_learning_backend/internal/service"
	"tec_learning_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type WorkoutController struct {
	WorkoutService *service.WorkoutService
}

func NewWorkoutController(workoutService *service.WorkoutService) *WorkoutController {
	return &WorkoutController{WorkoutService: workoutService}
}

// ListWorkouts godoc
// @Summary 获取逻辑训练列表
// @Description 只返回已启用的训练，任何角色都看不到答案
// @Tags 逻辑训练
// @Produce json
// @Security ApiKeyAuth
// @Param learning_level query string false "学习阶段" Enums(foundation, development, mastery)
// @Param workout_type query string false "训练类型"
// @Param difficulty query string false "难度" Enums(beginner, intermediate, advanced, expert)
// @Param age_group query string false "年龄段" Enums(5-8, 9-12, 13-16)
// @Success 200 {object} util.Response{data=[]model.WorkoutView}
// @Failure 400 {object} util.Response "过滤条件错误"
// @Router /workouts [get]
func (c *WorkoutController) ListWorkouts(ctx *gin.Context) {
	filter := model.WorkoutFilter{
		LearningLevel: model.LearningLevel(ctx.Query("learning_level")),
		WorkoutType:   model.WorkoutType(ctx.Query("workout_type")),
		Difficulty:    model.WorkoutDifficulty(ctx.Query("difficulty")),
		AgeGroup:      model.AgeGroup(ctx.Query("age_group")),
	}

	views, err := c.WorkoutService.ListWorkouts(ctx.Request.Context(), currentCaller(ctx), filter)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, views)
}

// GetWorkout godoc
// @Summary 获取逻辑训练详情
// @Description 教师和管理员可以看到答案
// @Tags 逻辑训练
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "训练ID"
// @Success 200 {object} util.Response{data=model.WorkoutView}
// @Failure 404 {object} util.Response "训练不存在"
// @Router /workouts/{id} [get]
func (c *WorkoutController) GetWorkout(ctx *gin.Context) {
	view, err := c.WorkoutService.GetWorkout(ctx.Request.Context(), currentCaller(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// CreateWorkout godoc
// @Summary 创建逻辑训练
// @Tags 逻辑训练
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CreateWorkoutRequest true "训练内容"
// @Success 201 {object} util.Response{data=model.WorkoutView}
// @Failure 400 {object} util.Response "参数错误"
// @Failure 403 {object} util.Response "仅教师或管理员"
// @Router /workouts [post]
func (c *WorkoutController) CreateWorkout(ctx *gin.Context) {
	var req service.CreateWorkoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.WorkoutService.CreateWorkout(ctx.Request.Context(), currentCaller(ctx), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, view)
}

// SeedSampleWorkouts godoc
// @Summary 导入示例训练
// @Description 已存在同名训练时跳过
// @Tags 逻辑训练
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object}
// @Failure 403 {object} util.Response "仅管理员"
// @Router /workouts/initialize-samples [post]
func (c *WorkoutController) SeedSampleWorkouts(ctx *gin.Context) {
	created, err := c.WorkoutService.SeedSampleWorkouts(ctx.Request.Context(), currentCaller(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"created": created})
}

// StartAttempt godoc
// @Summary 开始训练
// @Tags 逻辑训练
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "训练ID"
// @Success 200 {object} util.Response{data=service.StartAttemptResult}
// @Failure 403 {object} util.Response "仅学生"
// @Failure 404 {object} util.Response "训练不存在"
// @Router /workouts/{id}/attempt [post]
func (c *WorkoutController) StartAttempt(ctx *gin.Context) {
	result, err := c.WorkoutService.StartAttempt(ctx.Request.Context(), currentCaller(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// SubmitAttempt godoc
// @Summary 提交训练答案
// @Description 答错时返回参考答案
// @Tags 逻辑训练
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param attemptId path string true "作答ID"
// @Param body body service.SubmitAttemptRequest true "答案和使用的提示数"
// @Success 200 {object} util.Response{data=service.SubmitResult}
// @Failure 400 {object} util.Response "提交内容错误"
// @Failure 404 {object} util.Response "作答不存在或已提交"
// @Router /workouts/attempts/{attemptId}/submit [post]
func (c *WorkoutController) SubmitAttempt(ctx *gin.Context) {
	var req service.SubmitAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.WorkoutService.SubmitAttempt(ctx.Request.Context(), currentCaller(ctx), ctx.Param("attemptId"), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// GetProgress godoc
// @Summary 获取我的训练进度
// @Tags 逻辑训练
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.ProgressResult}
// @Failure 403 {object} util.Response "仅学生"
// @Router /workouts/progress [get]
func (c *WorkoutController) GetProgress(ctx *gin.Context) {
	result, err := c.WorkoutService.GetProgress(ctx.Request.Context(), currentCaller(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

package controller

import (
	"tec_learning_backend/internal/service"
	"tec_learning_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LearningController struct {
	LearningService *service.LearningService
}

func NewLearningController(learningService *service.LearningService) *LearningController {
	return &LearningController{LearningService: learningService}
}

// GetFramework godoc
// @Summary 获取学习框架
// @Description 三个学习阶段的年龄段、重点和技能说明
// @Tags 学习路径
// @Produce json
// @Success 200 {object} util.Response{data=object}
// @Router /learning-framework [get]
func (c *LearningController) GetFramework(ctx *gin.Context) {
	util.Success(ctx, c.LearningService.Framework())
}

// GetLearningPath godoc
// @Summary 获取我的学习路径
// @Description 首次访问时自动创建
// @Tags 学习路径
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.LearningPathView}
// @Failure 403 {object} util.Response "仅学生"
// @Router /learning-path [get]
func (c *LearningController) GetLearningPath(ctx *gin.Context) {
	view, err := c.LearningService.GetLearningPath(ctx.Request.Context(), currentCaller(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

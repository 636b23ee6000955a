package controller

import (
	"tec_learning_backend/internal/service"
	"tec_learning_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	AnalyticsService *service.AnalyticsService
}

func NewAnalyticsController(analyticsService *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analyticsService}
}

// GetStudents godoc
// @Summary 学生学习分析
// @Description 教师只能看到自己课程的学生，管理员可以看到全部学生
// @Tags 分析
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.StudentAnalytics}
// @Failure 403 {object} util.Response "仅教师或管理员"
// @Router /analytics/students [get]
func (c *AnalyticsController) GetStudents(ctx *gin.Context) {
	list, err := c.AnalyticsService.Students(ctx.Request.Context(), currentCaller(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

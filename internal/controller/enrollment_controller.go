package controller

import (
	"tec_learning_backend/internal/service"
	"tec_learning_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// EnrollmentController 官网的公开项目报名
type EnrollmentController struct {
	EnrollmentService *service.EnrollmentService
}

func NewEnrollmentController(enrollmentService *service.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{EnrollmentService: enrollmentService}
}

// BankTransfer godoc
// @Summary 银行转账报名
// @Description 记录待确认的项目报名
// @Tags 报名
// @Accept json
// @Produce json
// @Param body body service.ProgramEnrollmentRequest true "报名信息"
// @Success 201 {object} util.Response{data=service.BankTransferResult}
// @Failure 400 {object} util.Response "参数错误"
// @Router /enrollment/bank-transfer [post]
func (c *EnrollmentController) BankTransfer(ctx *gin.Context) {
	var req service.ProgramEnrollmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.EnrollmentService.BankTransferEnrollment(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, result)
}

// Checkout godoc
// @Summary 在线支付报名
// @Description 创建支付会话并返回跳转地址
// @Tags 报名
// @Accept json
// @Produce json
// @Param body body service.ProgramEnrollmentRequest true "报名信息"
// @Success 200 {object} util.Response{data=service.CheckoutResult}
// @Failure 400 {object} util.Response "项目不存在"
// @Failure 500 {object} util.Response "未配置支付"
// @Router /enrollment/checkout [post]
func (c *EnrollmentController) Checkout(ctx *gin.Context) {
	var req service.ProgramEnrollmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.EnrollmentService.CheckoutEnrollment(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

package controller

import (
	"tec_learning_backend/internal/service"
	"tec_learning_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SubscriptionController struct {
	SubscriptionService *service.SubscriptionService
}

func NewSubscriptionController(subscriptionService *service.SubscriptionService) *SubscriptionController {
	return &SubscriptionController{SubscriptionService: subscriptionService}
}

// GetPlans godoc
// @Summary 获取订阅价格
// @Tags 订阅
// @Produce json
// @Success 200 {object} util.Response{data=object}
// @Router /subscription/plans [get]
func (c *SubscriptionController) GetPlans(ctx *gin.Context) {
	util.Success(ctx, c.SubscriptionService.Plans())
}

// Checkout godoc
// @Summary 创建订阅支付
// @Tags 订阅
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.SubscriptionCheckoutRequest true "订阅类型和年龄段"
// @Success 200 {object} util.Response{data=service.CheckoutResult}
// @Failure 400 {object} util.Response "订阅方案不存在"
// @Failure 500 {object} util.Response "未配置支付"
// @Router /subscription/checkout [post]
func (c *SubscriptionController) Checkout(ctx *gin.Context) {
	var req service.SubscriptionCheckoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.SubscriptionService.Checkout(ctx.Request.Context(), currentCaller(ctx), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

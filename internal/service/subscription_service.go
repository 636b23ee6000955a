package service

import (
	"context"
	"fmt"

	"tec_learning_backend/internal/model"
	"tec_learning_backend/internal/repository"
	"tec_learning_backend/internal/util"
	"tec_learning_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// PlanPrice 订阅套餐。季付套餐包含教材费，按 TotalPrice 收费。
type PlanPrice struct {
	Price          float64  `json:"price,omitempty"`
	DigitalPrice   float64  `json:"digital_price,omitempty"`
	MaterialsPrice float64  `json:"materials_price,omitempty"`
	TotalPrice     float64  `json:"total_price,omitempty"`
	Currency       string   `json:"currency"`
	DurationDays   int      `json:"duration_days"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Features       []string `json:"features"`
}

func (p PlanPrice) Amount() float64 {
	if p.TotalPrice > 0 {
		return p.TotalPrice
	}
	return p.Price
}

var unifiedPricing = map[model.LearningLevel]map[model.SubscriptionType]PlanPrice{
	model.LevelFoundation: {
		model.SubscriptionMonthly: {
			Price:        1200,
			Currency:     "lkr",
			DurationDays: 30,
			Name:         "Foundation Level - Monthly",
			Description:  "Complete foundation skills for ages 5-8",
			Features:     []string{"AI Basics", "Simple Logic", "Creative Play", "Progress Tracking"},
		},
		model.SubscriptionQuarterly: {
			DigitalPrice:   3060,
			MaterialsPrice: 1500,
			TotalPrice:     4560,
			Currency:       "lkr",
			DurationDays:   90,
			Name:           "Foundation Level - Quarterly",
			Description:    "3 months + learning materials for ages 5-8",
			Features:       []string{"All digital content", "Physical learning kit", "Activity books", "Parent guides"},
		},
	},
	model.LevelDevelopment: {
		model.SubscriptionMonthly: {
			Price:        1800,
			Currency:     "lkr",
			DurationDays: 30,
			Name:         "Development Level - Monthly",
			Description:  "Advanced thinking skills for ages 9-12",
			Features:     []string{"Logical Reasoning", "AI Applications", "Design Thinking", "Complex Problems"},
		},
		model.SubscriptionQuarterly: {
			DigitalPrice:   4590,
			MaterialsPrice: 1500,
			TotalPrice:     6090,
			Currency:       "lkr",
			DurationDays:   90,
			Name:           "Development Level - Quarterly",
			Description:    "3 months + advanced materials for ages 9-12",
			Features:       []string{"All digital content", "Advanced project kits", "Logic puzzles", "Innovation challenges"},
		},
	},
	model.LevelMastery: {
		model.SubscriptionMonthly: {
			Price:        2800,
			Currency:     "lkr",
			DurationDays: 30,
			Name:         "Mastery Level - Monthly",
			Description:  "Future career preparation for ages 13-16",
			Features:     []string{"Advanced AI", "Innovation Methods", "Leadership Skills", "Career Guidance"},
		},
		model.SubscriptionQuarterly: {
			DigitalPrice:   7140,
			MaterialsPrice: 1500,
			TotalPrice:     8640,
			Currency:       "lkr",
			DurationDays:   90,
			Name:           "Mastery Level - Quarterly",
			Description:    "3 months + professional materials for ages 13-16",
			Features:       []string{"All digital content", "Professional toolkit", "Career workbooks", "Future skills training"},
		},
	},
}

// LookupPlan 按年龄段和订阅类型查找套餐
func LookupPlan(ageGroup model.AgeGroup, subscriptionType model.SubscriptionType) (PlanPrice, error) {
	level := model.LearningLevelForAge(ageGroup)
	plans, ok := unifiedPricing[level]
	if !ok {
		return PlanPrice{}, fmt.Errorf("%w: invalid pricing level", util.ErrInvalidPlan)
	}
	plan, ok := plans[subscriptionType]
	if !ok {
		return PlanPrice{}, fmt.Errorf("%w: invalid subscription type", util.ErrInvalidPlan)
	}
	return plan, nil
}

type SubscriptionService struct {
	UserRepo    repository.UserStore
	PaymentRepo repository.PaymentStore
	Gateway     CheckoutGateway
	Activity    *ActivityService
}

func NewSubscriptionService(userRepo repository.UserStore, paymentRepo repository.PaymentStore, gateway CheckoutGateway, activity *ActivityService) *SubscriptionService {
	return &SubscriptionService{
		UserRepo:    userRepo,
		PaymentRepo: paymentRepo,
		Gateway:     gateway,
		Activity:    activity,
	}
}

type SubscriptionCheckoutRequest struct {
	SubscriptionType model.SubscriptionType `json:"subscription_type" binding:"required"`
	AgeGroup         model.AgeGroup         `json:"age_group" binding:"required"`
	SuccessURL       string                 `json:"success_url" binding:"required"`
	CancelURL        string                 `json:"cancel_url" binding:"required"`
}

func (s *SubscriptionService) Plans() map[model.LearningLevel]map[model.SubscriptionType]PlanPrice {
	return unifiedPricing
}

// Checkout 创建订阅收银台会话，支付结果由收银台回调确认
func (s *SubscriptionService) Checkout(ctx context.Context, caller Caller, req SubscriptionCheckoutRequest) (*CheckoutResult, error) {
	if s.Gateway == nil {
		return nil, util.ErrPaymentNotConfigured
	}
	plan, err := LookupPlan(req.AgeGroup, req.SubscriptionType)
	if err != nil {
		return nil, err
	}
	user, err := s.UserRepo.FindByID(ctx, caller.UserID)
	if err != nil {
		return nil, notFoundAs(err, util.ErrUserNotFound)
	}

	metadata := map[string]string{
		"user_id":           user.ID,
		"subscription_type": string(req.SubscriptionType),
		"age_group":         string(req.AgeGroup),
		"user_email":        user.Email,
		"plan_name":         plan.Name,
	}
	session, err := s.Gateway.CreateSession(ctx, CheckoutSessionRequest{
		Amount:     plan.Amount(),
		Currency:   plan.Currency,
		SuccessURL: req.SuccessURL,
		CancelURL:  req.CancelURL,
		Metadata:   metadata,
	})
	if err != nil {
		return nil, err
	}

	tx := &model.PaymentTransaction{
		UserID:           user.ID,
		SessionID:        session.SessionID,
		SubscriptionType: req.SubscriptionType,
		AgeGroup:         req.AgeGroup,
		PlanName:         plan.Name,
		Amount:           plan.Amount(),
		Currency:         plan.Currency,
		Status:           model.PaymentInitiated,
		Metadata:         datatypes.NewJSONType(metadata),
	}
	if err := s.PaymentRepo.Create(ctx, tx); err != nil {
		return nil, err
	}

	s.Activity.Log(ctx, user.ID, model.ActivityPaymentInitiated, map[string]interface{}{
		"session_id": session.SessionID,
		"plan_name":  plan.Name,
		"amount":     plan.Amount(),
	})
	logger.Log.Info("Subscription checkout created",
		zap.String("user_id", user.ID),
		zap.String("session_id", session.SessionID),
		zap.Float64("amount", plan.Amount()))

	return &CheckoutResult{CheckoutURL: session.URL, SessionID: session.SessionID}, nil
}

package model

import (
	"gorm.io/datatypes"
)

type PaymentStatus string

const (
	PaymentPending        PaymentStatus = "pending"
	PaymentPendingPayment PaymentStatus = "pending_payment"
	PaymentInitiated      PaymentStatus = "initiated"
	PaymentCompleted      PaymentStatus = "completed"
	PaymentFailed         PaymentStatus = "failed"
	PaymentCancelled      PaymentStatus = "cancelled"
	PaymentExpired        PaymentStatus = "expired"
)

// PaymentTransaction 订阅支付会话记录，状态由支付方回调推进
//
// swagger:model PaymentTransaction
type PaymentTransaction struct {
	UUIDBase
	UserID           string                                `gorm:"type:varchar(36);index" json:"user_id"`
	SessionID        string                                `gorm:"size:255;uniqueIndex" json:"session_id"`
	SubscriptionType SubscriptionType                      `gorm:"size:20" json:"subscription_type"`
	AgeGroup         AgeGroup                              `gorm:"size:10" json:"age_group"`
	PlanName         string                                `gorm:"size:100" json:"plan_name"`
	Amount           float64                               `json:"amount"`
	Currency         string                                `gorm:"size:10" json:"currency"`
	Status           PaymentStatus                         `gorm:"size:20;index" json:"status"`
	Metadata         datatypes.JSONType[map[string]string] `gorm:"type:json" json:"metadata"`
}

func (PaymentTransaction) TableName() string {
	return "payment_transactions"
}

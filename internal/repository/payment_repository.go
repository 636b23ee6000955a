package repository

import (
	"context"

	"tec_learning_backend/internal/model"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	DB *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

func (r *PaymentRepository) Create(ctx context.Context, tx *model.PaymentTransaction) error {
	return r.DB.WithContext(ctx).Create(tx).Error
}

func (r *PaymentRepository) FindBySession(ctx context.Context, sessionID string) (*model.PaymentTransaction, error) {
	var tx model.PaymentTransaction
	err := r.DB.WithContext(ctx).Where("session_id = ?", sessionID).First(&tx).Error
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

type ProgramEnrollmentRepository struct {
	DB *gorm.DB
}

func NewProgramEnrollmentRepository(db *gorm.DB) *ProgramEnrollmentRepository {
	return &ProgramEnrollmentRepository{DB: db}
}

func (r *ProgramEnrollmentRepository) Create(ctx context.Context, e *model.ProgramEnrollment) error {
	return r.DB.WithContext(ctx).Create(e).Error
}

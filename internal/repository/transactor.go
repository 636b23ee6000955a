package repository

import (
	"context"

	"gorm.io/gorm"
)

type gormWorkoutTx struct {
	attempts *WorkoutAttemptRepository
	progress *WorkoutProgressRepository
}

func (t *gormWorkoutTx) Attempts() WorkoutAttemptStore  { return t.attempts }
func (t *gormWorkoutTx) Progress() WorkoutProgressStore { return t.progress }

// GormTransactor 在同一个数据库事务中提供作答和统计存储
type GormTransactor struct {
	DB *gorm.DB
}

func NewGormTransactor(db *gorm.DB) *GormTransactor {
	return &GormTransactor{DB: db}
}

func (t *GormTransactor) InTx(ctx context.Context, fn func(tx WorkoutTx) error) error {
	return t.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormWorkoutTx{
			attempts: NewWorkoutAttemptRepository(tx),
			progress: NewWorkoutProgressRepository(tx),
		})
	})
}

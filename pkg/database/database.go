package database

import (
	"fmt"

	"tec_learning_backend/internal/config"
	"tec_learning_backend/internal/model"
	"tec_learning_backend/internal/util"
	applog "tec_learning_backend/pkg/logger"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB 按 database.driver 建立连接，memory 驱动使用进程内 sqlite 并直接完成迁移
func InitDB(cfg *config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	if cfg.Driver == util.DatabaseMemory {
		return OpenMemory(debug)
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=UTC",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), gormConfig(debug))
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(10)

	applog.Log.Info("Database connection established", zap.String("host", cfg.Host), zap.String("db", cfg.DBName))
	return db, nil
}

// OpenMemory 打开一个独立的内存 sqlite 库，每次调用互不可见
func OpenMemory(debug bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig(debug))
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// 单连接串行化写入，连接常驻以保留内存库
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := Migrate(db); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	applog.Log.Warn("Using in-memory sqlite database, data is lost on restart")
	return db, nil
}

func gormConfig(debug bool) *gorm.Config {
	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}
	return &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		// 唯一约束冲突统一映射为 gorm.ErrDuplicatedKey
		TranslateError: true,
	}
}

// Migrate 同步表结构
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.LearningPath{},
		&model.ActivityLog{},
		&model.Workout{},
		&model.WorkoutAttempt{},
		&model.WorkoutProgress{},
		&model.Course{},
		&model.Lesson{},
		&model.Enrollment{},
		&model.LessonCompletion{},
		&model.ProgramEnrollment{},
		&model.PaymentTransaction{},
	)
	if err != nil {
		return err
	}

	applog.Log.Info("Database migration completed")
	return nil
}

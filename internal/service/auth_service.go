package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tec_learning_backend/internal/config"
	"tec_learning_backend/internal/model"
	"tec_learning_backend/internal/repository"
	"tec_learning_backend/internal/util"
	"tec_learning_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo repository.UserStore
	PathRepo repository.LearningPathStore
	Activity *ActivityService
	Cfg      *config.Config
}

func NewAuthService(userRepo repository.UserStore, pathRepo repository.LearningPathStore, activity *ActivityService, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		PathRepo: pathRepo,
		Activity: activity,
		Cfg:      cfg,
	}
}

type RegisterRequest struct {
	Email    string         `json:"email" binding:"required,email"`
	FullName string         `json:"full_name" binding:"required"`
	Password string         `json:"password" binding:"required,min=8"`
	Role     model.UserRole `json:"role" binding:"required,oneof=student teacher"`
	AgeGroup model.AgeGroup `json:"age_group"`
}

type LoginResult struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        *model.User `json:"user"`
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	if req.Role != model.Student && req.Role != model.Teacher {
		return nil, fmt.Errorf("%w: role must be student or teacher", util.ErrInvalidRequest)
	}
	if req.AgeGroup != "" && !req.AgeGroup.Valid() {
		return nil, fmt.Errorf("%w: unknown age_group %q", util.ErrInvalidRequest, req.AgeGroup)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	_, err := s.UserRepo.FindByEmail(ctx, email)
	if err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:         email,
		FullName:      strings.TrimSpace(req.FullName),
		Password:      string(hashedPassword),
		Role:          req.Role,
		AgeGroup:      req.AgeGroup,
		LearningLevel: model.LearningLevelForAge(req.AgeGroup),
		IsActive:      true,
	}
	if err := s.UserRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrEmailRegistered
		}
		return nil, err
	}

	if user.Role == model.Student && user.LearningLevel != "" {
		path := model.NewLearningPath(user.ID, user.LearningLevel, time.Now().UTC())
		if err := s.PathRepo.Create(ctx, path); err != nil {
			logger.Log.Warn("Failed to initialize learning path", zap.String("user_id", user.ID), zap.Error(err))
		}
	}

	s.Activity.Log(ctx, user.ID, model.ActivityLogin, map[string]interface{}{"action": "registration"})
	logger.Log.Info("User registered", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.UserRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user.LastLogin = &now
	if err := s.UserRepo.Update(ctx, user); err != nil {
		logger.Log.Warn("Failed to update last login", zap.String("user_id", user.ID), zap.Error(err))
	}

	s.Activity.Log(ctx, user.ID, model.ActivityLogin, map[string]interface{}{
		"login_time": now.Format(time.RFC3339),
	})
	return &LoginResult{AccessToken: token, TokenType: "bearer", User: user}, nil
}

func (s *AuthService) Logout(ctx context.Context, caller Caller) {
	s.Activity.Log(ctx, caller.UserID, model.ActivityLogout, map[string]interface{}{
		"logout_time": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *AuthService) GetCurrentUser(ctx context.Context, caller Caller) (*model.User, error) {
	user, err := s.UserRepo.FindByID(ctx, caller.UserID)
	if err != nil {
		return nil, notFoundAs(err, util.ErrUserNotFound)
	}
	return user, nil
}

// UpdateLastSeen 由活跃度中间件异步调用
func (s *AuthService) UpdateLastSeen(userID string) {
	if err := s.UserRepo.UpdateLastSeen(context.Background(), userID, time.Now().UTC()); err != nil {
		logger.Log.Debug("Failed to update last seen", zap.String("user_id", userID), zap.Error(err))
	}
}

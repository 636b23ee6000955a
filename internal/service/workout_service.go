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
	"tec_learning_backend/pkg/keylock"
	"tec_learning_backend/pkg/logger"
	"tec_learning_backend/pkg/monitoring"
	"tec_learning_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	feedbackCorrect   = "Excellent work!"
	feedbackIncorrect = "Keep practicing! Check the solution to understand better."

	maxWorkoutList = 100
)

// WorkoutListCache 列表缓存，未配置 redis 时为 nil
type WorkoutListCache interface {
	Get(ctx context.Context, filter model.WorkoutFilter) ([]model.WorkoutView, bool, error)
	Set(ctx context.Context, filter model.WorkoutFilter, views []model.WorkoutView) error
	Invalidate(ctx context.Context) error
}

type WorkoutService struct {
	WorkoutRepo  repository.WorkoutStore
	AttemptRepo  repository.WorkoutAttemptStore
	ProgressRepo repository.WorkoutProgressStore
	Tx           repository.Transactor
	Locker       keylock.Locker
	Cache        WorkoutListCache
	Activity     *ActivityService
	Cfg          *config.Config
	Now          func() time.Time
}

func NewWorkoutService(
	workoutRepo repository.WorkoutStore,
	attemptRepo repository.WorkoutAttemptStore,
	progressRepo repository.WorkoutProgressStore,
	tx repository.Transactor,
	locker keylock.Locker,
	activity *ActivityService,
	cfg *config.Config,
) *WorkoutService {
	return &WorkoutService{
		WorkoutRepo:  workoutRepo,
		AttemptRepo:  attemptRepo,
		ProgressRepo: progressRepo,
		Tx:           tx,
		Locker:       locker,
		Activity:     activity,
		Cfg:          cfg,
		Now:          func() time.Time { return time.Now().UTC() },
	}
}

type CreateWorkoutRequest struct {
	Title                string                  `json:"title" binding:"required"`
	Description          string                  `json:"description"`
	WorkoutType          model.WorkoutType       `json:"workout_type" binding:"required"`
	Difficulty           model.WorkoutDifficulty `json:"difficulty" binding:"required"`
	LearningLevel        model.LearningLevel     `json:"learning_level" binding:"required"`
	AgeGroup             model.AgeGroup          `json:"age_group" binding:"required"`
	EstimatedTimeMinutes int                     `json:"estimated_time_minutes"`
	ExerciseData         datatypes.JSON          `json:"exercise_data" swaggertype:"object"`
	Solution             datatypes.JSON          `json:"solution" swaggertype:"object"`
	Hints                []string                `json:"hints"`
	SkillAreas           []string                `json:"skill_areas"`
}

func (r *CreateWorkoutRequest) validate() error {
	switch {
	case strings.TrimSpace(r.Title) == "":
		return fmt.Errorf("%w: title is required", util.ErrInvalidWorkout)
	case !r.WorkoutType.Valid():
		return fmt.Errorf("%w: unknown workout_type %q", util.ErrInvalidWorkout, r.WorkoutType)
	case !r.Difficulty.Valid():
		return fmt.Errorf("%w: unknown difficulty %q", util.ErrInvalidWorkout, r.Difficulty)
	case !r.LearningLevel.Valid():
		return fmt.Errorf("%w: unknown learning_level %q", util.ErrInvalidWorkout, r.LearningLevel)
	case !r.AgeGroup.Valid():
		return fmt.Errorf("%w: unknown age_group %q", util.ErrInvalidWorkout, r.AgeGroup)
	case r.EstimatedTimeMinutes < 0:
		return fmt.Errorf("%w: estimated_time_minutes must not be negative", util.ErrInvalidWorkout)
	case isEmptyJSON(r.Solution):
		return fmt.Errorf("%w: solution is required", util.ErrInvalidWorkout)
	}
	for _, s := range r.SkillAreas {
		if !model.SkillArea(s).Valid() {
			return fmt.Errorf("%w: unknown skill area %q", util.ErrInvalidWorkout, s)
		}
	}
	return nil
}

// SubmitAttemptRequest 提交内容，answer 为任意 JSON
type SubmitAttemptRequest struct {
	Answer    datatypes.JSON `json:"answer" swaggertype:"object"`
	HintsUsed int            `json:"hints_used"`
}

func (r *SubmitAttemptRequest) validate() error {
	if isEmptyJSON(r.Answer) {
		return fmt.Errorf("%w: answer is required", util.ErrInvalidSubmission)
	}
	if r.HintsUsed < 0 {
		return fmt.Errorf("%w: hints_used must not be negative", util.ErrInvalidSubmission)
	}
	return nil
}

func isEmptyJSON(raw []byte) bool {
	trimmed := strings.TrimSpace(string(raw))
	return trimmed == "" || trimmed == "null"
}

type StartAttemptResult struct {
	AttemptID string `json:"attempt_id"`
	Message   string `json:"message"`
}

type SubmitResult struct {
	Score            int            `json:"score"`
	IsCorrect        bool           `json:"is_correct"`
	TimeSpentMinutes int            `json:"time_spent_minutes"`
	Solution         datatypes.JSON `json:"solution,omitempty" swaggertype:"object"`
	Feedback         string         `json:"feedback"`
}

type ProgressResult struct {
	ProgressByType []model.WorkoutProgress `json:"progress_by_type"`
	RecentAttempts []model.WorkoutAttempt  `json:"recent_attempts"`
	TotalAttempts  int                     `json:"total_attempts"`
}

func validateFilter(f model.WorkoutFilter) error {
	switch {
	case f.LearningLevel != "" && !f.LearningLevel.Valid():
		return fmt.Errorf("%w: learning_level %q", util.ErrInvalidFilter, f.LearningLevel)
	case f.WorkoutType != "" && !f.WorkoutType.Valid():
		return fmt.Errorf("%w: workout_type %q", util.ErrInvalidFilter, f.WorkoutType)
	case f.Difficulty != "" && !f.Difficulty.Valid():
		return fmt.Errorf("%w: difficulty %q", util.ErrInvalidFilter, f.Difficulty)
	case f.AgeGroup != "" && !f.AgeGroup.Valid():
		return fmt.Errorf("%w: age_group %q", util.ErrInvalidFilter, f.AgeGroup)
	}
	return nil
}

// ListWorkouts 返回启用中的训练题，任何角色都看不到答案
func (s *WorkoutService) ListWorkouts(ctx context.Context, caller Caller, filter model.WorkoutFilter) ([]model.WorkoutView, error) {
	ctx, span := tracing.Tracer.Start(ctx, "WorkoutService.ListWorkouts")
	defer span.End()

	if err := validateFilter(filter); err != nil {
		return nil, err
	}

	if s.Cache != nil {
		views, ok, err := s.Cache.Get(ctx, filter)
		if err != nil {
			logger.Log.Warn("Workout list cache read failed", zap.Error(err))
		} else if ok {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return views, nil
		}
	}

	workouts, err := s.WorkoutRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(workouts) > maxWorkoutList {
		workouts = workouts[:maxWorkoutList]
	}

	views := make([]model.WorkoutView, 0, len(workouts))
	for i := range workouts {
		views = append(views, workouts[i].ToView(false))
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, filter, views); err != nil {
			logger.Log.Warn("Workout list cache write failed", zap.Error(err))
		}
	}
	return views, nil
}

// GetWorkout 教师和管理员可以看到答案
func (s *WorkoutService) GetWorkout(ctx context.Context, caller Caller, id string) (*model.WorkoutView, error) {
	workout, err := s.findActive(ctx, id)
	if err != nil {
		return nil, err
	}
	view := workout.ToView(caller.IsStaff())
	return &view, nil
}

func (s *WorkoutService) findActive(ctx context.Context, id string) (*model.Workout, error) {
	workout, err := s.WorkoutRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, util.ErrWorkoutNotFound)
	}
	if !workout.IsActive {
		return nil, util.ErrWorkoutNotFound
	}
	return workout, nil
}

func (s *WorkoutService) CreateWorkout(ctx context.Context, caller Caller, req CreateWorkoutRequest) (*model.WorkoutView, error) {
	if !caller.IsStaff() {
		return nil, fmt.Errorf("%w: only teachers can create workouts", util.ErrPermissionDenied)
	}
	if err := req.validate(); err != nil {
		return nil, err
	}

	exerciseData := req.ExerciseData
	if isEmptyJSON(exerciseData) {
		exerciseData = datatypes.JSON("{}")
	}
	workout := &model.Workout{
		Title:                strings.TrimSpace(req.Title),
		Description:          req.Description,
		WorkoutType:          req.WorkoutType,
		Difficulty:           req.Difficulty,
		LearningLevel:        req.LearningLevel,
		AgeGroup:             req.AgeGroup,
		EstimatedTimeMinutes: req.EstimatedTimeMinutes,
		ExerciseData:         exerciseData,
		Solution:             req.Solution,
		Hints:                datatypes.NewJSONSlice(nonNil(req.Hints)),
		SkillAreas:           datatypes.NewJSONSlice(nonNil(req.SkillAreas)),
		CreatedBy:            caller.UserID,
		IsActive:             true,
	}
	if err := s.WorkoutRepo.Create(ctx, workout); err != nil {
		return nil, err
	}
	s.invalidateList(ctx)

	s.Activity.Log(ctx, caller.UserID, model.ActivityWorkoutCreated, map[string]interface{}{
		"workout_id":    workout.ID,
		"workout_title": workout.Title,
	})
	logger.Log.Info("Workout created",
		zap.String("workout_id", workout.ID),
		zap.String("created_by", caller.UserID))

	view := workout.ToView(true)
	return &view, nil
}

// SeedSampleWorkouts 写入尚不存在（按标题）的示例训练题，返回新增数量
func (s *WorkoutService) SeedSampleWorkouts(ctx context.Context, caller Caller) (int, error) {
	if !caller.IsAdmin() {
		return 0, fmt.Errorf("%w: admin only", util.ErrPermissionDenied)
	}

	created := 0
	for _, w := range sampleWorkouts() {
		exists, err := s.WorkoutRepo.ExistsByTitle(ctx, w.Title)
		if err != nil {
			return created, err
		}
		if exists {
			continue
		}
		workout := w
		workout.CreatedBy = caller.UserID
		workout.IsActive = true
		if err := s.WorkoutRepo.Create(ctx, &workout); err != nil {
			return created, fmt.Errorf("failed to initialize workouts: %w", err)
		}
		created++
	}

	if created > 0 {
		s.invalidateList(ctx)
		s.Activity.Log(ctx, caller.UserID, model.ActivityWorkoutSeeded, map[string]interface{}{
			"created_count": created,
		})
	}
	logger.Log.Info("Sample workouts initialized", zap.Int("created", created))
	return created, nil
}

func (s *WorkoutService) invalidateList(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx); err != nil {
		logger.Log.Warn("Workout list cache invalidation failed", zap.Error(err))
	}
}

// StartAttempt 为学生创建一次 open 状态的作答
func (s *WorkoutService) StartAttempt(ctx context.Context, caller Caller, workoutID string) (*StartAttemptResult, error) {
	ctx, span := tracing.Tracer.Start(ctx, "WorkoutService.StartAttempt")
	defer span.End()

	if !caller.IsStudent() {
		return nil, fmt.Errorf("%w: only students can attempt workouts", util.ErrPermissionDenied)
	}
	workout, err := s.findActive(ctx, workoutID)
	if err != nil {
		return nil, err
	}

	attempt := &model.WorkoutAttempt{
		StudentID:     caller.UserID,
		WorkoutID:     workout.ID,
		StartedAt:     s.Now(),
		AttemptsCount: 1,
	}
	if err := s.AttemptRepo.Create(ctx, attempt); err != nil {
		span.RecordError(err)
		return nil, err
	}

	monitoring.WorkoutAttemptsStarted.WithLabelValues(string(workout.WorkoutType), string(workout.Difficulty)).Inc()
	s.Activity.Log(ctx, caller.UserID, model.ActivityWorkoutStarted, map[string]interface{}{
		"workout_id":    workout.ID,
		"workout_title": workout.Title,
		"workout_type":  string(workout.WorkoutType),
	})
	logger.Log.Debug("Workout attempt started",
		zap.String("attempt_id", attempt.ID),
		zap.String("workout_id", workout.ID),
		zap.String("student_id", caller.UserID))

	return &StartAttemptResult{AttemptID: attempt.ID, Message: "Workout attempt started"}, nil
}

// SubmitAttempt 判分并关闭作答，同时累加统计记录。
// 统计更新在按键加锁的事务内完成，作答关闭使用条件更新，
// 同一作答并发提交时只有一个成功，其余返回 ErrAttemptNotFound。
func (s *WorkoutService) SubmitAttempt(ctx context.Context, caller Caller, attemptID string, req SubmitAttemptRequest) (*SubmitResult, error) {
	ctx, span := tracing.Tracer.Start(ctx, "WorkoutService.SubmitAttempt")
	defer span.End()

	if !caller.IsStudent() {
		return nil, fmt.Errorf("%w: only students can submit attempts", util.ErrPermissionDenied)
	}
	if err := req.validate(); err != nil {
		return nil, err
	}

	attempt, err := s.AttemptRepo.FindOpen(ctx, attemptID, caller.UserID)
	if err != nil {
		return nil, notFoundAs(err, util.ErrAttemptNotFound)
	}
	workout, err := s.WorkoutRepo.FindByID(ctx, attempt.WorkoutID)
	if err != nil {
		return nil, notFoundAs(err, util.ErrWorkoutNotFound)
	}

	now := s.Now()
	correct := GradeSubmission(req.Answer, workout.Solution)
	score := ScoreFor(correct, req.HintsUsed)
	elapsed := ElapsedMinutes(attempt.StartedAt, now)

	span.SetAttributes(
		attribute.String("workout.type", string(workout.WorkoutType)),
		attribute.Bool("workout.correct", correct),
		attribute.Int("workout.score", score),
	)

	completedAt := now
	attempt.CompletedAt = &completedAt
	attempt.StudentAnswer = req.Answer
	attempt.IsCorrect = &correct
	attempt.TimeSpentMinutes = elapsed
	attempt.HintsUsed = req.HintsUsed
	attempt.Score = &score

	key := model.ProgressKey{
		StudentID:     caller.UserID,
		WorkoutType:   workout.WorkoutType,
		Difficulty:    workout.Difficulty,
		LearningLevel: workout.LearningLevel,
	}

	waitStart := time.Now()
	unlock, err := s.Locker.Lock(ctx, key.String())
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("acquire progress lock: %w", err)
	}
	defer unlock()
	monitoring.ProgressLockWait.Observe(time.Since(waitStart).Seconds())

	var record *model.WorkoutProgress
	err = s.Tx.InTx(ctx, func(tx repository.WorkoutTx) error {
		claimed, err := tx.Attempts().Close(ctx, attempt)
		if err != nil {
			return err
		}
		if !claimed {
			return util.ErrAttemptNotFound
		}

		existing, err := tx.Progress().FindByKey(ctx, key, true)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err != nil {
			existing = nil
		}

		record = ApplyAttempt(existing, key, score, elapsed, correct, now)
		if existing == nil {
			return tx.Progress().Create(ctx, record)
		}
		return tx.Progress().Save(ctx, record)
	})
	if err != nil {
		if errors.Is(err, util.ErrAttemptNotFound) {
			return nil, err
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "submission not recorded")
		return nil, fmt.Errorf("record workout submission: %w", err)
	}

	monitoring.ObserveSubmission(string(workout.WorkoutType), string(workout.Difficulty), correct, score)
	s.Activity.Log(ctx, caller.UserID, model.ActivityWorkoutCompleted, map[string]interface{}{
		"workout_id":         workout.ID,
		"workout_title":      workout.Title,
		"score":              score,
		"is_correct":         correct,
		"time_spent_minutes": elapsed,
	})
	logger.Log.Info("Workout attempt submitted",
		zap.String("attempt_id", attempt.ID),
		zap.String("student_id", caller.UserID),
		zap.Int("score", score),
		zap.Bool("is_correct", correct),
		zap.Int("total_attempts", record.TotalAttempts),
		zap.Float64("mastery_level", record.MasteryLevel))

	result := &SubmitResult{
		Score:            score,
		IsCorrect:        correct,
		TimeSpentMinutes: elapsed,
		Feedback:         feedbackCorrect,
	}
	if !correct {
		result.Solution = workout.Solution
		result.Feedback = feedbackIncorrect
	}
	return result, nil
}

// GetProgress 当前学生的全部统计记录和最近的作答
func (s *WorkoutService) GetProgress(ctx context.Context, caller Caller) (*ProgressResult, error) {
	if !caller.IsStudent() {
		return nil, fmt.Errorf("%w: only students can view workout progress", util.ErrPermissionDenied)
	}

	records, err := s.ProgressRepo.ListByStudent(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}

	limit := util.DefaultRecentAttempts
	if s.Cfg != nil && s.Cfg.Workout.RecentAttemptsLimit > 0 {
		limit = s.Cfg.Workout.RecentAttemptsLimit
	}
	attempts, err := s.AttemptRepo.ListRecentByStudent(ctx, caller.UserID, limit)
	if err != nil {
		return nil, err
	}

	if records == nil {
		records = []model.WorkoutProgress{}
	}
	if attempts == nil {
		attempts = []model.WorkoutAttempt{}
	}
	return &ProgressResult{
		ProgressByType: records,
		RecentAttempts: attempts,
		TotalAttempts:  len(attempts),
	}, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

package service

import (
	"context"
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"tec_learning_backend/internal/config"
	"tec_learning_backend/internal/model"
	"tec_learning_backend/internal/repository"
	"tec_learning_backend/internal/util"
	"tec_learning_backend/pkg/database"
	"tec_learning_backend/pkg/keylock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

// newTestStores 每个测试一个独立的内存 sqlite 库
func newTestStores(t *testing.T) *repository.Stores {
	t.Helper()
	db, err := database.OpenMemory(false)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return repository.NewStores(db)
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var (
	testStudent = Caller{UserID: "student-1", Role: model.Student}
	testTeacher = Caller{UserID: "teacher-1", Role: model.Teacher}
	testAdmin   = Caller{UserID: "admin-1", Role: model.Admin}
)

type workoutFixture struct {
	svc   *WorkoutService
	st    *repository.Stores
	clock *testClock
}

func newWorkoutFixture(t *testing.T) *workoutFixture {
	t.Helper()
	st := newTestStores(t)
	clock := newTestClock()
	cfg := &config.Config{Workout: config.WorkoutConfig{RecentAttemptsLimit: 10}}

	svc := NewWorkoutService(
		st.Workouts(),
		st.Attempts(),
		st.Progress(),
		st.Transactor(),
		keylock.NewLocalLocker(),
		NewActivityService(st.Activities()),
		cfg,
	)
	svc.Now = clock.Now
	return &workoutFixture{svc: svc, st: st, clock: clock}
}

func (f *workoutFixture) addWorkout(t *testing.T, mutate func(w *model.Workout)) *model.Workout {
	t.Helper()
	w := &model.Workout{
		Title:         "Number Pattern Detective",
		WorkoutType:   model.PatternRecognition,
		Difficulty:    model.DifficultyBeginner,
		LearningLevel: model.LevelFoundation,
		AgeGroup:      model.AgeFoundation,
		ExerciseData:  datatypes.JSON(`{"sequence": [1, 4, 9, 16, "?"]}`),
		Solution:      datatypes.JSON(`{"answer": 9}`),
		Hints:         datatypes.NewJSONSlice([]string{"Look at squares"}),
		IsActive:      true,
	}
	if mutate != nil {
		mutate(w)
	}
	require.NoError(t, f.st.Workouts().Create(context.Background(), w))
	return w
}

func (f *workoutFixture) start(t *testing.T, caller Caller, workoutID string) string {
	t.Helper()
	res, err := f.svc.StartAttempt(context.Background(), caller, workoutID)
	require.NoError(t, err)
	require.NotEmpty(t, res.AttemptID)
	return res.AttemptID
}

func submission(answer string, hints int) SubmitAttemptRequest {
	return SubmitAttemptRequest{Answer: datatypes.JSON(answer), HintsUsed: hints}
}

func TestWorkoutService_StartAttempt(t *testing.T) {
	f := newWorkoutFixture(t)
	active := f.addWorkout(t, nil)
	inactive := f.addWorkout(t, func(w *model.Workout) {
		w.Title = "Retired"
		w.IsActive = false
	})
	ctx := context.Background()

	t.Run("student opens attempt", func(t *testing.T) {
		id := f.start(t, testStudent, active.ID)

		attempt, err := f.st.Attempts().FindOpen(ctx, id, testStudent.UserID)
		require.NoError(t, err)
		assert.True(t, attempt.IsOpen())
		assert.Equal(t, active.ID, attempt.WorkoutID)
		assert.Equal(t, 1, attempt.AttemptsCount)
		assert.True(t, attempt.StartedAt.Equal(f.clock.Now()))
	})

	t.Run("teacher forbidden", func(t *testing.T) {
		_, err := f.svc.StartAttempt(ctx, testTeacher, active.ID)
		assert.ErrorIs(t, err, util.ErrPermissionDenied)
	})

	t.Run("unknown workout", func(t *testing.T) {
		_, err := f.svc.StartAttempt(ctx, testStudent, "missing")
		assert.ErrorIs(t, err, util.ErrWorkoutNotFound)
	})

	t.Run("inactive workout", func(t *testing.T) {
		_, err := f.svc.StartAttempt(ctx, testStudent, inactive.ID)
		assert.ErrorIs(t, err, util.ErrWorkoutNotFound)
	})
}

func TestWorkoutService_SubmitAttempt(t *testing.T) {
	ctx := context.Background()

	t.Run("correct answer with one hint", func(t *testing.T) {
		f := newWorkoutFixture(t)
		w := f.addWorkout(t, nil)
		id := f.start(t, testStudent, w.ID)
		f.clock.Advance(3*time.Minute + 30*time.Second)

		res, err := f.svc.SubmitAttempt(ctx, testStudent, id, submission(`{"answer": 9}`, 1))
		require.NoError(t, err)
		assert.True(t, res.IsCorrect)
		assert.Equal(t, 90, res.Score)
		assert.Equal(t, 3, res.TimeSpentMinutes)
		assert.Nil(t, res.Solution)
		assert.Equal(t, feedbackCorrect, res.Feedback)

		_, err = f.st.Attempts().FindOpen(ctx, id, testStudent.UserID)
		assert.Error(t, err, "attempt must be closed")
	})

	t.Run("incorrect answer reveals solution", func(t *testing.T) {
		f := newWorkoutFixture(t)
		w := f.addWorkout(t, nil)
		id := f.start(t, testStudent, w.ID)

		res, err := f.svc.SubmitAttempt(ctx, testStudent, id, submission(`{"answer": 8}`, 0))
		require.NoError(t, err)
		assert.False(t, res.IsCorrect)
		assert.Equal(t, 0, res.Score)
		assert.JSONEq(t, `{"answer": 9}`, string(res.Solution))
		assert.Equal(t, feedbackIncorrect, res.Feedback)
	})

	t.Run("huge hint count scores zero", func(t *testing.T) {
		f := newWorkoutFixture(t)
		w := f.addWorkout(t, nil)
		key := model.ProgressKey{
			StudentID: testStudent.UserID, WorkoutType: w.WorkoutType,
			Difficulty: w.Difficulty, LearningLevel: w.LearningLevel,
		}

		id := f.start(t, testStudent, w.ID)
		res, err := f.svc.SubmitAttempt(ctx, testStudent, id, submission(`{"answer": 8}`, math.MaxInt/5))
		require.NoError(t, err)
		assert.False(t, res.IsCorrect)
		assert.Equal(t, 0, res.Score)

		id = f.start(t, testStudent, w.ID)
		res, err = f.svc.SubmitAttempt(ctx, testStudent, id, submission(`{"answer": 9}`, math.MaxInt/5))
		require.NoError(t, err)
		assert.True(t, res.IsCorrect)
		assert.Equal(t, 0, res.Score)

		rec, err := f.st.Progress().FindByKey(ctx, key, false)
		require.NoError(t, err)
		assert.Equal(t, 2, rec.TotalAttempts)
		assert.Equal(t, 0.0, rec.AverageScore)
		assert.Equal(t, 0.0, rec.MasteryLevel)
	})

	t.Run("second submit of same attempt not found", func(t *testing.T) {
		f := newWorkoutFixture(t)
		w := f.addWorkout(t, nil)
		id := f.start(t, testStudent, w.ID)

		_, err := f.svc.SubmitAttempt(ctx, testStudent, id, submission(`{"answer": 9}`, 0))
		require.NoError(t, err)
		_, err = f.svc.SubmitAttempt(ctx, testStudent, id, submission(`{"answer": 9}`, 0))
		assert.ErrorIs(t, err, util.ErrAttemptNotFound)

		rec, err := f.st.Progress().FindByKey(ctx, model.ProgressKey{
			StudentID: testStudent.UserID, WorkoutType: w.WorkoutType,
			Difficulty: w.Difficulty, LearningLevel: w.LearningLevel,
		}, false)
		require.NoError(t, err)
		assert.Equal(t, 1, rec.TotalAttempts)
	})

	t.Run("another student's attempt not found", func(t *testing.T) {
		f := newWorkoutFixture(t)
		w := f.addWorkout(t, nil)
		id := f.start(t, testStudent, w.ID)

		other := Caller{UserID: "student-2", Role: model.Student}
		_, err := f.svc.SubmitAttempt(ctx, other, id, submission(`{"answer": 9}`, 0))
		assert.ErrorIs(t, err, util.ErrAttemptNotFound)

		_, err = f.st.Attempts().FindOpen(ctx, id, testStudent.UserID)
		assert.NoError(t, err, "owner's attempt stays open")
	})

	t.Run("unknown attempt", func(t *testing.T) {
		f := newWorkoutFixture(t)
		_, err := f.svc.SubmitAttempt(ctx, testStudent, "missing", submission(`{"answer": 9}`, 0))
		assert.ErrorIs(t, err, util.ErrAttemptNotFound)
	})

	t.Run("non student forbidden", func(t *testing.T) {
		f := newWorkoutFixture(t)
		_, err := f.svc.SubmitAttempt(ctx, testTeacher, "any", submission(`{"answer": 9}`, 0))
		assert.ErrorIs(t, err, util.ErrPermissionDenied)
	})

	t.Run("deactivated workout still accepts open attempt", func(t *testing.T) {
		f := newWorkoutFixture(t)
		w := f.addWorkout(t, nil)
		id := f.start(t, testStudent, w.ID)

		require.NoError(t, f.st.DB.Model(w).Update("is_active", false).Error)

		res, err := f.svc.SubmitAttempt(ctx, testStudent, id, submission(`{"answer": 9}`, 0))
		require.NoError(t, err)
		assert.Equal(t, 100, res.Score)
	})
}

func TestWorkoutService_SubmitValidation(t *testing.T) {
	f := newWorkoutFixture(t)
	w := f.addWorkout(t, nil)
	id := f.start(t, testStudent, w.ID)
	ctx := context.Background()

	tests := []struct {
		name string
		req  SubmitAttemptRequest
	}{
		{"missing answer", SubmitAttemptRequest{HintsUsed: 0}},
		{"null answer", submission(`null`, 0)},
		{"blank answer", submission(`  `, 0)},
		{"negative hints", submission(`{"answer": 9}`, -1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.SubmitAttempt(ctx, testStudent, id, tt.req)
			assert.ErrorIs(t, err, util.ErrInvalidSubmission)
		})
	}

	// 校验失败不会关闭作答
	res, err := f.svc.SubmitAttempt(ctx, testStudent, id, submission(`{"answer": 9}`, 0))
	require.NoError(t, err)
	assert.Equal(t, 100, res.Score)
}

func TestWorkoutService_ProgressAggregation(t *testing.T) {
	f := newWorkoutFixture(t)
	w := f.addWorkout(t, nil)
	ctx := context.Background()
	key := model.ProgressKey{
		StudentID:     testStudent.UserID,
		WorkoutType:   model.PatternRecognition,
		Difficulty:    model.DifficultyBeginner,
		LearningLevel: model.LevelFoundation,
	}

	// 首次作答：答对且用了 2 个提示，得 80 分，耗时 3 分钟
	id := f.start(t, testStudent, w.ID)
	f.clock.Advance(3 * time.Minute)
	_, err := f.svc.SubmitAttempt(ctx, testStudent, id, submission(`{"answer": 9}`, 2))
	require.NoError(t, err)

	rec, err := f.st.Progress().FindByKey(ctx, key, false)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.TotalAttempts)
	assert.Equal(t, 1, rec.SuccessfulAttempts)
	assert.Equal(t, 80.0, rec.AverageScore)
	assert.Equal(t, 3.0, rec.AverageTimeMinutes)
	assert.Equal(t, 80.0, rec.MasteryLevel)
	assert.Equal(t, 0.0, rec.ImprovementRate)

	// 第二次得 60 分，平均 70，提升率不为负
	id = f.start(t, testStudent, w.ID)
	f.clock.Advance(5 * time.Minute)
	_, err = f.svc.SubmitAttempt(ctx, testStudent, id, submission(`{"answer": 9}`, 4))
	require.NoError(t, err)

	rec, err = f.st.Progress().FindByKey(ctx, key, false)
	require.NoError(t, err)
	assert.Equal(t, 2, rec.TotalAttempts)
	assert.Equal(t, 2, rec.SuccessfulAttempts)
	assert.Equal(t, 70.0, rec.AverageScore)
	assert.Equal(t, 4.0, rec.AverageTimeMinutes)
	assert.Equal(t, 0.0, rec.ImprovementRate)
	assert.Equal(t, 70.0, rec.MasteryLevel)

	// 不同难度是独立的统计记录
	hard := f.addWorkout(t, func(w *model.Workout) {
		w.Title = "Hard one"
		w.Difficulty = model.DifficultyAdvanced
	})
	id = f.start(t, testStudent, hard.ID)
	_, err = f.svc.SubmitAttempt(ctx, testStudent, id, submission(`{"answer": 1}`, 0))
	require.NoError(t, err)

	records, err := f.st.Progress().ListByStudent(ctx, testStudent.UserID)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestWorkoutService_ConcurrentSubmitSameAttempt(t *testing.T) {
	f := newWorkoutFixture(t)
	w := f.addWorkout(t, nil)
	id := f.start(t, testStudent, w.ID)
	ctx := context.Background()

	const workers = 10
	var (
		wg        sync.WaitGroup
		succeeded int32
		notFound  int32
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.SubmitAttempt(ctx, testStudent, id, submission(`{"answer": 9}`, 0))
			switch {
			case err == nil:
				atomic.AddInt32(&succeeded, 1)
			case errors.Is(err, util.ErrAttemptNotFound):
				atomic.AddInt32(&notFound, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), succeeded)
	assert.Equal(t, int32(workers-1), notFound)

	records, err := f.st.Progress().ListByStudent(ctx, testStudent.UserID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 1, records[0].TotalAttempts)
}

func TestWorkoutService_ConcurrentSubmitSameKey(t *testing.T) {
	f := newWorkoutFixture(t)
	w := f.addWorkout(t, nil)
	ctx := context.Background()

	const attempts = 20
	ids := make([]string, attempts)
	for i := range ids {
		ids[i] = f.start(t, testStudent, w.ID)
	}

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			answer := `{"answer": 9}`
			if i%2 == 1 {
				answer = `{"answer": 0}`
			}
			_, errs[i] = f.svc.SubmitAttempt(ctx, testStudent, id, submission(answer, 0))
		}(i, id)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	records, err := f.st.Progress().ListByStudent(ctx, testStudent.UserID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, attempts, records[0].TotalAttempts)
	assert.Equal(t, attempts/2, records[0].SuccessfulAttempts)
	assert.InDelta(t, 50.0, records[0].AverageScore, 1e-9)
}

func TestWorkoutService_GetProgress(t *testing.T) {
	f := newWorkoutFixture(t)
	w := f.addWorkout(t, nil)
	ctx := context.Background()

	t.Run("empty progress", func(t *testing.T) {
		res, err := f.svc.GetProgress(ctx, testStudent)
		require.NoError(t, err)
		assert.NotNil(t, res.ProgressByType)
		assert.Empty(t, res.ProgressByType)
		assert.Empty(t, res.RecentAttempts)
		assert.Equal(t, 0, res.TotalAttempts)
	})

	t.Run("teacher forbidden", func(t *testing.T) {
		_, err := f.svc.GetProgress(ctx, testTeacher)
		assert.ErrorIs(t, err, util.ErrPermissionDenied)
	})

	var last string
	for i := 0; i < 12; i++ {
		last = f.start(t, testStudent, w.ID)
		f.clock.Advance(time.Minute)
	}
	_, err := f.svc.SubmitAttempt(ctx, testStudent, last, submission(`{"answer": 9}`, 0))
	require.NoError(t, err)

	t.Run("recent attempts newest first and capped", func(t *testing.T) {
		res, err := f.svc.GetProgress(ctx, testStudent)
		require.NoError(t, err)
		require.Len(t, res.RecentAttempts, 10)
		assert.Equal(t, 10, res.TotalAttempts)
		assert.Equal(t, last, res.RecentAttempts[0].ID)
		for i := 1; i < len(res.RecentAttempts); i++ {
			assert.False(t, res.RecentAttempts[i].StartedAt.After(res.RecentAttempts[i-1].StartedAt))
		}
		require.Len(t, res.ProgressByType, 1)
		assert.Equal(t, 1, res.ProgressByType[0].TotalAttempts)
	})

	t.Run("other student sees nothing", func(t *testing.T) {
		res, err := f.svc.GetProgress(ctx, Caller{UserID: "student-2", Role: model.Student})
		require.NoError(t, err)
		assert.Empty(t, res.ProgressByType)
		assert.Empty(t, res.RecentAttempts)
	})
}

func TestWorkoutService_Visibility(t *testing.T) {
	f := newWorkoutFixture(t)
	w := f.addWorkout(t, nil)
	f.addWorkout(t, func(w *model.Workout) {
		w.Title = "Hidden"
		w.IsActive = false
	})
	ctx := context.Background()

	t.Run("list never shows solution", func(t *testing.T) {
		for _, caller := range []Caller{testStudent, testTeacher, testAdmin} {
			views, err := f.svc.ListWorkouts(ctx, caller, model.WorkoutFilter{})
			require.NoError(t, err)
			require.Len(t, views, 1)
			assert.Nil(t, views[0].Solution, "role %s", caller.Role)
		}
	})

	t.Run("get shows solution to staff only", func(t *testing.T) {
		view, err := f.svc.GetWorkout(ctx, testStudent, w.ID)
		require.NoError(t, err)
		assert.Nil(t, view.Solution)

		for _, caller := range []Caller{testTeacher, testAdmin} {
			view, err := f.svc.GetWorkout(ctx, caller, w.ID)
			require.NoError(t, err)
			assert.JSONEq(t, `{"answer": 9}`, string(view.Solution))
		}
	})

	t.Run("get unknown workout", func(t *testing.T) {
		_, err := f.svc.GetWorkout(ctx, testStudent, "missing")
		assert.ErrorIs(t, err, util.ErrWorkoutNotFound)
	})

	t.Run("filters", func(t *testing.T) {
		f.addWorkout(t, func(w *model.Workout) {
			w.Title = "Sequence"
			w.WorkoutType = model.LogicalSequences
			w.LearningLevel = model.LevelDevelopment
		})

		views, err := f.svc.ListWorkouts(ctx, testStudent, model.WorkoutFilter{WorkoutType: model.LogicalSequences})
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "Sequence", views[0].Title)

		views, err = f.svc.ListWorkouts(ctx, testStudent, model.WorkoutFilter{LearningLevel: model.LevelMastery})
		require.NoError(t, err)
		assert.Empty(t, views)

		_, err = f.svc.ListWorkouts(ctx, testStudent, model.WorkoutFilter{Difficulty: "impossible"})
		assert.ErrorIs(t, err, util.ErrInvalidFilter)
	})
}

func TestWorkoutService_CreateWorkout(t *testing.T) {
	f := newWorkoutFixture(t)
	ctx := context.Background()

	valid := CreateWorkoutRequest{
		Title:         "Shape Sorter",
		WorkoutType:   model.PuzzleSolving,
		Difficulty:    model.DifficultyIntermediate,
		LearningLevel: model.LevelDevelopment,
		AgeGroup:      model.AgeDevelopment,
		Solution:      datatypes.JSON(`{"answer": "triangle"}`),
		SkillAreas:    []string{"logical_thinking"},
	}

	t.Run("student forbidden", func(t *testing.T) {
		_, err := f.svc.CreateWorkout(ctx, testStudent, valid)
		assert.ErrorIs(t, err, util.ErrPermissionDenied)
	})

	t.Run("invalid definitions", func(t *testing.T) {
		cases := map[string]func(r *CreateWorkoutRequest){
			"blank title":    func(r *CreateWorkoutRequest) { r.Title = " " },
			"bad type":       func(r *CreateWorkoutRequest) { r.WorkoutType = "guessing" },
			"bad difficulty": func(r *CreateWorkoutRequest) { r.Difficulty = "trivial" },
			"missing answer": func(r *CreateWorkoutRequest) { r.Solution = nil },
			"bad skill area": func(r *CreateWorkoutRequest) { r.SkillAreas = []string{"juggling"} },
		}
		for name, mutate := range cases {
			t.Run(name, func(t *testing.T) {
				req := valid
				mutate(&req)
				_, err := f.svc.CreateWorkout(ctx, testTeacher, req)
				assert.ErrorIs(t, err, util.ErrInvalidWorkout)
			})
		}
	})

	t.Run("teacher creates active workout", func(t *testing.T) {
		view, err := f.svc.CreateWorkout(ctx, testTeacher, valid)
		require.NoError(t, err)
		assert.NotEmpty(t, view.ID)
		assert.True(t, view.IsActive)
		assert.Equal(t, testTeacher.UserID, view.CreatedBy)
		assert.JSONEq(t, `{}`, string(view.ExerciseData))
		assert.Equal(t, []string{}, view.Hints)

		stored, err := f.st.Workouts().FindByID(ctx, view.ID)
		require.NoError(t, err)
		assert.JSONEq(t, `{"answer": "triangle"}`, string(stored.Solution))
	})
}

func TestWorkoutService_SeedSampleWorkouts(t *testing.T) {
	f := newWorkoutFixture(t)
	ctx := context.Background()

	_, err := f.svc.SeedSampleWorkouts(ctx, testTeacher)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	created, err := f.svc.SeedSampleWorkouts(ctx, testAdmin)
	require.NoError(t, err)
	assert.Equal(t, len(sampleWorkouts()), created)

	created, err = f.svc.SeedSampleWorkouts(ctx, testAdmin)
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	views, err := f.svc.ListWorkouts(ctx, testStudent, model.WorkoutFilter{})
	require.NoError(t, err)
	assert.Len(t, views, len(sampleWorkouts()))
}

type fakeListCache struct {
	mu          sync.Mutex
	entries     map[string][]model.WorkoutView
	hits        int
	invalidated int
}

func (c *fakeListCache) Get(ctx context.Context, filter model.WorkoutFilter) ([]model.WorkoutView, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	views, ok := c.entries[filter.CacheKey()]
	if ok {
		c.hits++
	}
	return views, ok, nil
}

func (c *fakeListCache) Set(ctx context.Context, filter model.WorkoutFilter, views []model.WorkoutView) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[filter.CacheKey()] = views
	return nil
}

func (c *fakeListCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string][]model.WorkoutView{}
	c.invalidated++
	return nil
}

func TestWorkoutService_ListCache(t *testing.T) {
	f := newWorkoutFixture(t)
	cache := &fakeListCache{entries: map[string][]model.WorkoutView{}}
	f.svc.Cache = cache
	f.addWorkout(t, nil)
	ctx := context.Background()

	views, err := f.svc.ListWorkouts(ctx, testStudent, model.WorkoutFilter{})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, 0, cache.hits)

	views, err = f.svc.ListWorkouts(ctx, testStudent, model.WorkoutFilter{})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, 1, cache.hits)

	_, err = f.svc.CreateWorkout(ctx, testTeacher, CreateWorkoutRequest{
		Title:         "Fresh",
		WorkoutType:   model.CriticalThinking,
		Difficulty:    model.DifficultyBeginner,
		LearningLevel: model.LevelFoundation,
		AgeGroup:      model.AgeFoundation,
		Solution:      datatypes.JSON(`{"answer": true}`),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.invalidated)

	views, err = f.svc.ListWorkouts(ctx, testStudent, model.WorkoutFilter{})
	require.NoError(t, err)
	assert.Len(t, views, 2)
}

package service

import (
	"context"
	"errors"
	"testing"

	"tec_learning_backend/internal/model"
	"tec_learning_backend/internal/repository"
	"tec_learning_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGateway struct {
	requests []CheckoutSessionRequest
	session  *CheckoutSession
	err      error
}

func (g *stubGateway) CreateSession(ctx context.Context, req CheckoutSessionRequest) (*CheckoutSession, error) {
	g.requests = append(g.requests, req)
	if g.err != nil {
		return nil, g.err
	}
	return g.session, nil
}

type courseFixture struct {
	st         *repository.Stores
	courses    *CourseService
	enrollment *EnrollmentService
	gateway    *stubGateway
}

func newCourseFixture(t *testing.T) *courseFixture {
	t.Helper()
	st := newTestStores(t)
	activity := NewActivityService(st.Activities())
	learning := NewLearningService(st.Users(), st.LearningPaths())
	gateway := &stubGateway{session: &CheckoutSession{SessionID: "cs_123", URL: "https://pay.example.com/cs_123"}}
	return &courseFixture{
		st:         st,
		courses:    NewCourseService(st.Courses(), activity),
		enrollment: NewEnrollmentService(st.Enrollments(), st.Courses(), st.ProgramEnrollments(), learning, gateway, activity, "lkr"),
		gateway:    gateway,
	}
}

func (f *courseFixture) programEnrollments(t *testing.T) []model.ProgramEnrollment {
	t.Helper()
	var list []model.ProgramEnrollment
	require.NoError(t, f.st.DB.Order("created_at asc").Find(&list).Error)
	return list
}

func (f *courseFixture) publishedCourse(t *testing.T, lessons int) (*model.Course, []*model.Lesson) {
	t.Helper()
	ctx := context.Background()
	course, err := f.courses.CreateCourse(ctx, testTeacher, CreateCourseRequest{
		Title:         "AI for Kids",
		LearningLevel: model.LevelFoundation,
		AgeGroup:      model.AgeFoundation,
		SkillAreas:    []string{string(model.SkillAILiteracy)},
	})
	require.NoError(t, err)

	var created []*model.Lesson
	for i := 0; i < lessons; i++ {
		lesson, err := f.courses.AddLesson(ctx, testTeacher, course.ID, CreateLessonRequest{
			Title: "Lesson", Order: i + 1, DurationMinutes: 20,
		})
		require.NoError(t, err)
		created = append(created, lesson)
	}

	course, err = f.courses.PublishCourse(ctx, testTeacher, course.ID)
	require.NoError(t, err)
	return course, created
}

func TestCourseService(t *testing.T) {
	ctx := context.Background()
	f := newCourseFixture(t)

	t.Run("student cannot create", func(t *testing.T) {
		_, err := f.courses.CreateCourse(ctx, testStudent, CreateCourseRequest{
			Title: "x", LearningLevel: model.LevelFoundation, AgeGroup: model.AgeFoundation,
		})
		assert.ErrorIs(t, err, util.ErrPermissionDenied)
	})

	t.Run("difficulty defaults and bounds", func(t *testing.T) {
		course, err := f.courses.CreateCourse(ctx, testTeacher, CreateCourseRequest{
			Title: "Defaults", LearningLevel: model.LevelMastery, AgeGroup: model.AgeMastery,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, course.DifficultyLevel)
		assert.False(t, course.IsPublished)

		_, err = f.courses.CreateCourse(ctx, testTeacher, CreateCourseRequest{
			Title: "Too hard", LearningLevel: model.LevelMastery, AgeGroup: model.AgeMastery, DifficultyLevel: 6,
		})
		assert.ErrorIs(t, err, util.ErrInvalidRequest)
	})

	t.Run("only owner publishes", func(t *testing.T) {
		course, err := f.courses.CreateCourse(ctx, testTeacher, CreateCourseRequest{
			Title: "Owned", LearningLevel: model.LevelFoundation, AgeGroup: model.AgeFoundation,
		})
		require.NoError(t, err)

		other := Caller{UserID: "teacher-2", Role: model.Teacher}
		_, err = f.courses.PublishCourse(ctx, other, course.ID)
		assert.ErrorIs(t, err, util.ErrPermissionDenied)

		published, err := f.courses.PublishCourse(ctx, testAdmin, course.ID)
		require.NoError(t, err)
		assert.True(t, published.IsPublished)
	})

	t.Run("unpublished lessons hidden from students", func(t *testing.T) {
		course, err := f.courses.CreateCourse(ctx, testTeacher, CreateCourseRequest{
			Title: "Draft", LearningLevel: model.LevelFoundation, AgeGroup: model.AgeFoundation,
		})
		require.NoError(t, err)

		_, err = f.courses.ListLessons(ctx, testStudent, course.ID)
		assert.ErrorIs(t, err, util.ErrCourseNotFound)

		lessons, err := f.courses.ListLessons(ctx, testTeacher, course.ID)
		require.NoError(t, err)
		assert.Empty(t, lessons)
	})

	t.Run("list filters", func(t *testing.T) {
		courses, err := f.courses.ListCourses(ctx, model.CourseFilter{PublishedOnly: true, LearningLevel: model.LevelFoundation})
		require.NoError(t, err)
		for _, c := range courses {
			assert.True(t, c.IsPublished)
			assert.Equal(t, model.LevelFoundation, c.LearningLevel)
		}

		_, err = f.courses.ListCourses(ctx, model.CourseFilter{SkillArea: "juggling"})
		assert.ErrorIs(t, err, util.ErrInvalidFilter)
	})
}

func TestEnrollmentService_EnrollAndComplete(t *testing.T) {
	ctx := context.Background()
	f := newCourseFixture(t)

	student, err := NewAuthService(f.st.Users(), f.st.LearningPaths(), NewActivityService(f.st.Activities()), nil).
		Register(ctx, RegisterRequest{Email: "s@example.com", FullName: "S", Password: "password123", Role: model.Student, AgeGroup: model.AgeFoundation})
	require.NoError(t, err)
	caller := Caller{UserID: student.ID, Role: model.Student}

	course, lessons := f.publishedCourse(t, 3)

	_, err = f.enrollment.CompleteLesson(ctx, caller, course.ID, lessons[0].ID)
	assert.ErrorIs(t, err, util.ErrNotEnrolled)

	enrollment, err := f.enrollment.Enroll(ctx, caller, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, enrollment.ProgressPercentage)

	_, err = f.enrollment.Enroll(ctx, caller, course.ID)
	assert.ErrorIs(t, err, util.ErrAlreadyEnrolled)

	stored, err := f.st.Courses().FindByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.EnrollmentCount)

	enrollment, err = f.enrollment.CompleteLesson(ctx, caller, course.ID, lessons[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 33.33, enrollment.ProgressPercentage)
	assert.Nil(t, enrollment.CompletedAt)

	// 重复完成同一课时不重复计数
	enrollment, err = f.enrollment.CompleteLesson(ctx, caller, course.ID, lessons[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 33.33, enrollment.ProgressPercentage)

	_, err = f.enrollment.CompleteLesson(ctx, caller, course.ID, "missing")
	assert.ErrorIs(t, err, util.ErrLessonNotFound)

	_, err = f.enrollment.CompleteLesson(ctx, caller, course.ID, lessons[1].ID)
	require.NoError(t, err)
	enrollment, err = f.enrollment.CompleteLesson(ctx, caller, course.ID, lessons[2].ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, enrollment.ProgressPercentage)
	require.NotNil(t, enrollment.CompletedAt)

	path, err := f.st.LearningPaths().FindByStudent(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{course.ID}, []string(path.CompletedCourses))
	assert.Equal(t, 60, path.TotalLearningTime)

	list, err := f.enrollment.ListEnrollments(ctx, caller)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, course.ID, list[0].CourseID)
}

func TestEnrollmentService_EnrollRules(t *testing.T) {
	ctx := context.Background()
	f := newCourseFixture(t)

	draft, err := f.courses.CreateCourse(ctx, testTeacher, CreateCourseRequest{
		Title: "Draft", LearningLevel: model.LevelFoundation, AgeGroup: model.AgeFoundation,
	})
	require.NoError(t, err)

	_, err = f.enrollment.Enroll(ctx, testStudent, draft.ID)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)

	_, err = f.enrollment.Enroll(ctx, testStudent, "missing")
	assert.ErrorIs(t, err, util.ErrCourseNotFound)

	_, err = f.enrollment.Enroll(ctx, testTeacher, draft.ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}

func TestCompletionPercentage(t *testing.T) {
	assert.Equal(t, 0.0, completionPercentage(0, 0))
	assert.Equal(t, 50.0, completionPercentage(1, 2))
	assert.Equal(t, 66.67, completionPercentage(2, 3))
	assert.Equal(t, 100.0, completionPercentage(4, 3))
}

func TestEnrollmentService_ProgramEnrollment(t *testing.T) {
	ctx := context.Background()

	t.Run("bank transfer uses pricing table", func(t *testing.T) {
		f := newCourseFixture(t)
		res, err := f.enrollment.BankTransferEnrollment(ctx, ProgramEnrollmentRequest{
			StudentName: "Nimal", Email: "Parent@Example.com", ProgramID: "smart", SubscriptionType: "quarterly", Amount: 1,
		})
		require.NoError(t, err)
		assert.True(t, res.Success)

		saved := f.programEnrollments(t)
		require.Len(t, saved, 1)
		assert.Equal(t, 5250.0, saved[0].Amount)
		assert.Equal(t, "parent@example.com", saved[0].Email)
		assert.Equal(t, model.PaymentBankTransfer, saved[0].PaymentMethod)
		assert.Equal(t, model.PaymentPendingPayment, saved[0].Status)
	})

	t.Run("bank transfer for unknown program keeps submitted amount", func(t *testing.T) {
		f := newCourseFixture(t)
		_, err := f.enrollment.BankTransferEnrollment(ctx, ProgramEnrollmentRequest{
			StudentName: "A", Email: "a@example.com", ProgramID: "custom", Amount: 999,
		})
		require.NoError(t, err)
		assert.Equal(t, 999.0, f.programEnrollments(t)[0].Amount)
	})

	t.Run("checkout creates session", func(t *testing.T) {
		f := newCourseFixture(t)
		res, err := f.enrollment.CheckoutEnrollment(ctx, ProgramEnrollmentRequest{
			StudentName: "B", Email: "b@example.com", ProgramID: "teens",
			SuccessURL: "https://tec.lk/ok", CancelURL: "https://tec.lk/cancel",
		})
		require.NoError(t, err)
		assert.Equal(t, "cs_123", res.SessionID)
		assert.Equal(t, "https://pay.example.com/cs_123", res.CheckoutURL)

		require.Len(t, f.gateway.requests, 1)
		sent := f.gateway.requests[0]
		assert.Equal(t, 2000.0, sent.Amount)
		assert.Equal(t, "lkr", sent.Currency)
		assert.Equal(t, "public", sent.Metadata["enrollment_type"])
		assert.Equal(t, "monthly", sent.Metadata["billing_cycle"])

		saved := f.programEnrollments(t)
		require.Len(t, saved, 1)
		assert.Equal(t, "cs_123", saved[0].SessionID)
		assert.Equal(t, model.PaymentCheckout, saved[0].PaymentMethod)
	})

	t.Run("checkout rejects unknown program", func(t *testing.T) {
		f := newCourseFixture(t)
		_, err := f.enrollment.CheckoutEnrollment(ctx, ProgramEnrollmentRequest{
			StudentName: "C", Email: "c@example.com", ProgramID: "custom",
			SuccessURL: "https://tec.lk/ok", CancelURL: "https://tec.lk/cancel",
		})
		assert.ErrorIs(t, err, util.ErrInvalidProgram)
		assert.Empty(t, f.gateway.requests)
	})

	t.Run("gateway failure stores nothing", func(t *testing.T) {
		f := newCourseFixture(t)
		f.gateway.err = errors.New("provider down")
		_, err := f.enrollment.CheckoutEnrollment(ctx, ProgramEnrollmentRequest{
			StudentName: "D", Email: "d@example.com", ProgramID: "leaders",
			SuccessURL: "https://tec.lk/ok", CancelURL: "https://tec.lk/cancel",
		})
		assert.Error(t, err)
		assert.Empty(t, f.programEnrollments(t))
	})
}

package app

import (
	"tec_learning_backend/docs"
	"tec_learning_backend/internal/config"
	"tec_learning_backend/internal/middleware"
	"tec_learning_backend/internal/model"
	"tec_learning_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(a.services.auth))
	{
		a.registerAccountRoutes(authGroup, c)
		a.registerWorkoutRoutes(authGroup, c)
		a.registerCourseRoutes(authGroup, c)

		// 教师相关接口
		teacher := authGroup.Group("")
		teacher.Use(middleware.RoleMiddleware(model.Teacher))
		{
			teacher.GET("/analytics/students", c.analytics.GetStudents)
		}
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/", c.health.Root)
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.GET("/learning-framework", c.learning.GetFramework)
		public.GET("/subscription/plans", c.subscription.GetPlans)
		public.POST("/enrollment/bank-transfer", c.enrollment.BankTransfer)
		public.POST("/enrollment/checkout", c.enrollment.Checkout)
	}
}

func (a *App) registerAccountRoutes(group *gin.RouterGroup, c *controllers) {
	group.POST("/logout", c.auth.Logout)
	group.GET("/me", c.auth.Me)
	group.GET("/learning-path", c.learning.GetLearningPath)
	group.POST("/subscription/checkout", c.subscription.Checkout)
	group.GET("/enrollments", c.course.ListEnrollments)
}

func (a *App) registerWorkoutRoutes(group *gin.RouterGroup, c *controllers) {
	workouts := group.Group("/workouts")
	{
		workouts.GET("", c.workout.ListWorkouts)
		workouts.GET("/progress", c.workout.GetProgress)
		workouts.GET("/:id", c.workout.GetWorkout)
		workouts.POST("/:id/attempt", c.workout.StartAttempt)
		workouts.POST("/attempts/:attemptId/submit", c.workout.SubmitAttempt)

		workouts.POST("", middleware.RoleMiddleware(model.Teacher), c.workout.CreateWorkout)
		workouts.POST("/initialize-samples", middleware.RoleMiddleware(model.Admin), c.workout.SeedSampleWorkouts)
	}
}

func (a *App) registerCourseRoutes(group *gin.RouterGroup, c *controllers) {
	courses := group.Group("/courses")
	{
		courses.GET("", c.course.ListCourses)
		courses.GET("/:id/lessons", c.course.ListLessons)
		courses.POST("/:id/enroll", c.course.Enroll)
		courses.POST("/:id/lessons/:lessonId/complete", c.course.CompleteLesson)

		courses.POST("", middleware.RoleMiddleware(model.Teacher), c.course.CreateCourse)
		courses.PUT("/:id/publish", middleware.RoleMiddleware(model.Teacher), c.course.PublishCourse)
		courses.POST("/:id/lessons", middleware.RoleMiddleware(model.Teacher), c.course.AddLesson)
	}
}

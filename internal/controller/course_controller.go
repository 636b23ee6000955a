package controller

import (
	"strconv"

	"tec_learning_backend/internal/model"
	"tec_learning_backend/internal/service"
	"tec_learning_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService     *service.CourseService
	EnrollmentService *service.EnrollmentService
}

func NewCourseController(courseService *service.CourseService, enrollmentService *service.EnrollmentService) *CourseController {
	return &CourseController{
		CourseService:     courseService,
		EnrollmentService: enrollmentService,
	}
}

// CreateCourse godoc
// @Summary 创建课程
// @Tags 课程
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CreateCourseRequest true "课程信息"
// @Success 201 {object} util.Response{data=model.Course}
// @Failure 400 {object} util.Response "参数错误"
// @Failure 403 {object} util.Response "仅教师或管理员"
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req service.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.CreateCourse(ctx.Request.Context(), currentCaller(ctx), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// ListCourses godoc
// @Summary 获取课程列表
// @Description 学生只能看到已发布的课程
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Param learning_level query string false "学习阶段"
// @Param skill_area query string false "技能方向"
// @Param age_group query string false "年龄段"
// @Param published_only query bool false "只看已发布" default(true)
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	filter := model.CourseFilter{
		LearningLevel: model.LearningLevel(ctx.Query("learning_level")),
		SkillArea:     model.SkillArea(ctx.Query("skill_area")),
		AgeGroup:      model.AgeGroup(ctx.Query("age_group")),
		PublishedOnly: true,
	}
	if raw := ctx.Query("published_only"); raw != "" {
		publishedOnly, err := strconv.ParseBool(raw)
		if err != nil {
			util.BadRequest(ctx, "published_only must be a boolean")
			return
		}
		filter.PublishedOnly = publishedOnly
	}
	if !currentCaller(ctx).IsStaff() {
		filter.PublishedOnly = true
	}

	courses, err := c.CourseService.ListCourses(ctx.Request.Context(), filter)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// PublishCourse godoc
// @Summary 发布课程
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "课程ID"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 403 {object} util.Response "不是课程创建者"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /courses/{id}/publish [put]
func (c *CourseController) PublishCourse(ctx *gin.Context) {
	course, err := c.CourseService.PublishCourse(ctx.Request.Context(), currentCaller(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// AddLesson godoc
// @Summary 添加课时
// @Tags 课程
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "课程ID"
// @Param body body service.CreateLessonRequest true "课时信息"
// @Success 201 {object} util.Response{data=model.Lesson}
// @Failure 404 {object} util.Response "课程不存在"
// @Router /courses/{id}/lessons [post]
func (c *CourseController) AddLesson(ctx *gin.Context) {
	var req service.CreateLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.CourseService.AddLesson(ctx.Request.Context(), currentCaller(ctx), ctx.Param("id"), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, lesson)
}

// ListLessons godoc
// @Summary 获取课时列表
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "课程ID"
// @Success 200 {object} util.Response{data=[]model.Lesson}
// @Failure 404 {object} util.Response "课程不存在"
// @Router /courses/{id}/lessons [get]
func (c *CourseController) ListLessons(ctx *gin.Context) {
	lessons, err := c.CourseService.ListLessons(ctx.Request.Context(), currentCaller(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, lessons)
}

// Enroll godoc
// @Summary 报名课程
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "课程ID"
// @Success 201 {object} util.Response{data=model.Enrollment}
// @Failure 404 {object} util.Response "课程不存在"
// @Failure 409 {object} util.Response "已报名"
// @Router /courses/{id}/enroll [post]
func (c *CourseController) Enroll(ctx *gin.Context) {
	enrollment, err := c.EnrollmentService.Enroll(ctx.Request.Context(), currentCaller(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, enrollment)
}

// CompleteLesson godoc
// @Summary 完成课时
// @Description 重新计算课程进度，全部完成时记录结课
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "课程ID"
// @Param lessonId path string true "课时ID"
// @Success 200 {object} util.Response{data=model.Enrollment}
// @Failure 404 {object} util.Response "未报名或课时不存在"
// @Router /courses/{id}/lessons/{lessonId}/complete [post]
func (c *CourseController) CompleteLesson(ctx *gin.Context) {
	enrollment, err := c.EnrollmentService.CompleteLesson(ctx.Request.Context(), currentCaller(ctx), ctx.Param("id"), ctx.Param("lessonId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, enrollment)
}

// ListEnrollments godoc
// @Summary 获取我的报名
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Enrollment}
// @Router /enrollments [get]
func (c *CourseController) ListEnrollments(ctx *gin.Context) {
	list, err := c.EnrollmentService.ListEnrollments(ctx.Request.Context(), currentCaller(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

package model

import (
	"gorm.io/datatypes"
)

// swagger:model Course
type Course struct {
	UUIDBase
	Title           string                      `gorm:"size:255;not null" json:"title"`
	Description     string                      `gorm:"type:text" json:"description"`
	LearningLevel   LearningLevel               `gorm:"size:20;index;not null" json:"learning_level"`
	SkillAreas      datatypes.JSONSlice[string] `gorm:"type:json" json:"skill_areas"`
	AgeGroup        AgeGroup                    `gorm:"size:10;index" json:"age_group"`
	ThumbnailURL    string                      `gorm:"size:255" json:"thumbnail_url,omitempty"`
	IsPremium       bool                        `gorm:"default:false" json:"is_premium"`
	DifficultyLevel int                         `gorm:"default:1" json:"difficulty_level"` // 1-5
	EstimatedHours  int                         `gorm:"default:0" json:"estimated_hours,omitempty"`
	CreatedBy       string                      `gorm:"type:varchar(36);index" json:"created_by"`
	IsPublished     bool                        `gorm:"default:false;index" json:"is_published"`
	EnrollmentCount int                         `gorm:"default:0" json:"enrollment_count"`
	AverageRating   float64                     `gorm:"default:0" json:"average_rating"`
}

func (Course) TableName() string {
	return "courses"
}

func (c *Course) HasSkillArea(s SkillArea) bool {
	for _, a := range c.SkillAreas {
		if a == string(s) {
			return true
		}
	}
	return false
}

// CourseFilter 课程列表过滤条件
type CourseFilter struct {
	LearningLevel LearningLevel
	SkillArea     SkillArea
	AgeGroup      AgeGroup
	PublishedOnly bool
	CreatedBy     string
}

// swagger:model Lesson
type Lesson struct {
	UUIDBase
	CourseID        string `gorm:"type:varchar(36);index:idx_lesson_course_order,priority:1;not null" json:"course_id"`
	Title           string `gorm:"size:255;not null" json:"title"`
	Description     string `gorm:"type:text" json:"description"`
	Order           int    `gorm:"column:sort_order;index:idx_lesson_course_order,priority:2" json:"order"`
	DurationMinutes int    `gorm:"default:0" json:"duration_minutes"`
	ContentURL      string `gorm:"size:255" json:"content_url,omitempty"`
}

func (Lesson) TableName() string {
	return "lessons"
}

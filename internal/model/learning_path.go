package model

import (
	"time"

	"gorm.io/datatypes"
)

type SkillArea string

const (
	SkillAILiteracy             SkillArea = "ai_literacy"
	SkillLogicalThinking        SkillArea = "logical_thinking"
	SkillCreativeProblemSolving SkillArea = "creative_problem_solving"
	SkillFutureCareer           SkillArea = "future_career_skills"
	SkillSystemsThinking        SkillArea = "systems_thinking"
	SkillInnovationMethods      SkillArea = "innovation_methods"
)

var AllSkillAreas = []SkillArea{
	SkillAILiteracy,
	SkillLogicalThinking,
	SkillCreativeProblemSolving,
	SkillFutureCareer,
	SkillSystemsThinking,
	SkillInnovationMethods,
}

func (s SkillArea) Valid() bool {
	for _, a := range AllSkillAreas {
		if a == s {
			return true
		}
	}
	return false
}

// LearningPath 学生在当前学习阶段的整体进度
//
// swagger:model LearningPath
type LearningPath struct {
	UUIDBase
	StudentID                 string                             `gorm:"type:varchar(36);uniqueIndex;not null" json:"student_id"`
	LearningLevel             LearningLevel                      `gorm:"size:20;not null" json:"learning_level"`
	SkillProgress             datatypes.JSONType[map[string]int] `gorm:"type:json" json:"skill_progress"`
	CompletedCourses          datatypes.JSONSlice[string]        `gorm:"type:json" json:"completed_courses"`
	CurrentFocusAreas         datatypes.JSONSlice[string]        `gorm:"type:json" json:"current_focus_areas"`
	TotalLearningTime         int                                `gorm:"default:0" json:"total_learning_time"`
	LevelCompletionPercentage float64                            `gorm:"default:0" json:"level_completion_percentage"`
	NextRecommendedCourses    datatypes.JSONSlice[string]        `gorm:"type:json" json:"next_recommended_courses"`
	LastUpdated               time.Time                          `json:"last_updated"`
}

func (LearningPath) TableName() string {
	return "learning_paths"
}

// NewLearningPath 按阶段初始化学习路径，各技能进度为 0
func NewLearningPath(studentID string, level LearningLevel, now time.Time) *LearningPath {
	skills := make(map[string]int, len(AllSkillAreas))
	for _, s := range AllSkillAreas {
		skills[string(s)] = 0
	}
	return &LearningPath{
		StudentID:              studentID,
		LearningLevel:          level,
		SkillProgress:          datatypes.NewJSONType(skills),
		CompletedCourses:       datatypes.JSONSlice[string]{},
		CurrentFocusAreas:      datatypes.JSONSlice[string]{},
		NextRecommendedCourses: datatypes.JSONSlice[string]{},
		LastUpdated:            now,
	}
}

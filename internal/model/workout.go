package model

import (
	"time"

	"gorm.io/datatypes"
)

// WorkoutType 逻辑思维训练的类别
type WorkoutType string

const (
	PatternRecognition   WorkoutType = "pattern_recognition"
	LogicalSequences     WorkoutType = "logical_sequences"
	PuzzleSolving        WorkoutType = "puzzle_solving"
	ReasoningChains      WorkoutType = "reasoning_chains"
	CriticalThinking     WorkoutType = "critical_thinking"
	ProblemDecomposition WorkoutType = "problem_decomposition"
)

func (t WorkoutType) Valid() bool {
	switch t {
	case PatternRecognition, LogicalSequences, PuzzleSolving, ReasoningChains, CriticalThinking, ProblemDecomposition:
		return true
	}
	return false
}

type WorkoutDifficulty string

const (
	DifficultyBeginner     WorkoutDifficulty = "beginner"
	DifficultyIntermediate WorkoutDifficulty = "intermediate"
	DifficultyAdvanced     WorkoutDifficulty = "advanced"
	DifficultyExpert       WorkoutDifficulty = "expert"
)

func (d WorkoutDifficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced, DifficultyExpert:
		return true
	}
	return false
}

// Workout 训练题定义。创建后只允许切换 IsActive。
// Solution 只用于判分，不直接序列化，对外一律通过 ToView 输出。
//
// swagger:model Workout
type Workout struct {
	UUIDBase
	Title                string                      `gorm:"size:255;not null;index" json:"title"`
	Description          string                      `gorm:"type:text" json:"description"`
	WorkoutType          WorkoutType                 `gorm:"size:50;not null;index" json:"workout_type"`
	Difficulty           WorkoutDifficulty           `gorm:"size:20;not null;index" json:"difficulty"`
	LearningLevel        LearningLevel               `gorm:"size:20;not null;index" json:"learning_level"`
	AgeGroup             AgeGroup                    `gorm:"size:10;index" json:"age_group"`
	EstimatedTimeMinutes int                         `gorm:"default:0" json:"estimated_time_minutes"`
	ExerciseData         datatypes.JSON              `gorm:"type:json" json:"exercise_data"`
	Solution             datatypes.JSON              `gorm:"type:json" json:"-"`
	Hints                datatypes.JSONSlice[string] `gorm:"type:json" json:"hints"`
	SkillAreas           datatypes.JSONSlice[string] `gorm:"type:json" json:"skill_areas"`
	CreatedBy            string                      `gorm:"type:varchar(36);index" json:"created_by"`
	IsActive             bool                        `gorm:"index" json:"is_active"`
}

func (Workout) TableName() string {
	return "logical_workouts"
}

// WorkoutView 训练题的对外表示，Solution 为空时不输出 solution 字段
//
// swagger:model WorkoutView
type WorkoutView struct {
	ID                   string            `json:"id"`
	Title                string            `json:"title"`
	Description          string            `json:"description"`
	WorkoutType          WorkoutType       `json:"workout_type"`
	Difficulty           WorkoutDifficulty `json:"difficulty"`
	LearningLevel        LearningLevel     `json:"learning_level"`
	AgeGroup             AgeGroup          `json:"age_group"`
	EstimatedTimeMinutes int               `json:"estimated_time_minutes"`
	ExerciseData         datatypes.JSON    `json:"exercise_data"`
	Solution             datatypes.JSON    `json:"solution,omitempty"`
	Hints                []string          `json:"hints"`
	SkillAreas           []string          `json:"skill_areas"`
	CreatedBy            string            `json:"created_by"`
	CreatedAt            time.Time         `json:"created_at"`
	IsActive             bool              `json:"is_active"`
}

func (w *Workout) ToView(includeSolution bool) WorkoutView {
	v := WorkoutView{
		ID:                   w.ID,
		Title:                w.Title,
		Description:          w.Description,
		WorkoutType:          w.WorkoutType,
		Difficulty:           w.Difficulty,
		LearningLevel:        w.LearningLevel,
		AgeGroup:             w.AgeGroup,
		EstimatedTimeMinutes: w.EstimatedTimeMinutes,
		ExerciseData:         w.ExerciseData,
		Hints:                []string(w.Hints),
		SkillAreas:           []string(w.SkillAreas),
		CreatedBy:            w.CreatedBy,
		CreatedAt:            w.CreatedAt,
		IsActive:             w.IsActive,
	}
	if v.Hints == nil {
		v.Hints = []string{}
	}
	if v.SkillAreas == nil {
		v.SkillAreas = []string{}
	}
	if includeSolution && len(w.Solution) > 0 {
		v.Solution = w.Solution
	}
	return v
}

// WorkoutFilter 列表查询条件，空值表示不过滤
type WorkoutFilter struct {
	LearningLevel LearningLevel
	WorkoutType   WorkoutType
	Difficulty    WorkoutDifficulty
	AgeGroup      AgeGroup
}

// CacheKey 用于列表缓存
func (f WorkoutFilter) CacheKey() string {
	return string(f.LearningLevel) + "|" + string(f.WorkoutType) + "|" + string(f.Difficulty) + "|" + string(f.AgeGroup)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tec_learning_backend/internal/model"
	"tec_learning_backend/internal/repository"
	"tec_learning_backend/internal/util"

	"gorm.io/gorm"
)

// FrameworkLevel 学习框架中一个阶段的介绍
type FrameworkLevel struct {
	LevelName       string   `json:"level_name"`
	AgeRange        string   `json:"age_range"`
	Icon            string   `json:"icon"`
	Description     string   `json:"description"`
	CoreSkills      []string `json:"core_skills"`
	FutureReadiness []string `json:"future_readiness"`
}

var learningFramework = map[model.LearningLevel]FrameworkLevel{
	model.LevelFoundation: {
		LevelName:   "Foundation Level",
		AgeRange:    "5-8",
		Icon:        "🌱",
		Description: "Building blocks of future thinking",
		CoreSkills: []string{
			"Basic AI Understanding",
			"Simple Logical Reasoning",
			"Creative Expression",
			"Problem Recognition",
			"Digital Awareness",
		},
		FutureReadiness: []string{
			"Technology Curiosity",
			"Basic Computational Thinking",
			"Creative Confidence",
			"Question Asking Skills",
		},
	},
	model.LevelDevelopment: {
		LevelName:   "Development Level",
		AgeRange:    "9-12",
		Icon:        "🧠",
		Description: "Expanding logical and creative thinking",
		CoreSkills: []string{
			"Logical Reasoning Mastery",
			"AI Applications Understanding",
			"Design Thinking Process",
			"Complex Problem Solving",
			"Systems Understanding",
		},
		FutureReadiness: []string{
			"Algorithmic Thinking",
			"Innovation Mindset",
			"Collaboration Skills",
			"Adaptability Training",
		},
	},
	model.LevelMastery: {
		LevelName:   "Mastery Level",
		AgeRange:    "13-16",
		Icon:        "🎯",
		Description: "Future career and leadership preparation",
		CoreSkills: []string{
			"Advanced AI Concepts",
			"Innovation Methodologies",
			"Systems Thinking",
			"Leadership Principles",
			"Future Career Navigation",
		},
		FutureReadiness: []string{
			"Entrepreneurial Thinking",
			"Advanced Problem Solving",
			"Technology Leadership",
			"Global Perspective",
			"Continuous Learning Mindset",
		},
	},
}

type LearningService struct {
	UserRepo repository.UserStore
	PathRepo repository.LearningPathStore
}

func NewLearningService(userRepo repository.UserStore, pathRepo repository.LearningPathStore) *LearningService {
	return &LearningService{UserRepo: userRepo, PathRepo: pathRepo}
}

type LearningPathView struct {
	*model.LearningPath
	Framework FrameworkLevel `json:"framework"`
}

func (s *LearningService) Framework() map[model.LearningLevel]FrameworkLevel {
	return learningFramework
}

// FrameworkFor 未知阶段回落到 foundation
func FrameworkFor(level model.LearningLevel) FrameworkLevel {
	if f, ok := learningFramework[level]; ok {
		return f
	}
	return learningFramework[model.LevelFoundation]
}

// GetLearningPath 学生首次访问时创建学习路径
func (s *LearningService) GetLearningPath(ctx context.Context, caller Caller) (*LearningPathView, error) {
	if !caller.IsStudent() {
		return nil, fmt.Errorf("%w: only students have learning paths", util.ErrPermissionDenied)
	}

	path, err := s.PathRepo.FindByStudent(ctx, caller.UserID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if path == nil {
		user, err := s.UserRepo.FindByID(ctx, caller.UserID)
		if err != nil {
			return nil, notFoundAs(err, util.ErrUserNotFound)
		}
		level := user.LearningLevel
		if level == "" {
			level = model.LevelFoundation
		}
		path = model.NewLearningPath(caller.UserID, level, time.Now().UTC())
		if err := s.PathRepo.Create(ctx, path); err != nil {
			return nil, err
		}
	}

	return &LearningPathView{LearningPath: path, Framework: FrameworkFor(path.LearningLevel)}, nil
}

// RecordCourseCompletion 课程完成后更新学习路径
func (s *LearningService) RecordCourseCompletion(ctx context.Context, studentID string, course *model.Course, minutes int) error {
	path, err := s.PathRepo.FindByStudent(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	for _, id := range path.CompletedCourses {
		if id == course.ID {
			return nil
		}
	}
	path.CompletedCourses = append(path.CompletedCourses, course.ID)
	path.TotalLearningTime += minutes
	path.LastUpdated = time.Now().UTC()
	return s.PathRepo.Save(ctx, path)
}

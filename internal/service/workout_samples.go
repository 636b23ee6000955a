package service

import (
	"tec_learning_backend/internal/model"

	"gorm.io/datatypes"
)

// 初始化时写入的示例训练题，按标题去重
func sampleWorkouts() []model.Workout {
	return []model.Workout{
		{
			Title:                "Pattern Detective",
			Description:          "Find the hidden pattern in this sequence and predict what comes next!",
			WorkoutType:          model.PatternRecognition,
			Difficulty:           model.DifficultyBeginner,
			LearningLevel:        model.LevelFoundation,
			AgeGroup:             model.AgeFoundation,
			EstimatedTimeMinutes: 5,
			ExerciseData: datatypes.JSON(`{
				"sequence": [1, 3, 5, 7, "?"],
				"type": "number_sequence",
				"instructions": "Look at the numbers and find the pattern. What number should replace the question mark?"
			}`),
			Solution: datatypes.JSON(`{"answer": 9, "explanation": "The pattern is adding 2 each time: 1+2=3, 3+2=5, 5+2=7, 7+2=9"}`),
			Hints: datatypes.JSONSlice[string]{
				"Look at the difference between consecutive numbers",
				"Try adding the same number each time",
			},
			SkillAreas: datatypes.JSONSlice[string]{string(model.SkillLogicalThinking)},
		},
		{
			Title:                "Logic Grid Challenge",
			Description:          "Use logical reasoning to solve this puzzle about three friends and their favorite activities.",
			WorkoutType:          model.ReasoningChains,
			Difficulty:           model.DifficultyIntermediate,
			LearningLevel:        model.LevelDevelopment,
			AgeGroup:             model.AgeDevelopment,
			EstimatedTimeMinutes: 10,
			ExerciseData: datatypes.JSON(`{
				"clues": [
					"Anna likes reading more than swimming but less than coding",
					"Ben's favorite activity is not reading",
					"The person who likes coding most also likes swimming least",
					"Chris likes swimming more than Anna does"
				],
				"people": ["Anna", "Ben", "Chris"],
				"activities": ["reading", "swimming", "coding"],
				"instructions": "Rank each person's preference for each activity from 1 (least favorite) to 3 (most favorite)"
			}`),
			Solution: datatypes.JSON(`{
				"Anna": {"reading": 2, "swimming": 1, "coding": 3},
				"Ben": {"reading": 1, "swimming": 3, "coding": 2},
				"Chris": {"reading": 3, "swimming": 2, "coding": 1}
			}`),
			Hints: datatypes.JSONSlice[string]{
				"Start with the clearest clues first",
				"Use process of elimination",
				"Draw a grid to track possibilities",
			},
			SkillAreas: datatypes.JSONSlice[string]{
				string(model.SkillLogicalThinking),
				string(model.SkillCreativeProblemSolving),
			},
		},
		{
			Title:                "Shape Puzzle Master",
			Description:          "Arrange geometric shapes to create the target pattern using spatial reasoning.",
			WorkoutType:          model.PuzzleSolving,
			Difficulty:           model.DifficultyAdvanced,
			LearningLevel:        model.LevelMastery,
			AgeGroup:             model.AgeMastery,
			EstimatedTimeMinutes: 15,
			ExerciseData: datatypes.JSON(`{
				"available_shapes": ["triangle", "square", "circle", "rectangle"],
				"target_pattern": "house_with_garden",
				"rules": ["Each shape can only be used once", "Shapes must touch at least one other shape", "Final pattern must be symmetrical"],
				"instructions": "Create a house with a garden using all available shapes following the given rules"
			}`),
			Solution: datatypes.JSON(`{
				"arrangement": {"house_roof": "triangle", "house_body": "square", "door": "rectangle", "garden": "circle"},
				"explanation": "Triangle forms the roof, square is the house body, rectangle is the door, and circle represents the garden"
			}`),
			Hints: datatypes.JSONSlice[string]{
				"Think about what each shape could represent",
				"Start with the most obvious placements",
				"Consider symmetry requirements",
			},
			SkillAreas: datatypes.JSONSlice[string]{
				string(model.SkillLogicalThinking),
				string(model.SkillCreativeProblemSolving),
				string(model.SkillSystemsThinking),
			},
		},
		{
			Title:                "Future Problem Solver",
			Description:          "Break down a complex future scenario into manageable parts and develop solutions.",
			WorkoutType:          model.ProblemDecomposition,
			Difficulty:           model.DifficultyExpert,
			LearningLevel:        model.LevelMastery,
			AgeGroup:             model.AgeMastery,
			EstimatedTimeMinutes: 20,
			ExerciseData: datatypes.JSON(`{
				"scenario": "By 2030, your city needs to reduce traffic by 50% while increasing economic activity. Design a solution.",
				"constraints": ["Limited budget", "Current infrastructure", "Environmental concerns", "Public acceptance"],
				"steps_required": 5,
				"instructions": "Break this problem into smaller parts and propose a step-by-step solution addressing each constraint"
			}`),
			Solution: datatypes.JSON(`{
				"steps": [
					"Analyze current traffic patterns and economic drivers",
					"Develop remote work incentives for businesses",
					"Create efficient public transportation network",
					"Implement smart traffic management systems",
					"Launch community engagement and education programs"
				],
				"reasoning": "Each step addresses multiple constraints while building toward the 50% reduction goal"
			}`),
			Hints: datatypes.JSONSlice[string]{
				"Break the problem into smaller, manageable pieces",
				"Consider what causes traffic in the first place",
				"Think about solutions that address multiple constraints",
			},
			SkillAreas: datatypes.JSONSlice[string]{
				string(model.SkillLogicalThinking),
				string(model.SkillSystemsThinking),
				string(model.SkillFutureCareer),
				string(model.SkillCreativeProblemSolving),
			},
		},
	}
}

package service

import (
	"bytes"
	"encoding/json"
	"math"
	"reflect"
	"time"

	"tec_learning_backend/internal/model"
)

const (
	fullScore   = 100
	hintPenalty = 10
)

// GradeSubmission 判断提交是否正确。
// 两边都是 JSON 对象时只比较 "answer" 字段，缺失按 null 处理；
// 否则比较整个值。嵌套结构不做部分匹配。
func GradeSubmission(submitted, solution []byte) bool {
	var sub, sol interface{}
	if err := json.Unmarshal(submitted, &sub); err != nil {
		return bytes.Equal(bytes.TrimSpace(submitted), bytes.TrimSpace(solution))
	}
	if err := json.Unmarshal(solution, &sol); err != nil {
		return false
	}

	subObj, subIsObj := sub.(map[string]interface{})
	solObj, solIsObj := sol.(map[string]interface{})
	if subIsObj && solIsObj {
		return reflect.DeepEqual(subObj["answer"], solObj["answer"])
	}
	return reflect.DeepEqual(sub, sol)
}

// ScoreFor 每个提示扣 10 分，最低 0 分，与是否答对相互独立
func ScoreFor(correct bool, hintsUsed int) int {
	if !correct {
		return 0
	}
	if hintsUsed <= 0 {
		return fullScore
	}
	// 先比较后相乘，超大的 hints_used 不会溢出
	if hintsUsed >= fullScore/hintPenalty {
		return 0
	}
	return fullScore - hintsUsed*hintPenalty
}

// ElapsedMinutes 向下取整的分钟数，时钟回拨时为 0
func ElapsedMinutes(startedAt, now time.Time) int {
	d := now.Sub(startedAt)
	if d <= 0 {
		return 0
	}
	return int(d / time.Minute)
}

// ApplyAttempt 把一次完成的作答累加进统计记录。existing 为 nil 时新建记录，
// 否则返回更新后的副本，不修改 existing。
func ApplyAttempt(existing *model.WorkoutProgress, key model.ProgressKey, score, elapsedMinutes int, correct bool, now time.Time) *model.WorkoutProgress {
	successful := 0
	if correct {
		successful = 1
	}
	at := now

	if existing == nil {
		return &model.WorkoutProgress{
			StudentID:          key.StudentID,
			WorkoutType:        key.WorkoutType,
			Difficulty:         key.Difficulty,
			LearningLevel:      key.LearningLevel,
			TotalAttempts:      1,
			SuccessfulAttempts: successful,
			AverageScore:       float64(score),
			AverageTimeMinutes: float64(elapsedMinutes),
			ImprovementRate:    0,
			LastAttempt:        &at,
			MasteryLevel:       math.Min(float64(score), fullScore),
		}
	}

	updated := *existing
	oldTotal := float64(existing.TotalAttempts)
	newTotal := existing.TotalAttempts + 1

	newAvgScore := (existing.AverageScore*oldTotal + float64(score)) / float64(newTotal)
	newAvgTime := (existing.AverageTimeMinutes*oldTotal + float64(elapsedMinutes)) / float64(newTotal)

	updated.TotalAttempts = newTotal
	updated.SuccessfulAttempts = existing.SuccessfulAttempts + successful
	updated.AverageScore = newAvgScore
	updated.AverageTimeMinutes = newAvgTime
	updated.ImprovementRate = math.Max(0, newAvgScore-existing.AverageScore)
	updated.LastAttempt = &at
	updated.MasteryLevel = math.Min(newAvgScore, fullScore)
	return &updated
}

package engine

import (
	"climate_edu_backend/internal/model"
	"climate_edu_backend/internal/util"
)

// 知识水平分档阈值（固定，不可配置）：
// <40 → beginner，40-69 → intermediate，≥70 → advanced
const (
	intermediateThreshold = 40.0
	advancedThreshold     = 70.0
)

// AssessmentScore 测评评分结果
type AssessmentScore struct {
	Score          float64              `json:"score"` // 百分制
	KnowledgeLevel model.KnowledgeLevel `json:"knowledgeLevel"`
	Responses      model.ResponseList   `json:"responses"` // 已标记正误
}

// TierForScore 百分制分数映射到知识水平
func TierForScore(score float64) model.KnowledgeLevel {
	switch {
	case score < intermediateThreshold:
		return model.LevelBeginner
	case score < advancedThreshold:
		return model.LevelIntermediate
	default:
		return model.LevelAdvanced
	}
}

// ScoreAssessment 按题库批改作答并映射知识水平。
// 空作答集直接拒绝，不产生 0 分或 NaN；题库中不存在的题记为答错。
// 结果的持久化由调用方负责。
func ScoreAssessment(responses []model.AssessmentResponse, questions []model.KnowledgeQuestion) (*AssessmentScore, error) {
	if len(responses) == 0 {
		return nil, util.ErrEmptyResponseSet
	}

	answers := make(map[string]int, len(questions))
	for _, q := range questions {
		answers[q.ID] = q.CorrectAnswer
	}

	graded := make(model.ResponseList, len(responses))
	correct := 0
	for i, r := range responses {
		want, ok := answers[r.QuestionID]
		r.IsCorrect = ok && r.SelectedAnswer == want
		if r.IsCorrect {
			correct++
		}
		graded[i] = r
	}

	score := float64(correct) / float64(len(responses)) * 100

	return &AssessmentScore{
		Score:          score,
		KnowledgeLevel: TierForScore(score),
		Responses:      graded,
	}, nil
}

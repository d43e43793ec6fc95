package engine

import (
	"fmt"
	"strings"

	"climate_edu_backend/internal/model"
)

// 评分常量。基础分5分，上限10分，超出部分截断。
const (
	BaseScore             = 5.0
	MaxScore              = 10.0
	MinScore              = 0.0
	goalMatchPoints       = 2.0
	difficultyMatchPoints = 3.0
	styleMatchPoints      = 2.0
	popularityCap         = 5.0
	popularityDivisor     = 100.0
)

const DefaultReason = "Recommended based on your profile"

// styleContentTypes 学习风格到偏好内容类型的静态映射表
var styleContentTypes = map[model.LearningStyle][]model.ContentType{
	model.StyleVisual:      {model.TypeVideo, model.TypeInfographic},
	model.StyleAuditory:    {model.TypePodcast, model.TypeAudio},
	model.StyleReading:     {model.TypeArticle, model.TypeDocument},
	model.StyleKinesthetic: {model.TypeInteractive, model.TypeSimulation},
}

// StylePreferredTypes 返回指定学习风格偏好的内容类型
func StylePreferredTypes(style model.LearningStyle) []model.ContentType {
	return styleContentTypes[style]
}

func matchesStyle(style model.LearningStyle, t model.ContentType) bool {
	for _, pt := range styleContentTypes[style] {
		if pt == t {
			return true
		}
	}
	return false
}

// Evaluate 对 (内容, 画像) 计算相关度得分和说明文案。
// 每条加分规则同时追加对应的说明片段，两者始终由同一组命中条件生成。
// 纯函数：相同输入必得相同输出。
func Evaluate(content *model.ContentItem, profile model.LearnerProfile) (float64, string) {
	score := BaseScore
	var reasons []string

	// 目标契合：每命中一个目标标签 +2
	matched := 0
	for _, tag := range content.Tags {
		if profile.SelectedGoals.Contains(tag) {
			matched++
		}
	}
	if matched > 0 {
		score += goalMatchPoints * float64(matched)
		reasons = append(reasons, "Matches your learning goals")
	}

	// 难度匹配 +3
	if content.Difficulty == profile.KnowledgeLevel {
		score += difficultyMatchPoints
		reasons = append(reasons, "Matches your knowledge level")
	}

	// 风格匹配 +2
	if matchesStyle(profile.LearningStyle, content.Type) {
		score += styleMatchPoints
		reasons = append(reasons, fmt.Sprintf("Fits your %s learning style", profile.LearningStyle))
	}

	// 热度加分，只影响分值不进入文案
	popularity := float64(content.Views) / popularityDivisor
	if popularity > popularityCap {
		popularity = popularityCap
	}
	score += popularity

	if score > MaxScore {
		score = MaxScore
	}
	if score < MinScore {
		score = MinScore
	}

	if len(reasons) == 0 {
		return score, DefaultReason
	}
	return score, strings.Join(reasons, ", ")
}

// RelevanceScore 只取分值
func RelevanceScore(content *model.ContentItem, profile model.LearnerProfile) float64 {
	score, _ := Evaluate(content, profile)
	return score
}

// AdaptationReason 只取说明文案
func AdaptationReason(content *model.ContentItem, profile model.LearnerProfile) string {
	_, reason := Evaluate(content, profile)
	return reason
}

package engine

import (
	"fmt"
	"strings"
	"time"

	"climate_edu_backend/internal/model"
)

// InteractionContext 一次内容交互事件携带的表现信号
type InteractionContext struct {
	ContentID           string  `json:"contentId"`
	CompletionRate      float64 `json:"completionRate"`      // [0,1]
	TimeSpent           int     `json:"timeSpent"`           // 秒
	PerceivedDifficulty int     `json:"perceivedDifficulty"` // 1-5
}

const (
	// 主观难度低于此值且处于 intermediate 时升档
	tooEasyThreshold = 2
	// 主观难度高于此值且处于 advanced 时降档
	tooHardThreshold = 4
	// 投入度低于此值时轮换学习风格
	engagementThreshold = 0.3
	// 完成率高于此值才计入已完成内容
	CompletionThreshold = 0.8

	// 触发门限：至少积累3条调整记录后才评估
	adaptationWindow = 3
	// 记录未携带主观难度时的均值默认值
	defaultPerceivedDifficulty = 3
)

// styleRotation 固定的风格轮换表。循环覆盖全部四种风格，
// 保证在回到起点之前每种风格都被尝试一次。
var styleRotation = map[model.LearningStyle]model.LearningStyle{
	model.StyleVisual:      model.StyleKinesthetic,
	model.StyleAuditory:    model.StyleReading,
	model.StyleReading:     model.StyleVisual,
	model.StyleKinesthetic: model.StyleAuditory,
}

// RotateStyle 返回低投入时切换到的下一个学习风格
func RotateStyle(style model.LearningStyle) model.LearningStyle {
	if next, ok := styleRotation[style]; ok {
		return next
	}
	return model.StyleVisual
}

// Engagement 投入度 = 完成率 × 学习分钟数
func Engagement(interaction InteractionContext) float64 {
	return interaction.CompletionRate * (float64(interaction.TimeSpent) / 60)
}

// AdaptationDecision 自适应调整的评估结论
type AdaptationDecision struct {
	Adapted bool
	Profile model.LearnerProfile // 调整后的画像；未调整时等于输入
	Record  *model.Adaptation    // 未调整时为 nil
}

// EvaluateAdaptation 依据交互信号评估是否调整画像。
// 难度档位规则：perceivedDifficulty<2 且 intermediate → advanced；
// perceivedDifficulty>4 且 advanced → intermediate。beginner 没有
// "过于简单"的升档路径，单次调用至多变动一档。
// 风格规则：投入度<0.3 时按固定轮换表切换。
// 两条规则都未命中时不产生记录，画像保持原样。
func EvaluateAdaptation(profile model.LearnerProfile, interaction InteractionContext, now time.Time) AdaptationDecision {
	adapted := false
	var reasons, changes []string

	if interaction.PerceivedDifficulty > 0 {
		if interaction.PerceivedDifficulty < tooEasyThreshold && profile.KnowledgeLevel == model.LevelIntermediate {
			profile.KnowledgeLevel = model.LevelAdvanced
			reasons = append(reasons, "Performance indicates readiness for advanced content")
			changes = append(changes, "Upgraded to advanced difficulty level")
			adapted = true
		} else if interaction.PerceivedDifficulty > tooHardThreshold && profile.KnowledgeLevel == model.LevelAdvanced {
			profile.KnowledgeLevel = model.LevelIntermediate
			reasons = append(reasons, "Content difficulty exceeds current comfort level")
			changes = append(changes, "Adjusted to intermediate difficulty level")
			adapted = true
		}
	}

	if interaction.TimeSpent > 0 && interaction.CompletionRate > 0 {
		if Engagement(interaction) < engagementThreshold {
			next := RotateStyle(profile.LearningStyle)
			if next != profile.LearningStyle {
				profile.LearningStyle = next
				reasons = append(reasons, "Low engagement with current content style")
				changes = append(changes, fmt.Sprintf("Switched to %s learning style", next))
				adapted = true
			}
		}
	}

	if !adapted {
		return AdaptationDecision{Adapted: false, Profile: profile}
	}

	return AdaptationDecision{
		Adapted: true,
		Profile: profile,
		Record: &model.Adaptation{
			Date:                now,
			Reason:              strings.Join(reasons, "; "),
			Changes:             strings.Join(changes, "; "),
			PerceivedDifficulty: interaction.PerceivedDifficulty,
		},
	}
}

// ShouldTriggerAdaptation 进度驱动的触发门限：
// 积累不足3条调整记录时不评估；取最近3条的主观难度均值，
// 均值<2 或 >4 才触发，避免单次噪声信号造成画像抖动。
func ShouldTriggerAdaptation(adaptations model.AdaptationList) bool {
	if len(adaptations) < adaptationWindow {
		return false
	}

	recent := adaptations[len(adaptations)-adaptationWindow:]
	sum := 0
	for _, a := range recent {
		d := a.PerceivedDifficulty
		if d == 0 {
			d = defaultPerceivedDifficulty
		}
		sum += d
	}
	avg := float64(sum) / float64(adaptationWindow)

	return avg < float64(tooEasyThreshold) || avg > float64(tooHardThreshold)
}

// CompletionPoints 一次完成事件获得的积分
func CompletionPoints(interaction InteractionContext) int {
	points := 10
	if interaction.CompletionRate > 0.9 {
		points += 5
	}
	if interaction.TimeSpent > 600 {
		points += 3
	}
	if interaction.PerceivedDifficulty > 3 {
		points += interaction.PerceivedDifficulty
	}
	return points
}

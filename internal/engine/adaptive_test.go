package engine

import (
	"testing"
	"time"

	"climate_edu_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intermediateProfile() model.LearnerProfile {
	return model.LearnerProfile{
		AgeGroup:       model.AgeGroupAdult,
		KnowledgeLevel: model.LevelIntermediate,
		LearningStyle:  model.StyleVisual,
		SelectedGoals:  model.StringList{"renewable-energy"},
	}
}

func TestEvaluateAdaptationTooEasy(t *testing.T) {
	decision := EvaluateAdaptation(intermediateProfile(), InteractionContext{
		ContentID:           "c1",
		CompletionRate:      1,
		TimeSpent:           900,
		PerceivedDifficulty: 1,
	}, time.Now())

	require.True(t, decision.Adapted)
	assert.Equal(t, model.LevelAdvanced, decision.Profile.KnowledgeLevel)
	assert.Equal(t, "Performance indicates readiness for advanced content", decision.Record.Reason)
	assert.Equal(t, "Upgraded to advanced difficulty level", decision.Record.Changes)
	assert.Equal(t, 1, decision.Record.PerceivedDifficulty)
}

func TestEvaluateAdaptationTooHard(t *testing.T) {
	profile := intermediateProfile()
	profile.KnowledgeLevel = model.LevelAdvanced

	decision := EvaluateAdaptation(profile, InteractionContext{
		ContentID:           "c1",
		CompletionRate:      0.6,
		TimeSpent:           1200,
		PerceivedDifficulty: 5,
	}, time.Now())

	require.True(t, decision.Adapted)
	assert.Equal(t, model.LevelIntermediate, decision.Profile.KnowledgeLevel)
	assert.Equal(t, "Adjusted to intermediate difficulty level", decision.Record.Changes)
}

// 降到 intermediate 之后再次上报"太难"不会继续降档：
// "过难"规则只作用于 advanced
func TestEvaluateAdaptationSingleStepDown(t *testing.T) {
	profile := intermediateProfile()
	profile.KnowledgeLevel = model.LevelAdvanced
	interaction := InteractionContext{ContentID: "c1", CompletionRate: 0.6, TimeSpent: 1200, PerceivedDifficulty: 5}

	first := EvaluateAdaptation(profile, interaction, time.Now())
	require.True(t, first.Adapted)
	assert.Equal(t, model.LevelIntermediate, first.Profile.KnowledgeLevel)

	second := EvaluateAdaptation(first.Profile, interaction, time.Now())
	assert.False(t, second.Adapted)
	assert.Equal(t, model.LevelIntermediate, second.Profile.KnowledgeLevel)
}

// "过于简单"规则只作用于 intermediate，advanced 不会越过顶档
func TestEvaluateAdaptationAdvancedCeiling(t *testing.T) {
	profile := intermediateProfile()
	profile.KnowledgeLevel = model.LevelAdvanced
	interaction := InteractionContext{ContentID: "c1", CompletionRate: 1, TimeSpent: 900, PerceivedDifficulty: 1}

	for i := 0; i < 5; i++ {
		decision := EvaluateAdaptation(profile, interaction, time.Now())
		assert.False(t, decision.Adapted)
		profile = decision.Profile
	}
	assert.Equal(t, model.LevelAdvanced, profile.KnowledgeLevel)
}

// beginner 没有"过于简单"的升档路径
func TestEvaluateAdaptationBeginnerNotUpgraded(t *testing.T) {
	profile := intermediateProfile()
	profile.KnowledgeLevel = model.LevelBeginner

	decision := EvaluateAdaptation(profile, InteractionContext{
		ContentID:           "c1",
		CompletionRate:      1,
		TimeSpent:           900,
		PerceivedDifficulty: 1,
	}, time.Now())

	assert.False(t, decision.Adapted)
	assert.Equal(t, model.LevelBeginner, decision.Profile.KnowledgeLevel)
	assert.Nil(t, decision.Record)
}

func TestEvaluateAdaptationLowEngagement(t *testing.T) {
	// 完成率0.2 × 1分钟 = 0.2 < 0.3
	decision := EvaluateAdaptation(intermediateProfile(), InteractionContext{
		ContentID:           "c1",
		CompletionRate:      0.2,
		TimeSpent:           60,
		PerceivedDifficulty: 3,
	}, time.Now())

	require.True(t, decision.Adapted)
	assert.Equal(t, model.StyleKinesthetic, decision.Profile.LearningStyle)
	assert.Equal(t, "Low engagement with current content style", decision.Record.Reason)
	assert.Equal(t, "Switched to kinesthetic learning style", decision.Record.Changes)
}

// 难度规则与风格规则可以在同一次评估中同时命中，记录用分号合并
func TestEvaluateAdaptationBothRules(t *testing.T) {
	decision := EvaluateAdaptation(intermediateProfile(), InteractionContext{
		ContentID:           "c1",
		CompletionRate:      0.1,
		TimeSpent:           60,
		PerceivedDifficulty: 1,
	}, time.Now())

	require.True(t, decision.Adapted)
	assert.Equal(t, model.LevelAdvanced, decision.Profile.KnowledgeLevel)
	assert.Equal(t, model.StyleKinesthetic, decision.Profile.LearningStyle)
	assert.Contains(t, decision.Record.Reason, "; ")
	assert.Contains(t, decision.Record.Changes, "Upgraded to advanced difficulty level")
	assert.Contains(t, decision.Record.Changes, "Switched to kinesthetic learning style")
}

// 轮换表4步回到起点，期间覆盖全部风格
func TestRotateStyleCycle(t *testing.T) {
	seen := map[model.LearningStyle]bool{}
	style := model.StyleVisual
	for i := 0; i < 4; i++ {
		seen[style] = true
		style = RotateStyle(style)
	}

	assert.Equal(t, model.StyleVisual, style)
	assert.Len(t, seen, 4)
}

func TestEngagement(t *testing.T) {
	assert.InDelta(t, 0.5, Engagement(InteractionContext{CompletionRate: 0.5, TimeSpent: 60}), 0.001)
	assert.InDelta(t, 2.0, Engagement(InteractionContext{CompletionRate: 1, TimeSpent: 120}), 0.001)
}

func TestShouldTriggerAdaptation(t *testing.T) {
	easy := model.Adaptation{PerceivedDifficulty: 1}
	hard := model.Adaptation{PerceivedDifficulty: 5}
	mid := model.Adaptation{PerceivedDifficulty: 3}

	// 不足3条不评估
	assert.False(t, ShouldTriggerAdaptation(model.AdaptationList{easy, easy}))

	// 最近3条均值<2 或 >4 才触发
	assert.True(t, ShouldTriggerAdaptation(model.AdaptationList{easy, easy, easy}))
	assert.True(t, ShouldTriggerAdaptation(model.AdaptationList{mid, hard, hard, hard}))
	assert.False(t, ShouldTriggerAdaptation(model.AdaptationList{easy, mid, hard}))

	// 未记录主观难度的条目按默认值3参与均值
	assert.False(t, ShouldTriggerAdaptation(model.AdaptationList{easy, {}, {}}))
}

func TestCompletionPoints(t *testing.T) {
	// 基础10分
	assert.Equal(t, 10, CompletionPoints(InteractionContext{CompletionRate: 0.85, TimeSpent: 300, PerceivedDifficulty: 2}))
	// +5 高完成率，+3 长时长，+难度值
	assert.Equal(t, 23, CompletionPoints(InteractionContext{CompletionRate: 0.95, TimeSpent: 700, PerceivedDifficulty: 5}))
}

func TestApplyProgressCompletion(t *testing.T) {
	progress := model.PathProgress{CompletedContent: model.StringList{}}
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	completed, points := ApplyProgress(&progress, InteractionContext{
		ContentID:           "c1",
		CompletionRate:      0.95,
		TimeSpent:           700,
		PerceivedDifficulty: 4,
	}, now)

	assert.True(t, completed)
	assert.Equal(t, 22, points)
	assert.Equal(t, model.StringList{"c1"}, progress.CompletedContent)
	assert.Equal(t, 22, progress.TotalPoints)
	assert.Equal(t, 1, progress.CurrentStreak)
	assert.Equal(t, "2026-08-30", progress.LastActivityDate)
}

func TestApplyProgressBelowThreshold(t *testing.T) {
	progress := model.PathProgress{CompletedContent: model.StringList{}}

	completed, points := ApplyProgress(&progress, InteractionContext{
		ContentID:      "c1",
		CompletionRate: 0.8, // 不高于0.8，不算完成
		TimeSpent:      300,
	}, time.Now())

	assert.False(t, completed)
	assert.Zero(t, points)
	assert.Empty(t, progress.CompletedContent)
	assert.Zero(t, progress.CurrentStreak)
}

func TestApplyProgressDuplicateIgnored(t *testing.T) {
	progress := model.PathProgress{CompletedContent: model.StringList{"c1"}, TotalPoints: 10}

	completed, points := ApplyProgress(&progress, InteractionContext{
		ContentID:      "c1",
		CompletionRate: 1,
		TimeSpent:      300,
	}, time.Now())

	assert.False(t, completed)
	assert.Zero(t, points)
	assert.Equal(t, model.StringList{"c1"}, progress.CompletedContent)
	assert.Equal(t, 10, progress.TotalPoints)
}

// 连击同一自然日只加一次，跨日再加
func TestApplyProgressStreakOncePerDay(t *testing.T) {
	progress := model.PathProgress{CompletedContent: model.StringList{}}
	day1 := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	day1Later := time.Date(2026, 8, 30, 21, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)

	ApplyProgress(&progress, InteractionContext{ContentID: "c1", CompletionRate: 1, TimeSpent: 60}, day1)
	ApplyProgress(&progress, InteractionContext{ContentID: "c2", CompletionRate: 1, TimeSpent: 60}, day1Later)
	assert.Equal(t, 1, progress.CurrentStreak)

	ApplyProgress(&progress, InteractionContext{ContentID: "c3", CompletionRate: 1, TimeSpent: 60}, day2)
	assert.Equal(t, 2, progress.CurrentStreak)
}

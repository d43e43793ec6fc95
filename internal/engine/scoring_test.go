package engine

import (
	"testing"

	"climate_edu_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func visualProfile() model.LearnerProfile {
	return model.LearnerProfile{
		AgeGroup:       model.AgeGroupAdult,
		KnowledgeLevel: model.LevelIntermediate,
		LearningStyle:  model.StyleVisual,
		SelectedGoals:  model.StringList{"renewable-energy", "carbon-footprint"},
	}
}

func TestEvaluateBaseScoreOnly(t *testing.T) {
	content := &model.ContentItem{
		Title:      "Intro",
		Type:       model.TypeArticle,
		Difficulty: model.LevelBeginner,
		Tags:       model.StringList{"oceans"},
	}

	score, reason := Evaluate(content, visualProfile())

	assert.Equal(t, BaseScore, score)
	assert.Equal(t, DefaultReason, reason)
}

func TestEvaluateAccumulatesMatches(t *testing.T) {
	content := &model.ContentItem{
		Title:      "Solar Basics",
		Type:       model.TypeVideo,
		Difficulty: model.LevelIntermediate,
		Tags:       model.StringList{"renewable-energy"},
		Views:      200,
	}

	score, reason := Evaluate(content, visualProfile())

	// 5 + 2(目标) + 3(难度) + 2(风格) = 12，已超上限，热度不再起作用
	assert.Equal(t, MaxScore, score)
	assert.Equal(t, "Matches your learning goals, Matches your knowledge level, Fits your visual learning style", reason)
}

func TestEvaluateClampsAtMax(t *testing.T) {
	content := &model.ContentItem{
		Type:       model.TypeVideo,
		Difficulty: model.LevelIntermediate,
		Tags:       model.StringList{"renewable-energy", "carbon-footprint"},
		Views:      10000,
	}

	score, _ := Evaluate(content, visualProfile())

	assert.Equal(t, MaxScore, score)
}

func TestEvaluatePopularityCapped(t *testing.T) {
	profile := visualProfile()
	profile.SelectedGoals = model.StringList{}

	heavilyViewed := &model.ContentItem{Type: model.TypeQuiz, Difficulty: model.LevelBeginner, Views: 100000}
	modest := &model.ContentItem{Type: model.TypeQuiz, Difficulty: model.LevelBeginner, Views: 500}

	heavy, _ := Evaluate(heavilyViewed, profile)
	mod, _ := Evaluate(modest, profile)

	// 浏览数超过500后热度加分封顶在5
	assert.Equal(t, BaseScore+popularityCap, heavy)
	assert.Equal(t, heavy, mod)
}

func TestEvaluateScoreBounds(t *testing.T) {
	contents := []*model.ContentItem{
		{Type: model.TypeVideo, Difficulty: model.LevelBeginner},
		{Type: model.TypePodcast, Difficulty: model.LevelIntermediate, Views: 350, Tags: model.StringList{"renewable-energy"}},
		{Type: model.TypeInteractive, Difficulty: model.LevelAdvanced, Views: 99999, Tags: model.StringList{"renewable-energy", "carbon-footprint", "oceans"}},
	}

	for _, content := range contents {
		score, reason := Evaluate(content, visualProfile())
		assert.GreaterOrEqual(t, score, MinScore)
		assert.LessOrEqual(t, score, MaxScore)
		assert.NotEmpty(t, reason)
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	content := &model.ContentItem{
		Type:       model.TypeInfographic,
		Difficulty: model.LevelIntermediate,
		Tags:       model.StringList{"carbon-footprint"},
		Views:      42,
	}

	s1, r1 := Evaluate(content, visualProfile())
	s2, r2 := Evaluate(content, visualProfile())

	assert.Equal(t, s1, s2)
	assert.Equal(t, r1, r2)
}

// 说明文案与加分项必须来自同一组命中条件
func TestEvaluateReasonMatchesScore(t *testing.T) {
	content := &model.ContentItem{
		Type:       model.TypePodcast, // 不匹配 visual
		Difficulty: model.LevelIntermediate,
		Tags:       model.StringList{"renewable-energy"},
	}

	score, reason := Evaluate(content, visualProfile())

	assert.Equal(t, BaseScore+goalMatchPoints+difficultyMatchPoints, score)
	assert.Equal(t, "Matches your learning goals, Matches your knowledge level", reason)
	assert.NotContains(t, reason, "learning style")
}

// 全规则命中：5 + 2 + 3 + 2 + 1.5 = 13.5，截断到10
func TestEvaluateAllRulesClampedScenario(t *testing.T) {
	profile := model.LearnerProfile{
		AgeGroup:       model.AgeGroupAdult,
		KnowledgeLevel: model.LevelIntermediate,
		LearningStyle:  model.StyleReading,
		SelectedGoals:  model.StringList{"solar power"},
	}
	content := &model.ContentItem{
		Type:       model.TypeArticle,
		Difficulty: model.LevelIntermediate,
		Tags:       model.StringList{"solar power"},
		Views:      150,
	}

	score, reason := Evaluate(content, profile)

	assert.Equal(t, MaxScore, score)
	assert.Contains(t, reason, "Matches your learning goals")
	assert.Contains(t, reason, "Matches your knowledge level")
	assert.Contains(t, reason, "Fits your reading learning style")
}

func TestStylePreferredTypes(t *testing.T) {
	assert.ElementsMatch(t, []model.ContentType{model.TypeVideo, model.TypeInfographic}, StylePreferredTypes(model.StyleVisual))
	assert.ElementsMatch(t, []model.ContentType{model.TypePodcast, model.TypeAudio}, StylePreferredTypes(model.StyleAuditory))
	assert.ElementsMatch(t, []model.ContentType{model.TypeArticle, model.TypeDocument}, StylePreferredTypes(model.StyleReading))
	assert.ElementsMatch(t, []model.ContentType{model.TypeInteractive, model.TypeSimulation}, StylePreferredTypes(model.StyleKinesthetic))
}

package engine

import (
	"context"
	"errors"
	"testing"

	"climate_edu_backend/internal/model"
	"climate_edu_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCatalog 内存内容目录，记录收到的查询条件
type fakeCatalog struct {
	items    []model.ContentItem
	err      error
	criteria []ContentCriteria
}

func (f *fakeCatalog) Find(ctx context.Context, criteria ContentCriteria) ([]model.ContentItem, error) {
	f.criteria = append(f.criteria, criteria)
	if f.err != nil {
		return nil, f.err
	}

	var out []model.ContentItem
	for _, item := range f.items {
		if !matchesCriteria(item, criteria) {
			continue
		}
		out = append(out, item)
		if criteria.Limit > 0 && len(out) >= criteria.Limit {
			break
		}
	}
	return out, nil
}

func (f *fakeCatalog) FindByIDs(ctx context.Context, ids []string) ([]model.ContentItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	idSet := make(map[string]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}
	var out []model.ContentItem
	for _, item := range f.items {
		if idSet[item.ID] {
			out = append(out, item)
		}
	}
	return out, nil
}

func matchesCriteria(item model.ContentItem, c ContentCriteria) bool {
	if len(c.AgeGroups) > 0 && !containsAgeGroup(c.AgeGroups, item.AgeGroup) {
		return false
	}
	if len(c.Difficulties) > 0 && !containsLevel(c.Difficulties, item.Difficulty) {
		return false
	}
	if len(c.Types) > 0 && !containsType(c.Types, item.Type) {
		return false
	}
	for _, excluded := range c.ExcludeIDs {
		if item.ID == excluded {
			return false
		}
	}
	return true
}

func containsAgeGroup(groups []model.AgeGroup, g model.AgeGroup) bool {
	for _, x := range groups {
		if x == g {
			return true
		}
	}
	return false
}

func containsLevel(levels []model.KnowledgeLevel, l model.KnowledgeLevel) bool {
	for _, x := range levels {
		if x == l {
			return true
		}
	}
	return false
}

func containsType(types []model.ContentType, t model.ContentType) bool {
	for _, x := range types {
		if x == t {
			return true
		}
	}
	return false
}

func item(id string, typ model.ContentType, difficulty model.KnowledgeLevel, duration int) model.ContentItem {
	return model.ContentItem{
		UUIDBase:          model.UUIDBase{ID: id},
		Title:             "Content " + id,
		Type:              typ,
		Difficulty:        difficulty,
		AgeGroup:          model.AgeGroupAdult,
		EstimatedDuration: duration,
		Published:         true,
	}
}

func adultProfile() model.LearnerProfile {
	return model.LearnerProfile{
		AgeGroup:       model.AgeGroupAdult,
		KnowledgeLevel: model.LevelIntermediate,
		LearningStyle:  model.StyleVisual,
		SelectedGoals:  model.StringList{"renewable-energy"},
	}
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, ClampLimit(0))
	assert.Equal(t, DefaultLimit, ClampLimit(-5))
	assert.Equal(t, 1, ClampLimit(1))
	assert.Equal(t, MaxRecommendations, ClampLimit(20))
	assert.Equal(t, MaxRecommendations, ClampLimit(50))
}

func TestDifficultyWindow(t *testing.T) {
	strong := 85.0
	weak := 60.0

	// 强势表现向上探一档
	assert.Equal(t,
		[]model.KnowledgeLevel{model.LevelIntermediate, model.LevelAdvanced},
		DifficultyWindow(model.LevelIntermediate, &strong))

	// advanced 封顶
	assert.Equal(t,
		[]model.KnowledgeLevel{model.LevelAdvanced},
		DifficultyWindow(model.LevelAdvanced, &strong))

	// 其余向下兼容一档
	assert.Equal(t,
		[]model.KnowledgeLevel{model.LevelBeginner, model.LevelIntermediate},
		DifficultyWindow(model.LevelIntermediate, &weak))

	// beginner 向下不越界
	assert.Equal(t,
		[]model.KnowledgeLevel{model.LevelBeginner},
		DifficultyWindow(model.LevelBeginner, nil))
}

func TestChallengeDifficulty(t *testing.T) {
	strong := 90.0
	weak := 50.0

	assert.Equal(t, model.LevelAdvanced, ChallengeDifficulty(model.LevelIntermediate, &strong))
	assert.Equal(t, model.LevelIntermediate, ChallengeDifficulty(model.LevelIntermediate, &weak))
	assert.Equal(t, model.LevelIntermediate, ChallengeDifficulty(model.LevelIntermediate, nil))
	// advanced 封顶不回绕
	assert.Equal(t, model.LevelAdvanced, ChallengeDifficulty(model.LevelAdvanced, &strong))
}

func TestNextLessonReplaysStoredPriority(t *testing.T) {
	catalog := &fakeCatalog{items: []model.ContentItem{
		item("a", model.TypeArticle, model.LevelIntermediate, 15),
		item("b", model.TypeVideo, model.LevelIntermediate, 20),
		item("c", model.TypeQuiz, model.LevelIntermediate, 10),
	}}
	g := NewGenerator(catalog)

	path := &model.LearningPath{
		RecommendedContent: model.RecommendationList{
			{ContentID: "a", RelevanceScore: 6, AdaptationReason: "Matches your learning goals"},
			{ContentID: "b", RelevanceScore: 9, AdaptationReason: "Matches your knowledge level"},
			{ContentID: "c", RelevanceScore: 7},
		},
		Progress: model.PathProgress{CompletedContent: model.StringList{"c"}},
	}

	recs, err := g.NextLesson(context.Background(), path, 10)
	require.NoError(t, err)

	// 已完成的 c 被排除，剩余按存量分数降序，不重新评分
	require.Len(t, recs, 2)
	assert.Equal(t, "b", recs[0].ContentID)
	assert.Equal(t, 9.0, recs[0].RelevanceScore)
	assert.Equal(t, "Matches your knowledge level", recs[0].AdaptationReason)
	assert.Equal(t, "a", recs[1].ContentID)
}

func TestNextLessonEmptyWhenAllCompleted(t *testing.T) {
	catalog := &fakeCatalog{}
	g := NewGenerator(catalog)

	path := &model.LearningPath{
		RecommendedContent: model.RecommendationList{{ContentID: "a"}},
		Progress:           model.PathProgress{CompletedContent: model.StringList{"a"}},
	}

	recs, err := g.NextLesson(context.Background(), path, 10)
	require.NoError(t, err)
	assert.Empty(t, recs)
	assert.Empty(t, catalog.criteria)
}

func TestReviewTransformsCompletedContent(t *testing.T) {
	catalog := &fakeCatalog{items: []model.ContentItem{
		item("a", model.TypeVideo, model.LevelBeginner, 30),
		item("b", model.TypeArticle, model.LevelIntermediate, 21),
	}}
	g := NewGenerator(catalog)

	path := &model.LearningPath{
		Progress: model.PathProgress{CompletedContent: model.StringList{"a", "b"}},
	}

	recs, err := g.Review(context.Background(), path, 10)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	// 最近完成的在前
	assert.Equal(t, "b", recs[0].ContentID)
	assert.Equal(t, "Review: Content b", recs[0].Title)
	assert.Equal(t, model.TypeReview, recs[0].Type)
	assert.Equal(t, 10, recs[0].EstimatedDuration) // 21/2 整除
	assert.Equal(t, reviewScore, recs[0].RelevanceScore)
	assert.Equal(t, reviewReason, recs[0].AdaptationReason)
	assert.Equal(t, 15, recs[1].EstimatedDuration)
}

// 完成列表不变时重复生成复习推荐，结果逐字段一致
func TestReviewIdempotent(t *testing.T) {
	catalog := &fakeCatalog{items: []model.ContentItem{
		item("a", model.TypeVideo, model.LevelBeginner, 30),
	}}
	g := NewGenerator(catalog)
	path := &model.LearningPath{
		Progress: model.PathProgress{CompletedContent: model.StringList{"a"}},
	}

	first, err := g.Review(context.Background(), path, 10)
	require.NoError(t, err)
	second, err := g.Review(context.Background(), path, 10)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestReviewEmptyWithoutHistory(t *testing.T) {
	g := NewGenerator(&fakeCatalog{})
	path := &model.LearningPath{Progress: model.PathProgress{}}

	recs, err := g.Review(context.Background(), path, 10)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestChallengeFiltersInteractiveTypes(t *testing.T) {
	catalog := &fakeCatalog{items: []model.ContentItem{
		item("quiz", model.TypeQuiz, model.LevelAdvanced, 10),
		item("sim", model.TypeSimulation, model.LevelAdvanced, 40),
		item("article", model.TypeArticle, model.LevelAdvanced, 15),
	}}
	g := NewGenerator(catalog)

	strong := 85.0
	recs, err := g.Challenge(context.Background(), adultProfile(), &strong, 10)
	require.NoError(t, err)

	// 文章类被排除；强势表现时目标难度上调到 advanced
	require.Len(t, recs, 2)
	for _, rec := range recs {
		assert.Equal(t, model.LevelAdvanced, rec.Difficulty)
		assert.Equal(t, challengeScore, rec.RelevanceScore)
		assert.Equal(t, challengeReason, rec.AdaptationReason)
	}
	require.Len(t, catalog.criteria, 1)
	assert.Equal(t, []model.KnowledgeLevel{model.LevelAdvanced}, catalog.criteria[0].Difficulties)
}

func TestGeneralStylePreferredRatio(t *testing.T) {
	catalog := &fakeCatalog{items: []model.ContentItem{
		item("v1", model.TypeVideo, model.LevelIntermediate, 10),
		item("v2", model.TypeInfographic, model.LevelIntermediate, 10),
		item("a1", model.TypeArticle, model.LevelIntermediate, 10),
		item("a2", model.TypePodcast, model.LevelIntermediate, 10),
		item("a3", model.TypeQuiz, model.LevelIntermediate, 10),
	}}
	g := NewGenerator(catalog)

	recs, err := g.General(context.Background(), adultProfile(), nil, nil, 10)
	require.NoError(t, err)

	// 两次查询：先风格偏好（limit×0.7），再不限类型补足
	require.Len(t, catalog.criteria, 2)
	assert.Equal(t, 7, catalog.criteria[0].Limit)
	assert.ElementsMatch(t, []model.ContentType{model.TypeVideo, model.TypeInfographic}, catalog.criteria[0].Types)
	assert.Empty(t, catalog.criteria[1].Types)

	// 去重后不超过 limit，无重复条目
	seen := map[string]bool{}
	for _, rec := range recs {
		assert.False(t, seen[rec.ContentID], "duplicate %s", rec.ContentID)
		seen[rec.ContentID] = true
	}
	assert.Len(t, recs, 5)
}

// limit=1 时偏好配额取整为0，跳过偏好查询而不是发不限量查询
func TestGeneralSkipsPreferredPhaseOnZeroQuota(t *testing.T) {
	catalog := &fakeCatalog{items: []model.ContentItem{
		item("v1", model.TypeVideo, model.LevelIntermediate, 10),
		item("a1", model.TypeArticle, model.LevelIntermediate, 10),
	}}
	g := NewGenerator(catalog)

	recs, err := g.General(context.Background(), adultProfile(), nil, nil, 1)
	require.NoError(t, err)

	require.Len(t, catalog.criteria, 1)
	assert.Empty(t, catalog.criteria[0].Types)
	assert.Equal(t, 1, catalog.criteria[0].Limit)
	assert.Len(t, recs, 1)
}

func TestGeneralExcludesCompleted(t *testing.T) {
	catalog := &fakeCatalog{items: []model.ContentItem{
		item("done", model.TypeVideo, model.LevelIntermediate, 10),
		item("new", model.TypeVideo, model.LevelIntermediate, 10),
	}}
	g := NewGenerator(catalog)

	recs, err := g.General(context.Background(), adultProfile(), nil, model.StringList{"done"}, 10)
	require.NoError(t, err)

	require.Len(t, recs, 1)
	assert.Equal(t, "new", recs[0].ContentID)
}

func TestInitialCapsAtTwenty(t *testing.T) {
	catalog := &fakeCatalog{}
	for i := 0; i < 30; i++ {
		catalog.items = append(catalog.items, item(string(rune('a'+i)), model.TypeVideo, model.LevelIntermediate, 10))
	}
	g := NewGenerator(catalog)

	recs, err := g.Initial(context.Background(), adultProfile(), nil)
	require.NoError(t, err)

	assert.Len(t, recs, MaxRecommendations)
	for _, rec := range recs {
		assert.GreaterOrEqual(t, rec.RelevanceScore, MinScore)
		assert.LessOrEqual(t, rec.RelevanceScore, MaxScore)
		assert.NotEmpty(t, rec.AdaptationReason)
	}
}

func TestCatalogFailureWrapped(t *testing.T) {
	catalog := &fakeCatalog{err: errors.New("connection refused")}
	g := NewGenerator(catalog)

	_, err := g.General(context.Background(), adultProfile(), nil, nil, 10)
	assert.ErrorIs(t, err, util.ErrCatalogUnavailable)

	_, err = g.Challenge(context.Background(), adultProfile(), nil, 10)
	assert.ErrorIs(t, err, util.ErrCatalogUnavailable)

	_, err = g.Initial(context.Background(), adultProfile(), nil)
	assert.ErrorIs(t, err, util.ErrCatalogUnavailable)
}

// 同分条目按 contentId 升序，排序稳定可复现
func TestSortByScoreStable(t *testing.T) {
	recs := []model.Recommendation{
		{ContentID: "c", RelevanceScore: 5},
		{ContentID: "a", RelevanceScore: 5},
		{ContentID: "b", RelevanceScore: 8},
	}

	sortByScore(recs)

	assert.Equal(t, "b", recs[0].ContentID)
	assert.Equal(t, "a", recs[1].ContentID)
	assert.Equal(t, "c", recs[2].ContentID)
}

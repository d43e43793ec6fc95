package engine

import (
	"context"
	"fmt"
	"sort"

	"climate_edu_backend/internal/model"
	"climate_edu_backend/internal/util"
)

const (
	// MaxRecommendations 单次生成的推荐数上限
	MaxRecommendations = 20
	// DefaultLimit 调用方未指定 limit 时的默认值
	DefaultLimit = 10

	// 强势表现的测评分数线：高于此值解锁更高一档的内容
	strongScoreThreshold = 80.0

	// general 模式中风格偏好内容占比
	stylePreferredRatio = 0.7

	reviewScore        = 8.0
	challengeScore     = 9.0
	reviewReason       = "Spaced repetition for better retention"
	challengeReason    = "Challenge yourself with interactive content"
	nextInPathReason   = "Next in your learning path"
	reviewDurationHalf = 2
)

// ContentCriteria 内容目录查询条件
type ContentCriteria struct {
	AgeGroups    []model.AgeGroup
	Difficulties []model.KnowledgeLevel
	Types        []model.ContentType
	Tags         []string
	ExcludeIDs   []string
	Limit        int
}

// CatalogAccessor 外部内容目录。调用可能失败，失败时不得留下副作用。
type CatalogAccessor interface {
	Find(ctx context.Context, criteria ContentCriteria) ([]model.ContentItem, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.ContentItem, error)
}

// ClampLimit 规整推荐数量：非正数取默认值，上限20
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxRecommendations {
		return MaxRecommendations
	}
	return limit
}

// DifficultyWindow 给定当前知识水平与最近测评分数，返回可推荐的难度区间。
// 强势表现者（>80分）可向上探一档，其余向下兼容一档，
// 避免弱势学习者只看到当前档位的内容。
func DifficultyWindow(level model.KnowledgeLevel, latestScore *float64) []model.KnowledgeLevel {
	i := level.Ordinal()
	if latestScore != nil && *latestScore > strongScoreThreshold {
		hi := i + 1
		if hi > model.LevelAdvanced.Ordinal() {
			hi = model.LevelAdvanced.Ordinal()
		}
		window := make([]model.KnowledgeLevel, 0, 2)
		for o := i; o <= hi; o++ {
			window = append(window, model.KnowledgeLevelAt(o))
		}
		return window
	}

	lo := i - 1
	if lo < 0 {
		lo = 0
	}
	window := make([]model.KnowledgeLevel, 0, 2)
	for o := lo; o <= i; o++ {
		window = append(window, model.KnowledgeLevelAt(o))
	}
	return window
}

// ChallengeDifficulty 挑战模式的目标难度：最近测评>80分时上调一档，
// advanced 封顶不回绕。
func ChallengeDifficulty(level model.KnowledgeLevel, latestScore *float64) model.KnowledgeLevel {
	if latestScore != nil && *latestScore > strongScoreThreshold {
		return model.KnowledgeLevelAt(level.Ordinal() + 1)
	}
	return level
}

// Generator 推荐生成器。四种模式全部整表重算并截断到 limit，
// 除 review 外都排除已完成内容。
type Generator struct {
	Catalog CatalogAccessor
}

func NewGenerator(catalog CatalogAccessor) *Generator {
	return &Generator{Catalog: catalog}
}

// NextLesson 从既有推荐中取未完成的条目，沿用生成时算出的
// 优先级与说明，不做重新评分。
func (g *Generator) NextLesson(ctx context.Context, path *model.LearningPath, limit int) ([]model.Recommendation, error) {
	limit = ClampLimit(limit)
	completed := path.Progress.CompletedContent

	var pending []model.Recommendation
	for _, rec := range path.RecommendedContent {
		if !completed.Contains(rec.ContentID) {
			pending = append(pending, rec)
		}
	}
	if len(pending) == 0 {
		return []model.Recommendation{}, nil
	}

	ids := make([]string, len(pending))
	for i, rec := range pending {
		ids[i] = rec.ContentID
	}
	items, err := g.Catalog.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrCatalogUnavailable, err)
	}

	byID := make(map[string]*model.ContentItem, len(items))
	for i := range items {
		byID[items[i].ID] = &items[i]
	}

	recs := make([]model.Recommendation, 0, len(pending))
	for _, rec := range pending {
		content, ok := byID[rec.ContentID]
		if !ok {
			continue
		}
		reason := rec.AdaptationReason
		if reason == "" {
			reason = nextInPathReason
		}
		recs = append(recs, model.Recommendation{
			ContentID:         content.ID,
			Title:             content.Title,
			Description:       content.Description,
			Type:              content.Type,
			Difficulty:        content.Difficulty,
			EstimatedDuration: content.EstimatedDuration,
			RelevanceScore:    rec.RelevanceScore,
			AdaptationReason:  reason,
			Prerequisites:     content.Prerequisites,
			NextSteps:         content.NextSteps,
		})
	}

	sortByScore(recs)
	return truncate(recs, limit), nil
}

// Review 只面向已完成内容：取最近完成的 limit 条（新在前），
// 标题加 Review 前缀，时长减半，固定8分。对未变化的完成列表
// 重复生成结果完全一致。
func (g *Generator) Review(ctx context.Context, path *model.LearningPath, limit int) ([]model.Recommendation, error) {
	limit = ClampLimit(limit)
	completed := path.Progress.CompletedContent
	if len(completed) == 0 {
		return []model.Recommendation{}, nil
	}

	start := len(completed) - limit
	if start < 0 {
		start = 0
	}
	recent := make([]string, 0, limit)
	for i := len(completed) - 1; i >= start; i-- {
		recent = append(recent, completed[i])
	}

	items, err := g.Catalog.FindByIDs(ctx, recent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrCatalogUnavailable, err)
	}
	byID := make(map[string]*model.ContentItem, len(items))
	for i := range items {
		byID[items[i].ID] = &items[i]
	}

	recs := make([]model.Recommendation, 0, len(recent))
	for _, id := range recent {
		content, ok := byID[id]
		if !ok {
			continue
		}
		recs = append(recs, model.Recommendation{
			ContentID:         content.ID,
			Title:             "Review: " + content.Title,
			Description:       content.Description,
			Type:              model.TypeReview,
			Difficulty:        content.Difficulty,
			EstimatedDuration: content.EstimatedDuration / reviewDurationHalf,
			RelevanceScore:    reviewScore,
			AdaptationReason:  reviewReason,
		})
	}

	return truncate(recs, limit), nil
}

// Challenge 互动类挑战内容，目标难度按最近测评表现上调
func (g *Generator) Challenge(ctx context.Context, profile model.LearnerProfile, latestScore *float64, limit int) ([]model.Recommendation, error) {
	limit = ClampLimit(limit)
	target := ChallengeDifficulty(profile.KnowledgeLevel, latestScore)

	items, err := g.Catalog.Find(ctx, ContentCriteria{
		AgeGroups:    []model.AgeGroup{profile.AgeGroup},
		Difficulties: []model.KnowledgeLevel{target},
		Types:        []model.ContentType{model.TypeQuiz, model.TypeInteractive, model.TypeSimulation},
		Limit:        limit,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrCatalogUnavailable, err)
	}

	recs := make([]model.Recommendation, 0, len(items))
	for i := range items {
		content := &items[i]
		recs = append(recs, model.Recommendation{
			ContentID:         content.ID,
			Title:             content.Title,
			Description:       content.Description,
			Type:              content.Type,
			Difficulty:        content.Difficulty,
			EstimatedDuration: content.EstimatedDuration,
			RelevanceScore:    challengeScore,
			AdaptationReason:  challengeReason,
			Prerequisites:     content.Prerequisites,
			NextSteps:         content.NextSteps,
		})
	}

	return truncate(recs, limit), nil
}

// General 两段式填充：先取风格偏好类型最多 limit×0.7 条，
// 再从不限类型的候选池补足，去重后统一走评分引擎。
func (g *Generator) General(ctx context.Context, profile model.LearnerProfile, latestScore *float64, completed model.StringList, limit int) ([]model.Recommendation, error) {
	limit = ClampLimit(limit)
	base := ContentCriteria{
		AgeGroups:    []model.AgeGroup{profile.AgeGroup, model.AgeGroupAll},
		Difficulties: DifficultyWindow(profile.KnowledgeLevel, latestScore),
		ExcludeIDs:   completed,
	}

	// 配额向下取整；limit=1 时配额为0，直接跳过偏好查询
	// （Limit=0 在目录侧表示不限量）
	var preferred []model.ContentItem
	if quota := int(float64(limit) * stylePreferredRatio); quota > 0 {
		preferredCriteria := base
		preferredCriteria.Types = StylePreferredTypes(profile.LearningStyle)
		preferredCriteria.Limit = quota

		var err error
		preferred, err = g.Catalog.Find(ctx, preferredCriteria)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", util.ErrCatalogUnavailable, err)
		}
	}

	fillCriteria := base
	fillCriteria.Limit = limit
	fill, err := g.Catalog.Find(ctx, fillCriteria)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrCatalogUnavailable, err)
	}

	seen := make(map[string]bool, limit)
	pool := make([]model.ContentItem, 0, limit)
	for _, item := range preferred {
		if !seen[item.ID] {
			seen[item.ID] = true
			pool = append(pool, item)
		}
	}
	for _, item := range fill {
		if len(pool) >= limit {
			break
		}
		if !seen[item.ID] {
			seen[item.ID] = true
			pool = append(pool, item)
		}
	}

	recs := scoreAll(pool, profile)
	sortByScore(recs)
	return truncate(recs, limit), nil
}

// Initial 入驻建档时的首次生成：对所选年龄段的全部合格内容
// 套用 general 模式的评分规则，按分取前20条落库。
func (g *Generator) Initial(ctx context.Context, profile model.LearnerProfile, latestScore *float64) ([]model.Recommendation, error) {
	items, err := g.Catalog.Find(ctx, ContentCriteria{
		AgeGroups:    []model.AgeGroup{profile.AgeGroup, model.AgeGroupAll},
		Difficulties: DifficultyWindow(profile.KnowledgeLevel, latestScore),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrCatalogUnavailable, err)
	}

	recs := scoreAll(items, profile)
	sortByScore(recs)
	return truncate(recs, MaxRecommendations), nil
}

func scoreAll(items []model.ContentItem, profile model.LearnerProfile) []model.Recommendation {
	recs := make([]model.Recommendation, 0, len(items))
	for i := range items {
		content := &items[i]
		score, reason := Evaluate(content, profile)
		recs = append(recs, model.Recommendation{
			ContentID:         content.ID,
			Title:             content.Title,
			Description:       content.Description,
			Type:              content.Type,
			Difficulty:        content.Difficulty,
			EstimatedDuration: content.EstimatedDuration,
			RelevanceScore:    score,
			AdaptationReason:  reason,
			Prerequisites:     content.Prerequisites,
			NextSteps:         content.NextSteps,
		})
	}
	return recs
}

// 按分数降序，分数相同按 contentId 保证稳定顺序
func sortByScore(recs []model.Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].RelevanceScore != recs[j].RelevanceScore {
			return recs[i].RelevanceScore > recs[j].RelevanceScore
		}
		return recs[i].ContentID < recs[j].ContentID
	})
}

func truncate(recs []model.Recommendation, limit int) []model.Recommendation {
	if len(recs) > limit {
		return recs[:limit]
	}
	return recs
}

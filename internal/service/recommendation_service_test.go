package service

import (
	"context"
	"testing"

	"climate_edu_backend/internal/config"
	"climate_edu_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func cacheDisabledService() *RecommendationService {
	return &RecommendationService{
		Config: &config.Config{
			Recommendation: config.RecommendationConfig{
				CacheEnabled:    false,
				CacheTTLSeconds: 300,
			},
		},
	}
}

// 缓存关闭时读写全部旁路，不触碰 Redis
func TestCacheBypassWhenDisabled(t *testing.T) {
	s := cacheDisabledService()
	ctx := context.Background()

	set := &RecommendationSet{Recommendations: []model.Recommendation{{ContentID: "c1"}}}

	assert.Nil(t, s.fromCache(ctx, s.cacheKey(1, "general", 10)))
	s.toCache(ctx, s.cacheKey(1, "general", 10), set)
	s.InvalidateCache(ctx, 1)

	assert.Nil(t, s.fromCache(ctx, s.cacheKey(1, "general", 10)))
}

// 缓存开启但 Redis 未配置时同样旁路，不 panic
func TestCacheBypassWithoutRedis(t *testing.T) {
	s := cacheDisabledService()
	s.Config.Recommendation.CacheEnabled = true
	s.Redis = nil
	ctx := context.Background()

	assert.Nil(t, s.fromCache(ctx, s.cacheKey(2, "review", 5)))
	s.toCache(ctx, s.cacheKey(2, "review", 5), &RecommendationSet{})
	s.InvalidateCache(ctx, 2)
}

func TestCacheKeyIncludesModeAndLimit(t *testing.T) {
	s := cacheDisabledService()

	assert.Equal(t, "recommendations:7:general:10", s.cacheKey(7, "general", 10))
	assert.NotEqual(t, s.cacheKey(7, "general", 10), s.cacheKey(7, "general", 20))
	assert.NotEqual(t, s.cacheKey(7, "general", 10), s.cacheKey(7, "review", 10))
}

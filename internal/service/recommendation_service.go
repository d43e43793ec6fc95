package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"climate_edu_backend/internal/config"
	"climate_edu_backend/internal/engine"
	"climate_edu_backend/internal/model"
	"climate_edu_backend/internal/repository"
	"climate_edu_backend/internal/util"
	"climate_edu_backend/pkg/logger"
	"climate_edu_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RecommendationService 按模式分发推荐请求，带 Redis 结果缓存。
// 缓存只存成功结果，目录故障的降级响应不进缓存。
type RecommendationService struct {
	PathRepo       *repository.LearningPathRepository
	AssessmentRepo *repository.AssessmentRepository
	Generator      *engine.Generator
	Redis          *redis.Client
	Config         *config.Config
}

func NewRecommendationService(
	pathRepo *repository.LearningPathRepository,
	assessmentRepo *repository.AssessmentRepository,
	generator *engine.Generator,
	rdb *redis.Client,
	cfg *config.Config,
) *RecommendationService {
	return &RecommendationService{
		PathRepo:       pathRepo,
		AssessmentRepo: assessmentRepo,
		Generator:      generator,
		Redis:          rdb,
		Config:         cfg,
	}
}

// UserContext 随推荐一起返回的用户状态摘要
type UserContext struct {
	KnowledgeLevel   model.KnowledgeLevel `json:"knowledgeLevel"`
	CompletedContent int                  `json:"completedContent"`
	CurrentStreak    int                  `json:"currentStreak"`
}

type RecommendationSet struct {
	Recommendations        []model.Recommendation `json:"recommendations"`
	UserContext            UserContext            `json:"userContext"`
	TemporarilyUnavailable bool                   `json:"temporarilyUnavailable,omitempty"`
}

// GetRecommendations 按模式生成推荐。目录不可用时返回空列表并标记
// temporarilyUnavailable，不透出内部错误；没有匹配内容时同样返回空列表
// 但不带标记，两种情况调用方可以区分。
func (s *RecommendationService) GetRecommendations(ctx context.Context, userID uint, mode string, limit int) (*RecommendationSet, error) {
	limit = engine.ClampLimit(limit)

	path, err := s.PathRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	cacheKey := s.cacheKey(userID, mode, limit)
	if cached := s.fromCache(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	genCtx, cancel := context.WithTimeout(ctx, time.Duration(s.Config.Recommendation.CatalogTimeout)*time.Second)
	defer cancel()

	recs, err := s.generate(genCtx, path, mode, limit)
	set := &RecommendationSet{
		UserContext: UserContext{
			KnowledgeLevel:   path.KnowledgeLevel,
			CompletedContent: len(path.Progress.CompletedContent),
			CurrentStreak:    path.Progress.CurrentStreak,
		},
	}

	if err != nil {
		if errors.Is(err, util.ErrCatalogUnavailable) {
			monitoring.CatalogErrorCounter.Inc()
			logger.Log.Error("content catalog unavailable",
				zap.Uint("userId", userID), zap.String("mode", mode), zap.Error(err))
			set.Recommendations = []model.Recommendation{}
			set.TemporarilyUnavailable = true
			return set, nil
		}
		return nil, err
	}

	set.Recommendations = recs
	monitoring.RecommendationCounter.WithLabelValues(mode).Inc()
	s.toCache(ctx, cacheKey, set)
	return set, nil
}

func (s *RecommendationService) generate(ctx context.Context, path *model.LearningPath, mode string, limit int) ([]model.Recommendation, error) {
	switch mode {
	case util.ModeNextLesson:
		return s.Generator.NextLesson(ctx, path, limit)
	case util.ModeReview:
		return s.Generator.Review(ctx, path, limit)
	case util.ModeChallenge:
		latestScore, err := s.latestScore(path.UserID)
		if err != nil {
			return nil, err
		}
		return s.Generator.Challenge(ctx, path.Profile(), latestScore, limit)
	default:
		latestScore, err := s.latestScore(path.UserID)
		if err != nil {
			return nil, err
		}
		return s.Generator.General(ctx, path.Profile(), latestScore, path.Progress.CompletedContent, limit)
	}
}

func (s *RecommendationService) latestScore(userID uint) (*float64, error) {
	latest, err := s.AssessmentRepo.LatestResult(userID, []string{model.AssessmentTypeOnboarding, model.AssessmentTypeProgress})
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, nil
	}
	return &latest.Score, nil
}

func (s *RecommendationService) cacheKey(userID uint, mode string, limit int) string {
	return fmt.Sprintf("recommendations:%d:%s:%d", userID, mode, limit)
}

func (s *RecommendationService) fromCache(ctx context.Context, key string) *RecommendationSet {
	if !s.Config.Recommendation.CacheEnabled || s.Redis == nil {
		return nil
	}
	raw, err := s.Redis.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		logger.Log.Warn("recommendation cache read failed", zap.String("key", key), zap.Error(err))
		return nil
	}
	var set RecommendationSet
	if err := json.Unmarshal([]byte(raw), &set); err != nil {
		logger.Log.Warn("recommendation cache decode failed", zap.String("key", key), zap.Error(err))
		return nil
	}
	return &set
}

func (s *RecommendationService) toCache(ctx context.Context, key string, set *RecommendationSet) {
	if !s.Config.Recommendation.CacheEnabled || s.Redis == nil {
		return
	}
	raw, err := json.Marshal(set)
	if err != nil {
		return
	}
	ttl := time.Duration(s.Config.Recommendation.CacheTTLSeconds) * time.Second
	if err := s.Redis.Set(ctx, key, raw, ttl).Err(); err != nil {
		logger.Log.Warn("recommendation cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// InvalidateCache 路径发生写操作后清掉该用户的全部推荐缓存
func (s *RecommendationService) InvalidateCache(ctx context.Context, userID uint) {
	if !s.Config.Recommendation.CacheEnabled || s.Redis == nil {
		return
	}
	pattern := fmt.Sprintf("recommendations:%d:*", userID)
	keys, err := s.Redis.Keys(ctx, pattern).Result()
	if err != nil {
		logger.Log.Warn("recommendation cache scan failed", zap.String("pattern", pattern), zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := s.Redis.Del(ctx, keys...).Err(); err != nil {
		logger.Log.Warn("recommendation cache invalidation failed", zap.String("pattern", pattern), zap.Error(err))
	}
}

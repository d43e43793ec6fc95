package service

import (
	"context"
	"errors"
	"time"

	"climate_edu_backend/internal/config"
	"climate_edu_backend/internal/engine"
	"climate_edu_backend/internal/model"
	"climate_edu_backend/internal/repository"
	"climate_edu_backend/internal/util"
	"climate_edu_backend/pkg/logger"
	"climate_edu_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// 乐观锁冲突时的重试次数。单用户路径写入量很低，三次足够。
const maxWriteRetries = 3

// LearningPathService 学习路径读写：进度更新、积分连击、画像自适应调整。
// 所有写入走乐观锁，冲突时重新读取再整体重算。
type LearningPathService struct {
	PathRepo       *repository.LearningPathRepository
	AssessmentRepo *repository.AssessmentRepository
	Generator      *engine.Generator
	Recommendation *RecommendationService
	Config         *config.Config
}

func NewLearningPathService(
	pathRepo *repository.LearningPathRepository,
	assessmentRepo *repository.AssessmentRepository,
	generator *engine.Generator,
	recommendation *RecommendationService,
	cfg *config.Config,
) *LearningPathService {
	return &LearningPathService{
		PathRepo:       pathRepo,
		AssessmentRepo: assessmentRepo,
		Generator:      generator,
		Recommendation: recommendation,
		Config:         cfg,
	}
}

func (s *LearningPathService) GetPath(userID uint) (*model.LearningPath, error) {
	return s.PathRepo.FindByUserID(userID)
}

// ProgressUpdateResult 一次进度上报的结果
type ProgressUpdateResult struct {
	Completed     bool               `json:"completed"`
	PointsEarned  int                `json:"pointsEarned"`
	TotalPoints   int                `json:"totalPoints"`
	CurrentStreak int                `json:"currentStreak"`
	Adaptation    *model.Adaptation  `json:"adaptation,omitempty"`
	Path          *model.LearningPath `json:"-"`
}

// UpdateProgress 记录一次内容交互。完成率超过阈值且未重复时计入
// 已完成内容并发积分，连击每个自然日最多加一次。
// 积累足够调整记录后顺带评估是否需要画像调整。
func (s *LearningPathService) UpdateProgress(ctx context.Context, userID uint, interaction engine.InteractionContext) (*ProgressUpdateResult, error) {
	var result *ProgressUpdateResult

	err := s.withRetry(func() error {
		path, err := s.PathRepo.FindByUserID(userID)
		if err != nil {
			return err
		}

		completed, points := engine.ApplyProgress(&path.Progress, interaction, time.Now())
		result = &ProgressUpdateResult{
			Completed:    completed,
			PointsEarned: points,
		}

		if err := s.PathRepo.Save(path); err != nil {
			return err
		}

		result.TotalPoints = path.Progress.TotalPoints
		result.CurrentStreak = path.Progress.CurrentStreak
		result.Path = path
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Recommendation.InvalidateCache(ctx, userID)

	if engine.ShouldTriggerAdaptation(result.Path.Adaptations) {
		adjustment, err := s.PerformAdaptiveAdjustment(ctx, userID, interaction)
		if err != nil {
			logger.Log.Warn("progress-triggered adaptation failed",
				zap.Uint("userId", userID), zap.Error(err))
		} else if adjustment.Adapted {
			result.Adaptation = adjustment.Record
			result.Path = adjustment.Path
		}
	}

	return result, nil
}

// AdjustmentResult 自适应调整的结果
type AdjustmentResult struct {
	Adapted        bool                 `json:"adapted"`
	KnowledgeLevel model.KnowledgeLevel `json:"knowledgeLevel"`
	LearningStyle  model.LearningStyle  `json:"learningStyle"`
	Record         *model.Adaptation    `json:"record,omitempty"`
	Path           *model.LearningPath  `json:"-"`
}

// PerformAdaptiveAdjustment 评估并提交一次画像调整。命中规则时追加
// 调整记录、按新画像整表重算推荐；重算失败保留原推荐列表，
// 画像变更照常提交。
func (s *LearningPathService) PerformAdaptiveAdjustment(ctx context.Context, userID uint, interaction engine.InteractionContext) (*AdjustmentResult, error) {
	var result *AdjustmentResult

	err := s.withRetry(func() error {
		path, err := s.PathRepo.FindByUserID(userID)
		if err != nil {
			return err
		}

		decision := engine.EvaluateAdaptation(path.Profile(), interaction, time.Now())
		if !decision.Adapted {
			result = &AdjustmentResult{
				Adapted:        false,
				KnowledgeLevel: path.KnowledgeLevel,
				LearningStyle:  path.LearningStyle,
				Path:           path,
			}
			return nil
		}

		path.KnowledgeLevel = decision.Profile.KnowledgeLevel
		path.LearningStyle = decision.Profile.LearningStyle
		path.Adaptations = append(path.Adaptations, *decision.Record)

		latestScore, err := s.latestScore(userID)
		if err != nil {
			return err
		}

		genCtx, cancel := context.WithTimeout(ctx, time.Duration(s.Config.Recommendation.CatalogTimeout)*time.Second)
		recs, genErr := s.Generator.Initial(genCtx, decision.Profile, latestScore)
		cancel()
		if genErr != nil {
			monitoring.CatalogErrorCounter.Inc()
			logger.Log.Error("recommendation regeneration failed, keeping prior list",
				zap.Uint("userId", userID), zap.Error(genErr))
		} else {
			path.RecommendedContent = recs
		}

		if err := s.PathRepo.Save(path); err != nil {
			return err
		}

		result = &AdjustmentResult{
			Adapted:        true,
			KnowledgeLevel: path.KnowledgeLevel,
			LearningStyle:  path.LearningStyle,
			Record:         decision.Record,
			Path:           path,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Adapted {
		monitoring.AdaptationCounter.Inc()
		s.Recommendation.InvalidateCache(ctx, userID)
		logger.Log.Info("learner profile adapted",
			zap.Uint("userId", userID),
			zap.String("knowledgeLevel", string(result.KnowledgeLevel)),
			zap.String("learningStyle", string(result.LearningStyle)),
			zap.String("changes", result.Record.Changes))
	}

	return result, nil
}

func (s *LearningPathService) latestScore(userID uint) (*float64, error) {
	latest, err := s.AssessmentRepo.LatestResult(userID, []string{model.AssessmentTypeOnboarding, model.AssessmentTypeProgress})
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, nil
	}
	return &latest.Score, nil
}

// withRetry 冲突即整体重跑读-算-写，幂等前提由调用方保证
func (s *LearningPathService) withRetry(fn func() error) error {
	var err error
	for attempt := 0; attempt < maxWriteRetries; attempt++ {
		err = fn()
		if !errors.Is(err, util.ErrWriteConflict) {
			return err
		}
	}
	return err
}

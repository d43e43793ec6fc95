package service

import (
	"context"
	"time"

	"climate_edu_backend/internal/config"
	"climate_edu_backend/internal/engine"
	"climate_edu_backend/internal/model"
	"climate_edu_backend/internal/repository"
	"climate_edu_backend/internal/util"
	"climate_edu_backend/pkg/logger"

	"go.uber.org/zap"
)

const onboardingQuestionCount = 10

// OnboardingService 入驻流程：学习目标选择、知识测评、建立学习路径
type OnboardingService struct {
	GoalRepo       *repository.GoalRepository
	AssessmentRepo *repository.AssessmentRepository
	PathRepo       *repository.LearningPathRepository
	UserRepo       *repository.UserRepository
	Generator      *engine.Generator
	Config         *config.Config
}

func NewOnboardingService(
	goalRepo *repository.GoalRepository,
	assessmentRepo *repository.AssessmentRepository,
	pathRepo *repository.LearningPathRepository,
	userRepo *repository.UserRepository,
	generator *engine.Generator,
	cfg *config.Config,
) *OnboardingService {
	return &OnboardingService{
		GoalRepo:       goalRepo,
		AssessmentRepo: assessmentRepo,
		PathRepo:       pathRepo,
		UserRepo:       userRepo,
		Generator:      generator,
		Config:         cfg,
	}
}

func (s *OnboardingService) GetGoals(ageGroup model.AgeGroup) ([]model.LearningGoal, error) {
	return s.GoalRepo.ListByAgeGroup(ageGroup)
}

func (s *OnboardingService) GetQuestions(ageGroup model.AgeGroup) ([]model.KnowledgeQuestion, error) {
	return s.AssessmentRepo.FindQuestions(ageGroup, onboardingQuestionCount)
}

type AssessmentSubmissionResult struct {
	AssessmentID   uint                 `json:"assessmentId"`
	Score          float64              `json:"score"`
	KnowledgeLevel model.KnowledgeLevel `json:"knowledgeLevel"`
}

// SubmitAssessment 批改入驻测评并落库，返回分数和知识水平
func (s *OnboardingService) SubmitAssessment(userID uint, responses []model.AssessmentResponse) (*AssessmentSubmissionResult, error) {
	ids := make([]string, len(responses))
	for i, r := range responses {
		ids[i] = r.QuestionID
	}
	questions, err := s.AssessmentRepo.FindQuestionsByIDs(ids)
	if err != nil {
		return nil, err
	}

	scored, err := engine.ScoreAssessment(responses, questions)
	if err != nil {
		return nil, err
	}

	result := &model.AssessmentResult{
		UserID:         userID,
		AssessmentType: model.AssessmentTypeOnboarding,
		Responses:      scored.Responses,
		Score:          scored.Score,
		KnowledgeLevel: scored.KnowledgeLevel,
		CompletedAt:    time.Now(),
	}
	if err := s.AssessmentRepo.CreateResult(result); err != nil {
		return nil, err
	}

	return &AssessmentSubmissionResult{
		AssessmentID:   result.ID,
		Score:          scored.Score,
		KnowledgeLevel: scored.KnowledgeLevel,
	}, nil
}

type CreatePathRequest struct {
	AgeGroup       string   `json:"ageGroup" binding:"required"`
	SelectedGoals  []string `json:"selectedGoals" binding:"required"`
	KnowledgeLevel string   `json:"knowledgeLevel" binding:"required"`
	LearningStyle  string   `json:"learningStyle" binding:"required"`
}

// CreatePath 入驻收尾：按画像生成首批推荐并创建学习路径。
// 每个用户只允许一条路径；目录不可用时整体失败，不落半成品。
func (s *OnboardingService) CreatePath(ctx context.Context, userID uint, req CreatePathRequest) (*model.LearningPath, error) {
	profile := model.LearnerProfile{
		AgeGroup:       model.NormalizeAgeGroup(req.AgeGroup),
		KnowledgeLevel: model.KnowledgeLevel(req.KnowledgeLevel),
		LearningStyle:  model.LearningStyle(req.LearningStyle),
		SelectedGoals:  model.StringList(req.SelectedGoals),
	}
	if !profile.AgeGroup.Valid() || !profile.KnowledgeLevel.Valid() || !profile.LearningStyle.Valid() {
		return nil, util.ErrInvalidProfile
	}

	if _, err := s.PathRepo.FindByUserID(userID); err == nil {
		return nil, util.ErrLearningPathExists
	} else if err != util.ErrLearningPathNotFound {
		return nil, err
	}

	latestScore, err := s.latestAssessmentScore(userID)
	if err != nil {
		return nil, err
	}

	genCtx, cancel := context.WithTimeout(ctx, time.Duration(s.Config.Recommendation.CatalogTimeout)*time.Second)
	defer cancel()

	recommendations, err := s.Generator.Initial(genCtx, profile, latestScore)
	if err != nil {
		return nil, err
	}

	path := &model.LearningPath{
		UserID:             userID,
		AgeGroup:           profile.AgeGroup,
		KnowledgeLevel:     profile.KnowledgeLevel,
		LearningStyle:      profile.LearningStyle,
		SelectedGoals:      profile.SelectedGoals,
		RecommendedContent: recommendations,
		Progress: model.PathProgress{
			CompletedContent: model.StringList{},
			CurrentStreak:    0,
			TotalPoints:      0,
		},
		Adaptations: model.AdaptationList{},
	}

	if err := s.PathRepo.Create(path); err != nil {
		return nil, err
	}

	if err := s.UserRepo.SetOnboardingCompleted(userID, profile.AgeGroup); err != nil {
		logger.Log.Warn("failed to mark onboarding completed",
			zap.Uint("userId", userID), zap.Error(err))
	}

	logger.Log.Info("learning path created",
		zap.Uint("userId", userID),
		zap.String("knowledgeLevel", string(profile.KnowledgeLevel)),
		zap.Int("recommendations", len(recommendations)))

	return path, nil
}

func (s *OnboardingService) latestAssessmentScore(userID uint) (*float64, error) {
	latest, err := s.AssessmentRepo.LatestResult(userID, []string{model.AssessmentTypeOnboarding, model.AssessmentTypeProgress})
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, nil
	}
	return &latest.Score, nil
}

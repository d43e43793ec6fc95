package repository

import (
	"errors"

	"climate_edu_backend/internal/model"

	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

// FindQuestions 按年龄段取题，由易到难
func (r *AssessmentRepository) FindQuestions(ageGroup model.AgeGroup, limit int) ([]model.KnowledgeQuestion, error) {
	var qs []model.KnowledgeQuestion
	query := r.DB.Model(&model.KnowledgeQuestion{})
	if ageGroup != "" {
		query = query.Where("age_group = ?", ageGroup)
	}
	err := query.
		Order("FIELD(difficulty, 'beginner', 'intermediate', 'advanced')").
		Limit(limit).
		Find(&qs).Error
	return qs, err
}

func (r *AssessmentRepository) FindQuestionsByIDs(ids []string) ([]model.KnowledgeQuestion, error) {
	if len(ids) == 0 {
		return []model.KnowledgeQuestion{}, nil
	}
	var qs []model.KnowledgeQuestion
	err := r.DB.Where("id IN ?", ids).Find(&qs).Error
	return qs, err
}

func (r *AssessmentRepository) CreateResult(result *model.AssessmentResult) error {
	return r.DB.Create(result).Error
}

// LatestResult 用户最近一次测评结果（不限类型时传空切片），没有则返回 nil
func (r *AssessmentRepository) LatestResult(userID uint, types []string) (*model.AssessmentResult, error) {
	var result model.AssessmentResult
	query := r.DB.Where("user_id = ?", userID)
	if len(types) > 0 {
		query = query.Where("assessment_type IN ?", types)
	}
	err := query.Order("completed_at DESC").First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *AssessmentRepository) ListResults(userID uint, page, limit int) ([]model.AssessmentResult, int64, error) {
	var results []model.AssessmentResult
	var total int64
	query := r.DB.Model(&model.AssessmentResult{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("completed_at DESC").Offset(offset).Limit(limit).Find(&results).Error
	return results, total, err
}

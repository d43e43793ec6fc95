package repository

import (
	"climate_edu_backend/internal/model"

	"gorm.io/gorm"
)

type GoalRepository struct {
	DB *gorm.DB
}

func NewGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{DB: db}
}

// ListByAgeGroup 按年龄段过滤学习目标，分类排序
func (r *GoalRepository) ListByAgeGroup(ageGroup model.AgeGroup) ([]model.LearningGoal, error) {
	var goals []model.LearningGoal
	query := r.DB.Model(&model.LearningGoal{})
	if ageGroup != "" {
		query = query.Where("JSON_CONTAINS(age_groups, JSON_QUOTE(?))", string(ageGroup))
	}
	err := query.Order("category ASC, title ASC").Find(&goals).Error
	return goals, err
}

func (r *GoalRepository) FindByIDs(ids []string) ([]model.LearningGoal, error) {
	if len(ids) == 0 {
		return []model.LearningGoal{}, nil
	}
	var goals []model.LearningGoal
	err := r.DB.Where("id IN ?", ids).Find(&goals).Error
	return goals, err
}

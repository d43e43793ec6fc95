package repository

import (
	"errors"

	"climate_edu_backend/internal/model"
	"climate_edu_backend/internal/util"

	"gorm.io/gorm"
)

type LearningPathRepository struct {
	DB *gorm.DB
}

func NewLearningPathRepository(db *gorm.DB) *LearningPathRepository {
	return &LearningPathRepository{DB: db}
}

func (r *LearningPathRepository) FindByUserID(userID uint) (*model.LearningPath, error) {
	var path model.LearningPath
	err := r.DB.Where("user_id = ?", userID).First(&path).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrLearningPathNotFound
	}
	if err != nil {
		return nil, err
	}
	return &path, nil
}

func (r *LearningPathRepository) Create(path *model.LearningPath) error {
	path.Version = 1
	return r.DB.Create(path).Error
}

// Save 乐观锁更新：以读取时的 version 做条件，未命中说明被并发写覆盖，
// 返回 ErrWriteConflict，由调用方重跑读-算-写流程。
func (r *LearningPathRepository) Save(path *model.LearningPath) error {
	current := path.Version
	res := r.DB.Model(&model.LearningPath{}).
		Where("id = ? AND version = ?", path.ID, current).
		Updates(map[string]interface{}{
			"knowledge_level":     path.KnowledgeLevel,
			"learning_style":      path.LearningStyle,
			"recommended_content": path.RecommendedContent,
			"progress":            path.Progress,
			"adaptations":         path.Adaptations,
			"version":             current + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.ErrWriteConflict
	}
	path.Version = current + 1
	return nil
}

package service

import (
	"climate_edu_backend/internal/model"
	"climate_edu_backend/internal/repository"
)

// ContentService 内容目录的浏览接口，推荐之外的兜底入口
type ContentService struct {
	ContentRepo *repository.ContentRepository
}

func NewContentService(contentRepo *repository.ContentRepository) *ContentService {
	return &ContentService{ContentRepo: contentRepo}
}

func (s *ContentService) List(ageGroup model.AgeGroup, contentType model.ContentType, page, limit int) ([]model.ContentItem, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}
	return s.ContentRepo.List(ageGroup, contentType, page, limit)
}

// Get 查看内容详情并累计浏览数，浏览数反哺推荐评分的热度项
func (s *ContentService) Get(id string) (*model.ContentItem, error) {
	content, err := s.ContentRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.ContentRepo.IncrementViews(id); err == nil {
		content.Views++
	}
	return content, nil
}

func (s *ContentService) Create(content *model.ContentItem) error {
	return s.ContentRepo.Create(content)
}

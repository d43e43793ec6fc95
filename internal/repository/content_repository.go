package repository

import (
	"context"
	"errors"

	"climate_edu_backend/internal/engine"
	"climate_edu_backend/internal/model"
	"climate_edu_backend/internal/util"

	"gorm.io/gorm"
)

// ContentRepository 内容目录访问层，实现 engine.CatalogAccessor
type ContentRepository struct {
	DB *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{DB: db}
}

var _ engine.CatalogAccessor = (*ContentRepository)(nil)

func (r *ContentRepository) Find(ctx context.Context, criteria engine.ContentCriteria) ([]model.ContentItem, error) {
	query := r.DB.WithContext(ctx).Model(&model.ContentItem{}).Where("published = ?", true)

	if len(criteria.AgeGroups) > 0 {
		query = query.Where("age_group IN ?", criteria.AgeGroups)
	}
	if len(criteria.Difficulties) > 0 {
		query = query.Where("difficulty IN ?", criteria.Difficulties)
	}
	if len(criteria.Types) > 0 {
		query = query.Where("type IN ?", criteria.Types)
	}
	if len(criteria.ExcludeIDs) > 0 {
		query = query.Where("id NOT IN ?", criteria.ExcludeIDs)
	}
	for _, tag := range criteria.Tags {
		query = query.Where("JSON_CONTAINS(tags, JSON_QUOTE(?))", tag)
	}
	if criteria.Limit > 0 {
		query = query.Limit(criteria.Limit)
	}

	var items []model.ContentItem
	err := query.Order("views DESC, id ASC").Find(&items).Error
	return items, err
}

func (r *ContentRepository) FindByIDs(ctx context.Context, ids []string) ([]model.ContentItem, error) {
	if len(ids) == 0 {
		return []model.ContentItem{}, nil
	}
	var items []model.ContentItem
	err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error
	return items, err
}

func (r *ContentRepository) FindByID(id string) (*model.ContentItem, error) {
	var item model.ContentItem
	err := r.DB.Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrContentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *ContentRepository) List(ageGroup model.AgeGroup, contentType model.ContentType, page, limit int) ([]model.ContentItem, int64, error) {
	var items []model.ContentItem
	var total int64
	query := r.DB.Model(&model.ContentItem{}).Where("published = ?", true)
	if ageGroup != "" {
		query = query.Where("age_group IN ?", []model.AgeGroup{ageGroup, model.AgeGroupAll})
	}
	if contentType != "" {
		query = query.Where("type = ?", contentType)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("views DESC, created_at DESC").Offset(offset).Limit(limit).Find(&items).Error
	return items, total, err
}

func (r *ContentRepository) Create(item *model.ContentItem) error {
	return r.DB.Create(item).Error
}

// IncrementViews 浏览量自增
func (r *ContentRepository) IncrementViews(id string) error {
	return r.DB.Model(&model.ContentItem{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

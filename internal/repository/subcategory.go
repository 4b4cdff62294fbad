package repository

import (
	"context"

	"audio-marketplace/internal/model"

	"gorm.io/gorm"
)

type SubCategoryRepository interface {
	Create(ctx context.Context, subCategory *model.SubCategory) error
	FindAll(ctx context.Context) ([]*model.SubCategory, error)
	FindByCategory(ctx context.Context, categoryID uint) ([]*model.SubCategory, error)
	FindByID(ctx context.Context, id uint) (*model.SubCategory, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (*model.SubCategory, error)
	Delete(ctx context.Context, id uint) error
}

type subCategoryRepoImpl struct {
	db *gorm.DB
}

func NewSubCategoryRepository(db *gorm.DB) SubCategoryRepository {
	return &subCategoryRepoImpl{
		db: db,
	}
}

func (r *subCategoryRepoImpl) Create(ctx context.Context, subCategory *model.SubCategory) error {
	return r.db.WithContext(ctx).Create(subCategory).Error
}

func (r *subCategoryRepoImpl) FindAll(ctx context.Context) ([]*model.SubCategory, error) {
	var subCategories []*model.SubCategory
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&subCategories).Error

	if err != nil {
		return nil, err
	}

	return subCategories, nil
}

func (r *subCategoryRepoImpl) FindByCategory(ctx context.Context, categoryID uint) ([]*model.SubCategory, error) {
	var subCategories []*model.SubCategory
	err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Find(&subCategories).Error

	if err != nil {
		return nil, err
	}

	return subCategories, nil
}

func (r *subCategoryRepoImpl) FindByID(ctx context.Context, id uint) (*model.SubCategory, error) {
	var subCategory model.SubCategory
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&subCategory).Error

	if err != nil {
		return nil, err
	}

	return &subCategory, nil
}

func (r *subCategoryRepoImpl) Update(ctx context.Context, id uint, updates map[string]interface{}) (*model.SubCategory, error) {
	result := r.db.WithContext(ctx).Model(&model.SubCategory{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return r.FindByID(ctx, id)
}

func (r *subCategoryRepoImpl) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.SubCategory{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

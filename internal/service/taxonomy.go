package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"audio-marketplace/internal/apperr"
	"audio-marketplace/internal/model"
	"audio-marketplace/internal/repository"
)

// TaxonomyService is the category/subcategory CRUD behind the admin console.
type TaxonomyService interface {
	ListCategories(ctx context.Context) ([]*model.Category, error)
	CreateCategory(ctx context.Context, name string) (*model.Category, error)
	UpdateCategory(ctx context.Context, id uint, name string) (*model.Category, error)
	DeleteCategory(ctx context.Context, id uint) error

	ListSubCategories(ctx context.Context) ([]*model.SubCategory, error)
	ListSubCategoriesByCategory(ctx context.Context, categoryID uint) ([]*model.SubCategory, error)
	CreateSubCategory(ctx context.Context, name string, categoryID uint) (*model.SubCategory, error)
	UpdateSubCategory(ctx context.Context, id uint, name string, categoryID uint) (*model.SubCategory, error)
	DeleteSubCategory(ctx context.Context, id uint) error
}

type taxonomyServiceImpl struct {
	categoryRepo    repository.CategoryRepository
	subCategoryRepo repository.SubCategoryRepository
}

func NewTaxonomyService(categoryRepo repository.CategoryRepository, subCategoryRepo repository.SubCategoryRepository) TaxonomyService {
	return &taxonomyServiceImpl{
		categoryRepo:    categoryRepo,
		subCategoryRepo: subCategoryRepo,
	}
}

func (s *taxonomyServiceImpl) ListCategories(ctx context.Context) ([]*model.Category, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, apperr.Database("failed to list categories", err)
	}
	return categories, nil
}

func (s *taxonomyServiceImpl) CreateCategory(ctx context.Context, name string) (*model.Category, error) {
	if name == "" {
		return nil, apperr.Validation("Category name is required")
	}

	category := &model.Category{CategoryName: name}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Validation("Category already exists")
		}
		return nil, apperr.Database("failed to create category", err)
	}
	return category, nil
}

func (s *taxonomyServiceImpl) UpdateCategory(ctx context.Context, id uint, name string) (*model.Category, error) {
	if name == "" {
		return nil, apperr.Validation("Category name is required")
	}

	category, err := s.categoryRepo.UpdateName(ctx, id, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Category not found")
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Validation("Category already exists")
		}
		return nil, apperr.Database("failed to update category", err)
	}
	return category, nil
}

func (s *taxonomyServiceImpl) DeleteCategory(ctx context.Context, id uint) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Category not found")
		}
		return apperr.Database("failed to delete category", err)
	}
	return nil
}

func (s *taxonomyServiceImpl) ListSubCategories(ctx context.Context) ([]*model.SubCategory, error) {
	subCategories, err := s.subCategoryRepo.FindAll(ctx)
	if err != nil {
		return nil, apperr.Database("failed to list subcategories", err)
	}
	return subCategories, nil
}

func (s *taxonomyServiceImpl) ListSubCategoriesByCategory(ctx context.Context, categoryID uint) ([]*model.SubCategory, error) {
	subCategories, err := s.subCategoryRepo.FindByCategory(ctx, categoryID)
	if err != nil {
		return nil, apperr.Database("failed to list subcategories", err)
	}
	return subCategories, nil
}

func (s *taxonomyServiceImpl) CreateSubCategory(ctx context.Context, name string, categoryID uint) (*model.SubCategory, error) {
	if name == "" {
		return nil, apperr.Validation("Subcategory name is required")
	}
	if categoryID == 0 {
		return nil, apperr.Validation("categoryId is required")
	}
	if _, err := s.categoryRepo.FindByID(ctx, categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Category not found")
		}
		return nil, apperr.Database("failed to load category", err)
	}

	subCategory := &model.SubCategory{Name: name, CategoryID: categoryID}
	if err := s.subCategoryRepo.Create(ctx, subCategory); err != nil {
		return nil, apperr.Database("failed to create subcategory", err)
	}
	return subCategory, nil
}

func (s *taxonomyServiceImpl) UpdateSubCategory(ctx context.Context, id uint, name string, categoryID uint) (*model.SubCategory, error) {
	updates := map[string]interface{}{}
	if name != "" {
		updates["name"] = name
	}
	if categoryID != 0 {
		if _, err := s.categoryRepo.FindByID(ctx, categoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFound("Category not found")
			}
			return nil, apperr.Database("failed to load category", err)
		}
		updates["category_id"] = categoryID
	}
	if len(updates) == 0 {
		return nil, apperr.Validation("nothing to update")
	}

	subCategory, err := s.subCategoryRepo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Subcategory not found")
		}
		return nil, apperr.Database("failed to update subcategory", err)
	}
	return subCategory, nil
}

func (s *taxonomyServiceImpl) DeleteSubCategory(ctx context.Context, id uint) error {
	if err := s.subCategoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Subcategory not found")
		}
		return apperr.Database("failed to delete subcategory", err)
	}
	return nil
}

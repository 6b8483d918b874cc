package repository

import (
	"context"
	"errors"

	"outfitly/internal/cache"
	"outfitly/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TaxonomyRepository defines read access to the category/subcategory lookup
// tables. The API exposes no mutations; Ensure* exist for seeding.
type TaxonomyRepository interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id uint) (*models.Category, error)
	ListSubCategories(ctx context.Context, categoryID uint) ([]models.SubCategory, error)
	GetSubCategory(ctx context.Context, id uint) (*models.SubCategory, error)
	EnsureCategory(ctx context.Context, name string) (*models.Category, error)
	EnsureSubCategory(ctx context.Context, categoryID uint, name string) (*models.SubCategory, error)
}

type taxonomyRepository struct {
	db *gorm.DB
}

// NewTaxonomyRepository returns a new TaxonomyRepository implementation.
func NewTaxonomyRepository(db *gorm.DB) TaxonomyRepository {
	return &taxonomyRepository{db: db}
}

func (r *taxonomyRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := cache.Aside(ctx, cache.TaxonomyKey, &categories, cache.TaxonomyTTL, func() error {
		if err := r.db.WithContext(ctx).
			Preload("SubCategories").
			Order("name ASC").
			Find(&categories).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *taxonomyRepository) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Category", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &category, nil
}

func (r *taxonomyRepository) ListSubCategories(ctx context.Context, categoryID uint) ([]models.SubCategory, error) {
	var subs []models.SubCategory
	if err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("name ASC").
		Find(&subs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return subs, nil
}

func (r *taxonomyRepository) GetSubCategory(ctx context.Context, id uint) (*models.SubCategory, error) {
	var sub models.SubCategory
	if err := r.db.WithContext(ctx).First(&sub, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("SubCategory", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &sub, nil
}

func (r *taxonomyRepository) EnsureCategory(ctx context.Context, name string) (*models.Category, error) {
	category := models.Category{Name: name}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&category).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if category.ID == 0 {
		if err := r.db.WithContext(ctx).Where("name = ?", name).First(&category).Error; err != nil {
			return nil, models.NewInternalError(err)
		}
	}
	cache.InvalidateTaxonomy(ctx)
	return &category, nil
}

func (r *taxonomyRepository) EnsureSubCategory(ctx context.Context, categoryID uint, name string) (*models.SubCategory, error) {
	sub := models.SubCategory{CategoryID: categoryID, Name: name}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&sub).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if sub.ID == 0 {
		if err := r.db.WithContext(ctx).
			Where("category_id = ? AND name = ?", categoryID, name).
			First(&sub).Error; err != nil {
			return nil, models.NewInternalError(err)
		}
	}
	cache.InvalidateTaxonomy(ctx)
	return &sub, nil
}

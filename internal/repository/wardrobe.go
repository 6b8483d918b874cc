package repository

import (
	"context"
	"errors"

	"outfitly/internal/models"

	"gorm.io/gorm"
)

// WardrobeFilter narrows a wardrobe listing. When SubCategoryID is set the
// CategoryID filter is ignored; the two are never combined.
type WardrobeFilter struct {
	OwnerID       uint
	CategoryID    *uint
	SubCategoryID *uint
}

// WardrobeRepository defines persistence operations for wardrobe items.
type WardrobeRepository interface {
	Create(ctx context.Context, item *models.WardrobeItem) error
	GetOwned(ctx context.Context, id, ownerID uint) (*models.WardrobeItem, error)
	List(ctx context.Context, filter WardrobeFilter) ([]models.WardrobeItem, error)
	Update(ctx context.Context, item *models.WardrobeItem) error
	// DeleteOwned removes the item only when it belongs to ownerID. A missing
	// row and a row owned by someone else both surface as not-found.
	DeleteOwned(ctx context.Context, id, ownerID uint) error
	CountOwnedByIDs(ctx context.Context, ownerID uint, ids []uint) (int64, error)
}

type wardrobeRepository struct {
	db *gorm.DB
}

// NewWardrobeRepository returns a new WardrobeRepository implementation.
func NewWardrobeRepository(db *gorm.DB) WardrobeRepository {
	return &wardrobeRepository{db: db}
}

func (r *wardrobeRepository) Create(ctx context.Context, item *models.WardrobeItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *wardrobeRepository) GetOwned(ctx context.Context, id, ownerID uint) (*models.WardrobeItem, error) {
	var item models.WardrobeItem
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("SubCategory").
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Wardrobe item", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &item, nil
}

func (r *wardrobeRepository) List(ctx context.Context, filter WardrobeFilter) ([]models.WardrobeItem, error) {
	query := r.db.WithContext(ctx).
		Preload("Category").
		Preload("SubCategory").
		Where("user_id = ?", filter.OwnerID)

	// Subcategory takes precedence over category; they are never combined.
	switch {
	case filter.SubCategoryID != nil:
		query = query.Where("sub_category_id = ?", *filter.SubCategoryID)
	case filter.CategoryID != nil:
		query = query.Where("category_id = ?", *filter.CategoryID)
	}

	var items []models.WardrobeItem
	if err := query.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return items, nil
}

func (r *wardrobeRepository) Update(ctx context.Context, item *models.WardrobeItem) error {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *wardrobeRepository) DeleteOwned(ctx context.Context, id, ownerID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.WardrobeItem{}).
			Where("id = ? AND user_id = ?", id, ownerID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		// Membership in outfits does not block deletion; the outfit simply
		// loses the garment.
		if err := tx.Exec("DELETE FROM outfit_items WHERE wardrobe_item_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.WardrobeItem{}, id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Wardrobe item", id)
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *wardrobeRepository) CountOwnedByIDs(ctx context.Context, ownerID uint, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.WardrobeItem{}).
		Where("user_id = ? AND id IN ?", ownerID, ids).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

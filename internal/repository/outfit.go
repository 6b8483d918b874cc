package repository

import (
	"context"
	"errors"

	"outfitly/internal/models"

	"gorm.io/gorm"
)

// OutfitRepository defines persistence operations for outfits.
type OutfitRepository interface {
	// Create persists the outfit and its item selection in one transaction.
	Create(ctx context.Context, outfit *models.Outfit, itemIDs []uint) error
	// GetByID is not ownership-scoped; any authenticated caller may fetch any outfit.
	GetByID(ctx context.Context, id uint) (*models.Outfit, error)
	GetOwned(ctx context.Context, id, ownerID uint) (*models.Outfit, error)
	ListByUser(ctx context.Context, ownerID uint) ([]models.Outfit, error)
	DeleteOwned(ctx context.Context, id, ownerID uint) error
}

type outfitRepository struct {
	db *gorm.DB
}

// NewOutfitRepository returns a new OutfitRepository implementation.
func NewOutfitRepository(db *gorm.DB) OutfitRepository {
	return &outfitRepository{db: db}
}

func (r *outfitRepository) Create(ctx context.Context, outfit *models.Outfit, itemIDs []uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("SelectedItems").Create(outfit).Error; err != nil {
			return err
		}
		if len(itemIDs) == 0 {
			return nil
		}
		var items []models.WardrobeItem
		if err := tx.Where("id IN ?", itemIDs).Find(&items).Error; err != nil {
			return err
		}
		if err := tx.Model(outfit).Association("SelectedItems").Append(&items); err != nil {
			return err
		}
		outfit.SelectedItems = items
		return nil
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *outfitRepository) GetByID(ctx context.Context, id uint) (*models.Outfit, error) {
	var outfit models.Outfit
	if err := r.db.WithContext(ctx).
		Preload("SelectedItems").
		Preload("SelectedItems.Category").
		Preload("SelectedItems.SubCategory").
		First(&outfit, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Outfit", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &outfit, nil
}

func (r *outfitRepository) GetOwned(ctx context.Context, id, ownerID uint) (*models.Outfit, error) {
	var outfit models.Outfit
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&outfit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Outfit", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &outfit, nil
}

func (r *outfitRepository) ListByUser(ctx context.Context, ownerID uint) ([]models.Outfit, error) {
	var outfits []models.Outfit
	if err := r.db.WithContext(ctx).
		Preload("SelectedItems").
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&outfits).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return outfits, nil
}

func (r *outfitRepository) DeleteOwned(ctx context.Context, id, ownerID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Outfit{}).
			Where("id = ? AND user_id = ?", id, ownerID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		// Join rows go first so the outfit row is unreferenced when deleted.
		if err := tx.Exec("DELETE FROM outfit_items WHERE outfit_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Outfit{}, id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Outfit", id)
		}
		return models.NewInternalError(err)
	}
	return nil
}

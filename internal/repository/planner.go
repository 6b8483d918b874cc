package repository

import (
	"context"

	"outfitly/internal/models"

	"gorm.io/gorm"
)

// PlannerRepository defines persistence operations for planned outfits.
type PlannerRepository interface {
	Create(ctx context.Context, plan *models.PlannedOutfit) error
	ListByUser(ctx context.Context, ownerID uint) ([]models.PlannedOutfit, error)
	DeleteOwned(ctx context.Context, id, ownerID uint) error
}

type plannerRepository struct {
	db *gorm.DB
}

// NewPlannerRepository returns a new PlannerRepository implementation.
func NewPlannerRepository(db *gorm.DB) PlannerRepository {
	return &plannerRepository{db: db}
}

func (r *plannerRepository) Create(ctx context.Context, plan *models.PlannedOutfit) error {
	if err := r.db.WithContext(ctx).Create(plan).Error; err != nil {
		return models.NewInternalError(err)
	}
	if err := r.db.WithContext(ctx).
		Preload("Outfit").
		Preload("Outfit.SelectedItems").
		First(plan, plan.ID).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *plannerRepository) ListByUser(ctx context.Context, ownerID uint) ([]models.PlannedOutfit, error) {
	var plans []models.PlannedOutfit
	if err := r.db.WithContext(ctx).
		Preload("Outfit").
		Preload("Outfit.SelectedItems").
		Where("user_id = ?", ownerID).
		Order("date ASC").
		Find(&plans).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return plans, nil
}

func (r *plannerRepository) DeleteOwned(ctx context.Context, id, ownerID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&models.PlannedOutfit{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Planned outfit", id)
	}
	return nil
}

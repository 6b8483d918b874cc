package service

import (
	"context"
	"strings"

	"outfitly/internal/models"
	"outfitly/internal/repository"
)

type OutfitService struct {
	outfitRepo   repository.OutfitRepository
	wardrobeRepo repository.WardrobeRepository
}

type CreateOutfitInput struct {
	UserID          uint
	Type            string
	ItemIDs         []uint
	IsHijabFriendly bool
	Description     string
	PhotoURL        string
	Season          string
	Tags            string
}

func NewOutfitService(
	outfitRepo repository.OutfitRepository,
	wardrobeRepo repository.WardrobeRepository,
) *OutfitService {
	return &OutfitService{
		outfitRepo:   outfitRepo,
		wardrobeRepo: wardrobeRepo,
	}
}

func (s *OutfitService) CreateOutfit(ctx context.Context, in CreateOutfitInput) (*models.Outfit, error) {
	outfitType := models.OutfitType(in.Type)
	if in.Type == "" {
		outfitType = models.OutfitTypeUserCreated
	}
	if !models.ValidOutfitType(outfitType) {
		return nil, models.NewValidationError("Invalid outfit type")
	}

	season := models.Season(in.Season)
	if in.Season == "" {
		season = models.SeasonAllSeason
	}
	if !models.ValidSeason(season) {
		return nil, models.NewValidationError("Invalid season")
	}

	if len(in.ItemIDs) == 0 {
		return nil, models.NewValidationError("At least one wardrobe item is required")
	}
	itemIDs := dedupeIDs(in.ItemIDs)

	// Every selected item must belong to the caller; selecting someone
	// else's garment is indistinguishable from selecting a missing one.
	owned, err := s.wardrobeRepo.CountOwnedByIDs(ctx, in.UserID, itemIDs)
	if err != nil {
		return nil, err
	}
	if owned != int64(len(itemIDs)) {
		return nil, models.NewValidationError("One or more selected items are not in your wardrobe")
	}

	outfit := &models.Outfit{
		UserID:          in.UserID,
		Type:            outfitType,
		IsHijabFriendly: in.IsHijabFriendly,
		Description:     strings.TrimSpace(in.Description),
		PhotoURL:        in.PhotoURL,
		Season:          season,
		Tags:            strings.TrimSpace(in.Tags),
	}
	if err := s.outfitRepo.Create(ctx, outfit, itemIDs); err != nil {
		return nil, err
	}
	return s.outfitRepo.GetByID(ctx, outfit.ID)
}

func (s *OutfitService) ListOutfits(ctx context.Context, userID uint) ([]models.Outfit, error) {
	return s.outfitRepo.ListByUser(ctx, userID)
}

func (s *OutfitService) GetOutfit(ctx context.Context, id uint) (*models.Outfit, error) {
	return s.outfitRepo.GetByID(ctx, id)
}

func (s *OutfitService) DeleteOutfit(ctx context.Context, id, userID uint) error {
	return s.outfitRepo.DeleteOwned(ctx, id, userID)
}

func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

package server

import (
	"outfitly/internal/models"
	"outfitly/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type wardrobeItemRequest struct {
	CategoryID    *uint   `json:"category_id"`
	SubCategoryID *uint   `json:"subcategory_id"`
	Color         *string `json:"color"`
	Size          *string `json:"size"`
	Material      *string `json:"material"`
	Season        *string `json:"season"`
	Tags          *string `json:"tags"`
	PhotoURL      *string `json:"photo_url"`
}

// UploadClothing handles POST /api/wardrobe/upload
func (s *Server) UploadClothing(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req wardrobeItemRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	item := &models.WardrobeItem{
		UserID: userID,
		Season: models.SeasonAllSeason,
	}
	if err := s.applyWardrobeFields(c, item, &req); err != nil {
		return nil
	}

	if err := s.wardrobeRepo.Create(c.Context(), item); err != nil {
		return respondError(c, err)
	}
	created, err := s.wardrobeRepo.GetOwned(c.Context(), item.ID, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// GetWardrobe handles GET /api/wardrobe. The subcategory filter wins over
// the category filter; user_id defaults to the caller.
func (s *Server) GetWardrobe(c *fiber.Ctx) error {
	userID := currentUserID(c)

	filter := repository.WardrobeFilter{OwnerID: userID}
	if v := c.QueryInt("user_id", 0); v > 0 {
		filter.OwnerID = uint(v)
	}
	if v := c.QueryInt("category_id", 0); v > 0 {
		id := uint(v)
		filter.CategoryID = &id
	}
	if v := c.QueryInt("subcategory_id", 0); v > 0 {
		id := uint(v)
		filter.SubCategoryID = &id
	}

	items, err := s.wardrobeRepo.List(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

// UpdateClothing handles PUT /api/wardrobe/:id. Partial update, owner-scoped.
func (s *Server) UpdateClothing(c *fiber.Ctx) error {
	itemID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := currentUserID(c)

	var req wardrobeItemRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	item, err := s.wardrobeRepo.GetOwned(c.Context(), itemID, userID)
	if err != nil {
		return respondError(c, err)
	}
	if err := s.applyWardrobeFields(c, item, &req); err != nil {
		return nil
	}

	if err := s.wardrobeRepo.Update(c.Context(), item); err != nil {
		return respondError(c, err)
	}
	updated, err := s.wardrobeRepo.GetOwned(c.Context(), item.ID, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(updated)
}

// DeleteClothing handles DELETE /api/wardrobe/:id
func (s *Server) DeleteClothing(c *fiber.Ctx) error {
	itemID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := currentUserID(c)

	if err := s.wardrobeRepo.DeleteOwned(c.Context(), itemID, userID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Clothing item deleted"})
}

// applyWardrobeFields copies supplied request fields onto the item,
// validating taxonomy references and the season enum. On validation failure
// the response is already written and a non-nil error is returned.
func (s *Server) applyWardrobeFields(c *fiber.Ctx, item *models.WardrobeItem, req *wardrobeItemRequest) error {
	if req.CategoryID != nil {
		if _, err := s.taxonomyRepo.GetCategory(c.Context(), *req.CategoryID); err != nil {
			_ = respondError(c, err)
			return errResponseWritten
		}
		item.CategoryID = req.CategoryID
	}
	if req.SubCategoryID != nil {
		sub, err := s.taxonomyRepo.GetSubCategory(c.Context(), *req.SubCategoryID)
		if err != nil {
			_ = respondError(c, err)
			return errResponseWritten
		}
		if item.CategoryID != nil && sub.CategoryID != *item.CategoryID {
			_ = models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Subcategory does not belong to the given category"))
			return errResponseWritten
		}
		item.SubCategoryID = req.SubCategoryID
	}
	if req.Season != nil {
		season := models.Season(*req.Season)
		if !models.ValidSeason(season) {
			_ = models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid season"))
			return errResponseWritten
		}
		item.Season = season
	}
	if req.Color != nil {
		item.Color = *req.Color
	}
	if req.Size != nil {
		item.Size = *req.Size
	}
	if req.Material != nil {
		item.Material = *req.Material
	}
	if req.Tags != nil {
		item.Tags = *req.Tags
	}
	if req.PhotoURL != nil {
		item.PhotoURL = *req.PhotoURL
	}
	return nil
}

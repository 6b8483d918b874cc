package server

import (
	"outfitly/internal/models"
	"outfitly/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateOutfit handles POST /api/outfits/create
func (s *Server) CreateOutfit(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req struct {
		Type            string `json:"type"`
		SelectedItems   []uint `json:"selected_items"`
		IsHijabFriendly bool   `json:"is_hijab_friendly"`
		Description     string `json:"description"`
		PhotoURL        string `json:"photo_url"`
		Season          string `json:"season"`
		Tags            string `json:"tags"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	outfit, err := s.outfitService.CreateOutfit(c.Context(), service.CreateOutfitInput{
		UserID:          userID,
		Type:            req.Type,
		ItemIDs:         req.SelectedItems,
		IsHijabFriendly: req.IsHijabFriendly,
		Description:     req.Description,
		PhotoURL:        req.PhotoURL,
		Season:          req.Season,
		Tags:            req.Tags,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(outfit)
}

// GetOutfits handles GET /api/outfits
func (s *Server) GetOutfits(c *fiber.Ctx) error {
	userID := currentUserID(c)

	outfits, err := s.outfitService.ListOutfits(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(outfits)
}

// GetOutfit handles GET /api/outfits/:id. Any authenticated user may fetch
// any outfit; only deletion is owner-scoped.
func (s *Server) GetOutfit(c *fiber.Ctx) error {
	outfitID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	outfit, err := s.outfitService.GetOutfit(c.Context(), outfitID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(outfit)
}

// DeleteOutfit handles DELETE /api/outfits/:id
func (s *Server) DeleteOutfit(c *fiber.Ctx) error {
	outfitID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := currentUserID(c)

	if err := s.outfitService.DeleteOutfit(c.Context(), outfitID, userID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Outfit deleted"})
}

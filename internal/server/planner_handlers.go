package server

import (
	"time"

	"outfitly/internal/models"

	"github.com/gofiber/fiber/v2"
)

// PlanOutfit handles POST /api/planner/plan
func (s *Server) PlanOutfit(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req struct {
		OutfitID uint   `json:"outfit_id"`
		Date     string `json:"date"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.OutfitID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("outfit_id is required"))
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("date must be in YYYY-MM-DD format"))
	}

	// Only the caller's own outfits can be scheduled.
	if _, err := s.outfitRepo.GetOwned(c.Context(), req.OutfitID, userID); err != nil {
		return respondError(c, err)
	}

	plan := &models.PlannedOutfit{
		UserID:   userID,
		OutfitID: req.OutfitID,
		Date:     date,
	}
	if err := s.plannerRepo.Create(c.Context(), plan); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(plan)
}

// GetPlannedOutfits handles GET /api/planner
func (s *Server) GetPlannedOutfits(c *fiber.Ctx) error {
	userID := currentUserID(c)

	plans, err := s.plannerRepo.ListByUser(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(plans)
}

// DeletePlannedOutfit handles DELETE /api/planner/:id/delete
func (s *Server) DeletePlannedOutfit(c *fiber.Ctx) error {
	planID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := currentUserID(c)

	if err := s.plannerRepo.DeleteOwned(c.Context(), planID, userID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Planned outfit removed"})
}

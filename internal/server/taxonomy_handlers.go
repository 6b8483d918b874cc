package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetCategories handles GET /api/categories, returning every category with
// its subcategories nested.
func (s *Server) GetCategories(c *fiber.Ctx) error {
	categories, err := s.taxonomyRepo.ListCategories(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(categories)
}

// GetSubCategories handles GET /api/categories/:id/subcategories
func (s *Server) GetSubCategories(c *fiber.Ctx) error {
	categoryID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	// 404 for an unknown category rather than an empty list.
	if _, err := s.taxonomyRepo.GetCategory(c.Context(), categoryID); err != nil {
		return respondError(c, err)
	}

	subs, err := s.taxonomyRepo.ListSubCategories(c.Context(), categoryID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(subs)
}

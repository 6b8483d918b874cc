package server

import (
	"outfitly/internal/models"
	"outfitly/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/feed/posts/create
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req struct {
		OutfitID uint   `json:"outfit_id"`
		Caption  string `json:"caption"`
		ImageURL string `json:"image_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.feedService.CreatePost(c.Context(), service.CreatePostInput{
		UserID:   userID,
		OutfitID: req.OutfitID,
		Caption:  req.Caption,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPosts handles GET /api/feed/posts, the global feed newest first.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	userID := currentUserID(c)
	p := parsePagination(c, 50)

	posts, err := s.feedService.ListPosts(c.Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

// ToggleLike handles POST /api/feed/posts/:id/like
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := currentUserID(c)

	result, err := s.feedService.ToggleLike(c.Context(), userID, postID)
	if err != nil {
		return respondError(c, err)
	}

	message := "unliked"
	if result.Active {
		message = "liked"
	}
	return c.JSON(fiber.Map{
		"message": message,
		"post":    result.Post,
	})
}

// DeletePost handles DELETE /api/feed/posts/:id/delete
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := currentUserID(c)

	if err := s.feedService.DeletePost(c.Context(), postID, userID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post deleted"})
}

// ToggleFollow handles POST /api/feed/follow/:userId
func (s *Server) ToggleFollow(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	userID := currentUserID(c)

	following, err := s.feedService.ToggleFollow(c.Context(), userID, targetID)
	if err != nil {
		return respondError(c, err)
	}

	message := "unfollowed"
	if following {
		message = "followed"
	}
	return c.JSON(fiber.Map{
		"message":      message,
		"is_following": following,
	})
}

// GetFollowingFeed handles GET /api/feed/following
func (s *Server) GetFollowingFeed(c *fiber.Ctx) error {
	userID := currentUserID(c)
	p := parsePagination(c, 50)

	posts, err := s.feedService.FollowingFeed(c.Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

// GetCombinedFeed handles GET /api/feed/combined
func (s *Server) GetCombinedFeed(c *fiber.Ctx) error {
	userID := currentUserID(c)

	feed, err := s.feedService.GetCombinedFeed(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(feed)
}

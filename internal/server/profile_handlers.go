package server

import (
	"context"

	"outfitly/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/profile
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)

	profile, err := s.userRepo.GetProfileByUserID(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	if err := s.decorateProfile(c.Context(), profile, userID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// GetUserProfile handles GET /api/users/:id/profile
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	viewerID := currentUserID(c)

	profile, err := s.userRepo.GetProfileByUserID(c.Context(), targetID)
	if err != nil {
		return respondError(c, err)
	}
	if err := s.decorateProfile(c.Context(), profile, viewerID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// UpdateMyProfile handles PUT /api/profile. Only supplied fields overwrite
// existing values.
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req struct {
		Gender            *string `json:"gender"`
		ModestyPreference *string `json:"modesty_preference"`
		Bio               *string `json:"bio"`
		Location          *string `json:"location"`
		AvatarURL         *string `json:"avatar_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.userRepo.GetProfileByUserID(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	if req.Gender != nil {
		g := models.Gender(*req.Gender)
		if !models.ValidGender(g) {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid gender"))
		}
		profile.Gender = g
	}
	if req.ModestyPreference != nil {
		m := models.ModestyPreference(*req.ModestyPreference)
		if !models.ValidModestyPreference(m) {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid modesty preference"))
		}
		profile.ModestyPreference = m
	}
	if req.Bio != nil {
		if len(*req.Bio) > 500 {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Bio too long (max 500 characters)"))
		}
		profile.Bio = *req.Bio
	}
	if req.Location != nil {
		profile.Location = *req.Location
	}
	if req.AvatarURL != nil {
		profile.AvatarURL = *req.AvatarURL
	}

	if err := s.userRepo.UpdateProfile(c.Context(), profile); err != nil {
		return respondError(c, err)
	}
	if err := s.decorateProfile(c.Context(), profile, userID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// decorateProfile fills the computed follower counts and, when the viewer is
// someone else, whether the viewer follows the profile's owner.
func (s *Server) decorateProfile(ctx context.Context, profile *models.Profile, viewerID uint) error {
	followers, err := s.feedRepo.CountFollowers(ctx, profile.UserID)
	if err != nil {
		return err
	}
	following, err := s.feedRepo.CountFollowing(ctx, profile.UserID)
	if err != nil {
		return err
	}
	profile.FollowersCount = followers
	profile.FollowingCount = following

	if viewerID != 0 && viewerID != profile.UserID {
		isFollowing, err := s.feedRepo.IsFollowing(ctx, viewerID, profile.UserID)
		if err != nil {
			return err
		}
		profile.IsFollowing = isFollowing
	}
	return nil
}

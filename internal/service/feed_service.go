package service

import (
	"context"
	"strings"

	"outfitly/internal/models"
	"outfitly/internal/repository"
)

type FeedService struct {
	feedRepo   repository.FeedRepository
	outfitRepo repository.OutfitRepository
	userRepo   repository.UserRepository
}

type CreatePostInput struct {
	UserID   uint
	OutfitID uint
	Caption  string
	ImageURL string
}

// CombinedFeed is the home feed payload: everything from the caller and the
// accounts they follow, plus a capped discover section for everyone else.
type CombinedFeed struct {
	Following    []models.Post `json:"following"`
	Discover     []models.Post `json:"discover"`
	HasFollowing bool          `json:"has_following"`
}

// ToggleResult reports the post-toggle state of a like or follow edge.
type ToggleResult struct {
	Active bool
	Post   *models.Post
}

func NewFeedService(
	feedRepo repository.FeedRepository,
	outfitRepo repository.OutfitRepository,
	userRepo repository.UserRepository,
) *FeedService {
	return &FeedService{
		feedRepo:   feedRepo,
		outfitRepo: outfitRepo,
		userRepo:   userRepo,
	}
}

func (s *FeedService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.OutfitID == 0 {
		return nil, models.NewValidationError("outfit_id is required")
	}

	outfit, err := s.outfitRepo.GetOwned(ctx, in.OutfitID, in.UserID)
	if err != nil {
		return nil, err
	}

	// Snapshot the outfit image at creation; later outfit edits must not
	// change already-published posts.
	imageURL := in.ImageURL
	if imageURL == "" {
		imageURL = outfit.PhotoURL
	}

	post := &models.Post{
		UserID:   in.UserID,
		OutfitID: outfit.ID,
		Caption:  strings.TrimSpace(in.Caption),
		ImageURL: imageURL,
	}
	if err := s.feedRepo.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return s.GetPost(ctx, post.ID, in.UserID)
}

func (s *FeedService) GetPost(ctx context.Context, id, viewerID uint) (*models.Post, error) {
	post, err := s.feedRepo.GetPostByID(ctx, id, viewerID)
	if err != nil {
		return nil, err
	}
	post.IsOwn = post.UserID == viewerID
	return post, nil
}

func (s *FeedService) ListPosts(ctx context.Context, viewerID uint, limit, offset int) ([]models.Post, error) {
	posts, err := s.feedRepo.ListAll(ctx, viewerID, limit, offset)
	if err != nil {
		return nil, err
	}
	annotateOwn(posts, viewerID)
	return posts, nil
}

func (s *FeedService) FollowingFeed(ctx context.Context, viewerID uint, limit, offset int) ([]models.Post, error) {
	posts, err := s.feedRepo.ListFollowing(ctx, viewerID, limit, offset)
	if err != nil {
		return nil, err
	}
	annotateOwn(posts, viewerID)
	return posts, nil
}

func (s *FeedService) GetCombinedFeed(ctx context.Context, viewerID uint) (*CombinedFeed, error) {
	following, err := s.feedRepo.ListHome(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	discover, err := s.feedRepo.ListDiscover(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	hasFollowing, err := s.feedRepo.HasFollowing(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	annotateOwn(following, viewerID)
	annotateOwn(discover, viewerID)
	return &CombinedFeed{
		Following:    following,
		Discover:     discover,
		HasFollowing: hasFollowing,
	}, nil
}

func (s *FeedService) ToggleLike(ctx context.Context, viewerID, postID uint) (*ToggleResult, error) {
	liked, err := s.feedRepo.ToggleLike(ctx, viewerID, postID)
	if err != nil {
		return nil, err
	}
	post, err := s.GetPost(ctx, postID, viewerID)
	if err != nil {
		return nil, err
	}
	return &ToggleResult{Active: liked, Post: post}, nil
}

func (s *FeedService) ToggleFollow(ctx context.Context, viewerID, targetID uint) (bool, error) {
	if viewerID == targetID {
		return false, models.NewValidationError("You cannot follow yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return false, err
	}
	return s.feedRepo.ToggleFollow(ctx, viewerID, targetID)
}

func (s *FeedService) DeletePost(ctx context.Context, id, userID uint) error {
	return s.feedRepo.DeletePostOwned(ctx, id, userID)
}

func annotateOwn(posts []models.Post, viewerID uint) {
	for i := range posts {
		posts[i].IsOwn = posts[i].UserID == viewerID
	}
}

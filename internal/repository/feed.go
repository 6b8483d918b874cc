package repository

import (
	"context"
	"errors"

	"outfitly/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FeedRepository defines persistence operations for posts, likes and follows.
type FeedRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id, viewerID uint) (*models.Post, error)
	ListAll(ctx context.Context, viewerID uint, limit, offset int) ([]models.Post, error)
	ListFollowing(ctx context.Context, viewerID uint, limit, offset int) ([]models.Post, error)
	// ListHome returns posts by the viewer or anyone they follow, unbounded.
	ListHome(ctx context.Context, viewerID uint) ([]models.Post, error)
	ListDiscover(ctx context.Context, viewerID uint) ([]models.Post, error)
	ListByAuthor(ctx context.Context, authorID, viewerID uint) ([]models.Post, error)
	DeletePostOwned(ctx context.Context, id, ownerID uint) error

	// ToggleLike flips the viewer's like on a post and reports the new state.
	ToggleLike(ctx context.Context, viewerID, postID uint) (liked bool, err error)
	// ToggleFollow flips the follower->target edge and reports the new state.
	ToggleFollow(ctx context.Context, followerID, targetID uint) (following bool, err error)

	HasFollowing(ctx context.Context, viewerID uint) (bool, error)
	IsFollowing(ctx context.Context, followerID, targetID uint) (bool, error)
	CountFollowers(ctx context.Context, userID uint) (int64, error)
	CountFollowing(ctx context.Context, userID uint) (int64, error)
}

type feedRepository struct {
	db *gorm.DB
}

// NewFeedRepository returns a new FeedRepository implementation.
func NewFeedRepository(db *gorm.DB) FeedRepository {
	return &feedRepository{db: db}
}

func (r *feedRepository) CreatePost(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// postDetails annotates each row with its like count and whether the viewer
// has liked it, in a single query instead of one count per post.
func (r *feedRepository) postDetails(ctx context.Context, viewerID uint) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Post{}).
		Select(`posts.*,
			(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) AS likes_count,
			EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) AS liked`, viewerID).
		Preload("User").
		Preload("Outfit").
		Preload("Outfit.SelectedItems")
}

func (r *feedRepository) GetPostByID(ctx context.Context, id, viewerID uint) (*models.Post, error) {
	var post models.Post
	if err := r.postDetails(ctx, viewerID).First(&post, "posts.id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *feedRepository) ListAll(ctx context.Context, viewerID uint, limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	if err := r.postDetails(ctx, viewerID).
		Order("posts.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *feedRepository) ListFollowing(ctx context.Context, viewerID uint, limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	if err := r.postDetails(ctx, viewerID).
		Where("posts.user_id IN (SELECT following_id FROM follows WHERE follower_id = ?)", viewerID).
		Order("posts.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *feedRepository) ListHome(ctx context.Context, viewerID uint) ([]models.Post, error) {
	var posts []models.Post
	if err := r.postDetails(ctx, viewerID).
		Where("posts.user_id = ? OR posts.user_id IN (SELECT following_id FROM follows WHERE follower_id = ?)", viewerID, viewerID).
		Order("posts.created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *feedRepository) ListDiscover(ctx context.Context, viewerID uint) ([]models.Post, error) {
	var posts []models.Post
	if err := r.postDetails(ctx, viewerID).
		Where("posts.user_id != ?", viewerID).
		Where("posts.user_id NOT IN (SELECT following_id FROM follows WHERE follower_id = ?)", viewerID).
		Order("posts.created_at DESC").
		Limit(20).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *feedRepository) ListByAuthor(ctx context.Context, authorID, viewerID uint) ([]models.Post, error) {
	var posts []models.Post
	if err := r.postDetails(ctx, viewerID).
		Where("posts.user_id = ?", authorID).
		Order("posts.created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *feedRepository) DeletePostOwned(ctx context.Context, id, ownerID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&models.Post{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Post", id)
	}
	return nil
}

// ToggleLike inserts with ON CONFLICT DO NOTHING; an ignored insert means the
// like already existed, so the toggle removes it instead. This keeps the
// operation race-safe without taking row locks.
func (r *feedRepository) ToggleLike(ctx context.Context, viewerID, postID uint) (bool, error) {
	var exists bool
	if err := r.db.WithContext(ctx).Model(&models.Post{}).
		Select("COUNT(*) > 0").
		Where("id = ?", postID).
		Find(&exists).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	if !exists {
		return false, models.NewNotFoundError("Post", postID)
	}

	like := models.Like{UserID: viewerID, PostID: postID}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&like)
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	if result.RowsAffected > 0 {
		return true, nil
	}
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", viewerID, postID).
		Delete(&models.Like{}).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return false, nil
}

func (r *feedRepository) ToggleFollow(ctx context.Context, followerID, targetID uint) (bool, error) {
	edge := models.Follow{FollowerID: followerID, FollowingID: targetID}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&edge)
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	if result.RowsAffected > 0 {
		return true, nil
	}
	if err := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, targetID).
		Delete(&models.Follow{}).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return false, nil
}

func (r *feedRepository) HasFollowing(ctx context.Context, viewerID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ?", viewerID).
		Limit(1).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *feedRepository) IsFollowing(ctx context.Context, followerID, targetID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, targetID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *feedRepository) CountFollowers(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("following_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *feedRepository) CountFollowing(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

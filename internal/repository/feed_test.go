package repository

import (
	"context"
	"testing"

	"outfitly/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleLikeIdempotence(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewFeedRepository(db)
	ctx := context.Background()

	author := mustCreateUser(t, db, "author")
	liker := mustCreateUser(t, db, "liker")

	outfit := models.Outfit{UserID: author.ID, Type: models.OutfitTypeUserCreated, Season: models.SeasonAllSeason}
	require.NoError(t, db.Create(&outfit).Error)
	post := models.Post{UserID: author.ID, OutfitID: outfit.ID}
	require.NoError(t, db.Create(&post).Error)

	liked, err := repo.ToggleLike(ctx, liker.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = repo.ToggleLike(ctx, liker.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	// An odd number of toggles leaves the post liked, with exactly one row.
	liked, err = repo.ToggleLike(ctx, liker.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	var count int64
	require.NoError(t, db.Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", liker.ID, post.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	t.Run("Missing post", func(t *testing.T) {
		_, err := repo.ToggleLike(ctx, liker.ID, 9999)
		require.Error(t, err)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})
}

func TestToggleFollowIdempotence(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewFeedRepository(db)
	ctx := context.Background()

	a := mustCreateUser(t, db, "edgea")
	b := mustCreateUser(t, db, "edgeb")

	following, err := repo.ToggleFollow(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, following)

	has, err := repo.HasFollowing(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, has)

	following, err = repo.ToggleFollow(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, following)

	has, err = repo.HasFollowing(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, has)

	// The edge is directed; B following A is a distinct edge.
	_, err = repo.ToggleFollow(ctx, b.ID, a.ID)
	require.NoError(t, err)
	isFollowing, err := repo.IsFollowing(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, isFollowing)
	isFollowing, err = repo.IsFollowing(ctx, b.ID, a.ID)
	require.NoError(t, err)
	assert.True(t, isFollowing)
}

func TestFeedQueries(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewFeedRepository(db)
	ctx := context.Background()

	viewer := mustCreateUser(t, db, "qviewer")
	followed := mustCreateUser(t, db, "qfollowed")
	stranger := mustCreateUser(t, db, "qstranger")
	require.NoError(t, db.Create(&models.Follow{FollowerID: viewer.ID, FollowingID: followed.ID}).Error)

	mkPost := func(userID uint) models.Post {
		outfit := models.Outfit{UserID: userID, Type: models.OutfitTypeUserCreated, Season: models.SeasonAllSeason}
		require.NoError(t, db.Create(&outfit).Error)
		post := models.Post{UserID: userID, OutfitID: outfit.ID}
		require.NoError(t, db.Create(&post).Error)
		return post
	}

	ownPost := mkPost(viewer.ID)
	followedPost := mkPost(followed.ID)
	for i := 0; i < 25; i++ {
		mkPost(stranger.ID)
	}

	_, err := repo.ToggleLike(ctx, viewer.ID, followedPost.ID)
	require.NoError(t, err)

	t.Run("GetPostByID annotates for the viewer", func(t *testing.T) {
		post, err := repo.GetPostByID(ctx, followedPost.ID, viewer.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, post.LikesCount)
		assert.True(t, post.Liked)

		asStranger, err := repo.GetPostByID(ctx, followedPost.ID, stranger.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, asStranger.LikesCount)
		assert.False(t, asStranger.Liked)
	})

	t.Run("ListFollowing only followed authors", func(t *testing.T) {
		posts, err := repo.ListFollowing(ctx, viewer.ID, 50, 0)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, followedPost.ID, posts[0].ID)
	})

	t.Run("ListHome includes own posts", func(t *testing.T) {
		posts, err := repo.ListHome(ctx, viewer.ID)
		require.NoError(t, err)
		ids := make([]uint, 0, len(posts))
		for _, p := range posts {
			ids = append(ids, p.ID)
		}
		assert.ElementsMatch(t, []uint{ownPost.ID, followedPost.ID}, ids)
	})

	t.Run("ListDiscover excludes self and followed, capped at 20", func(t *testing.T) {
		posts, err := repo.ListDiscover(ctx, viewer.ID)
		require.NoError(t, err)
		assert.Len(t, posts, 20)
		for _, p := range posts {
			assert.Equal(t, stranger.ID, p.UserID)
		}
	})
}

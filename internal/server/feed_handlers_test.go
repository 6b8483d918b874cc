package server

import (
	"fmt"
	"net/http"
	"testing"

	"outfitly/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePostSnapshot(t *testing.T) {
	t.Parallel()
	s, app, db := newTestServer(t)
	owner, token := createTestUser(t, s, db, "poster")
	other, _ := createTestUser(t, s, db, "nonposter")

	outfit := models.Outfit{
		UserID:   owner.ID,
		Type:     models.OutfitTypeUserCreated,
		Season:   models.SeasonAllSeason,
		PhotoURL: "/media/original.jpg",
	}
	require.NoError(t, db.Create(&outfit).Error)
	foreignOutfit := models.Outfit{UserID: other.ID, Type: models.OutfitTypeUserCreated, Season: models.SeasonAllSeason}
	require.NoError(t, db.Create(&foreignOutfit).Error)

	t.Run("Image snapshotted from outfit", func(t *testing.T) {
		var post models.Post
		resp := doJSON(t, app, http.MethodPost, "/api/feed/posts/create", token, map[string]any{
			"outfit_id": outfit.ID,
			"caption":   "first post",
		}, &post)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "/media/original.jpg", post.ImageURL)
		assert.True(t, post.IsOwn)

		// Later outfit image changes must not propagate to the post.
		require.NoError(t, db.Model(&models.Outfit{}).Where("id = ?", outfit.ID).
			Update("photo_url", "/media/changed.jpg").Error)

		var reloaded models.Post
		resp = doJSON(t, app, http.MethodGet, "/api/feed/posts", token, nil, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		require.NoError(t, db.First(&reloaded, post.ID).Error)
		assert.Equal(t, "/media/original.jpg", reloaded.ImageURL)
	})

	t.Run("Supplied image wins", func(t *testing.T) {
		var post models.Post
		resp := doJSON(t, app, http.MethodPost, "/api/feed/posts/create", token, map[string]any{
			"outfit_id": outfit.ID,
			"image_url": "/media/custom.jpg",
		}, &post)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "/media/custom.jpg", post.ImageURL)
	})

	t.Run("Foreign outfit rejected as missing", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/feed/posts/create", token, map[string]any{
			"outfit_id": foreignOutfit.ID,
		}, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Missing outfit id", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/feed/posts/create", token, map[string]any{
			"caption": "no outfit",
		}, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestToggleLike(t *testing.T) {
	t.Parallel()
	s, app, db := newTestServer(t)
	author, authorToken := createTestUser(t, s, db, "likeauthor")
	_, likerToken := createTestUser(t, s, db, "liker")

	outfit := models.Outfit{UserID: author.ID, Type: models.OutfitTypeUserCreated, Season: models.SeasonAllSeason}
	require.NoError(t, db.Create(&outfit).Error)
	post := models.Post{UserID: author.ID, OutfitID: outfit.ID}
	require.NoError(t, db.Create(&post).Error)

	likePath := fmt.Sprintf("/api/feed/posts/%d/like", post.ID)

	var result struct {
		Message string      `json:"message"`
		Post    models.Post `json:"post"`
	}

	resp := doJSON(t, app, http.MethodPost, likePath, likerToken, nil, &result)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "liked", result.Message)
	assert.Equal(t, 1, result.Post.LikesCount)
	assert.True(t, result.Post.Liked)

	// Second toggle returns to the unliked state.
	resp = doJSON(t, app, http.MethodPost, likePath, likerToken, nil, &result)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "unliked", result.Message)
	assert.Equal(t, 0, result.Post.LikesCount)
	assert.False(t, result.Post.Liked)

	var likeCount int64
	require.NoError(t, db.Model(&models.Like{}).Count(&likeCount).Error)
	assert.Equal(t, int64(0), likeCount)

	t.Run("Annotations are viewer-relative", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, likePath, likerToken, nil, &result)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "liked", result.Message)

		var posts []models.Post
		resp = doJSON(t, app, http.MethodGet, "/api/feed/posts", authorToken, nil, &posts)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		require.Len(t, posts, 1)
		assert.Equal(t, 1, posts[0].LikesCount)
		assert.False(t, posts[0].Liked)
		assert.True(t, posts[0].IsOwn)
	})

	t.Run("Unknown post", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/feed/posts/9999/like", likerToken, nil, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestToggleFollow(t *testing.T) {
	t.Parallel()
	s, app, db := newTestServer(t)
	follower, token := createTestUser(t, s, db, "follower")
	target, _ := createTestUser(t, s, db, "followee")

	followPath := fmt.Sprintf("/api/feed/follow/%d", target.ID)

	var result map[string]any
	resp := doJSON(t, app, http.MethodPost, followPath, token, nil, &result)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "followed", result["message"])

	resp = doJSON(t, app, http.MethodPost, followPath, token, nil, &result)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "unfollowed", result["message"])

	var edgeCount int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&edgeCount).Error)
	assert.Equal(t, int64(0), edgeCount)

	t.Run("Self-follow is a validation error", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost,
			fmt.Sprintf("/api/feed/follow/%d", follower.ID), token, nil, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Unknown target", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/feed/follow/9999", token, nil, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestFeeds(t *testing.T) {
	t.Parallel()
	s, app, db := newTestServer(t)
	viewer, token := createTestUser(t, s, db, "feedviewer")
	followed, _ := createTestUser(t, s, db, "followedauthor")
	stranger, _ := createTestUser(t, s, db, "strangerauthor")

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
	strangerPost := mkPost(stranger.ID)

	t.Run("Following feed excludes own and stranger posts", func(t *testing.T) {
		var posts []models.Post
		resp := doJSON(t, app, http.MethodGet, "/api/feed/following", token, nil, &posts)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		require.Len(t, posts, 1)
		assert.Equal(t, followedPost.ID, posts[0].ID)
	})

	t.Run("Combined feed splits following and discover", func(t *testing.T) {
		var feed struct {
			Following    []models.Post `json:"following"`
			Discover     []models.Post `json:"discover"`
			HasFollowing bool          `json:"has_following"`
		}
		resp := doJSON(t, app, http.MethodGet, "/api/feed/combined", token, nil, &feed)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.True(t, feed.HasFollowing)

		followingIDs := make([]uint, 0, len(feed.Following))
		for _, p := range feed.Following {
			followingIDs = append(followingIDs, p.ID)
		}
		assert.ElementsMatch(t, []uint{ownPost.ID, followedPost.ID}, followingIDs)

		require.Len(t, feed.Discover, 1)
		assert.Equal(t, strangerPost.ID, feed.Discover[0].ID)
	})

	t.Run("Discover is capped at 20", func(t *testing.T) {
		for i := 0; i < 25; i++ {
			mkPost(stranger.ID)
		}
		var feed struct {
			Discover []models.Post `json:"discover"`
		}
		resp := doJSON(t, app, http.MethodGet, "/api/feed/combined", token, nil, &feed)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, feed.Discover, 20)
	})
}

func TestDeletePost(t *testing.T) {
	t.Parallel()
	s, app, db := newTestServer(t)
	author, token := createTestUser(t, s, db, "postdeleter")
	_, otherToken := createTestUser(t, s, db, "postintruder")

	outfit := models.Outfit{UserID: author.ID, Type: models.OutfitTypeUserCreated, Season: models.SeasonAllSeason}
	require.NoError(t, db.Create(&outfit).Error)
	post := models.Post{UserID: author.ID, OutfitID: outfit.ID}
	require.NoError(t, db.Create(&post).Error)

	resp := doJSON(t, app, http.MethodDelete,
		fmt.Sprintf("/api/feed/posts/%d/delete", post.ID), otherToken, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete,
		fmt.Sprintf("/api/feed/posts/%d/delete", post.ID), token, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.Post{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

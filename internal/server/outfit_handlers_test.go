package server

import (
	"fmt"
	"net/http"
	"testing"

	"outfitly/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOutfit(t *testing.T) {
	t.Parallel()
	s, app, db := newTestServer(t)
	owner, token := createTestUser(t, s, db, "stylist")
	other, _ := createTestUser(t, s, db, "otherstylist")

	var ownItems []uint
	for i := 0; i < 3; i++ {
		item := models.WardrobeItem{UserID: owner.ID}
		require.NoError(t, db.Create(&item).Error)
		ownItems = append(ownItems, item.ID)
	}
	foreign := models.WardrobeItem{UserID: other.ID}
	require.NoError(t, db.Create(&foreign).Error)

	t.Run("Success", func(t *testing.T) {
		var outfit models.Outfit
		resp := doJSON(t, app, http.MethodPost, "/api/outfits/create", token, map[string]any{
			"selected_items":    ownItems,
			"description":       "friday look",
			"season":            "Autumn",
			"is_hijab_friendly": true,
		}, &outfit)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, models.OutfitTypeUserCreated, outfit.Type)
		assert.Equal(t, models.SeasonAutumn, outfit.Season)
		assert.True(t, outfit.IsHijabFriendly)
		assert.Len(t, outfit.SelectedItems, 3)
	})

	t.Run("Foreign item rejected", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/outfits/create", token, map[string]any{
			"selected_items": []uint{ownItems[0], foreign.ID},
		}, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Empty selection rejected", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/outfits/create", token, map[string]any{
			"selected_items": []uint{},
		}, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Invalid type rejected", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/outfits/create", token, map[string]any{
			"selected_items": ownItems,
			"type":           "Magic",
		}, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetOutfits(t *testing.T) {
	t.Parallel()
	s, app, db := newTestServer(t)
	owner, token := createTestUser(t, s, db, "collector")
	other, otherToken := createTestUser(t, s, db, "othercollector")

	ownOutfit := models.Outfit{UserID: owner.ID, Type: models.OutfitTypeUserCreated, Season: models.SeasonAllSeason}
	require.NoError(t, db.Create(&ownOutfit).Error)
	otherOutfit := models.Outfit{UserID: other.ID, Type: models.OutfitTypeUserCreated, Season: models.SeasonAllSeason}
	require.NoError(t, db.Create(&otherOutfit).Error)

	t.Run("List is caller-scoped", func(t *testing.T) {
		var outfits []models.Outfit
		resp := doJSON(t, app, http.MethodGet, "/api/outfits/", token, nil, &outfits)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		require.Len(t, outfits, 1)
		assert.Equal(t, ownOutfit.ID, outfits[0].ID)
	})

	t.Run("Get by id is not ownership-scoped", func(t *testing.T) {
		var outfit models.Outfit
		resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/outfits/%d", ownOutfit.ID), otherToken, nil, &outfit)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, ownOutfit.ID, outfit.ID)
	})

	t.Run("Delete is ownership-scoped", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/outfits/%d", ownOutfit.ID), otherToken, nil, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/outfits/%d", ownOutfit.ID), token, nil, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

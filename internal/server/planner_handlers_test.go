package server

import (
	"fmt"
	"net/http"
	"testing"

	"outfitly/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanOutfit(t *testing.T) {
	t.Parallel()
	s, app, db := newTestServer(t)
	owner, token := createTestUser(t, s, db, "planner")
	other, _ := createTestUser(t, s, db, "otherplanner")

	outfit := models.Outfit{UserID: owner.ID, Type: models.OutfitTypeUserCreated, Season: models.SeasonAllSeason}
	require.NoError(t, db.Create(&outfit).Error)
	foreignOutfit := models.Outfit{UserID: other.ID, Type: models.OutfitTypeUserCreated, Season: models.SeasonAllSeason}
	require.NoError(t, db.Create(&foreignOutfit).Error)

	t.Run("Success", func(t *testing.T) {
		var plan models.PlannedOutfit
		resp := doJSON(t, app, http.MethodPost, "/api/planner/plan", token, map[string]any{
			"outfit_id": outfit.ID,
			"date":      "2026-09-15",
		}, &plan)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, outfit.ID, plan.OutfitID)
		require.NotNil(t, plan.Outfit)
	})

	t.Run("Bad date format", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/planner/plan", token, map[string]any{
			"outfit_id": outfit.ID,
			"date":      "15/09/2026",
		}, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Foreign outfit rejected as missing", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/planner/plan", token, map[string]any{
			"outfit_id": foreignOutfit.ID,
			"date":      "2026-09-16",
		}, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestPlannerListAndDelete(t *testing.T) {
	t.Parallel()
	s, app, db := newTestServer(t)
	owner, token := createTestUser(t, s, db, "calendar")
	_, otherToken := createTestUser(t, s, db, "othercalendar")

	outfit := models.Outfit{UserID: owner.ID, Type: models.OutfitTypeUserCreated, Season: models.SeasonAllSeason}
	require.NoError(t, db.Create(&outfit).Error)

	var planIDs []uint
	for _, date := range []string{"2026-09-03", "2026-09-01", "2026-09-02"} {
		var plan models.PlannedOutfit
		resp := doJSON(t, app, http.MethodPost, "/api/planner/plan", token, map[string]any{
			"outfit_id": outfit.ID,
			"date":      date,
		}, &plan)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		planIDs = append(planIDs, plan.ID)
	}

	t.Run("List is date-ordered and caller-scoped", func(t *testing.T) {
		var plans []models.PlannedOutfit
		resp := doJSON(t, app, http.MethodGet, "/api/planner/", token, nil, &plans)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		require.Len(t, plans, 3)
		assert.True(t, !plans[0].Date.After(plans[1].Date))
		assert.True(t, !plans[1].Date.After(plans[2].Date))

		var otherPlans []models.PlannedOutfit
		resp = doJSON(t, app, http.MethodGet, "/api/planner/", otherToken, nil, &otherPlans)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Empty(t, otherPlans)
	})

	t.Run("Delete scoped to owner", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodDelete,
			fmt.Sprintf("/api/planner/%d/delete", planIDs[0]), otherToken, nil, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		resp = doJSON(t, app, http.MethodDelete,
			fmt.Sprintf("/api/planner/%d/delete", planIDs[0]), token, nil, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

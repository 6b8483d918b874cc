package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"outfitly/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestPlannerRepository_CreateRefetchError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPlannerRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "planned_outfits"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT (.+) FROM "planned_outfits"`).
		WillReturnError(errors.New("connection reset"))

	plan := &models.PlannedOutfit{UserID: 1, OutfitID: 2, Date: time.Now()}
	err := repo.Create(ctx, plan)

	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INTERNAL_ERROR", appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

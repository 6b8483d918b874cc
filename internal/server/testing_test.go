package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"outfitly/internal/config"
	"outfitly/internal/database"
	"outfitly/internal/models"
	"outfitly/internal/repository"
	"outfitly/internal/service"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Foreign keys on so schema-level CASCADE/SET NULL behaves like postgres.
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(database.AllModels()...); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

// newTestServer wires a Server against an in-memory database with no Redis
// and no Prometheus registration, then mounts the real route table.
func newTestServer(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)

	userRepo := repository.NewUserRepository(db)
	wardrobeRepo := repository.NewWardrobeRepository(db)
	outfitRepo := repository.NewOutfitRepository(db)
	plannerRepo := repository.NewPlannerRepository(db)
	feedRepo := repository.NewFeedRepository(db)
	taxonomyRepo := repository.NewTaxonomyRepository(db)

	s := &Server{
		config:       &config.Config{JWTSecret: "test_secret", Env: "test"},
		db:           db,
		userRepo:     userRepo,
		wardrobeRepo: wardrobeRepo,
		outfitRepo:   outfitRepo,
		plannerRepo:  plannerRepo,
		feedRepo:     feedRepo,
		taxonomyRepo: taxonomyRepo,
	}
	s.outfitService = service.NewOutfitService(outfitRepo, wardrobeRepo)
	s.feedService = service.NewFeedService(feedRepo, outfitRepo, userRepo)

	app := fiber.New()
	s.SetupRoutes(app)
	return s, app, db
}

// createTestUser persists a user plus profile and returns it with a bearer
// token signed by the test secret.
func createTestUser(t *testing.T, s *Server, db *gorm.DB, username string) (*models.User, string) {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("Password1!"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: string(hashed),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := db.Create(&models.Profile{UserID: user.ID}).Error; err != nil {
		t.Fatalf("create profile: %v", err)
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return user, token
}

// doJSON performs a request against the app and decodes the JSON response
// into out when out is non-nil.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any, out any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if out != nil {
		defer func() { _ = resp.Body.Close() }()
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return resp
}

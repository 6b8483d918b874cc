// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"outfitly/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the login password for every seeded account.
const DefaultPassword = "Outfitly1!"

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser persists an account with its blank profile, mirroring what
// registration does.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: strings.ToLower(gofakeit.Username()),
		Email:    strings.ToLower(gofakeit.Email()),
		Password: string(hashed),
	}
	for _, override := range overrides {
		override(user)
	}

	err = f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile := &models.Profile{
			UserID:            user.ID,
			Gender:            f.randomGender(),
			ModestyPreference: f.randomModesty(),
			Bio:               gofakeit.Sentence(8),
			Location:          gofakeit.City(),
		}
		if err := tx.Create(profile).Error; err != nil {
			return err
		}
		user.Profile = profile
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateWardrobeItem persists a garment for the user, optionally bound to a
// taxonomy subcategory.
func (f *Factory) CreateWardrobeItem(user *models.User, sub *models.SubCategory) (*models.WardrobeItem, error) {
	item := &models.WardrobeItem{
		UserID:   user.ID,
		Color:    gofakeit.Color(),
		Size:     f.pick("XS", "S", "M", "L", "XL"),
		Material: f.pick("cotton", "linen", "wool", "denim", "silk", "polyester"),
		Season:   f.randomSeason(),
		Tags:     strings.Join([]string{gofakeit.HipsterWord(), gofakeit.HipsterWord()}, ","),
		PhotoURL: fmt.Sprintf("https://picsum.photos/seed/%s/600/800", gofakeit.UUID()),
	}
	if sub != nil {
		item.CategoryID = &sub.CategoryID
		item.SubCategoryID = &sub.ID
	}
	if err := f.db.Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// CreateOutfit persists an outfit built from the given wardrobe items.
func (f *Factory) CreateOutfit(user *models.User, items []models.WardrobeItem) (*models.Outfit, error) {
	outfit := &models.Outfit{
		UserID:          user.ID,
		Type:            models.OutfitTypeUserCreated,
		IsHijabFriendly: f.rng.Intn(3) == 0,
		Description:     gofakeit.Sentence(6),
		PhotoURL:        fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID()),
		Season:          f.randomSeason(),
		Tags:            gofakeit.HipsterWord(),
	}
	if err := f.db.Create(outfit).Error; err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := f.db.Model(outfit).Association("SelectedItems").Append(&items); err != nil {
			return nil, err
		}
	}
	return outfit, nil
}

// CreatePost publishes an outfit to the feed with a spread-out creation time
// so seeded feeds look lived-in.
func (f *Factory) CreatePost(user *models.User, outfit *models.Outfit) (*models.Post, error) {
	daysBack := f.rng.Intn(60)
	hoursBack := f.rng.Intn(24)
	post := &models.Post{
		UserID:    user.ID,
		OutfitID:  outfit.ID,
		Caption:   gofakeit.Sentence(10),
		ImageURL:  outfit.PhotoURL,
		CreatedAt: time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour),
	}
	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

func (f *Factory) pick(options ...string) string {
	return options[f.rng.Intn(len(options))]
}

func (f *Factory) randomSeason() models.Season {
	seasons := []models.Season{
		models.SeasonWinter, models.SeasonSpring, models.SeasonSummer,
		models.SeasonAutumn, models.SeasonAllSeason,
	}
	return seasons[f.rng.Intn(len(seasons))]
}

func (f *Factory) randomGender() models.Gender {
	if f.rng.Intn(2) == 0 {
		return models.GenderMale
	}
	return models.GenderFemale
}

func (f *Factory) randomModesty() models.ModestyPreference {
	if f.rng.Intn(3) == 0 {
		return models.ModestyHijabFriendly
	}
	return models.ModestyNone
}

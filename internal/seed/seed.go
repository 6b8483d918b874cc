package seed

import (
	"context"
	"fmt"
	"log"

	"outfitly/internal/models"
	"outfitly/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	ShouldClean bool
}

// Seed populates the database with demo data: users with wardrobes, outfits,
// feed posts, and a mesh of follows and likes.
func Seed(db *gorm.DB, opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 10
	}
	log.Printf("Seeding database with %d users...", opts.NumUsers)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	ctx := context.Background()
	taxonomyRepo := repository.NewTaxonomyRepository(db)
	if err := Taxonomy(ctx, taxonomyRepo); err != nil {
		return fmt.Errorf("seed taxonomy: %w", err)
	}

	var subcategories []models.SubCategory
	if err := db.Find(&subcategories).Error; err != nil {
		return fmt.Errorf("load subcategories: %w", err)
	}

	f := NewFactory(db)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)
	}

	var posts []*models.Post
	for _, user := range users {
		items := make([]models.WardrobeItem, 0, 6)
		for i := 0; i < 4+f.rng.Intn(4); i++ {
			sub := &subcategories[f.rng.Intn(len(subcategories))]
			item, err := f.CreateWardrobeItem(user, sub)
			if err != nil {
				return fmt.Errorf("seed wardrobe item: %w", err)
			}
			items = append(items, *item)
		}

		for i := 0; i < 1+f.rng.Intn(2); i++ {
			n := 2 + f.rng.Intn(len(items)-1)
			outfit, err := f.CreateOutfit(user, items[:n])
			if err != nil {
				return fmt.Errorf("seed outfit: %w", err)
			}
			if f.rng.Intn(2) == 0 {
				post, err := f.CreatePost(user, outfit)
				if err != nil {
					return fmt.Errorf("seed post: %w", err)
				}
				posts = append(posts, post)
			}
		}
	}

	if err := seedSocialMesh(db, f, users, posts); err != nil {
		return err
	}

	log.Printf("Seeding complete: %d users, %d posts", len(users), len(posts))
	return nil
}

// seedSocialMesh wires random follows and likes between the seeded users.
// ON CONFLICT DO NOTHING absorbs the duplicates the random picks produce.
func seedSocialMesh(db *gorm.DB, f *Factory, users []*models.User, posts []*models.Post) error {
	for _, user := range users {
		for i := 0; i < f.rng.Intn(len(users)); i++ {
			target := users[f.rng.Intn(len(users))]
			if target.ID == user.ID {
				continue
			}
			edge := models.Follow{FollowerID: user.ID, FollowingID: target.ID}
			if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error; err != nil {
				return fmt.Errorf("seed follow: %w", err)
			}
		}

		if len(posts) == 0 {
			continue
		}
		for i := 0; i < f.rng.Intn(len(posts)+1); i++ {
			post := posts[f.rng.Intn(len(posts))]
			like := models.Like{UserID: user.ID, PostID: post.ID}
			if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
				return fmt.Errorf("seed like: %w", err)
			}
		}
	}
	return nil
}

// clearData removes seedable rows in dependency order.
func clearData(db *gorm.DB) error {
	tables := []string{
		"likes", "follows", "posts", "planned_outfits", "outfit_items",
		"outfits", "wardrobe_items", "profiles", "users",
	}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

package seed

import (
	"context"
	"fmt"

	"outfitly/internal/repository"
)

// BuiltInCategory is a permanent clothing category with its subcategories.
type BuiltInCategory struct {
	Name          string
	SubCategories []string
}

// BuiltInCategories defines the fixed clothing taxonomy. There is no
// mutation API for categories, so this list is the only way they enter
// the database.
var BuiltInCategories = []BuiltInCategory{
	{Name: "Tops", SubCategories: []string{"T-Shirts", "Shirts", "Blouses", "Sweaters", "Hoodies", "Tunics"}},
	{Name: "Bottoms", SubCategories: []string{"Jeans", "Trousers", "Shorts", "Skirts", "Leggings"}},
	{Name: "Dresses", SubCategories: []string{"Casual Dresses", "Evening Dresses", "Maxi Dresses", "Abayas"}},
	{Name: "Outerwear", SubCategories: []string{"Jackets", "Coats", "Blazers", "Cardigans"}},
	{Name: "Footwear", SubCategories: []string{"Sneakers", "Boots", "Sandals", "Heels", "Flats"}},
	{Name: "Accessories", SubCategories: []string{"Bags", "Belts", "Scarves", "Hijabs", "Jewelry", "Hats"}},
	{Name: "Activewear", SubCategories: []string{"Sports Tops", "Sports Bottoms", "Swimwear", "Modest Swimwear"}},
}

// Taxonomy seeds the built-in categories and subcategories. Safe to run
// repeatedly; existing rows are left untouched.
func Taxonomy(ctx context.Context, repo repository.TaxonomyRepository) error {
	for _, item := range BuiltInCategories {
		category, err := repo.EnsureCategory(ctx, item.Name)
		if err != nil {
			return fmt.Errorf("seed category %q: %w", item.Name, err)
		}
		for _, sub := range item.SubCategories {
			if _, err := repo.EnsureSubCategory(ctx, category.ID, sub); err != nil {
				return fmt.Errorf("seed subcategory %q/%q: %w", item.Name, sub, err)
			}
		}
	}
	return nil
}

package models

import "time"

// Season enumerates the wardrobe/outfit season choices.
type Season string

const (
	SeasonWinter    Season = "Winter"
	SeasonSpring    Season = "Spring"
	SeasonSummer    Season = "Summer"
	SeasonAutumn    Season = "Autumn"
	SeasonAllSeason Season = "All-Season"
)

// ValidSeason reports whether s is one of the accepted season values.
func ValidSeason(s Season) bool {
	switch s {
	case SeasonWinter, SeasonSpring, SeasonSummer, SeasonAutumn, SeasonAllSeason:
		return true
	}
	return false
}

// WardrobeItem is a single garment in a user's wardrobe.
// Deleting the referenced category or subcategory nulls the reference;
// the item itself survives.
type WardrobeItem struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	UserID        uint         `gorm:"not null;index;constraint:OnDelete:CASCADE" json:"user_id"`
	User          *User        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CategoryID    *uint        `gorm:"index" json:"category_id"`
	Category      *Category    `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	SubCategoryID *uint        `gorm:"index" json:"subcategory_id"`
	SubCategory   *SubCategory `gorm:"foreignKey:SubCategoryID;constraint:OnDelete:SET NULL" json:"subcategory,omitempty"`
	Color         string       `gorm:"size:20" json:"color"`
	Size          string       `gorm:"size:10" json:"size"`
	Material      string       `gorm:"size:50" json:"material"`
	Season        Season       `gorm:"type:varchar(15);not null;default:'All-Season'" json:"season"`
	Tags          string       `gorm:"type:text" json:"tags"`
	PhotoURL      string       `json:"photo_url"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (WardrobeItem) TableName() string {
	return "wardrobe_items"
}

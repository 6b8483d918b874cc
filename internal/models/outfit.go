package models

import "time"

// OutfitType distinguishes how an outfit was assembled.
type OutfitType string

const (
	OutfitTypeAIGenerated OutfitType = "AI-generated"
	OutfitTypeUserCreated OutfitType = "User-created"
)

// ValidOutfitType reports whether t is one of the accepted outfit types.
func ValidOutfitType(t OutfitType) bool {
	return t == OutfitTypeAIGenerated || t == OutfitTypeUserCreated
}

// Outfit is a named selection of wardrobe items belonging to one user.
// Item membership lives in the outfit_items join table.
type Outfit struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	UserID          uint           `gorm:"not null;index;constraint:OnDelete:CASCADE" json:"user_id"`
	User            *User          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Type            OutfitType     `gorm:"type:varchar(20);not null" json:"type"`
	SelectedItems   []WardrobeItem `gorm:"many2many:outfit_items" json:"selected_items,omitempty"`
	IsHijabFriendly bool           `gorm:"not null;default:false" json:"is_hijab_friendly"`
	Description     string         `gorm:"type:text" json:"description"`
	PhotoURL        string         `json:"photo_url"`
	Season          Season         `gorm:"type:varchar(15);not null;default:'All-Season'" json:"season"`
	Tags            string         `gorm:"type:text" json:"tags"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Outfit) TableName() string {
	return "outfits"
}

// PlannedOutfit assigns an outfit to a calendar date for one user.
type PlannedOutfit struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;constraint:OnDelete:CASCADE" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	OutfitID  uint      `gorm:"not null;index" json:"outfit_id"`
	Outfit    *Outfit   `gorm:"foreignKey:OutfitID;constraint:OnDelete:CASCADE" json:"outfit,omitempty"`
	Date      time.Time `gorm:"type:date;not null" json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (PlannedOutfit) TableName() string {
	return "planned_outfits"
}

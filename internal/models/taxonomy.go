package models

// Category is a top-level garment classification.
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:50;uniqueIndex;not null" json:"name"`

	SubCategories []SubCategory `gorm:"foreignKey:CategoryID" json:"subcategories,omitempty"`
}

// TableName specifies the table name for GORM.
func (Category) TableName() string {
	return "categories"
}

// SubCategory is a second-level classification under a Category.
// (category_id, name) is unique together.
type SubCategory struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CategoryID uint      `gorm:"not null;uniqueIndex:idx_subcategory_category_name;constraint:OnDelete:CASCADE" json:"category_id"`
	Category   *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"category,omitempty"`
	Name       string    `gorm:"size:50;not null;uniqueIndex:idx_subcategory_category_name" json:"name"`
}

// TableName specifies the table name for GORM.
func (SubCategory) TableName() string {
	return "subcategories"
}

// Package models contains data structures for the application's domain models.
package models

import "time"

// Gender enumerates the profile gender choices.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// ModestyPreference enumerates the profile modesty choices.
type ModestyPreference string

const (
	ModestyNone          ModestyPreference = "None"
	ModestyHijabFriendly ModestyPreference = "Hijab-Friendly"
	// ModestyLegacyModest is accepted from rows written before the enum was
	// narrowed; it is never offered to new profiles.
	ModestyLegacyModest ModestyPreference = "Modest"
)

// User represents an account in the Outfitly application.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:30;uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Profile *Profile `gorm:"foreignKey:UserID" json:"profile,omitempty"`
}

// TableName specifies the table name for GORM.
func (User) TableName() string {
	return "users"
}

// Profile holds the one-to-one profile record created alongside every account.
type Profile struct {
	ID                uint              `gorm:"primaryKey" json:"id"`
	UserID            uint              `gorm:"uniqueIndex;not null;constraint:OnDelete:CASCADE" json:"user_id"`
	User              *User             `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Gender            Gender            `gorm:"type:varchar(10)" json:"gender"`
	ModestyPreference ModestyPreference `gorm:"type:varchar(20);not null;default:'None'" json:"modesty_preference"`
	Bio               string            `gorm:"size:500" json:"bio"`
	Location          string            `gorm:"size:100" json:"location"`
	AvatarURL         string            `json:"avatar_url"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`

	// Computed at query time, never persisted.
	FollowersCount int64 `gorm:"-" json:"followers_count"`
	FollowingCount int64 `gorm:"-" json:"following_count"`
	IsFollowing    bool  `gorm:"-" json:"is_following"`
}

// TableName specifies the table name for GORM.
func (Profile) TableName() string {
	return "profiles"
}

// ValidGender reports whether g is one of the accepted gender values.
func ValidGender(g Gender) bool {
	return g == GenderMale || g == GenderFemale
}

// ValidModestyPreference reports whether m is accepted, including the legacy value.
func ValidModestyPreference(m ModestyPreference) bool {
	return m == ModestyNone || m == ModestyHijabFriendly || m == ModestyLegacyModest
}

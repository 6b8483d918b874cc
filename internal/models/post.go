package models

import "time"

// Post is a shared outfit in the social feed. ImageURL is snapshotted from
// the outfit at creation when the author supplies no image of their own;
// later outfit image changes never propagate back to the post.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	OutfitID  uint      `gorm:"not null;index" json:"outfit_id"`
	Outfit    *Outfit   `gorm:"foreignKey:OutfitID;constraint:OnDelete:CASCADE" json:"outfit,omitempty"`
	Caption   string    `gorm:"type:text" json:"caption"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`

	// LikesCount is not persisted; computed at query time.
	LikesCount int `gorm:"->" json:"like_count"`
	// Liked indicates whether the requesting user liked this post (computed).
	Liked bool `gorm:"->" json:"is_liked_by_current_user"`
	// IsOwn indicates whether the requesting user authored this post (computed).
	IsOwn bool `gorm:"-" json:"is_own_post"`
}

// TableName specifies the table name for GORM.
func (Post) TableName() string {
	return "posts"
}

// Like marks that a user liked a post. (user_id, post_id) is unique so two
// concurrent like attempts can never produce two rows.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"post_id"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Post      *Post     `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Like) TableName() string {
	return "likes"
}

// Follow is a directed edge from follower to followed user.
// (follower_id, following_id) is unique; self-follows are rejected at the
// API layer, not by the schema.
type Follow struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FollowerID  uint      `gorm:"not null;uniqueIndex:idx_follow_edge" json:"follower_id"`
	FollowingID uint      `gorm:"not null;uniqueIndex:idx_follow_edge" json:"following_id"`
	Follower    *User     `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE" json:"follower,omitempty"`
	Following   *User     `gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE" json:"following,omitempty"`
	FollowedAt  time.Time `gorm:"autoCreateTime" json:"followed_at"`
}

// TableName specifies the table name for GORM.
func (Follow) TableName() string {
	return "follows"
}

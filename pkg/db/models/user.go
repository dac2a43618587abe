package models

import "time"

// User represents the canonical identity entity. Username and email are
// globally unique; the password is only ever stored as an Argon2id hash.
type User struct {
	ID           uint      `gorm:"column:id;primaryKey;autoIncrement"`
	Username     string    `gorm:"column:username;size:80;not null;uniqueIndex:users_username_key"`
	Email        string    `gorm:"column:email;size:120;not null;uniqueIndex:users_email_key"`
	PasswordHash string    `gorm:"column:password_hash;size:255;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`

	WishlistItems []WishlistItem `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

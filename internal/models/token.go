package models

import "time"

// Token is a single-use code mailed to a user to confirm an account or reset
// a password. Rows past ExpiresAt are never surfaced by lookups and are
// removed by the background sweeper; a consumed token is deleted immediately.
type Token struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Token     string    `gorm:"type:varchar(10);index;not null" json:"token"`
	UserID    uint64    `gorm:"not null;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expires_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

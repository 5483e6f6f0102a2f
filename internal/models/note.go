package models

import "time"

// Note is immutable once created; it can only be deleted, and only by its
// author or as part of its task's cascade.
type Note struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	TaskID      uint64    `gorm:"not null;index" json:"task_id"`
	CreatedByID uint64    `gorm:"not null" json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`

	// Relations
	CreatedBy User `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
}

package models

import "time"

// TaskStatusChange is one entry in a task's append-only status history.
// Entries are only ever inserted, never updated or reordered.
type TaskStatusChange struct {
	ID        uint64     `gorm:"primarykey" json:"id"`
	TaskID    uint64     `gorm:"not null;index" json:"task_id"`
	UserID    uint64     `gorm:"not null" json:"user_id"`
	Status    TaskStatus `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt time.Time  `json:"created_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusPending     TaskStatus = "pending"
	TaskStatusOnHold      TaskStatus = "on-hold"
	TaskStatusInProgress  TaskStatus = "in-progress"
	TaskStatusUnderReview TaskStatus = "under-review"
	TaskStatusCompleted   TaskStatus = "completed"
)

// Valid reports whether s is one of the five known statuses. Any status may
// transition to any other, including away from completed.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusOnHold, TaskStatusInProgress,
		TaskStatusUnderReview, TaskStatusCompleted:
		return true
	}
	return false
}

type Task struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description string         `gorm:"type:text;not null" json:"description"`
	Status      TaskStatus     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	ProjectID   uint64         `gorm:"not null;index" json:"project_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Project       Project            `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	StatusHistory []TaskStatusChange `gorm:"foreignKey:TaskID" json:"status_history,omitempty"`
	Notes         []Note             `gorm:"foreignKey:TaskID" json:"notes,omitempty"`
}

package models

import (
	"time"

	"gorm.io/gorm"
)

type Project struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	ProjectName string         `gorm:"type:varchar(255);not null" json:"project_name"`
	ClientName  string         `gorm:"type:varchar(255);not null" json:"client_name"`
	Description string         `gorm:"type:text;not null" json:"description"`
	ManagerID   uint64         `gorm:"not null;index" json:"manager_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Manager User            `gorm:"foreignKey:ManagerID" json:"manager,omitempty"`
	Team    []ProjectMember `gorm:"foreignKey:ProjectID" json:"team,omitempty"`
	Tasks   []Task          `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// Program is a degree plan ("career") that owns Groups. Read-only input to
// the scheduler; CRUD over it is an out-of-scope external collaborator.
type Program struct {
	ID        string         `gorm:"primaryKey;type:varchar(20)" json:"id"`
	Name      string         `gorm:"type:varchar(150);not null" json:"name"`
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Program) TableName() string {
	return "exam_programs"
}

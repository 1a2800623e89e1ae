package models

import (
	"time"

	"gorm.io/gorm"
)

// Group is a cohort of students following a Program.
type Group struct {
	ID        string         `gorm:"primaryKey;type:varchar(20)" json:"id"`
	Name      string         `gorm:"type:varchar(100);not null" json:"name"`
	Headcount int            `gorm:"not null;default:0" json:"headcount"`
	ProgramID string         `gorm:"type:varchar(20);not null;index" json:"program_id"`
	Program   Program        `gorm:"foreignKey:ProgramID" json:"program,omitempty"`
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Group) TableName() string {
	return "exam_groups_catalog"
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// Teacher is a read-only input to the scheduler: invigilators and jurors are
// drawn from this table. Password/session concerns live outside this package.
type Teacher struct {
	ID        string         `gorm:"primaryKey;type:varchar(20)" json:"id"`
	Name      string         `gorm:"type:varchar(150);not null" json:"name"`
	Disabled  bool           `gorm:"not null;default:false" json:"disabled"`
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Teacher) TableName() string {
	return "exam_teachers"
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// AcademicPeriod partitions teaching and exam records in time, e.g. "2025-2".
type AcademicPeriod struct {
	ID          string         `gorm:"primaryKey;type:varchar(20)" json:"id"`
	DisplayName string         `gorm:"type:varchar(60);not null" json:"display_name"`
	CreatedAt   time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

func (AcademicPeriod) TableName() string {
	return "exam_academic_periods"
}

// EvaluationKind is the type of exam: Partial 1/2/3, Ordinary.
type EvaluationKind struct {
	ID        string         `gorm:"primaryKey;type:varchar(20)" json:"id"`
	Name      string         `gorm:"type:varchar(60);not null" json:"name"`
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (EvaluationKind) TableName() string {
	return "exam_evaluation_kinds"
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// ExamMode determines which rooms are eligible for a course's exams.
type ExamMode string

const (
	ExamModeWritten  ExamMode = "written"
	ExamModePlatform ExamMode = "platform"
)

// Course (materia) is a teaching unit with an examination mode. Defaults to
// platform when left unset, per the data model's stated default.
type Course struct {
	ID        string         `gorm:"primaryKey;type:varchar(20)" json:"id"`
	Name      string         `gorm:"type:varchar(150);not null" json:"name"`
	IsAcademy bool           `gorm:"not null;default:false" json:"is_academy"`
	ExamMode  ExamMode       `gorm:"type:varchar(20);not null;default:platform" json:"exam_mode"`
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Course) TableName() string {
	return "exam_courses"
}

// EffectiveExamMode returns the course's exam mode, defaulting to platform
// when the stored value is empty (zero-value rows from legacy imports).
func (c Course) EffectiveExamMode() ExamMode {
	if c.ExamMode == "" {
		return ExamModePlatform
	}
	return c.ExamMode
}

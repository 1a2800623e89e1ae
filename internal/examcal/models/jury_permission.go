package models

import "time"

// JuryPermission authorizes a teacher to serve as jury ("sinodal") for a
// course. A teacher currently teaching the course cannot be its jury, a rule
// enforced by the assigner, not by this table.
type JuryPermission struct {
	ID        string    `gorm:"primaryKey;type:varchar(20)" json:"id"`
	TeacherID string    `gorm:"type:varchar(20);not null;index" json:"teacher_id"`
	CourseID  string    `gorm:"type:varchar(20);not null;index" json:"course_id"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (JuryPermission) TableName() string {
	return "exam_jury_permissions"
}

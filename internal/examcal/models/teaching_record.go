package models

import (
	"time"

	"gorm.io/gorm"
)

// TeachingRecord is one weekly class meeting: the raw timetable data the
// Workload Expander reads to build an examination workload.
type TeachingRecord struct {
	ID        string         `gorm:"primaryKey;type:varchar(20)" json:"id"`
	PeriodID  string         `gorm:"type:varchar(20);not null;index" json:"period_id"`
	CourseID  string         `gorm:"type:varchar(20);not null;index" json:"course_id"`
	GroupID   string         `gorm:"type:varchar(20);not null;index" json:"group_id"`
	TeacherID string         `gorm:"type:varchar(20);not null;index" json:"teacher_id"`
	RoomID    string         `gorm:"type:varchar(20);not null" json:"room_id"`
	// DayOfWeek follows time.Weekday: 0=Sunday .. 6=Saturday.
	DayOfWeek int            `gorm:"not null" json:"day_of_week"`
	StartTime string         `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime   string         `gorm:"type:varchar(5);not null" json:"end_time"`
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (TeachingRecord) TableName() string {
	return "exam_teaching_records"
}

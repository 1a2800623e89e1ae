package models

import "time"

// ApplicationWindow is the inclusive date range within which exam dates for
// a (periodId, evaluationId) pair must fall. Created lazily, extended
// forward only, never shrunk — see the Window Manager.
type ApplicationWindow struct {
	ID           string    `gorm:"primaryKey;type:varchar(20)" json:"id"`
	PeriodID     string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_window_period_eval" json:"period_id"`
	EvaluationID string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_window_period_eval" json:"evaluation_id"`
	FirstDate    time.Time `gorm:"type:date;not null" json:"first_date"`
	LastDate     time.Time `gorm:"type:date;not null" json:"last_date"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (ApplicationWindow) TableName() string {
	return "exam_application_windows"
}

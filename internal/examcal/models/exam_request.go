package models

import "time"

// RequestStatus is the submission workflow state of an ExamRequest.
type RequestStatus int

const (
	StatusPending  RequestStatus = 0
	StatusApproved RequestStatus = 1
	StatusRejected RequestStatus = 2
)

// ExamRequest is the scheduled exam for one (course, group) unit. The
// generator writes one row per unit; the group sitting it is an ExamGroup row.
type ExamRequest struct {
	ID               string        `gorm:"primaryKey;type:varchar(20)" json:"id"`
	PeriodID         string        `gorm:"type:varchar(20);not null;index:idx_exam_requests_selector" json:"period_id"`
	EvaluationID     string        `gorm:"type:varchar(20);not null;index:idx_exam_requests_selector" json:"evaluation_id"`
	CourseID         string        `gorm:"type:varchar(20);not null;index:idx_exam_requests_selector" json:"course_id"`
	Course           Course        `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	ExamDate         time.Time     `gorm:"type:date;not null" json:"exam_date"`
	StartTime        string        `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime          string        `gorm:"type:varchar(5);not null" json:"end_time"`
	Status           RequestStatus `gorm:"not null;default:0" json:"status"`
	RejectionReason  *string       `gorm:"type:varchar(500)" json:"rejection_reason,omitempty"`
	ManuallyEdited   bool          `gorm:"not null;default:false" json:"manually_edited"`
	CreatedAt        time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
}

func (ExamRequest) TableName() string {
	return "exam_requests"
}

// ExamGroup records which Group sits a given ExamRequest.
type ExamGroup struct {
	ID            string `gorm:"primaryKey;type:varchar(20)" json:"id"`
	ExamRequestID string `gorm:"type:varchar(20);not null;index" json:"exam_request_id"`
	GroupID       string `gorm:"type:varchar(20);not null;index" json:"group_id"`
	Group         Group  `gorm:"foreignKey:GroupID" json:"group,omitempty"`
}

func (ExamGroup) TableName() string {
	return "exam_groups"
}

// RoomAssignment binds an ExamRequest to a room and its invigilator.
type RoomAssignment struct {
	ID                   string `gorm:"primaryKey;type:varchar(20)" json:"id"`
	ExamRequestID        string `gorm:"type:varchar(20);not null;index" json:"exam_request_id"`
	RoomID               string `gorm:"type:varchar(20);not null;index" json:"room_id"`
	InvigilatorTeacherID string `gorm:"type:varchar(20);not null" json:"invigilator_teacher_id"`
}

func (RoomAssignment) TableName() string {
	return "exam_room_assignments"
}

// JuryAssignment binds an ExamRequest to an additional authorized teacher
// ("sinodal") overseeing the exam.
type JuryAssignment struct {
	ID            string `gorm:"primaryKey;type:varchar(20)" json:"id"`
	ExamRequestID string `gorm:"type:varchar(20);not null;index" json:"exam_request_id"`
	TeacherID     string `gorm:"type:varchar(20);not null;index" json:"teacher_id"`
}

func (JuryAssignment) TableName() string {
	return "exam_jury_assignments"
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// Room is a physical space eligible to host exams. ComputerLab status lives
// on a side table, not a column, per the data model.
type Room struct {
	ID        string         `gorm:"primaryKey;type:varchar(20)" json:"id"`
	Name      string         `gorm:"type:varchar(100);not null" json:"name"`
	Capacity  int            `gorm:"not null;default:0" json:"capacity"`
	Disabled  bool           `gorm:"not null;default:false" json:"disabled"`
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Room) TableName() string {
	return "exam_rooms"
}

// RoomComputerLab flags a Room as a computer lab, the only room family
// eligible for platform-mode exams. Modeled as a side table rather than a
// boolean column on Room, matching the data model's explicit phrasing.
type RoomComputerLab struct {
	RoomID string `gorm:"primaryKey;type:varchar(20)" json:"room_id"`
}

func (RoomComputerLab) TableName() string {
	return "exam_room_computer_labs"
}

package repositories

import (
	"github.com/delpresence/backend/internal/database"
	"github.com/delpresence/backend/internal/examcal/models"
	"gorm.io/gorm"
)

// ExamGroupRepository reads the group-per-request fan-out used by the
// "Get calendar for program" read model.
type ExamGroupRepository struct {
	db *gorm.DB
}

func NewExamGroupRepository() *ExamGroupRepository {
	return &ExamGroupRepository{db: database.GetDB()}
}

func (r *ExamGroupRepository) FindByRequestIDs(requestIDs []string) ([]models.ExamGroup, error) {
	if len(requestIDs) == 0 {
		return nil, nil
	}
	var groups []models.ExamGroup
	err := r.db.Preload("Group").Where("exam_request_id IN ?", requestIDs).Find(&groups).Error
	return groups, err
}

// RoomAssignmentRepository reads room assignments by request, for the
// calendar read model and the room-conflict flag computation.
type RoomAssignmentRepository struct {
	db *gorm.DB
}

func NewRoomAssignmentRepository() *RoomAssignmentRepository {
	return &RoomAssignmentRepository{db: database.GetDB()}
}

func (r *RoomAssignmentRepository) FindByRequestIDs(requestIDs []string) ([]models.RoomAssignment, error) {
	if len(requestIDs) == 0 {
		return nil, nil
	}
	var assignments []models.RoomAssignment
	err := r.db.Where("exam_request_id IN ?", requestIDs).Find(&assignments).Error
	return assignments, err
}

// JuryAssignmentRepository reads jury assignments by request, for the
// calendar read model.
type JuryAssignmentRepository struct {
	db *gorm.DB
}

func NewJuryAssignmentRepository() *JuryAssignmentRepository {
	return &JuryAssignmentRepository{db: database.GetDB()}
}

func (r *JuryAssignmentRepository) FindByRequestIDs(requestIDs []string) ([]models.JuryAssignment, error) {
	if len(requestIDs) == 0 {
		return nil, nil
	}
	var assignments []models.JuryAssignment
	err := r.db.Where("exam_request_id IN ?", requestIDs).Find(&assignments).Error
	return assignments, err
}

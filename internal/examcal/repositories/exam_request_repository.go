package repositories

import (
	"time"

	"github.com/delpresence/backend/internal/database"
	"github.com/delpresence/backend/internal/examcal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ExamRequestRepository backs the Regeneration Coordinator and Persistence
// Adapter: every write to an ExamRequest and its dependents goes through it.
type ExamRequestRepository struct {
	db *gorm.DB
}

func NewExamRequestRepository() *ExamRequestRepository {
	return &ExamRequestRepository{db: database.GetDB()}
}

// DB exposes the underlying connection so callers can open their own
// transaction spanning multiple repositories, matching the teacher's
// CourseScheduleRepository.DB() escape hatch.
func (r *ExamRequestRepository) DB() *gorm.DB {
	return r.db
}

// CourseIDsTaughtInPeriod resolves which courses a program teaches in a
// period, the selector the Regeneration Coordinator deletes against.
func (r *ExamRequestRepository) CourseIDsTaughtInPeriod(tx *gorm.DB, programID, periodID string) ([]string, error) {
	var courseIDs []string
	err := tx.Table("exam_teaching_records tr").
		Joins("JOIN exam_groups_catalog g ON g.id = tr.group_id").
		Where("g.program_id = ? AND tr.period_id = ?", programID, periodID).
		Distinct().Pluck("tr.course_id", &courseIDs).Error
	return courseIDs, err
}

// FindForRegeneration locks (SELECT ... FOR UPDATE) and returns every
// ExamRequest matching the regeneration selector, serializing concurrent
// regenerations of the same (period, evaluation, program course set).
func (r *ExamRequestRepository) FindForRegeneration(tx *gorm.DB, periodID, evaluationID string, courseIDs []string) ([]models.ExamRequest, error) {
	if len(courseIDs) == 0 {
		return nil, nil
	}
	var requests []models.ExamRequest
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("period_id = ? AND evaluation_id = ? AND course_id IN ?", periodID, evaluationID, courseIDs).
		Find(&requests).Error
	return requests, err
}

// DeleteCascade removes a request's dependents then the request itself, in
// the order ExamGroup -> RoomAssignment -> JuryAssignment -> ExamRequest.
func (r *ExamRequestRepository) DeleteCascade(tx *gorm.DB, requestID string) error {
	if err := tx.Where("exam_request_id = ?", requestID).Delete(&models.ExamGroup{}).Error; err != nil {
		return err
	}
	if err := tx.Where("exam_request_id = ?", requestID).Delete(&models.RoomAssignment{}).Error; err != nil {
		return err
	}
	if err := tx.Where("exam_request_id = ?", requestID).Delete(&models.JuryAssignment{}).Error; err != nil {
		return err
	}
	return tx.Where("id = ?", requestID).Delete(&models.ExamRequest{}).Error
}

func (r *ExamRequestRepository) Create(tx *gorm.DB, req *models.ExamRequest) error {
	return tx.Create(req).Error
}

func (r *ExamRequestRepository) Delete(tx *gorm.DB, requestID string) error {
	return tx.Where("id = ?", requestID).Delete(&models.ExamRequest{}).Error
}

func (r *ExamRequestRepository) CreateGroups(tx *gorm.DB, groups []models.ExamGroup) error {
	if len(groups) == 0 {
		return nil
	}
	return tx.Create(&groups).Error
}

func (r *ExamRequestRepository) CreateRoomAssignment(tx *gorm.DB, a *models.RoomAssignment) error {
	return tx.Create(a).Error
}

func (r *ExamRequestRepository) CreateJuryAssignment(tx *gorm.DB, a *models.JuryAssignment) error {
	return tx.Create(a).Error
}

// JuryAssignmentsInWindow returns jury assignments whose request falls in
// the given window, for the jury ceiling and overlap checks.
func (r *ExamRequestRepository) JuryAssignmentsInWindow(periodID, evaluationID string) ([]models.JuryAssignment, []models.ExamRequest, error) {
	var requests []models.ExamRequest
	err := r.db.Where("period_id = ? AND evaluation_id = ?", periodID, evaluationID).Find(&requests).Error
	if err != nil {
		return nil, nil, err
	}
	if len(requests) == 0 {
		return nil, requests, nil
	}
	ids := make([]string, len(requests))
	for i, req := range requests {
		ids[i] = req.ID
	}
	var assignments []models.JuryAssignment
	err = r.db.Where("exam_request_id IN ?", ids).Find(&assignments).Error
	return assignments, requests, err
}

// RoomAndInvigilatorAssignmentsInDateRange returns every non-rejected room
// assignment (room + invigilator) whose ExamRequest falls within
// [startDate, endDate], with no period/evaluation scoping at all — a room
// or invigilator already booked for a different period or evaluation on
// the same date/time is still a conflict (spec invariants 3 and 4), the
// same way the Python original's AsignacionAulaRepository.get_by_aula_fecha_hora
// queries room+date+time+status globally.
func (r *ExamRequestRepository) RoomAndInvigilatorAssignmentsInDateRange(startDate, endDate time.Time) ([]models.RoomAssignment, []models.ExamRequest, error) {
	var requests []models.ExamRequest
	err := r.db.Where("exam_date BETWEEN ? AND ? AND status != ?", startDate, endDate, models.StatusRejected).
		Find(&requests).Error
	if err != nil {
		return nil, nil, err
	}
	if len(requests) == 0 {
		return nil, requests, nil
	}
	ids := make([]string, len(requests))
	for i, req := range requests {
		ids[i] = req.ID
	}
	var assignments []models.RoomAssignment
	err = r.db.Where("exam_request_id IN ?", ids).Find(&assignments).Error
	return assignments, requests, err
}

// ForProgramCalendar returns every ExamRequest (with its Course) for a
// program in a period/evaluation, the "Get calendar for program" read model;
// the ExamGroup rows are read separately by ExamGroupRepository.
func (r *ExamRequestRepository) ForProgramCalendar(programID, periodID, evaluationID string) ([]models.ExamRequest, error) {
	var requests []models.ExamRequest
	err := r.db.Preload("Course").
		Where("period_id = ? AND evaluation_id = ? AND course_id IN (?)", periodID, evaluationID,
			r.db.Table("exam_teaching_records tr").
				Joins("JOIN exam_groups_catalog g ON g.id = tr.group_id").
				Where("g.program_id = ?", programID).
				Distinct().Select("tr.course_id")).
		Find(&requests).Error
	return requests, err
}

// BulkSetStatus updates the status (and optional rejection reason) of every
// request in the regeneration selector's exact set.
func (r *ExamRequestRepository) BulkSetStatus(programID, periodID, evaluationID string, status models.RequestStatus, reason *string) error {
	courseIDs, err := r.CourseIDsTaughtInPeriod(r.db, programID, periodID)
	if err != nil {
		return err
	}
	if len(courseIDs) == 0 {
		return nil
	}
	updates := map[string]interface{}{"status": status}
	if status == models.StatusRejected {
		updates["rejection_reason"] = reason
	} else {
		updates["rejection_reason"] = nil
	}
	return r.db.Model(&models.ExamRequest{}).
		Where("period_id = ? AND evaluation_id = ? AND course_id IN ?", periodID, evaluationID, courseIDs).
		Updates(updates).Error
}

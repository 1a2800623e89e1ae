package scheduler

import (
	"github.com/delpresence/backend/internal/examcal/models"
	"gorm.io/gorm"
)

// regenerationStore is the subset of ExamRequestRepository the Regeneration
// Coordinator needs.
type regenerationStore interface {
	CourseIDsTaughtInPeriod(tx *gorm.DB, programID, periodID string) ([]string, error)
	FindForRegeneration(tx *gorm.DB, periodID, evaluationID string, courseIDs []string) ([]models.ExamRequest, error)
	DeleteCascade(tx *gorm.DB, requestID string) error
}

// Regenerate implements §4.7: within tx, resolve the program's course set
// for the period, lock and delete every matching ExamRequest (and its
// ExamGroup/RoomAssignment/JuryAssignment children) before the caller
// inserts the fresh set. It never touches another program's requests even
// when they share a period and evaluation, because the course-id selector
// is scoped to this program's own teaching records.
func Regenerate(tx *gorm.DB, store regenerationStore, programID, periodID, evaluationID string) error {
	courseIDs, err := store.CourseIDsTaughtInPeriod(tx, programID, periodID)
	if err != nil {
		return wrapErr(KindDatabaseError, "resolving program course set", err)
	}
	if len(courseIDs) == 0 {
		return nil
	}

	existing, err := store.FindForRegeneration(tx, periodID, evaluationID, courseIDs)
	if err != nil {
		return wrapErr(KindDatabaseError, "locking prior exam requests", err)
	}

	for _, req := range existing {
		if err := store.DeleteCascade(tx, req.ID); err != nil {
			return wrapErr(KindDatabaseError, "deleting prior exam request", err)
		}
	}
	return nil
}

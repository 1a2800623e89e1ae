package scheduler

import (
	"time"

	"github.com/delpresence/backend/internal/examcal/models"
)

// windowStore is the repository surface the Window Manager needs.
type windowStore interface {
	FindByPeriodAndEvaluation(periodID, evaluationID string) (*models.ApplicationWindow, error)
	Create(w *models.ApplicationWindow) error
	UpdateDates(w *models.ApplicationWindow) error
}

// WindowManager owns ApplicationWindow creation/extension. firstDate never
// moves forward and lastDate never moves backward once set (§4.2, §8 law).
type WindowManager struct {
	repo       windowStore
	defaultDur time.Duration
	newID      func() string
}

func NewWindowManager(repo windowStore, defaultDur time.Duration, newID func() string) *WindowManager {
	return &WindowManager{repo: repo, defaultDur: defaultDur, newID: newID}
}

// EnsureWindow implements §4.2's ensureWindow contract.
func (m *WindowManager) EnsureWindow(periodID, evaluationID string, firstDate time.Time) (*models.ApplicationWindow, error) {
	existing, err := m.repo.FindByPeriodAndEvaluation(periodID, evaluationID)
	if err != nil {
		return nil, wrapErr(KindDatabaseError, "loading application window", err)
	}
	if existing != nil {
		if firstDate.Before(existing.FirstDate) {
			existing.FirstDate = firstDate
			if err := m.repo.UpdateDates(existing); err != nil {
				return nil, wrapErr(KindDatabaseError, "extending window first date", err)
			}
		}
		return existing, nil
	}

	w := &models.ApplicationWindow{
		ID:           m.newID(),
		PeriodID:     periodID,
		EvaluationID: evaluationID,
		FirstDate:    firstDate,
		LastDate:     firstDate.Add(m.defaultDur),
	}
	if err := m.repo.Create(w); err != nil {
		return nil, wrapErr(KindDatabaseError, "creating application window", err)
	}
	return w, nil
}

// ExtendIfNeeded grows lastDate monotonically to cover neededLastDate. It is
// a no-op if the window already reaches far enough.
func (m *WindowManager) ExtendIfNeeded(w *models.ApplicationWindow, neededLastDate time.Time) error {
	if !neededLastDate.After(w.LastDate) {
		return nil
	}
	w.LastDate = neededLastDate
	if err := m.repo.UpdateDates(w); err != nil {
		return wrapErr(KindDatabaseError, "extending window last date", err)
	}
	return nil
}

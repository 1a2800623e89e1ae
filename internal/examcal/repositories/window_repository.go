package repositories

import (
	"github.com/delpresence/backend/internal/database"
	"github.com/delpresence/backend/internal/examcal/models"
	"gorm.io/gorm"
)

// ApplicationWindowRepository backs the Window Manager.
type ApplicationWindowRepository struct {
	db *gorm.DB
}

func NewApplicationWindowRepository() *ApplicationWindowRepository {
	return &ApplicationWindowRepository{db: database.GetDB()}
}

func (r *ApplicationWindowRepository) FindByPeriodAndEvaluation(periodID, evaluationID string) (*models.ApplicationWindow, error) {
	var w models.ApplicationWindow
	err := r.db.Where("period_id = ? AND evaluation_id = ?", periodID, evaluationID).First(&w).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &w, nil
}

func (r *ApplicationWindowRepository) Create(w *models.ApplicationWindow) error {
	return r.db.Create(w).Error
}

func (r *ApplicationWindowRepository) UpdateDates(w *models.ApplicationWindow) error {
	return r.db.Model(&models.ApplicationWindow{}).Where("id = ?", w.ID).
		Updates(map[string]interface{}{"first_date": w.FirstDate, "last_date": w.LastDate}).Error
}

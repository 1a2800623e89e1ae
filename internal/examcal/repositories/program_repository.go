package repositories

import (
	"github.com/delpresence/backend/internal/database"
	"github.com/delpresence/backend/internal/examcal/models"
	"gorm.io/gorm"
)

// ProgramRepository reads Program rows. Programs are a CRUD-owned, read-only
// input to the scheduler; this repository exposes only what the engine and
// its surrounding service need.
type ProgramRepository struct {
	db *gorm.DB
}

func NewProgramRepository() *ProgramRepository {
	return &ProgramRepository{db: database.GetDB()}
}

func (r *ProgramRepository) FindByID(id string) (*models.Program, error) {
	var p models.Program
	if err := r.db.First(&p, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProgramRepository) FindAll() ([]models.Program, error) {
	var programs []models.Program
	if err := r.db.Find(&programs).Error; err != nil {
		return nil, err
	}
	return programs, nil
}

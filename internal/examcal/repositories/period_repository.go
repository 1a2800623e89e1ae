package repositories

import (
	"github.com/delpresence/backend/internal/database"
	"github.com/delpresence/backend/internal/examcal/models"
	"gorm.io/gorm"
)

// AcademicPeriodRepository reads AcademicPeriod rows for the Period Resolver.
type AcademicPeriodRepository struct {
	db *gorm.DB
}

func NewAcademicPeriodRepository() *AcademicPeriodRepository {
	return &AcademicPeriodRepository{db: database.GetDB()}
}

func (r *AcademicPeriodRepository) FindByID(id string) (*models.AcademicPeriod, error) {
	var p models.AcademicPeriod
	if err := r.db.First(&p, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *AcademicPeriodRepository) FindAll() ([]models.AcademicPeriod, error) {
	var periods []models.AcademicPeriod
	if err := r.db.Find(&periods).Error; err != nil {
		return nil, err
	}
	return periods, nil
}

// EvaluationKindRepository reads EvaluationKind rows.
type EvaluationKindRepository struct {
	db *gorm.DB
}

func NewEvaluationKindRepository() *EvaluationKindRepository {
	return &EvaluationKindRepository{db: database.GetDB()}
}

func (r *EvaluationKindRepository) FindByID(id string) (*models.EvaluationKind, error) {
	var e models.EvaluationKind
	if err := r.db.First(&e, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

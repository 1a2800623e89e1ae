package scheduler

import (
	"testing"
	"time"

	"github.com/delpresence/backend/internal/examcal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePeriodRepo struct {
	byID map[string]models.AcademicPeriod
	all  []models.AcademicPeriod
}

func (f *fakePeriodRepo) FindByID(id string) (*models.AcademicPeriod, error) {
	if p, ok := f.byID[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (f *fakePeriodRepo) FindAll() ([]models.AcademicPeriod, error) {
	return f.all, nil
}

func TestResolvePeriod_DirectCandidateMatch(t *testing.T) {
	repo := &fakePeriodRepo{byID: map[string]models.AcademicPeriod{
		"2025-2": {ID: "2025-2", DisplayName: "2025 Semester 2"},
	}}

	resolved, err := ResolvePeriod(repo, time.Date(2025, time.November, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "2025-2", resolved.PeriodID)
	assert.Equal(t, "2025-2026A", resolved.SemesterLabel)
}

func TestResolvePeriod_FallbackScan(t *testing.T) {
	repo := &fakePeriodRepo{
		byID: map[string]models.AcademicPeriod{},
		all: []models.AcademicPeriod{
			{ID: "PER-2025B", DisplayName: "2025 Ordinary B"},
		},
	}

	resolved, err := ResolvePeriod(repo, time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "PER-2025B", resolved.PeriodID)
}

func TestResolvePeriod_NotFound(t *testing.T) {
	repo := &fakePeriodRepo{byID: map[string]models.AcademicPeriod{}}

	_, err := ResolvePeriod(repo, time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)
	schedErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, KindPeriodNotFound, schedErr.Kind)
	assert.True(t, schedErr.Kind.Fatal())
}

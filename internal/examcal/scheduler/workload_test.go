package scheduler

import (
	"testing"

	"github.com/delpresence/backend/internal/examcal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGroupRepo struct{ groups []models.Group }

func (f *fakeGroupRepo) FindByProgramID(programID string) ([]models.Group, error) {
	var out []models.Group
	for _, g := range f.groups {
		if g.ProgramID == programID {
			out = append(out, g)
		}
	}
	return out, nil
}

type fakeRecordRepo struct{ records []models.TeachingRecord }

func (f *fakeRecordRepo) FindByGroupIDs(groupIDs []string) ([]models.TeachingRecord, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}
	want := make(map[string]bool, len(groupIDs))
	for _, id := range groupIDs {
		want[id] = true
	}
	var out []models.TeachingRecord
	for _, r := range f.records {
		if want[r.GroupID] {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRecordRepo) FindByGroupID(groupID string) ([]models.TeachingRecord, error) {
	var out []models.TeachingRecord
	for _, r := range f.records {
		if r.GroupID == groupID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRecordRepo) FindByCourseID(courseID string) ([]models.TeachingRecord, error) {
	var out []models.TeachingRecord
	for _, r := range f.records {
		if r.CourseID == courseID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeCourseRepo struct{ courses []models.Course }

func (f *fakeCourseRepo) FindByIDs(ids []string) ([]models.Course, error) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []models.Course
	for _, c := range f.courses {
		if want[c.ID] {
			out = append(out, c)
		}
	}
	return out, nil
}

func TestExpandWorkload_UsesPeriodRecordsWhenPresent(t *testing.T) {
	groups := &fakeGroupRepo{groups: []models.Group{{ID: "G-1", ProgramID: "P-1"}}}
	records := &fakeRecordRepo{records: []models.TeachingRecord{
		{CourseID: "C-1", GroupID: "G-1", PeriodID: "2025-2", DayOfWeek: 1, StartTime: "08:00", EndTime: "10:00"},
	}}
	courses := &fakeCourseRepo{courses: []models.Course{{ID: "C-1", Name: "Algorithms"}}}

	units, err := ExpandWorkload(groups, records, courses, "P-1", "2025-2")
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "C-1", units[0].Course.ID)
	assert.Equal(t, "G-1", units[0].Group.ID)
}

func TestExpandWorkload_FallsBackToAnyPeriodReferenceForAbsentGroup(t *testing.T) {
	groups := &fakeGroupRepo{groups: []models.Group{{ID: "G-2", ProgramID: "P-1"}}}
	records := &fakeRecordRepo{records: []models.TeachingRecord{
		// no record in "2025-2" for G-2, only an older period
		{CourseID: "C-2", GroupID: "G-2", PeriodID: "2024-2", DayOfWeek: 3, StartTime: "14:00", EndTime: "16:00"},
	}}
	courses := &fakeCourseRepo{courses: []models.Course{{ID: "C-2", Name: "Anatomy"}}}

	units, err := ExpandWorkload(groups, records, courses, "P-1", "2025-2")
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "C-2", units[0].Course.ID)
	assert.Equal(t, "14:00", units[0].PrimaryRecord.StartTime)
}

func TestExpandWorkload_NoGroupsYieldsNoUnitsWithoutError(t *testing.T) {
	units, err := ExpandWorkload(&fakeGroupRepo{}, &fakeRecordRepo{}, &fakeCourseRepo{}, "P-empty", "2025-2")
	require.NoError(t, err)
	assert.Empty(t, units)
}

func TestClassifyProgram_MatchesSocialKeyword(t *testing.T) {
	class := ClassifyProgram(models.Program{ID: "PROG-ADM", Name: "Administracion Publica"}, []string{"administracion publica"})
	assert.Equal(t, ClassSocial, class)
}

func TestClassifyProgram_DefaultsToHealthLike(t *testing.T) {
	class := ClassifyProgram(models.Program{ID: "PROG-MED", Name: "Medicine"}, []string{"informatics", "business"})
	assert.Equal(t, ClassHealthLike, class)
}

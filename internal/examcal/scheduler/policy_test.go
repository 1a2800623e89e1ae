package scheduler

import (
	"testing"
	"time"

	"github.com/delpresence/backend/internal/examcal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unit(courseID, groupID, start, end string) ExamUnit {
	return ExamUnit{
		Course: models.Course{ID: courseID},
		Group:  models.Group{ID: groupID},
		PrimaryRecord: models.TeachingRecord{
			CourseID: courseID, GroupID: groupID, StartTime: start, EndTime: end,
		},
	}
}

func TestSocialPolicy_AssignsOneDatePerGroupColumn(t *testing.T) {
	units := []ExamUnit{
		unit("C-1", "G-1", "08:00", "10:00"),
		unit("C-2", "G-1", "10:00", "12:00"),
		unit("C-1", "G-2", "08:00", "10:00"),
	}
	window := &models.ApplicationWindow{FirstDate: mustDate("2025-11-03"), LastDate: mustDate("2025-11-30")}
	mgr := NewWindowManager(&fakeWindowStore{}, 21*24*time.Hour, func() string { return "W-new" })

	planned, conflicts, err := socialPolicy{}.PlanDates(units, mgr, window, mustDate("2025-11-03"), map[string]bool{})
	require.NoError(t, err)
	assert.Empty(t, conflicts)
	require.Len(t, planned, 3)

	byGroup := map[string][]PlannedExam{}
	for _, p := range planned {
		byGroup[p.Unit.Group.ID] = append(byGroup[p.Unit.Group.ID], p)
	}
	assert.Len(t, byGroup["G-1"], 2)
	assert.NotEqual(t, byGroup["G-1"][0].Date, byGroup["G-1"][1].Date, "a group's own exams must land on distinct dates")
}

// Scenario 3 from spec §8: health-like, 3 groups x 4 courses, position-based
// shared dates/times.
func TestHealthLikePolicy_SharesDateAndTimePerPosition(t *testing.T) {
	var units []ExamUnit
	courses := []string{"C-1", "C-2", "C-3", "C-4"}
	groupsOrder := []string{"G-1", "G-2", "G-3"}
	for _, c := range courses {
		for _, g := range groupsOrder {
			units = append(units, unit(c, g, "09:00", "11:00"))
		}
	}
	window := &models.ApplicationWindow{FirstDate: mustDate("2025-11-03"), LastDate: mustDate("2025-12-15")}
	mgr := NewWindowManager(&fakeWindowStore{}, 21*24*time.Hour, func() string { return "W-new" })

	planned, conflicts, err := healthLikePolicy{}.PlanDates(units, mgr, window, mustDate("2025-11-03"), map[string]bool{})
	require.NoError(t, err)
	assert.Empty(t, conflicts)
	require.Len(t, planned, 12)

	byDate := map[string][]PlannedExam{}
	for _, p := range planned {
		byDate[dateKey(p.Date)] = append(byDate[dateKey(p.Date)], p)
	}
	assert.Len(t, byDate, 4, "one distinct date per position")
	for _, group := range byDate {
		assert.Len(t, group, 3, "every group shares the position's date")
		for _, p := range group {
			assert.Equal(t, "09:00", p.StartTime)
		}
	}
}

func TestSocialPolicy_NoUnitsYieldsNothing(t *testing.T) {
	window := &models.ApplicationWindow{FirstDate: mustDate("2025-11-03"), LastDate: mustDate("2025-11-30")}
	mgr := NewWindowManager(&fakeWindowStore{}, 21*24*time.Hour, func() string { return "W-new" })

	planned, conflicts, err := socialPolicy{}.PlanDates(nil, mgr, window, mustDate("2025-11-03"), map[string]bool{})
	require.NoError(t, err)
	assert.Empty(t, planned)
	assert.Empty(t, conflicts)
}

func TestPolicyFor_SelectsByClass(t *testing.T) {
	_, isSocial := PolicyFor(ClassSocial).(socialPolicy)
	assert.True(t, isSocial)
	_, isHealth := PolicyFor(ClassHealthLike).(healthLikePolicy)
	assert.True(t, isHealth)
}

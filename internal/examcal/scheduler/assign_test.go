package scheduler

import (
	"testing"

	"github.com/delpresence/backend/internal/examcal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickInvigilator_PrefersClassTeacher(t *testing.T) {
	booked := teacherBookings{}
	id, err := PickInvigilator("T-1", timeInterval{date: "2025-11-10", start: "10:00", end: "12:00"},
		[]models.Teacher{{ID: "T-1"}, {ID: "T-2"}}, booked)
	require.NoError(t, err)
	assert.Equal(t, "T-1", id)
}

func TestPickInvigilator_FallsBackWhenPreferredBusy(t *testing.T) {
	interval := timeInterval{date: "2025-11-10", start: "10:00", end: "12:00"}
	booked := teacherBookings{}
	booked.reserve("T-1", interval)

	id, err := PickInvigilator("T-1", interval, []models.Teacher{{ID: "T-1"}, {ID: "T-2"}}, booked)
	require.NoError(t, err)
	assert.Equal(t, "T-2", id)
}

func TestPickInvigilator_SkipsDisabledTeachers(t *testing.T) {
	interval := timeInterval{date: "2025-11-10", start: "10:00", end: "12:00"}
	id, err := PickInvigilator("", interval, []models.Teacher{{ID: "T-1", Disabled: true}, {ID: "T-2"}}, teacherBookings{})
	require.NoError(t, err)
	assert.Equal(t, "T-2", id)
}

func TestPickInvigilator_NoneAvailable(t *testing.T) {
	interval := timeInterval{date: "2025-11-10", start: "10:00", end: "12:00"}
	_, err := PickInvigilator("", interval, nil, teacherBookings{})
	require.Error(t, err)
	schedErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, KindNoInvigilatorAvailable, schedErr.Kind)
}

// Scenario 6 from spec §8: one teacher holds JuryPermission on four distinct
// exam courses at disjoint times. Only the first three produce a
// JuryAssignment; the fourth proceeds without jury, with no error.
func TestPickJury_StopsAtMaxLoadWithNoError(t *testing.T) {
	permissions := []models.JuryPermission{
		{TeacherID: "T-9", CourseID: "C-1"},
		{TeacherID: "T-9", CourseID: "C-2"},
		{TeacherID: "T-9", CourseID: "C-3"},
		{TeacherID: "T-9", CourseID: "C-4"},
	}
	teaching := map[string]bool{}
	juryLoad := map[string]int{}
	booked := teacherBookings{}

	times := []timeInterval{
		{date: "2025-11-10", start: "08:00", end: "10:00"},
		{date: "2025-11-11", start: "08:00", end: "10:00"},
		{date: "2025-11-12", start: "08:00", end: "10:00"},
		{date: "2025-11-13", start: "08:00", end: "10:00"},
	}

	var assigned int
	for _, interval := range times {
		teacherID, ok := PickJury(permissions, teaching, juryLoad, 3, interval, booked)
		if ok {
			assigned++
			juryLoad[teacherID]++
			booked.reserve(teacherID, interval)
		}
	}
	assert.Equal(t, 3, assigned, "only the first three exams should receive a jury assignment")
}

func TestPickJury_ExcludesTeachersTeachingTheCourse(t *testing.T) {
	permissions := []models.JuryPermission{{TeacherID: "T-1", CourseID: "C-1"}}
	teaching := map[string]bool{"T-1": true}

	_, ok := PickJury(permissions, teaching, map[string]int{}, 3,
		timeInterval{date: "2025-11-10", start: "08:00", end: "10:00"}, teacherBookings{})
	assert.False(t, ok)
}

func TestPickJury_RejectsOverlap(t *testing.T) {
	interval := timeInterval{date: "2025-11-10", start: "08:00", end: "10:00"}
	booked := teacherBookings{}
	booked.reserve("T-1", interval)

	permissions := []models.JuryPermission{{TeacherID: "T-1", CourseID: "C-1"}}
	_, ok := PickJury(permissions, map[string]bool{}, map[string]int{}, 3, interval, booked)
	assert.False(t, ok)
}

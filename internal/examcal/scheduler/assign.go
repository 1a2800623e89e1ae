package scheduler

import (
	"fmt"
	"sort"

	"github.com/delpresence/backend/internal/examcal/models"
)

// teacherBookings tracks, per teacher id, the intervals they are already
// committed to (invigilating or on jury duty) within this generation run
// plus whatever was seeded from the database.
type teacherBookings map[string][]timeInterval

func (b teacherBookings) conflicts(teacherID string, interval timeInterval) bool {
	for _, existing := range b[teacherID] {
		if overlaps(existing, interval) {
			return true
		}
	}
	return false
}

func (b teacherBookings) reserve(teacherID string, interval timeInterval) {
	b[teacherID] = append(b[teacherID], interval)
}

// PickInvigilator implements §4.6's invigilator rule: the primary record's
// teacher is tried first, then the first active teacher (in id order)
// without a same-day overlap.
func PickInvigilator(preferredTeacherID string, interval timeInterval, activeTeachers []models.Teacher, booked teacherBookings) (string, error) {
	if preferredTeacherID != "" && !booked.conflicts(preferredTeacherID, interval) {
		return preferredTeacherID, nil
	}
	for _, t := range activeTeachers {
		if t.Disabled {
			continue
		}
		if booked.conflicts(t.ID, interval) {
			continue
		}
		return t.ID, nil
	}
	return "", newErr(KindNoInvigilatorAvailable,
		fmt.Sprintf("no invigilator available on %s %s-%s", interval.date, interval.start, interval.end))
}

// PickJury implements §4.6's jury rule. It returns ("", false) when no
// candidate qualifies, which is not an error: the exam remains valid
// without a jury.
func PickJury(permissions []models.JuryPermission, teachingTeacherIDs map[string]bool, juryLoad map[string]int, maxJuryLoad int, interval timeInterval, booked teacherBookings) (string, bool) {
	candidates := make([]string, 0, len(permissions))
	seen := make(map[string]bool)
	for _, p := range permissions {
		if teachingTeacherIDs[p.TeacherID] || seen[p.TeacherID] {
			continue
		}
		seen[p.TeacherID] = true
		candidates = append(candidates, p.TeacherID)
	}
	sort.Strings(candidates)

	for _, teacherID := range candidates {
		if juryLoad[teacherID] >= maxJuryLoad {
			continue
		}
		if booked.conflicts(teacherID, interval) {
			continue
		}
		return teacherID, true
	}
	return "", false
}

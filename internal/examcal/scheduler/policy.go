package scheduler

import (
	"time"

	"github.com/delpresence/backend/internal/examcal/models"
)

// PlannedExam is one (course, group) unit with its chosen exam date/time,
// before room and invigilator/jury assignment.
type PlannedExam struct {
	Unit      ExamUnit
	Date      time.Time
	StartTime string
	EndTime   string
}

// Conflict is a per-unit scheduling failure that does not abort generation.
type Conflict struct {
	CourseID string
	GroupID  string
	Kind     Kind
	Message  string
}

// Policy is the single strategy interface selected by ProgramClass (§9),
// replacing the source's duck-typed grouping helpers.
type Policy interface {
	PlanDates(units []ExamUnit, mgr *WindowManager, window *models.ApplicationWindow, start time.Time, holidays map[string]bool) ([]PlannedExam, []Conflict, error)
}

// socialPolicy implements §4.5.1: per-group column date assignment, one
// eligible-dates list shared by every group, indexed by each group's own
// course-ascending position within it.
type socialPolicy struct{}

func (socialPolicy) PlanDates(units []ExamUnit, mgr *WindowManager, window *models.ApplicationWindow, start time.Time, holidays map[string]bool) ([]PlannedExam, []Conflict, error) {
	byGroup := groupedByGroupID(units)

	maxCount := 0
	for _, us := range byGroup {
		if len(us) > maxCount {
			maxCount = len(us)
		}
	}
	if maxCount == 0 {
		return nil, nil, nil
	}

	dates, err := EligibleDates(mgr, start, holidays, window, maxCount)
	if err != nil {
		// best-effort: WindowExhausted still returns whatever dates were
		// collected; anything else (e.g. a database error) is fatal.
		if se, ok := err.(*Error); !ok || se.Kind != KindWindowExhausted {
			return nil, nil, err
		}
	}

	var planned []PlannedExam
	var conflicts []Conflict
	for _, groupID := range sortedGroupIDs(byGroup) {
		units := byGroup[groupID]
		for k, u := range units {
			if k >= len(dates) {
				conflicts = append(conflicts, Conflict{
					CourseID: u.Course.ID, GroupID: groupID, Kind: KindWindowExhausted,
					Message: "group has more exam units than eligible dates in the window",
				})
				continue
			}
			planned = append(planned, PlannedExam{
				Unit: u, Date: dates[k],
				StartTime: u.PrimaryRecord.StartTime, EndTime: u.PrimaryRecord.EndTime,
			})
		}
	}
	return planned, conflicts, nil
}

// healthLikePolicy implements §4.5.2: position-based scheduling, one date
// per position shared across every group, one time per (position, course)
// taken from the first (lowest group id) available primary record.
type healthLikePolicy struct{}

func (healthLikePolicy) PlanDates(units []ExamUnit, mgr *WindowManager, window *models.ApplicationWindow, start time.Time, holidays map[string]bool) ([]PlannedExam, []Conflict, error) {
	byGroup := groupedByGroupID(units)

	maxPositions := 0
	for _, us := range byGroup {
		if len(us) > maxPositions {
			maxPositions = len(us)
		}
	}
	if maxPositions == 0 {
		return nil, nil, nil
	}

	dates, err := EligibleDates(mgr, start, holidays, window, maxPositions)
	if err != nil {
		if se, ok := err.(*Error); !ok || se.Kind != KindWindowExhausted {
			return nil, nil, err
		}
	}

	groupIDs := sortedGroupIDs(byGroup)

	var planned []PlannedExam
	var conflicts []Conflict
	for p := 0; p < maxPositions; p++ {
		if p >= len(dates) {
			for _, groupID := range groupIDs {
				us := byGroup[groupID]
				if p < len(us) {
					conflicts = append(conflicts, Conflict{
						CourseID: us[p].Course.ID, GroupID: groupID, Kind: KindWindowExhausted,
						Message: "position has no eligible date left in the window",
					})
				}
			}
			continue
		}
		date := dates[p]

		type slot struct{ start, end string }
		shared := make(map[string]slot)
		for _, groupID := range groupIDs {
			us := byGroup[groupID]
			if p >= len(us) {
				continue
			}
			courseID := us[p].Course.ID
			if _, ok := shared[courseID]; !ok && us[p].PrimaryRecord.StartTime != "" {
				shared[courseID] = slot{us[p].PrimaryRecord.StartTime, us[p].PrimaryRecord.EndTime}
			}
		}

		for _, groupID := range groupIDs {
			us := byGroup[groupID]
			if p >= len(us) {
				continue
			}
			u := us[p]
			s, ok := shared[u.Course.ID]
			if !ok {
				conflicts = append(conflicts, Conflict{
					CourseID: u.Course.ID, GroupID: groupID, Kind: KindWindowExhausted,
					Message: "no class-derived time exists for this position",
				})
				continue
			}
			planned = append(planned, PlannedExam{Unit: u, Date: date, StartTime: s.start, EndTime: s.end})
		}
	}
	return planned, conflicts, nil
}

func groupedByGroupID(units []ExamUnit) map[string][]ExamUnit {
	byGroup := make(map[string][]ExamUnit)
	for _, u := range units {
		byGroup[u.Group.ID] = append(byGroup[u.Group.ID], u)
	}
	return byGroup
}

func sortedGroupIDs(byGroup map[string][]ExamUnit) []string {
	ids := make([]string, 0, len(byGroup))
	for id := range byGroup {
		ids = append(ids, id)
	}
	// simple insertion sort: group counts are small per program
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
	return ids
}

// PolicyFor selects the strategy for a ProgramClass.
func PolicyFor(class ProgramClass) Policy {
	if class == ClassSocial {
		return socialPolicy{}
	}
	return healthLikePolicy{}
}

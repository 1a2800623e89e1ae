package scheduler

import (
	"sort"
	"strings"

	"github.com/delpresence/backend/internal/examcal/models"
)

// ProgramClass selects which Slot & Room Picker policy applies. It is a
// pure function of the program record, replacing the source's dynamic
// dispatch with a tagged variant (§9).
type ProgramClass int

const (
	ClassSocial ProgramClass = iota
	ClassHealthLike
)

// ClassifyProgram implements §4.3's programClass derivation: a substring
// match of the program's id/name against a configurable social-discipline
// keyword list. Anything else is health-like.
func ClassifyProgram(program models.Program, socialKeywords []string) ProgramClass {
	haystack := strings.ToLower(program.ID + " " + program.Name)
	for _, kw := range socialKeywords {
		if strings.Contains(haystack, strings.ToLower(kw)) {
			return ClassSocial
		}
	}
	return ClassHealthLike
}

// ExamUnit is one (course, group) pair to schedule, carrying the teaching
// record its exam time/room/teacher defaults are derived from.
type ExamUnit struct {
	Course        models.Course
	Group         models.Group
	PrimaryRecord models.TeachingRecord
}

type groupFinder interface {
	FindByProgramID(programID string) ([]models.Group, error)
}

type teachingRecordFinder interface {
	FindByGroupIDs(groupIDs []string) ([]models.TeachingRecord, error)
	FindByGroupID(groupID string) ([]models.TeachingRecord, error)
	FindByCourseID(courseID string) ([]models.TeachingRecord, error)
}

type courseFinder interface {
	FindByIDs(ids []string) ([]models.Course, error)
}

// ExpandWorkload implements §4.3: build examUnits from a program's teaching
// records in the given period, falling back to any-period reference
// records for groups absent from the period snapshot.
func ExpandWorkload(groups groupFinder, records teachingRecordFinder, courses courseFinder, programID, periodID string) ([]ExamUnit, error) {
	programGroups, err := groups.FindByProgramID(programID)
	if err != nil {
		return nil, wrapErr(KindDatabaseError, "loading program groups", err)
	}
	if len(programGroups) == 0 {
		return nil, nil
	}

	groupIDs := make([]string, len(programGroups))
	groupByID := make(map[string]models.Group, len(programGroups))
	for i, g := range programGroups {
		groupIDs[i] = g.ID
		groupByID[g.ID] = g
	}

	all, err := records.FindByGroupIDs(groupIDs)
	if err != nil {
		return nil, wrapErr(KindDatabaseError, "loading teaching records", err)
	}

	inPeriod := make(map[string][]models.TeachingRecord) // groupID -> records in period
	seenGroups := make(map[string]bool)
	for _, r := range all {
		if r.PeriodID != periodID {
			continue
		}
		if r.CourseID == "" || r.GroupID == "" || r.StartTime == "" || r.EndTime == "" {
			continue
		}
		inPeriod[r.GroupID] = append(inPeriod[r.GroupID], r)
		seenGroups[r.GroupID] = true
	}

	// Groups with no record in the period snapshot: pull a reference
	// record per course from any period, earliest (dayOfWeek, startTime).
	for _, g := range programGroups {
		if seenGroups[g.ID] {
			continue
		}
		history, err := records.FindByGroupID(g.ID)
		if err != nil {
			return nil, wrapErr(KindDatabaseError, "loading group teaching history", err)
		}
		refByCourse := make(map[string]models.TeachingRecord)
		for _, r := range history {
			if r.CourseID == "" || r.StartTime == "" || r.EndTime == "" {
				continue
			}
			cur, ok := refByCourse[r.CourseID]
			if !ok || earlier(r, cur) {
				refByCourse[r.CourseID] = r
			}
		}
		for _, r := range refByCourse {
			inPeriod[g.ID] = append(inPeriod[g.ID], r)
		}
	}

	// course -> group -> primary (earliest) record.
	type key struct{ courseID, groupID string }
	primary := make(map[key]models.TeachingRecord)
	courseIDSet := make(map[string]bool)
	for groupID, recs := range inPeriod {
		for _, r := range recs {
			k := key{r.CourseID, groupID}
			cur, ok := primary[k]
			if !ok || earlier(r, cur) {
				primary[k] = r
			}
			courseIDSet[r.CourseID] = true
		}
	}

	courseIDs := make([]string, 0, len(courseIDSet))
	for id := range courseIDSet {
		courseIDs = append(courseIDs, id)
	}
	courseRows, err := courses.FindByIDs(courseIDs)
	if err != nil {
		return nil, wrapErr(KindDatabaseError, "loading courses", err)
	}
	courseByID := make(map[string]models.Course, len(courseRows))
	for _, c := range courseRows {
		courseByID[c.ID] = c
	}

	units := make([]ExamUnit, 0, len(primary))
	for k, rec := range primary {
		course, ok := courseByID[k.courseID]
		if !ok {
			continue
		}
		group, ok := groupByID[k.groupID]
		if !ok {
			continue
		}
		units = append(units, ExamUnit{Course: course, Group: group, PrimaryRecord: rec})
	}

	sort.Slice(units, func(i, j int) bool {
		if units[i].Course.ID != units[j].Course.ID {
			return units[i].Course.ID < units[j].Course.ID
		}
		return units[i].Group.ID < units[j].Group.ID
	})

	return units, nil
}

func earlier(a, b models.TeachingRecord) bool {
	if a.DayOfWeek != b.DayOfWeek {
		return a.DayOfWeek < b.DayOfWeek
	}
	return a.StartTime < b.StartTime
}

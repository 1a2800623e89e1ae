package scheduler

import (
	"time"

	"github.com/delpresence/backend/internal/examcal/models"
	"gorm.io/gorm"
)

type programFinder interface {
	FindByID(id string) (*models.Program, error)
}

type teacherFinder interface {
	FindActive() ([]models.Teacher, error)
}

type roomFinder interface {
	FindEnabled() ([]models.Room, error)
	ComputerLabIDs() (map[string]bool, error)
}

type juryPermissionFinder interface {
	FindByCourseID(courseID string) ([]models.JuryPermission, error)
}

// examRequestStore is everything the engine needs to persist a generation
// and to seed its reservation/booking state from committed data.
type examRequestStore interface {
	regenerationStore
	DB() *gorm.DB
	Create(tx *gorm.DB, req *models.ExamRequest) error
	Delete(tx *gorm.DB, requestID string) error
	CreateGroups(tx *gorm.DB, groups []models.ExamGroup) error
	CreateRoomAssignment(tx *gorm.DB, a *models.RoomAssignment) error
	CreateJuryAssignment(tx *gorm.DB, a *models.JuryAssignment) error
	JuryAssignmentsInWindow(periodID, evaluationID string) ([]models.JuryAssignment, []models.ExamRequest, error)
	RoomAndInvigilatorAssignmentsInDateRange(startDate, endDate time.Time) ([]models.RoomAssignment, []models.ExamRequest, error)
}

// Engine wires every scheduler component together into the single Generate
// operation described by §2's control flow.
type Engine struct {
	Periods  periodFinder
	Programs programFinder
	Groups   groupFinder
	Records  teachingRecordFinder
	Courses  courseFinder
	Teachers teacherFinder
	Rooms    roomFinder
	Jury     juryPermissionFinder
	Requests examRequestStore
	Windows  *WindowManager
	Config   Config
}

// GenerateResult is the Generate calendar command's output (§6).
type GenerateResult struct {
	CreatedCount          int
	Conflicts             []Conflict
	Warnings              []string
	ResolvedPeriodDisplayName string
	ResolvedSemesterLabel     string
}

// Generate implements the full control flow: resolve period, expand
// workload, ensure the window, plan dates per policy and seed existing
// bookings; then, inside one transaction, regenerate prior artifacts and
// for each unit pick a room and invigilator/jury and stage the rows, so a
// cancelled or failed run leaves no partial calendar.
func (e *Engine) Generate(programID, evaluationID string, startDate time.Time, holidays []time.Time) (GenerateResult, error) {
	resolved, err := ResolvePeriod(e.Periods, startDate)
	if err != nil {
		return GenerateResult{}, err
	}

	program, err := e.Programs.FindByID(programID)
	if err != nil {
		return GenerateResult{}, wrapErr(KindDatabaseError, "loading program", err)
	}
	if program == nil {
		return GenerateResult{Warnings: []string{"program not found; zero exam units scheduled"}}, nil
	}

	units, err := ExpandWorkload(e.Groups, e.Records, e.Courses, programID, resolved.PeriodID)
	if err != nil {
		return GenerateResult{}, err
	}
	result := GenerateResult{ResolvedPeriodDisplayName: resolved.PeriodDisplayName, ResolvedSemesterLabel: resolved.SemesterLabel}
	if len(units) == 0 {
		result.Warnings = append(result.Warnings, "program has no teaching workload for this period; zero exam units scheduled")
		return result, nil
	}

	window, err := e.Windows.EnsureWindow(resolved.PeriodID, evaluationID, startDate)
	if err != nil {
		return GenerateResult{}, err
	}

	class := ClassifyProgram(*program, e.Config.SocialProgramKeywords)
	policy := PolicyFor(class)

	holidaySet := make(map[string]bool, len(holidays))
	for _, h := range holidays {
		holidaySet[dateKey(h)] = true
	}

	planned, conflicts, err := policy.PlanDates(units, e.Windows, window, startDate, holidaySet)
	if err != nil {
		return GenerateResult{}, err
	}
	result.Conflicts = append(result.Conflicts, conflicts...)

	booked, teacherBooked, juryLoad, computerLabIDs, activeTeachers, enabledRooms, err := e.seedState(resolved.PeriodID, evaluationID, window.FirstDate, window.LastDate)
	if err != nil {
		return GenerateResult{}, err
	}
	reservations := ReservationMap{}

	tx := e.Requests.DB().Begin()
	if tx.Error != nil {
		return GenerateResult{}, wrapErr(KindDatabaseError, "beginning transaction", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := Regenerate(tx, e.Requests, programID, resolved.PeriodID, evaluationID); err != nil {
		tx.Rollback()
		return GenerateResult{}, err
	}

	created := 0
	for _, p := range planned {
		conflict, err := e.stageOne(tx, p, resolved, evaluationID, computerLabIDs, activeTeachers, enabledRooms, booked, teacherBooked, juryLoad, reservations)
		if err != nil {
			tx.Rollback()
			return GenerateResult{}, err
		}
		if conflict != nil {
			result.Conflicts = append(result.Conflicts, *conflict)
			continue
		}
		created++
	}

	if err := tx.Commit().Error; err != nil {
		return GenerateResult{}, wrapErr(KindDatabaseError, "committing generation", err)
	}

	result.CreatedCount = created
	return result, nil
}

// seedState loads committed, non-rejected bookings so this run's
// reservations surface as "room/teacher busy" rather than duplicating
// bookings against concurrent programs (§5). Room and invigilator bookings
// are loaded globally across the window's date range — irrespective of
// period or evaluation (spec invariants 3 and 4) — since the same room or
// teacher can just as easily be double-booked across two different
// evaluations or periods as within one. Jury load stays scoped to this
// period/evaluation, since the jury ceiling is a per-evaluation policy.
func (e *Engine) seedState(periodID, evaluationID string, windowStart, windowEnd time.Time) (existingBookings, teacherBookings, map[string]int, map[string]bool, []models.Teacher, []models.Room, error) {
	roomAssignments, roomRequests, err := e.Requests.RoomAndInvigilatorAssignmentsInDateRange(windowStart, windowEnd)
	if err != nil {
		return nil, nil, nil, nil, nil, nil, wrapErr(KindDatabaseError, "seeding room and invigilator bookings", err)
	}
	requestByID := make(map[string]models.ExamRequest, len(roomRequests))
	for _, r := range roomRequests {
		requestByID[r.ID] = r
	}
	booked := make(existingBookings)
	teacherBooked := make(teacherBookings)
	for _, a := range roomAssignments {
		req, ok := requestByID[a.ExamRequestID]
		if !ok {
			continue
		}
		interval := timeInterval{date: dateKey(req.ExamDate), start: req.StartTime, end: req.EndTime}
		booked[a.RoomID] = append(booked[a.RoomID], interval)
		teacherBooked.reserve(a.InvigilatorTeacherID, interval)
	}

	juryAssignments, juryRequests, err := e.Requests.JuryAssignmentsInWindow(periodID, evaluationID)
	if err != nil {
		return nil, nil, nil, nil, nil, nil, wrapErr(KindDatabaseError, "seeding jury bookings", err)
	}
	juryRequestByID := make(map[string]models.ExamRequest, len(juryRequests))
	for _, r := range juryRequests {
		juryRequestByID[r.ID] = r
	}
	juryLoad := make(map[string]int)
	for _, a := range juryAssignments {
		juryLoad[a.TeacherID]++
		if req, ok := juryRequestByID[a.ExamRequestID]; ok {
			teacherBooked.reserve(a.TeacherID, timeInterval{date: dateKey(req.ExamDate), start: req.StartTime, end: req.EndTime})
		}
	}

	labIDs, err := e.Rooms.ComputerLabIDs()
	if err != nil {
		return nil, nil, nil, nil, nil, nil, wrapErr(KindDatabaseError, "loading computer labs", err)
	}
	teachers, err := e.Teachers.FindActive()
	if err != nil {
		return nil, nil, nil, nil, nil, nil, wrapErr(KindDatabaseError, "loading active teachers", err)
	}
	rooms, err := e.Rooms.FindEnabled()
	if err != nil {
		return nil, nil, nil, nil, nil, nil, wrapErr(KindDatabaseError, "loading enabled rooms", err)
	}

	return booked, teacherBooked, juryLoad, labIDs, teachers, rooms, nil
}

// stageOne runs the §4.8 per-request sequence: insert ExamRequest, flush,
// insert ExamGroup, insert RoomAssignment, insert JuryAssignment. A failed
// room or invigilator pick deletes the just-inserted request before
// returning the conflict.
func (e *Engine) stageOne(tx *gorm.DB, p PlannedExam, resolved ResolvedPeriod, evaluationID string, computerLabIDs map[string]bool, activeTeachers []models.Teacher, enabledRooms []models.Room, booked existingBookings, teacherBooked teacherBookings, juryLoad map[string]int, reservations ReservationMap) (*Conflict, error) {
	date := dateKey(p.Date)
	unit := p.Unit
	interval := timeInterval{date: date, start: p.StartTime, end: p.EndTime}

	reqID := ExamRequestID(resolved.PeriodID, evaluationID, unit.Course.ID)
	req := &models.ExamRequest{
		ID: reqID, PeriodID: resolved.PeriodID, EvaluationID: evaluationID, CourseID: unit.Course.ID,
		ExamDate: p.Date, StartTime: p.StartTime, EndTime: p.EndTime, Status: models.StatusPending,
	}
	if err := e.Requests.Create(tx, req); err != nil {
		return nil, wrapErr(KindDatabaseError, "inserting exam request", err)
	}

	if err := e.Requests.CreateGroups(tx, []models.ExamGroup{{
		ID: ExamGroupID(reqID, unit.Group.ID), ExamRequestID: reqID, GroupID: unit.Group.ID,
	}}); err != nil {
		_ = e.Requests.Delete(tx, reqID)
		return nil, wrapErr(KindDatabaseError, "inserting exam group", err)
	}

	candidates := roomCandidatesFor(unit.Course.EffectiveExamMode(), unit.PrimaryRecord.RoomID, enabledRooms, computerLabIDs)
	room, err := feasibleRoom(candidates, date, p.StartTime, p.EndTime, unit.Group.Headcount, e.Config.CapacityTiers, booked, reservations, e.Config.ComputerLabPreferenceUsesProgramHistory)
	if err != nil {
		_ = e.Requests.Delete(tx, reqID)
		if se, ok := err.(*Error); ok {
			return &Conflict{CourseID: unit.Course.ID, GroupID: unit.Group.ID, Kind: se.Kind, Message: se.Message}, nil
		}
		return nil, err
	}

	invigilatorID, err := PickInvigilator(unit.PrimaryRecord.TeacherID, interval, activeTeachers, teacherBooked)
	if err != nil {
		_ = e.Requests.Delete(tx, reqID)
		if se, ok := err.(*Error); ok {
			return &Conflict{CourseID: unit.Course.ID, GroupID: unit.Group.ID, Kind: se.Kind, Message: se.Message}, nil
		}
		return nil, err
	}

	if err := e.Requests.CreateRoomAssignment(tx, &models.RoomAssignment{
		ID: RoomAssignmentID(reqID, room.ID), ExamRequestID: reqID, RoomID: room.ID, InvigilatorTeacherID: invigilatorID,
	}); err != nil {
		_ = e.Requests.Delete(tx, reqID)
		return nil, wrapErr(KindDatabaseError, "inserting room assignment", err)
	}
	booked[room.ID] = append(booked[room.ID], interval)
	reservations.reserve(date, p.StartTime, room.ID, reqID)
	teacherBooked.reserve(invigilatorID, interval)

	permissions, err := e.Jury.FindByCourseID(unit.Course.ID)
	if err != nil {
		return nil, wrapErr(KindDatabaseError, "loading jury permissions", err)
	}
	if len(permissions) > 0 {
		teaching, err := e.teachersCurrentlyTeaching(unit.Course.ID)
		if err != nil {
			return nil, err
		}
		if juryTeacherID, ok := PickJury(permissions, teaching, juryLoad, e.Config.MaxJuryLoad, interval, teacherBooked); ok {
			if err := e.Requests.CreateJuryAssignment(tx, &models.JuryAssignment{
				ID: JuryAssignmentID(reqID, juryTeacherID), ExamRequestID: reqID, TeacherID: juryTeacherID,
			}); err != nil {
				return nil, wrapErr(KindDatabaseError, "inserting jury assignment", err)
			}
			juryLoad[juryTeacherID]++
			teacherBooked.reserve(juryTeacherID, interval)
		}
	}

	return nil, nil
}

// roomCandidatesFor builds the room search space per §4.5.1/4.5.2: written
// mode searches only the class's own room; platform mode searches every
// computer lab, tagging the lab that is the unit's own class room (the
// lab-preference tie-break). Other rooms referenced by the program's
// teaching records are not tagged.
func roomCandidatesFor(mode models.ExamMode, classRoomID string, enabledRooms []models.Room, computerLabIDs map[string]bool) []roomCandidate {
	if mode == models.ExamModeWritten {
		for _, r := range enabledRooms {
			if r.ID == classRoomID {
				return []roomCandidate{{room: r, isComputerLab: computerLabIDs[r.ID]}}
			}
		}
		return nil
	}
	candidates := make([]roomCandidate, 0, len(enabledRooms))
	for _, r := range enabledRooms {
		if !computerLabIDs[r.ID] {
			continue
		}
		candidates = append(candidates, roomCandidate{room: r, isComputerLab: true, usedByProgramID: r.ID == classRoomID})
	}
	return candidates
}

// teachersCurrentlyTeaching resolves teachers who teach a course in any
// TeachingRecord, the jury-eligibility exclusion set (§4.6).
func (e *Engine) teachersCurrentlyTeaching(courseID string) (map[string]bool, error) {
	teaching := make(map[string]bool)
	records, err := e.Records.FindByCourseID(courseID)
	if err != nil {
		return nil, wrapErr(KindDatabaseError, "loading teaching records for jury exclusion", err)
	}
	for _, r := range records {
		teaching[r.TeacherID] = true
	}
	return teaching, nil
}

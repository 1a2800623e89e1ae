package examcal

import (
	"time"

	"github.com/delpresence/backend/internal/examcal/models"
	"github.com/delpresence/backend/internal/examcal/repositories"
	"github.com/delpresence/backend/internal/examcal/scheduler"
)

// Service is the exam calendar's service layer: it owns the scheduler
// Engine and the read models the handlers expose over HTTP, matching the
// repository's service-wraps-repositories convention.
type Service struct {
	engine *scheduler.Engine

	periods    *repositories.AcademicPeriodRepository
	evalKinds  *repositories.EvaluationKindRepository
	programs   *repositories.ProgramRepository
	requests   *repositories.ExamRequestRepository
	groups     *repositories.ExamGroupRepository
	rooms      *repositories.RoomAssignmentRepository
	jury       *repositories.JuryAssignmentRepository
	roomCat    *repositories.RoomRepository
	teacherCat *repositories.TeacherRepository
}

// NewService wires every repository into a scheduler.Engine, loading
// configuration via scheduler.LoadConfig the way the rest of the repository
// reads structured configuration.
func NewService() (*Service, error) {
	cfg, err := scheduler.LoadConfig()
	if err != nil {
		return nil, err
	}

	requests := repositories.NewExamRequestRepository()
	windows := scheduler.NewWindowManager(
		repositories.NewApplicationWindowRepository(),
		cfg.WindowDefaultDuration(),
		scheduler.ApplicationWindowID,
	)

	engine := &scheduler.Engine{
		Periods:  repositories.NewAcademicPeriodRepository(),
		Programs: repositories.NewProgramRepository(),
		Groups:   repositories.NewGroupRepository(),
		Records:  repositories.NewTeachingRecordRepository(),
		Courses:  repositories.NewCourseRepository(),
		Teachers: repositories.NewTeacherRepository(),
		Rooms:    repositories.NewRoomRepository(),
		Jury:     repositories.NewJuryPermissionRepository(),
		Requests: requests,
		Windows:  windows,
		Config:   cfg,
	}

	return &Service{
		engine:     engine,
		periods:    repositories.NewAcademicPeriodRepository(),
		evalKinds:  repositories.NewEvaluationKindRepository(),
		programs:   repositories.NewProgramRepository(),
		requests:   requests,
		groups:     repositories.NewExamGroupRepository(),
		rooms:      repositories.NewRoomAssignmentRepository(),
		jury:       repositories.NewJuryAssignmentRepository(),
		roomCat:    repositories.NewRoomRepository(),
		teacherCat: repositories.NewTeacherRepository(),
	}, nil
}

// GenerateCalendar runs the full generation command for a program (§6).
func (s *Service) GenerateCalendar(programID, evaluationID string, startDate time.Time, holidays []time.Time) (scheduler.GenerateResult, error) {
	return s.engine.Generate(programID, evaluationID, startDate, holidays)
}

// CalendarEntry is one exam on a program's calendar: the request plus its
// resolved groups, room, invigilator and optional jury teacher, enriched
// with the display names §6 requires (raw ids alone aren't a usable
// calendar row) — the same id-to-name resolution idiom the teacher's
// LecturerAssignmentRepository uses for its list responses.
type CalendarEntry struct {
	Request               models.ExamRequest `json:"request"`
	CourseName            string             `json:"courseName"`
	PeriodDisplayName     string             `json:"periodDisplayName"`
	EvaluationDisplayName string             `json:"evaluationDisplayName"`
	GroupIDs              []string           `json:"group_ids"`
	GroupNames            []string           `json:"groupNames"`
	RoomID                string             `json:"room_id,omitempty"`
	RoomName              string             `json:"roomName,omitempty"`
	InvigilatorTeacherID  string             `json:"invigilator_teacher_id,omitempty"`
	InvigilatorName       string             `json:"invigilatorName,omitempty"`
	JuryTeacherID         string             `json:"jury_teacher_id,omitempty"`
	JuryName              string             `json:"juryName,omitempty"`
	// RoomConflict is true when the room collides with another booking
	// (possibly from a different program/period/evaluation) or the
	// request is still pending (§6).
	RoomConflict bool `json:"roomConflict"`
}

// GetCalendar returns the "Get calendar for program" read model (§6).
func (s *Service) GetCalendar(programID, periodID, evaluationID string) ([]CalendarEntry, error) {
	requests, err := s.requests.ForProgramCalendar(programID, periodID, evaluationID)
	if err != nil {
		return nil, err
	}
	if len(requests) == 0 {
		return nil, nil
	}

	requestIDs := make([]string, len(requests))
	minDate, maxDate := requests[0].ExamDate, requests[0].ExamDate
	for i, r := range requests {
		requestIDs[i] = r.ID
		if r.ExamDate.Before(minDate) {
			minDate = r.ExamDate
		}
		if r.ExamDate.After(maxDate) {
			maxDate = r.ExamDate
		}
	}

	groupRows, err := s.groups.FindByRequestIDs(requestIDs)
	if err != nil {
		return nil, err
	}
	roomRows, err := s.rooms.FindByRequestIDs(requestIDs)
	if err != nil {
		return nil, err
	}
	juryRows, err := s.jury.FindByRequestIDs(requestIDs)
	if err != nil {
		return nil, err
	}

	period, err := s.periods.FindByID(periodID)
	if err != nil {
		return nil, err
	}
	evalKind, err := s.evalKinds.FindByID(evaluationID)
	if err != nil {
		return nil, err
	}

	roomIDs := make([]string, 0, len(roomRows))
	teacherIDs := make([]string, 0, len(roomRows)+len(juryRows))
	for _, a := range roomRows {
		roomIDs = append(roomIDs, a.RoomID)
		teacherIDs = append(teacherIDs, a.InvigilatorTeacherID)
	}
	for _, j := range juryRows {
		teacherIDs = append(teacherIDs, j.TeacherID)
	}
	roomNames, err := s.resolveRoomNames(roomIDs)
	if err != nil {
		return nil, err
	}
	teacherNames, err := s.resolveTeacherNames(teacherIDs)
	if err != nil {
		return nil, err
	}

	// roomConflictIndex counts every non-rejected room assignment globally
	// (any program/period/evaluation) sharing (room, date, start, end), to
	// flag collisions this program's own rows don't otherwise reveal.
	roomConflictIndex, err := s.buildRoomConflictIndex(minDate, maxDate)
	if err != nil {
		return nil, err
	}

	groupsByRequest := make(map[string][]models.ExamGroup)
	for _, g := range groupRows {
		groupsByRequest[g.ExamRequestID] = append(groupsByRequest[g.ExamRequestID], g)
	}
	roomByRequest := make(map[string]models.RoomAssignment, len(roomRows))
	for _, a := range roomRows {
		roomByRequest[a.ExamRequestID] = a
	}
	juryByRequest := make(map[string]models.JuryAssignment, len(juryRows))
	for _, j := range juryRows {
		juryByRequest[j.ExamRequestID] = j
	}

	entries := make([]CalendarEntry, 0, len(requests))
	for _, r := range requests {
		entry := CalendarEntry{
			Request:               r,
			CourseName:            r.Course.Name,
			PeriodDisplayName:     displayName(period),
			EvaluationDisplayName: evaluationDisplayName(evalKind),
		}
		for _, g := range groupsByRequest[r.ID] {
			entry.GroupIDs = append(entry.GroupIDs, g.GroupID)
			entry.GroupNames = append(entry.GroupNames, g.Group.Name)
		}
		if j, ok := juryByRequest[r.ID]; ok {
			entry.JuryTeacherID = j.TeacherID
			entry.JuryName = teacherNames[j.TeacherID]
		}
		if a, ok := roomByRequest[r.ID]; ok {
			entry.RoomID = a.RoomID
			entry.RoomName = roomNames[a.RoomID]
			entry.InvigilatorTeacherID = a.InvigilatorTeacherID
			entry.InvigilatorName = teacherNames[a.InvigilatorTeacherID]
			key := roomConflictKey{roomID: a.RoomID, date: dateKeyUTC(r.ExamDate), start: r.StartTime, end: r.EndTime}
			entry.RoomConflict = roomConflictIndex[key] > 1 || r.Status == models.StatusPending
		} else {
			entry.RoomConflict = true
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func displayName(p *models.AcademicPeriod) string {
	if p == nil {
		return ""
	}
	return p.DisplayName
}

func evaluationDisplayName(e *models.EvaluationKind) string {
	if e == nil {
		return ""
	}
	return e.Name
}

func (s *Service) resolveRoomNames(roomIDs []string) (map[string]string, error) {
	rooms, err := s.roomCat.FindByIDs(dedupe(roomIDs))
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(rooms))
	for _, r := range rooms {
		names[r.ID] = r.Name
	}
	return names, nil
}

func (s *Service) resolveTeacherNames(teacherIDs []string) (map[string]string, error) {
	teachers, err := s.teacherCat.FindByIDs(dedupe(teacherIDs))
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(teachers))
	for _, t := range teachers {
		names[t.ID] = t.Name
	}
	return names, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

type roomConflictKey struct {
	roomID string
	date   string
	start  string
	end    string
}

func dateKeyUTC(t time.Time) string {
	return t.Format("2006-01-02")
}

// buildRoomConflictIndex counts, across every program/period/evaluation,
// how many non-rejected room assignments land on the same (room, date,
// start, end) inside [minDate, maxDate].
func (s *Service) buildRoomConflictIndex(minDate, maxDate time.Time) (map[roomConflictKey]int, error) {
	assignments, requests, err := s.requests.RoomAndInvigilatorAssignmentsInDateRange(minDate, maxDate)
	if err != nil {
		return nil, err
	}
	requestByID := make(map[string]models.ExamRequest, len(requests))
	for _, r := range requests {
		requestByID[r.ID] = r
	}
	index := make(map[roomConflictKey]int, len(assignments))
	for _, a := range assignments {
		req, ok := requestByID[a.ExamRequestID]
		if !ok {
			continue
		}
		key := roomConflictKey{roomID: a.RoomID, date: dateKeyUTC(req.ExamDate), start: req.StartTime, end: req.EndTime}
		index[key]++
	}
	return index, nil
}

// BulkTransition moves every request in a program's (period, evaluation)
// selector to a new status, the "approve/reject all" external operation.
func (s *Service) BulkTransition(programID, periodID, evaluationID string, status models.RequestStatus, reason *string) error {
	return s.requests.BulkSetStatus(programID, periodID, evaluationID, status, reason)
}

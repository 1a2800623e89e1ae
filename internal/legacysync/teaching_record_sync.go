package legacysync

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/delpresence/backend/internal/config"
	"github.com/delpresence/backend/internal/examcal/models"
	"github.com/delpresence/backend/internal/examcal/repositories"
	"github.com/delpresence/backend/internal/logging"
	"github.com/delpresence/backend/internal/services"
)

// legacyTeachingRow is one row of the legacy feed, shaped the way the
// teacher's CampusLecturer rows arrive: loosely typed JSON fields that need
// defensive conversion before they become a strongly typed TeachingRecord.
type legacyTeachingRow struct {
	ID        interface{} `json:"id"`
	PeriodeID string      `json:"periode_id"`
	MatkulID  string      `json:"matkul_id"`
	KelasID   string      `json:"kelas_id"`
	DosenID   string      `json:"dosen_id"`
	RuangID   string      `json:"ruang_id"`
	Hari      interface{} `json:"hari"`
	JamMulai  string      `json:"jam_mulai"`
	JamSelesai string     `json:"jam_selesai"`
}

type legacyTeachingResponse struct {
	Result string `json:"result"`
	Data   struct {
		Schedules []legacyTeachingRow `json:"jadwal"`
	} `json:"data"`
}

// Result is the outcome of one sync run, returned to the triggering HTTP
// request (§6's "sync-teaching-records" endpoint).
type Result struct {
	SyncedCount int `json:"syncedCount"`
}

// TeachingRecordSyncer pulls the legacy weekly teaching schedule and upserts
// it as TeachingRecord rows, the write side the Workload Expander reads.
// Grounded on the teacher's LecturerService.SyncLecturers: same campus-auth
// token-refresh-on-401 retry, same bounded http.Client.
type TeachingRecordSyncer struct {
	campusAuth *services.CampusAuthService
	records    *repositories.TeachingRecordRepository
	cfg        *config.AppConfig
}

// NewTeachingRecordSyncer constructs the syncer against the live database.
func NewTeachingRecordSyncer() *TeachingRecordSyncer {
	cfg, err := config.Load()
	if err != nil {
		cfg = &config.AppConfig{
			LegacyTeachingScheduleURL: "https://cis.del.ac.id/api/library-api/jadwal-mengajar",
			LegacySyncFetchTimeout:    30 * time.Second,
			LegacySyncOverallTimeout:  60 * time.Second,
		}
	}
	return &TeachingRecordSyncer{
		campusAuth: services.NewCampusAuthService(),
		records:    repositories.NewTeachingRecordRepository(),
		cfg:        cfg,
	}
}

// Sync fetches the legacy feed and upserts it, bounded to the configured
// fetch/overall timeouts per spec §5's timeout requirement.
func (s *TeachingRecordSyncer) Sync(ctx context.Context) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.LegacySyncOverallTimeout)
	defer cancel()

	token, err := s.campusAuth.GetToken()
	if err != nil {
		return Result{}, fmt.Errorf("failed to get authentication token: %w", err)
	}

	rows, err := s.fetch(ctx, token)
	if err != nil {
		if strings.Contains(err.Error(), "401") || strings.Contains(err.Error(), "403") {
			token, refreshErr := s.campusAuth.RefreshToken()
			if refreshErr != nil {
				return Result{}, fmt.Errorf("failed to refresh authentication token: %w", refreshErr)
			}
			rows, err = s.fetch(ctx, token)
			if err != nil {
				return Result{}, err
			}
		} else {
			return Result{}, err
		}
	}

	records := make([]models.TeachingRecord, 0, len(rows))
	for _, row := range rows {
		dayOfWeek := toInt(row.Hari)
		records = append(records, models.TeachingRecord{
			ID:        capID("TR" + toString(row.ID)),
			PeriodID:  row.PeriodeID,
			CourseID:  row.MatkulID,
			GroupID:   row.KelasID,
			TeacherID: row.DosenID,
			RoomID:    row.RuangID,
			DayOfWeek: dayOfWeek,
			StartTime: row.JamMulai,
			EndTime:   row.JamSelesai,
		})
	}

	if err := s.records.UpsertMany(records); err != nil {
		return Result{}, fmt.Errorf("failed to persist teaching records: %w", err)
	}

	return Result{SyncedCount: len(records)}, nil
}

func (s *TeachingRecordSyncer) fetch(ctx context.Context, token string) ([]legacyTeachingRow, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.LegacyTeachingScheduleURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Add("Authorization", "Bearer "+token)

	client := &http.Client{Timeout: s.cfg.LegacySyncFetchTimeout}
	logging.L().Infow("legacysync: fetching teaching schedule", "url", s.cfg.LegacyTeachingScheduleURL)
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error fetching teaching schedule: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading teaching schedule response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("teaching schedule fetch failed with status %d: %s", resp.StatusCode, string(body))
	}

	var parsed legacyTeachingResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse teaching schedule response: %w", err)
	}
	if parsed.Result != "Ok" {
		return nil, fmt.Errorf("campus API returned an error: %s", parsed.Result)
	}

	logging.L().Infow("legacysync: received teaching schedule rows", "count", len(parsed.Data.Schedules))
	return parsed.Data.Schedules, nil
}

// capID enforces the same 20-byte id column width every other scheduler
// table uses.
func capID(s string) string {
	if len(s) <= 20 {
		return s
	}
	return s[:20]
}

func toInt(v interface{}) int {
	switch t := v.(type) {
	case float64:
		return int(t)
	case int:
		return t
	case string:
		n, err := strconv.Atoi(t)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func toString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatInt(int64(t), 10)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Package config holds app-wide settings read through spf13/viper, the
// ambient-config surface that sits alongside the teacher's .env/os.Getenv
// calls rather than replacing them (db.go and campus_auth_service.go keep
// reading their own env vars directly, matching the teacher's existing
// idiom for database/campus credentials).
package config

import (
	"time"

	"github.com/spf13/viper"
)

// AppConfig is the exam calendar feature's own tunable surface: the
// legacy sync job's target and timeouts, configurable without a redeploy.
type AppConfig struct {
	LegacyTeachingScheduleURL string
	LegacySyncFetchTimeout    time.Duration
	LegacySyncOverallTimeout  time.Duration
}

// Load reads AppConfig from the environment, falling back to the values
// the teacher's LecturerService hard-codes today.
func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("EXAMCAL")
	v.AutomaticEnv()

	v.SetDefault("legacy_teaching_schedule_url", "https://cis.del.ac.id/api/library-api/jadwal-mengajar")
	v.SetDefault("legacy_sync_fetch_timeout_seconds", 30)
	v.SetDefault("legacy_sync_overall_timeout_seconds", 60)

	return &AppConfig{
		LegacyTeachingScheduleURL: v.GetString("legacy_teaching_schedule_url"),
		LegacySyncFetchTimeout:    time.Duration(v.GetInt("legacy_sync_fetch_timeout_seconds")) * time.Second,
		LegacySyncOverallTimeout:  time.Duration(v.GetInt("legacy_sync_overall_timeout_seconds")) * time.Second,
	}, nil
}

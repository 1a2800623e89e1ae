package scheduler

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// TimeSlot is one standard exam period, e.g. 08:00-10:00.
type TimeSlot struct {
	Start string
	End   string
}

// Config is the configuration surface recognized by the core (spec §9),
// loaded the way the rest of the repository loads its env/file config: via
// spf13/viper rather than raw os.Getenv, since this surface is structured
// (slices, floats) instead of flat scalars.
type Config struct {
	StandardSlots                           []TimeSlot
	CapacityTiers                           []float64
	MaxJuryLoad                             int
	WindowDefaultDays                       int
	ComputerLabPreferenceUsesProgramHistory bool
	SocialProgramKeywords                   []string
}

// DefaultConfig returns the values named explicitly in spec §9.
func DefaultConfig() Config {
	return Config{
		StandardSlots: []TimeSlot{
			{Start: "08:00", End: "10:00"},
			{Start: "10:00", End: "12:00"},
			{Start: "12:00", End: "14:00"},
			{Start: "14:00", End: "16:00"},
			{Start: "16:00", End: "18:00"},
		},
		CapacityTiers:                            []float64{1.0, 0.8, 0.0},
		MaxJuryLoad:                               3,
		WindowDefaultDays:                         21,
		ComputerLabPreferenceUsesProgramHistory:   true,
		SocialProgramKeywords: []string{
			"informatics", "informatica", "business", "administracion publica",
			"public administration", "municipal administration", "administracion municipal",
		},
	}
}

// LoadConfig reads EXAMCAL_* environment overrides (and an optional
// examcal.yaml in the working directory) on top of DefaultConfig, following
// the repository's godotenv-at-startup / viper-for-structured-config split.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetEnvPrefix("EXAMCAL")
	v.AutomaticEnv()
	v.SetConfigName("examcal")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return cfg, fmt.Errorf("reading examcal config: %w", err)
		}
	}

	if v.IsSet("max_jury_load") {
		cfg.MaxJuryLoad = v.GetInt("max_jury_load")
	}
	if v.IsSet("window_default_days") {
		cfg.WindowDefaultDays = v.GetInt("window_default_days")
	}
	if v.IsSet("computer_lab_preference_uses_program_history") {
		cfg.ComputerLabPreferenceUsesProgramHistory = v.GetBool("computer_lab_preference_uses_program_history")
	}
	if kw := v.GetString("social_program_keywords"); kw != "" {
		cfg.SocialProgramKeywords = strings.Split(kw, ",")
	}

	return cfg, nil
}

// WindowDefaultDuration is WindowDefaultDays expressed as a duration for
// date arithmetic convenience.
func (c Config) WindowDefaultDuration() time.Duration {
	return time.Duration(c.WindowDefaultDays) * 24 * time.Hour
}

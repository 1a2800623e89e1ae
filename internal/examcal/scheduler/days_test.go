package scheduler

import (
	"testing"
	"time"

	"github.com/delpresence/backend/internal/examcal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(s string) time.Time {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

// Scenario 4 from spec §8: Monday start with a Tuesday holiday yields the
// prefix [Mon, Wed, Thu, Fri, next Mon].
func TestDayCursor_HolidayOverlap(t *testing.T) {
	window := &models.ApplicationWindow{FirstDate: mustDate("2025-11-01"), LastDate: mustDate("2025-12-01")}
	holidays := map[string]bool{"2025-11-18": true}

	cursor := NewDayCursor(mustDate("2025-11-17"), holidays, window)
	var got []string
	for i := 0; i < 5; i++ {
		d, ok := cursor.Next()
		require.True(t, ok)
		got = append(got, dateKey(d))
	}

	assert.Equal(t, []string{"2025-11-17", "2025-11-19", "2025-11-20", "2025-11-21", "2025-11-24"}, got)
}

func TestDayCursor_SkipsWeekends(t *testing.T) {
	window := &models.ApplicationWindow{FirstDate: mustDate("2025-11-01"), LastDate: mustDate("2025-11-30")}
	cursor := NewDayCursor(mustDate("2025-11-07"), map[string]bool{}, window) // Friday

	first, ok := cursor.Next()
	require.True(t, ok)
	assert.Equal(t, "2025-11-07", dateKey(first))

	second, ok := cursor.Next()
	require.True(t, ok)
	assert.Equal(t, "2025-11-10", dateKey(second)) // Monday, skipping Sat/Sun
}

func TestEligibleDates_ExtendsWindowWhenExhausted(t *testing.T) {
	window := &models.ApplicationWindow{
		ID: "W1", PeriodID: "P", EvaluationID: "E",
		FirstDate: mustDate("2025-11-24"), LastDate: mustDate("2025-11-28"), // one week, 5 weekdays
	}
	mgr := NewWindowManager(&fakeWindowStore{}, 21*24*time.Hour, func() string { return "W2" })

	dates, err := EligibleDates(mgr, mustDate("2025-11-24"), map[string]bool{}, window, 10)
	require.NoError(t, err)
	assert.Len(t, dates, 10)
	assert.True(t, window.LastDate.After(mustDate("2025-11-28")))
}

type fakeWindowStore struct{}

func (f *fakeWindowStore) FindByPeriodAndEvaluation(periodID, evaluationID string) (*models.ApplicationWindow, error) {
	return nil, nil
}
func (f *fakeWindowStore) Create(w *models.ApplicationWindow) error  { return nil }
func (f *fakeWindowStore) UpdateDates(w *models.ApplicationWindow) error { return nil }

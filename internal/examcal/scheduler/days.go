package scheduler

import (
	"time"

	"github.com/delpresence/backend/internal/examcal/models"
)

const dateLayout = "2006-01-02"

func dateKey(d time.Time) string {
	return d.Format(dateLayout)
}

func isWeekday(d time.Time) bool {
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	default:
		return true
	}
}

// DayCursor is the restartable, lazy sequence of eligible dates named in
// spec §9: deterministic and bounded by window.LastDate, resumable after a
// window extension without re-walking already-skipped days.
type DayCursor struct {
	cursor   time.Time
	holidays map[string]bool
	window   *models.ApplicationWindow
}

// NewDayCursor clamps start per §4.4: cursor = max(start, window.FirstDate);
// if that already overshoots window.LastDate, it resets to window.FirstDate.
func NewDayCursor(start time.Time, holidays map[string]bool, window *models.ApplicationWindow) *DayCursor {
	cursor := start
	if window.FirstDate.After(cursor) {
		cursor = window.FirstDate
	}
	if cursor.After(window.LastDate) {
		cursor = window.FirstDate
	}
	return &DayCursor{cursor: cursor, holidays: holidays, window: window}
}

// Next yields the next eligible date in ascending order, or false once the
// walk has passed window.LastDate.
func (c *DayCursor) Next() (time.Time, bool) {
	for !c.cursor.After(c.window.LastDate) {
		d := c.cursor
		c.cursor = c.cursor.AddDate(0, 0, 1)
		if isWeekday(d) && !c.holidays[dateKey(d)] {
			return d, true
		}
	}
	return time.Time{}, false
}

const maxWindowExtensions = 8

// EligibleDates implements the eligibleDates(start, holidays, window,
// minCount) contract: it extends the window via mgr when the initial walk
// falls short, then resumes rather than restarting.
func EligibleDates(mgr *WindowManager, start time.Time, holidays map[string]bool, window *models.ApplicationWindow, minCount int) ([]time.Time, error) {
	cursor := NewDayCursor(start, holidays, window)
	dates := make([]time.Time, 0, minCount)

	for attempt := 0; len(dates) < minCount; {
		d, ok := cursor.Next()
		if ok {
			dates = append(dates, d)
			continue
		}
		if attempt >= maxWindowExtensions {
			return dates, newErr(KindWindowExhausted,
				"could not collect enough eligible dates even after extending the window")
		}
		attempt++
		// cursor.cursor already sits one day past the old window.LastDate;
		// window is shared by pointer, so extending it in place and
		// re-entering the same cursor resumes the walk rather than
		// restarting it.
		remaining := minCount - len(dates)
		needed := window.LastDate.AddDate(0, 0, 7*(remaining+1))
		if err := mgr.ExtendIfNeeded(window, needed); err != nil {
			return dates, err
		}
	}
	return dates, nil
}

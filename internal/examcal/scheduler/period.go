package scheduler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/delpresence/backend/internal/examcal/models"
)

// periodFinder is the repository surface the Period Resolver needs.
type periodFinder interface {
	FindByID(id string) (*models.AcademicPeriod, error)
	FindAll() ([]models.AcademicPeriod, error)
}

// ResolvedPeriod is the Period Resolver's output.
type ResolvedPeriod struct {
	PeriodID          string
	SemesterLabel     string
	PeriodDisplayName string
}

// ResolvePeriod maps a calendar date to an academic period, per §4.1: a
// month-of-year bucket proposes candidate ids in order; the first one that
// exists wins, else a year/semester-letter scan over every period is tried.
func ResolvePeriod(repo periodFinder, d time.Time) (ResolvedPeriod, error) {
	candidates, label, letter, years := candidatesFor(d)

	for _, candidateID := range candidates {
		period, err := repo.FindByID(candidateID)
		if err != nil {
			return ResolvedPeriod{}, wrapErr(KindDatabaseError, "looking up academic period", err)
		}
		if period != nil {
			return ResolvedPeriod{PeriodID: period.ID, SemesterLabel: label, PeriodDisplayName: period.DisplayName}, nil
		}
	}

	all, err := repo.FindAll()
	if err != nil {
		return ResolvedPeriod{}, wrapErr(KindDatabaseError, "scanning academic periods", err)
	}
	for _, period := range all {
		haystack := strings.ToUpper(period.ID + " " + period.DisplayName)
		if !strings.HasSuffix(strings.TrimSpace(haystack), letter) {
			continue
		}
		for _, y := range years {
			if strings.Contains(haystack, strconv.Itoa(y)) || strings.Contains(haystack, shortYear(y)) {
				return ResolvedPeriod{PeriodID: period.ID, SemesterLabel: label, PeriodDisplayName: period.DisplayName}, nil
			}
		}
	}

	return ResolvedPeriod{}, newErr(KindPeriodNotFound,
		fmt.Sprintf("no academic period matches %s (tried %v)", label, candidates))
}

func shortYear(y int) string {
	return fmt.Sprintf("%02d", y%100)
}

// candidatesFor implements the month-of-year bucket table in §4.1.
func candidatesFor(d time.Time) (candidates []string, label string, expectedLetter string, years []int) {
	y := d.Year()
	switch d.Month() {
	case time.October, time.November, time.December:
		return []string{
			fmt.Sprintf("%d-2", y),
			shortYear(y+1) + "A",
		}, fmt.Sprintf("%d-%dA", y, y+1), "A", []int{y, y + 1}
	case time.January, time.February:
		return []string{
			fmt.Sprintf("%d-2", y-1),
			fmt.Sprintf("%d-1", y),
			shortYear(y) + "A",
		}, fmt.Sprintf("%d-%dA", y-1, y), "A", []int{y - 1, y}
	case time.March, time.April, time.May, time.June, time.July:
		return []string{
			fmt.Sprintf("%d-1", y),
			shortYear(y) + "B",
		}, fmt.Sprintf("%dB", y), "B", []int{y}
	default: // August, September
		return []string{
			fmt.Sprintf("%d-2", y),
			shortYear(y) + "B",
		}, fmt.Sprintf("%dB", y), "B", []int{y}
	}
}

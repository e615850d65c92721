package export

import (
	"time"

	"github.com/tourdrop/tourdrop/internal/komoot"
)

// tourTypeRecorded is the upstream type of a completed, GPS-recorded tour
// (as opposed to a planned one).
const tourTypeRecorded = "tour_recorded"

var tourDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseTourDate parses an upstream tour date and strips it to a
// timezone-naive instant: a trailing Z (or explicit offset) is honored for
// parsing, then the wall-clock components are compared as-is.
func parseTourDate(raw string) (time.Time, bool) {
	for _, layout := range tourDateLayouts {
		t, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		y, m, d := t.Date()
		hh, mm, ss := t.Clock()
		return time.Date(y, m, d, hh, mm, ss, t.Nanosecond(), time.UTC), true
	}
	return time.Time{}, false
}

// keepTour applies the three conjunctive export predicates to one tour
// summary: date window (inclusive), completion status, and sport type.
// Tours without a date are never dropped by the date rule; tours whose
// date cannot be parsed are treated as out of range.
func keepTour(tour komoot.TourSummary, start, end time.Time, completeOnly bool, sport string) bool {
	if tour.Date != "" {
		dt, ok := parseTourDate(tour.Date)
		if !ok {
			return false
		}
		if dt.Before(start) || dt.After(end) {
			return false
		}
	}
	if completeOnly && tour.Type != tourTypeRecorded {
		return false
	}
	if sport != "" && tour.Sport != sport {
		return false
	}
	return true
}

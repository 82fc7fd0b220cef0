package admission

import (
	"time"

	"staff-scheduling/internal/models"
)

// segment is a same-day slice of a shift: [start, end) in minutes on one
// calendar day. Overnight shifts produce two segments.
type segment struct {
	day   time.Time
	start int
	end   int
}

// dayOf strips the time-of-day component so calendar days compare with Equal.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// splitSegments normalizes a shift into day-bound segments. A shift whose end
// precedes its start wraps past midnight and is split at the day boundary.
func splitSegments(s *models.Shift) []segment {
	day := dayOf(s.Date)
	if s.Overnight() {
		return []segment{
			{day: day, start: s.Start.Minutes(), end: models.MinutesPerDay},
			{day: day.AddDate(0, 0, 1), start: 0, end: s.End.Minutes()},
		}
	}
	return []segment{{day: day, start: s.Start.Minutes(), end: s.End.Minutes()}}
}

// segmentsOverlap tests two half-open intervals on the same calendar day.
func segmentsOverlap(a, b segment) bool {
	return a.day.Equal(b.day) && a.start < b.end && b.start < a.end
}

// findConflicts returns the ids of existing shifts whose segments overlap the
// candidate's. excludeID removes a persisted shift from the scan so it does
// not conflict with itself on re-validation. Pure; O(n) over existing shifts.
func findConflicts(candidate *models.Shift, existing []*models.Shift, excludeID int64) []int64 {
	candSegs := splitSegments(candidate)

	var conflicts []int64
	for _, other := range existing {
		if excludeID != 0 && other.ID == excludeID {
			continue
		}
		if shiftsOverlap(candSegs, other) {
			conflicts = append(conflicts, other.ID)
		}
	}
	return conflicts
}

func shiftsOverlap(candSegs []segment, other *models.Shift) bool {
	for _, os := range splitSegments(other) {
		for _, cs := range candSegs {
			if segmentsOverlap(cs, os) {
				return true
			}
		}
	}
	return false
}

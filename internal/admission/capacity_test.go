package admission

import (
	"fmt"
	"testing"
	"time"

	"staff-scheduling/internal/models"
)

func occupants(t *testing.T, n int, day time.Time, start, end string) []*models.Shift {
	t.Helper()
	shifts := make([]*models.Shift, 0, n)
	for i := 0; i < n; i++ {
		shifts = append(shifts, mkShift(t, int64(i+1), fmt.Sprintf("E%d", i+1), day, start, end))
	}
	return shifts
}

func TestCountOccupancy(t *testing.T) {
	day := date(2024, time.June, 10)
	candidate := mkShift(t, 0, "F1", day, "08:00", "15:00")

	existing := []*models.Shift{
		mkShift(t, 1, "E1", day, "07:00", "14:00"),                  // overlaps
		mkShift(t, 2, "E2", day, "15:00", "22:00"),                  // back to back, no overlap
		mkShift(t, 3, "E3", day.AddDate(0, 0, -1), "22:00", "09:00"), // overnight spillover overlaps
		mkShift(t, 4, "E4", day.AddDate(0, 0, 1), "08:00", "15:00"), // next day
	}

	if got := countOccupancy(candidate, existing, 0); got != 2 {
		t.Errorf("expected occupancy 2, got %d", got)
	}
}

func TestCountOccupancyCountsShiftOnce(t *testing.T) {
	day := date(2024, time.June, 10)
	// Candidate spans midnight, overlapping both segments of the existing
	// overnight shift; it must still count as one occupant.
	candidate := mkShift(t, 0, "F1", day, "20:00", "08:00")
	existing := []*models.Shift{mkShift(t, 1, "E1", day, "21:00", "07:00")}

	if got := countOccupancy(candidate, existing, 0); got != 1 {
		t.Errorf("expected occupancy 1, got %d", got)
	}
}

func TestCapacityBoundary(t *testing.T) {
	const maxCapacity = 20

	if exceedsCapacity(maxCapacity-1, maxCapacity) {
		t.Error("occupancy maxCapacity-1 should admit one more shift")
	}
	if !exceedsCapacity(maxCapacity, maxCapacity) {
		t.Error("occupancy maxCapacity should reject a new overlapping shift")
	}
}

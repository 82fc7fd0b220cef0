package admission

import "staff-scheduling/internal/models"

// countOccupancy counts the existing shifts at a location whose segments
// overlap the candidate's. Each shift counts once even when both of its
// day-segments overlap. excludeID skips a persisted candidate on
// re-validation.
func countOccupancy(candidate *models.Shift, locationShifts []*models.Shift, excludeID int64) int {
	candSegs := splitSegments(candidate)

	occupancy := 0
	for _, other := range locationShifts {
		if excludeID != 0 && other.ID == excludeID {
			continue
		}
		if shiftsOverlap(candSegs, other) {
			occupancy++
		}
	}
	return occupancy
}

// exceedsCapacity applies the boundary rule: a location at maxCapacity is
// already full, so admitting one more requires occupancy+1 <= maxCapacity.
func exceedsCapacity(occupancy, maxCapacity int) bool {
	return occupancy+1 > maxCapacity
}

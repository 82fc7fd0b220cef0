package admission

import (
	"time"

	"staff-scheduling/internal/models"
)

// workloadLookbackDays is how far back shift history is fetched when building
// a snapshot. It covers the 30-day monthly window with a day to spare; the
// consecutive-day run is bounded by it.
const workloadLookbackDays = 31

// aggregateWorkload derives the rolling metrics for one employee as of the
// target date from a shift-history snapshot. Deterministic, no side effects.
// Overnight shifts count their full duration toward the day they start.
func aggregateWorkload(employeeID string, history []*models.Shift, target time.Time) *models.WorkloadSnapshot {
	targetDay := dayOf(target)
	weekFrom := targetDay.AddDate(0, 0, -6)
	monthFrom := targetDay.AddDate(0, 0, -29)

	var weeklyMinutes, monthlyMinutes, monthCount int
	workedDays := make(map[time.Time]bool, len(history))

	for _, s := range history {
		day := dayOf(s.Date)
		if day.After(targetDay) {
			continue
		}
		workedDays[day] = true

		minutes := s.DurationMinutes()
		if !day.Before(weekFrom) {
			weeklyMinutes += minutes
		}
		if !day.Before(monthFrom) {
			monthlyMinutes += minutes
		}
		if day.Year() == targetDay.Year() && day.Month() == targetDay.Month() {
			monthCount++
		}
	}

	consecutive := 0
	for day := targetDay; workedDays[day]; day = day.AddDate(0, 0, -1) {
		consecutive++
	}

	return &models.WorkloadSnapshot{
		EmployeeID:        employeeID,
		Date:              targetDay,
		CurrentShiftCount: monthCount,
		WeeklyHours:       float64(weeklyMinutes) / 60,
		MonthlyHours:      float64(monthlyMinutes) / 60,
		ConsecutiveDays:   consecutive,
	}
}

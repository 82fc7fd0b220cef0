package admission

import "staff-scheduling/internal/models"

// Limits holds the configured workload ceilings. The source of these values
// is deployment configuration, never per-employee code.
type Limits struct {
	MaxWeeklyHours    float64
	MaxMonthlyHours   float64
	MaxShiftsPerMonth int

	// WarningRatio is the actual/max fraction at which a metric starts
	// counting as a warning.
	WarningRatio float64
}

// valid reports whether every ceiling is positive and the warning ratio is a
// proper fraction. Anything else makes the ratio arithmetic meaningless.
func (l Limits) valid() bool {
	return l.MaxWeeklyHours > 0 &&
		l.MaxMonthlyHours > 0 &&
		l.MaxShiftsPerMonth > 0 &&
		l.WarningRatio > 0 && l.WarningRatio < 1
}

func DefaultLimits() Limits {
	return Limits{
		MaxWeeklyHours:    48,
		MaxMonthlyHours:   200,
		MaxShiftsPerMonth: 20,
		WarningRatio:      0.8,
	}
}

// classifyWorkload maps a snapshot onto NORMAL/WARNING/CRITICAL. Reaching any
// ceiling is CRITICAL; any metric at or past the warning ratio is WARNING.
func classifyWorkload(s *models.WorkloadSnapshot, limits Limits) models.WorkloadStatus {
	if s.WeeklyHours >= limits.MaxWeeklyHours ||
		s.MonthlyHours >= limits.MaxMonthlyHours ||
		s.CurrentShiftCount >= limits.MaxShiftsPerMonth {
		return models.WorkloadCritical
	}

	ratios := []float64{
		s.WeeklyHours / limits.MaxWeeklyHours,
		s.MonthlyHours / limits.MaxMonthlyHours,
		float64(s.CurrentShiftCount) / float64(limits.MaxShiftsPerMonth),
	}
	for _, r := range ratios {
		if r >= limits.WarningRatio {
			return models.WorkloadWarning
		}
	}
	return models.WorkloadNormal
}

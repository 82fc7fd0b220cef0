package admission

import (
	"testing"

	"staff-scheduling/internal/models"
)

func TestClassifyWorkload(t *testing.T) {
	limits := DefaultLimits() // 48h/week, 200h/month, 20 shifts, 0.8 warning

	tests := []struct {
		name string
		snap models.WorkloadSnapshot
		want models.WorkloadStatus
	}{
		{"fresh employee", models.WorkloadSnapshot{}, models.WorkloadNormal},
		{"light week", models.WorkloadSnapshot{WeeklyHours: 8, MonthlyHours: 40, CurrentShiftCount: 5}, models.WorkloadNormal},
		{"just under warning", models.WorkloadSnapshot{WeeklyHours: 38}, models.WorkloadNormal},
		{"weekly past warning ratio", models.WorkloadSnapshot{WeeklyHours: 39}, models.WorkloadWarning},
		{"monthly at warning ratio", models.WorkloadSnapshot{MonthlyHours: 160}, models.WorkloadWarning},
		{"shift count at warning ratio", models.WorkloadSnapshot{CurrentShiftCount: 16}, models.WorkloadWarning},
		{"weekly at limit", models.WorkloadSnapshot{WeeklyHours: 48}, models.WorkloadCritical},
		{"monthly past limit", models.WorkloadSnapshot{MonthlyHours: 204}, models.WorkloadCritical},
		{"shift count past limit", models.WorkloadSnapshot{CurrentShiftCount: 21}, models.WorkloadCritical},
		{"critical wins over warning", models.WorkloadSnapshot{WeeklyHours: 40, MonthlyHours: 200}, models.WorkloadCritical},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := classifyWorkload(&tc.snap, limits)
			if got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestClassifyWorkloadCustomLimits(t *testing.T) {
	limits := Limits{MaxWeeklyHours: 40, MaxMonthlyHours: 160, MaxShiftsPerMonth: 15, WarningRatio: 0.5}

	snap := &models.WorkloadSnapshot{WeeklyHours: 20}
	if got := classifyWorkload(snap, limits); got != models.WorkloadWarning {
		t.Errorf("expected WARNING at half of a 40h limit, got %s", got)
	}

	snap = &models.WorkloadSnapshot{CurrentShiftCount: 15}
	if got := classifyWorkload(snap, limits); got != models.WorkloadCritical {
		t.Errorf("expected CRITICAL at the shift ceiling, got %s", got)
	}
}

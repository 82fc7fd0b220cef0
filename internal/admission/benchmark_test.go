package admission

import (
	"context"
	"fmt"
	"testing"
	"time"

	"staff-scheduling/internal/models"
)

func BenchmarkValidate(b *testing.B) {
	target := date(2024, time.June, 28)

	// A month of prior shifts for the employee and a busy location window.
	var history []*models.Shift
	for d := 1; d <= 27; d++ {
		history = append(history, &models.Shift{
			ID:         int64(d),
			EmployeeID: "E1",
			Location:   "IGD",
			Date:       date(2024, time.June, d),
			Start:      models.ClockTime(8 * 60),
			End:        models.ClockTime(12 * 60),
		})
	}
	var locShifts []*models.Shift
	for i := 0; i < 15; i++ {
		locShifts = append(locShifts, &models.Shift{
			ID:         int64(100 + i),
			EmployeeID: fmt.Sprintf("W%d", i),
			Location:   "IGD",
			Date:       target,
			Start:      models.ClockTime(13 * 60),
			End:        models.ClockTime(20 * 60),
		})
	}

	store := &MockDataStore{
		GetShiftsForEmployeeFunc: func(ctx context.Context, employeeID string, from, to time.Time) ([]*models.Shift, error) {
			return history, nil
		},
		GetShiftsForLocationFunc: func(ctx context.Context, location string, from, to time.Time) ([]*models.Shift, error) {
			return locShifts, nil
		},
	}
	engine := setupEngine(b, store)
	req := request(target, "IGD", "E1", "13:00", "20:00")

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := engine.Validate(context.Background(), req); err != nil {
			b.Fatal(err)
		}
	}
}

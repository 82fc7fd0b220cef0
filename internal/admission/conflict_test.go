package admission

import (
	"testing"
	"time"

	"staff-scheduling/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func clock(t *testing.T, s string) models.ClockTime {
	t.Helper()
	c, err := models.ParseClockTime(s)
	if err != nil {
		t.Fatalf("bad clock literal %q: %v", s, err)
	}
	return c
}

func mkShift(t *testing.T, id int64, employeeID string, day time.Time, start, end string) *models.Shift {
	t.Helper()
	return &models.Shift{
		ID:         id,
		EmployeeID: employeeID,
		Location:   "IGD",
		Date:       day,
		Start:      clock(t, start),
		End:        clock(t, end),
	}
}

func TestFindConflicts(t *testing.T) {
	day := date(2024, time.June, 10)

	tests := []struct {
		name      string
		candidate *models.Shift
		existing  []*models.Shift
		want      []int64
	}{
		{
			name:      "plain overlap",
			candidate: mkShift(t, 0, "E1", day, "08:00", "15:00"),
			existing:  []*models.Shift{mkShift(t, 7, "E1", day, "12:00", "19:00")},
			want:      []int64{7},
		},
		{
			name:      "back to back is not a conflict",
			candidate: mkShift(t, 0, "E1", day, "08:00", "15:00"),
			existing:  []*models.Shift{mkShift(t, 7, "E1", day, "15:00", "22:00")},
			want:      nil,
		},
		{
			name:      "different day",
			candidate: mkShift(t, 0, "E1", day, "08:00", "15:00"),
			existing:  []*models.Shift{mkShift(t, 7, "E1", day.AddDate(0, 0, 1), "08:00", "15:00")},
			want:      nil,
		},
		{
			name:      "night shift spills into next morning",
			candidate: mkShift(t, 0, "E1", day, "22:00", "06:00"),
			existing:  []*models.Shift{mkShift(t, 3, "E1", day.AddDate(0, 0, 1), "05:00", "13:00")},
			want:      []int64{3},
		},
		{
			name:      "night shift clear of next morning",
			candidate: mkShift(t, 0, "E1", day, "22:00", "05:00"),
			existing:  []*models.Shift{mkShift(t, 3, "E1", day.AddDate(0, 0, 1), "05:00", "13:00")},
			want:      nil,
		},
		{
			name:      "existing night shift against morning candidate",
			candidate: mkShift(t, 0, "E1", day.AddDate(0, 0, 1), "05:00", "13:00"),
			existing:  []*models.Shift{mkShift(t, 9, "E1", day, "22:00", "06:00")},
			want:      []int64{9},
		},
		{
			name:      "multiple conflicts all reported",
			candidate: mkShift(t, 0, "E1", day, "08:00", "20:00"),
			existing: []*models.Shift{
				mkShift(t, 1, "E1", day, "06:00", "09:00"),
				mkShift(t, 2, "E1", day, "10:00", "12:00"),
				mkShift(t, 3, "E1", day, "20:00", "23:00"),
			},
			want: []int64{1, 2},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := findConflicts(tc.candidate, tc.existing, 0)
			if len(got) != len(tc.want) {
				t.Fatalf("expected conflicts %v, got %v", tc.want, got)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("expected conflicts %v, got %v", tc.want, got)
				}
			}
		})
	}
}

func TestFindConflictsSymmetry(t *testing.T) {
	day := date(2024, time.June, 10)
	pairs := []struct {
		a, b *models.Shift
	}{
		{mkShift(t, 1, "E1", day, "08:00", "15:00"), mkShift(t, 2, "E1", day, "14:00", "22:00")},
		{mkShift(t, 1, "E1", day, "22:00", "06:00"), mkShift(t, 2, "E1", day.AddDate(0, 0, 1), "05:00", "13:00")},
		{mkShift(t, 1, "E1", day, "08:00", "15:00"), mkShift(t, 2, "E1", day, "15:00", "22:00")},
		{mkShift(t, 1, "E1", day, "23:00", "07:00"), mkShift(t, 2, "E1", day, "22:00", "02:00")},
	}

	for _, p := range pairs {
		ab := len(findConflicts(p.a, []*models.Shift{p.b}, 0)) > 0
		ba := len(findConflicts(p.b, []*models.Shift{p.a}, 0)) > 0
		if ab != ba {
			t.Errorf("conflict not symmetric for %v-%v vs %v-%v: %v != %v",
				p.a.Start, p.a.End, p.b.Start, p.b.End, ab, ba)
		}
	}
}

func TestFindConflictsExcludesOwnID(t *testing.T) {
	day := date(2024, time.June, 10)
	persisted := mkShift(t, 42, "E1", day, "08:00", "15:00")

	// Re-validating a persisted shift against a history that contains it
	// must not report a self-conflict.
	got := findConflicts(persisted, []*models.Shift{persisted}, 42)
	if len(got) != 0 {
		t.Fatalf("shift conflicts with itself on re-validation: %v", got)
	}
}

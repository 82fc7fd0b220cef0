package models

import "time"

type Shift struct {
	ID         int64     `json:"id"`
	EmployeeID string    `json:"employee_id"`
	Location   string    `json:"location"`
	Date       time.Time `json:"date"` // calendar date the shift starts on
	Start      ClockTime `json:"start"`
	End        ClockTime `json:"end"` // End < Start means the shift runs past midnight
	CreatedAt  time.Time `json:"created_at"`
}

// Overnight reports whether the shift wraps past midnight into the next day.
func (s *Shift) Overnight() bool {
	return s.End < s.Start
}

// DurationMinutes is the worked length of the shift. Overnight shifts count
// in full toward the date they start on.
func (s *Shift) DurationMinutes() int {
	if s.Overnight() {
		return (MinutesPerDay - s.Start.Minutes()) + s.End.Minutes()
	}
	return s.End.Minutes() - s.Start.Minutes()
}

// ShiftRequest is a candidate assignment submitted for admission.
type ShiftRequest struct {
	EmployeeID string    `json:"employee_id"`
	Location   string    `json:"location"`
	Date       time.Time `json:"date"`
	Start      ClockTime `json:"start"`
	End        ClockTime `json:"end"`

	// ExcludeShiftID, when non-zero, removes that shift from conflict and
	// capacity scans so an already-persisted shift can be re-validated
	// against everything but itself.
	ExcludeShiftID int64 `json:"exclude_shift_id,omitempty"`
}

// Shift materializes the request as an unsaved shift row.
func (r *ShiftRequest) Shift() *Shift {
	return &Shift{
		EmployeeID: r.EmployeeID,
		Location:   r.Location,
		Date:       r.Date,
		Start:      r.Start,
		End:        r.End,
	}
}

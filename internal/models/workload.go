package models

import "time"

type WorkloadStatus string

const (
	WorkloadNormal   WorkloadStatus = "NORMAL"
	WorkloadWarning  WorkloadStatus = "WARNING"
	WorkloadCritical WorkloadStatus = "CRITICAL"
)

// WorkloadSnapshot holds the rolling metrics for one employee as of a
// target date. It is derived from shift history and never persisted.
type WorkloadSnapshot struct {
	EmployeeID        string         `json:"employee_id"`
	Date              time.Time      `json:"date"`
	CurrentShiftCount int            `json:"current_shift_count"`
	WeeklyHours       float64        `json:"weekly_hours"`
	MonthlyHours      float64        `json:"monthly_hours"`
	ConsecutiveDays   int            `json:"consecutive_days"`
	Status            WorkloadStatus `json:"status"`
}

// OverworkApproval is a supervisor-granted override allowing assignment
// past the critical workload limits, optionally bounded to a window.
type OverworkApproval struct {
	ID         int64      `json:"id"`
	EmployeeID string     `json:"employee_id"`
	Approved   bool       `json:"approved"`
	ValidFrom  *time.Time `json:"valid_from,omitempty"`
	ValidUntil *time.Time `json:"valid_until,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ValidAt reports whether the approval covers the given moment.
func (a *OverworkApproval) ValidAt(t time.Time) bool {
	if a == nil || !a.Approved {
		return false
	}
	if a.ValidFrom != nil && t.Before(*a.ValidFrom) {
		return false
	}
	if a.ValidUntil != nil && t.After(*a.ValidUntil) {
		return false
	}
	return true
}

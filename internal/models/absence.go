package models

import "time"

type AttendanceStatus string

const (
	AttendanceHadir     AttendanceStatus = "HADIR"
	AttendanceTerlambat AttendanceStatus = "TERLAMBAT"
	AttendanceSakit     AttendanceStatus = "SAKIT"
	AttendanceIzin      AttendanceStatus = "IZIN"
	AttendanceAlpha     AttendanceStatus = "ALPHA"
)

// AbsenceRecord is attendance bookkeeping owned by the reporting side.
// The engine reads it for context only; it never feeds workload hours.
type AbsenceRecord struct {
	ID         int64            `json:"id"`
	EmployeeID string           `json:"employee_id"`
	Date       time.Time        `json:"date"`
	CheckIn    *time.Time       `json:"check_in,omitempty"`
	CheckOut   *time.Time       `json:"check_out,omitempty"`
	Status     AttendanceStatus `json:"status"`
}

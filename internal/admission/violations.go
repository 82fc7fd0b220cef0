package admission

import (
	"errors"

	"staff-scheduling/internal/models"
)

type ViolationKind string

const (
	ViolationInvalidScheduleDay     ViolationKind = "INVALID_SCHEDULE_DAY"
	ViolationScheduleConflict       ViolationKind = "SCHEDULE_CONFLICT"
	ViolationCapacityExceeded       ViolationKind = "CAPACITY_EXCEEDED"
	ViolationWorkloadLimitExceeded  ViolationKind = "WORKLOAD_LIMIT_EXCEEDED"
	ViolationEmployeeUnavailable    ViolationKind = "EMPLOYEE_UNAVAILABLE"
	ViolationInvalidStateTransition ViolationKind = "INVALID_STATE_TRANSITION"
)

// Violation is one detected rule failure. Violations are returned as data so
// the caller can present every issue at once; they are never raised as errors.
type Violation struct {
	Kind    ViolationKind `json:"kind"`
	Message string        `json:"message"`

	// ScheduleConflict carries the ids of the shifts it collides with.
	ConflictingShiftIDs []int64 `json:"conflicting_shift_ids,omitempty"`

	// CapacityExceeded carries the observed occupancy and the location limit.
	Occupancy   int `json:"occupancy,omitempty"`
	MaxCapacity int `json:"max_capacity,omitempty"`

	// WorkloadLimitExceeded carries the snapshot that tripped the limit.
	Snapshot *models.WorkloadSnapshot `json:"snapshot,omitempty"`
}

// Advisory is a non-blocking workload notice: a WARNING classification, or a
// CRITICAL one admitted through a valid overwork approval.
type Advisory struct {
	Status     models.WorkloadStatus `json:"status"`
	Message    string                `json:"message"`
	Overridden bool                  `json:"overridden"`
}

// ValidationResult is the engine's admission verdict. Accepted is true iff
// the violation list is empty.
type ValidationResult struct {
	Accepted   bool                     `json:"accepted"`
	Violations []Violation              `json:"violations"`
	Advisories []Advisory               `json:"advisories,omitempty"`
	Snapshot   *models.WorkloadSnapshot `json:"snapshot,omitempty"`
}

func (r *ValidationResult) add(v Violation) {
	r.Violations = append(r.Violations, v)
}

// HasViolation reports whether the result contains a violation of the kind.
func (r *ValidationResult) HasViolation(kind ViolationKind) bool {
	for _, v := range r.Violations {
		if v.Kind == kind {
			return true
		}
	}
	return false
}

// Infrastructure failures, as opposed to business violations. These are the
// only conditions the engine surfaces as errors.
var (
	// ErrTxConflict marks a serialization conflict between concurrent
	// admissions; the store raises it and the engine retries on it.
	ErrTxConflict = errors.New("transaction conflict")

	// ErrStoreTimeout marks a store call that missed the caller's deadline.
	// Safe to retry; no partial writes were committed.
	ErrStoreTimeout = errors.New("schedule store timeout")

	ErrEmployeeNotFound = errors.New("employee not found")
	ErrShiftNotFound    = errors.New("shift not found")
	ErrSwapNotFound     = errors.New("swap request not found")
	ErrUnknownLocation  = errors.New("unknown location")

	// ErrNotAllowed marks a swap decision attempted by a user who is neither
	// the swap target nor a supervisor.
	ErrNotAllowed = errors.New("user may not decide this swap request")

	// ErrInvalidStateTransition is returned by RejectSwap when the request
	// is already terminal. ApproveSwap reports the same condition as a
	// violation so callers get the full structured result.
	ErrInvalidStateTransition = errors.New("invalid swap state transition")
)

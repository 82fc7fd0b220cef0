package admission

import (
	"context"
	"time"

	"staff-scheduling/internal/models"
	"staff-scheduling/internal/policy"
)

// DataStore defines the schedule-store operations the engine needs. Shift and
// swap rows are mutated only through the engine, so the write methods here are
// the full mutation surface of those tables.
type DataStore interface {
	GetEmployee(ctx context.Context, employeeID string) (*models.User, error)
	GetShift(ctx context.Context, id int64) (*models.Shift, error)
	GetShiftsForEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]*models.Shift, error)
	GetShiftsForLocation(ctx context.Context, location string, from, to time.Time) ([]*models.Shift, error)
	GetOverworkApproval(ctx context.Context, employeeID string) (*models.OverworkApproval, error)
	GetSwapRequest(ctx context.Context, id int64) (*models.ShiftSwapRequest, error)

	InsertShift(ctx context.Context, shift *models.Shift) error
	ReassignShift(ctx context.Context, shiftID int64, employeeID string) error
	UpdateSwapStatus(ctx context.Context, id int64, status models.SwapStatus) error

	// InTransaction runs fn against a transaction-scoped store at serializable
	// isolation. A serialization failure surfaces as ErrTxConflict after the
	// transaction rolls back.
	InTransaction(ctx context.Context, fn func(DataStore) error) error
}

// PolicyProvider resolves location scheduling policy. *policy.Table satisfies it.
type PolicyProvider interface {
	Lookup(code string) (*policy.LocationPolicy, bool)
}

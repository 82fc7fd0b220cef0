package admission

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"staff-scheduling/internal/models"
)

// txAttempts bounds the optimistic retries of an admission transaction
// before the conflict is surfaced to the caller.
const txAttempts = 3

// Engine is the validation orchestrator. It composes the schedule-day policy,
// conflict detector, workload aggregator, overwork policy, and capacity
// checker into one admission decision, collecting every violation instead of
// failing on the first.
type Engine struct {
	store    DataStore
	policies PolicyProvider
	limits   Limits
	logger   *zap.Logger
	now      func() time.Time
}

func NewEngine(store DataStore, policies PolicyProvider, limits Limits, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !limits.valid() {
		logger.Warn("workload limits are not usable, falling back to defaults",
			zap.Float64("max_weekly_hours", limits.MaxWeeklyHours),
			zap.Float64("max_monthly_hours", limits.MaxMonthlyHours),
			zap.Int("max_shifts_per_month", limits.MaxShiftsPerMonth),
			zap.Float64("warning_ratio", limits.WarningRatio))
		limits = DefaultLimits()
	}
	return &Engine{
		store:    store,
		policies: policies,
		limits:   limits,
		logger:   logger,
		now:      time.Now,
	}
}

// Validate runs the full check sequence for a candidate shift without writing
// anything. The store snapshot it reads is not locked, so an accepted result
// here is advisory; Admit re-validates inside the committing transaction.
func (e *Engine) Validate(ctx context.Context, req *models.ShiftRequest) (*ValidationResult, error) {
	return e.validate(ctx, e.store, req)
}

// Admit re-runs the full validation and, if accepted, inserts the shift, all
// inside one serializable transaction. Concurrent admissions that would
// jointly break a conflict or capacity invariant serialize against each
// other; losers are retried a bounded number of times.
func (e *Engine) Admit(ctx context.Context, req *models.ShiftRequest) (*ValidationResult, error) {
	var result *ValidationResult
	err := e.withRetry(ctx, "admit", func() error {
		return e.store.InTransaction(ctx, func(tx DataStore) error {
			r, err := e.validate(ctx, tx, req)
			if err != nil {
				return err
			}
			result = r
			if !r.Accepted {
				return nil
			}
			shift := req.Shift()
			shift.CreatedAt = e.now()
			return tx.InsertShift(ctx, shift)
		})
	})
	if err != nil {
		return nil, err
	}
	e.logger.Info("shift admission decided",
		zap.String("employee_id", req.EmployeeID),
		zap.String("location", req.Location),
		zap.Bool("accepted", result.Accepted),
		zap.Int("violations", len(result.Violations)))
	return result, nil
}

func (e *Engine) validate(ctx context.Context, store DataStore, req *models.ShiftRequest) (*ValidationResult, error) {
	employee, err := store.GetEmployee(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	pol, ok := e.policies.Lookup(req.Location)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLocation, req.Location)
	}

	result := &ValidationResult{}

	if !employee.Active {
		result.add(Violation{
			Kind:    ViolationEmployeeUnavailable,
			Message: fmt.Sprintf("employee %s is disabled for assignment", req.EmployeeID),
		})
	}

	dayAllowed := pol.AllowsWeekday(dayOf(req.Date).Weekday())
	if !dayAllowed {
		result.add(Violation{
			Kind: ViolationInvalidScheduleDay,
			Message: fmt.Sprintf("location %s does not operate on %s",
				req.Location, dayOf(req.Date).Weekday()),
		})
	}

	candidate := req.Shift()

	// One fetch covers both the conflict window [date-1, date+1] and the
	// workload lookback.
	historyFrom := dayOf(req.Date).AddDate(0, 0, -workloadLookbackDays)
	historyTo := dayOf(req.Date).AddDate(0, 0, 1)
	history, err := store.GetShiftsForEmployee(ctx, req.EmployeeID, historyFrom, historyTo)
	if err != nil {
		return nil, err
	}
	history = excludeShift(history, req.ExcludeShiftID)

	if conflicts := findConflicts(candidate, history, 0); len(conflicts) > 0 {
		result.add(Violation{
			Kind:                ViolationScheduleConflict,
			Message:             fmt.Sprintf("employee %s already has %d overlapping shift(s)", req.EmployeeID, len(conflicts)),
			ConflictingShiftIDs: conflicts,
		})
	}

	// Workload is judged as if the candidate were already on the books.
	snapshot := aggregateWorkload(req.EmployeeID, append(history, candidate), req.Date)
	snapshot.Status = classifyWorkload(snapshot, e.limits)
	result.Snapshot = snapshot

	switch snapshot.Status {
	case models.WorkloadCritical:
		approval, err := store.GetOverworkApproval(ctx, req.EmployeeID)
		if err != nil {
			return nil, err
		}
		if approval.ValidAt(e.now()) {
			result.Advisories = append(result.Advisories, Advisory{
				Status:     models.WorkloadCritical,
				Message:    "workload is critical; admitted under overwork approval",
				Overridden: true,
			})
		} else {
			result.add(Violation{
				Kind:     ViolationWorkloadLimitExceeded,
				Message:  fmt.Sprintf("employee %s workload is critical and no valid overwork approval exists", req.EmployeeID),
				Snapshot: snapshot,
			})
		}
	case models.WorkloadWarning:
		result.Advisories = append(result.Advisories, Advisory{
			Status:  models.WorkloadWarning,
			Message: "workload is approaching its limits",
		})
	}

	// Capacity arithmetic is meaningless on a day the location does not
	// operate, so the weekday violation short-circuits it.
	if dayAllowed {
		windowFrom := dayOf(req.Date).AddDate(0, 0, -1)
		locShifts, err := store.GetShiftsForLocation(ctx, req.Location, windowFrom, historyTo)
		if err != nil {
			return nil, err
		}
		occupancy := countOccupancy(candidate, locShifts, req.ExcludeShiftID)
		if exceedsCapacity(occupancy, pol.MaxCapacity) {
			result.add(Violation{
				Kind: ViolationCapacityExceeded,
				Message: fmt.Sprintf("location %s is at capacity (%d/%d)",
					req.Location, occupancy, pol.MaxCapacity),
				Occupancy:   occupancy,
				MaxCapacity: pol.MaxCapacity,
			})
		}
	}

	result.Accepted = len(result.Violations) == 0
	return result, nil
}

// withRetry reruns fn while it fails with ErrTxConflict, up to txAttempts.
func (e *Engine) withRetry(ctx context.Context, op string, fn func() error) error {
	var err error
	for attempt := 1; attempt <= txAttempts; attempt++ {
		err = fn()
		if err == nil || !errors.Is(err, ErrTxConflict) {
			return err
		}
		e.logger.Warn("transaction conflict, retrying",
			zap.String("op", op),
			zap.Int("attempt", attempt))
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %v", ErrStoreTimeout, ctx.Err())
		}
	}
	return fmt.Errorf("%s failed after %d attempts: %w", op, txAttempts, err)
}

func excludeShift(shifts []*models.Shift, id int64) []*models.Shift {
	if id == 0 {
		return shifts
	}
	filtered := make([]*models.Shift, 0, len(shifts))
	for _, s := range shifts {
		if s.ID != id {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

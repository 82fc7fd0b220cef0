package admission

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"staff-scheduling/internal/models"
)

// ApproveSwap moves a pending swap request to APPROVED and hands the shift to
// the target employee. The new assignment is re-validated (schedule day,
// conflicts, capacity) before anything commits; a failed re-validation
// returns the violations and leaves the request PENDING. A request already in
// a terminal state yields an InvalidStateTransition violation and no write.
func (e *Engine) ApproveSwap(ctx context.Context, requestID int64, actingUserID string) (*ValidationResult, error) {
	swap, err := e.store.GetSwapRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := e.authorizeSwapDecision(ctx, swap, actingUserID); err != nil {
		return nil, err
	}
	if !swap.Status.CanTransitionTo(models.SwapApproved) {
		return terminalSwapResult(swap), nil
	}

	shift, err := e.store.GetShift(ctx, swap.ShiftID)
	if err != nil {
		return nil, err
	}

	// The target employee takes over the shift; its own row is excluded so
	// the shift does not collide with itself.
	req := &models.ShiftRequest{
		EmployeeID:     swap.TargetUserID,
		Location:       shift.Location,
		Date:           shift.Date,
		Start:          shift.Start,
		End:            shift.End,
		ExcludeShiftID: shift.ID,
	}

	var result *ValidationResult
	err = e.withRetry(ctx, "approve swap", func() error {
		return e.store.InTransaction(ctx, func(tx DataStore) error {
			// The outer read was unlocked; a concurrent decision may have
			// landed since, so the lifecycle gate runs again on the row the
			// transaction actually sees.
			current, err := tx.GetSwapRequest(ctx, swap.ID)
			if err != nil {
				return err
			}
			if !current.Status.CanTransitionTo(models.SwapApproved) {
				result = terminalSwapResult(current)
				return nil
			}
			r, err := e.validateReassignment(ctx, tx, req)
			if err != nil {
				return err
			}
			result = r
			if !r.Accepted {
				return nil
			}
			if err := tx.ReassignShift(ctx, shift.ID, swap.TargetUserID); err != nil {
				return err
			}
			return tx.UpdateSwapStatus(ctx, swap.ID, models.SwapApproved)
		})
	})
	if err != nil {
		return nil, err
	}
	e.logger.Info("swap approval decided",
		zap.Int64("swap_id", swap.ID),
		zap.String("target_user_id", swap.TargetUserID),
		zap.Bool("accepted", result.Accepted))
	return result, nil
}

// RejectSwap moves a pending swap request to REJECTED. Rejection always
// succeeds on a pending request and is terminal; on a terminal request it
// returns ErrInvalidStateTransition and writes nothing.
func (e *Engine) RejectSwap(ctx context.Context, requestID int64, actingUserID string) error {
	swap, err := e.store.GetSwapRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if err := e.authorizeSwapDecision(ctx, swap, actingUserID); err != nil {
		return err
	}
	if !swap.Status.CanTransitionTo(models.SwapRejected) {
		return fmt.Errorf("%w: request %d is %s", ErrInvalidStateTransition, swap.ID, swap.Status)
	}

	err = e.withRetry(ctx, "reject swap", func() error {
		return e.store.InTransaction(ctx, func(tx DataStore) error {
			current, err := tx.GetSwapRequest(ctx, swap.ID)
			if err != nil {
				return err
			}
			if !current.Status.CanTransitionTo(models.SwapRejected) {
				return fmt.Errorf("%w: request %d is %s", ErrInvalidStateTransition, current.ID, current.Status)
			}
			return tx.UpdateSwapStatus(ctx, current.ID, models.SwapRejected)
		})
	})
	if err != nil {
		return err
	}
	e.logger.Info("swap request rejected",
		zap.Int64("swap_id", swap.ID),
		zap.String("acting_user_id", actingUserID))
	return nil
}

// authorizeSwapDecision enforces that only the swap's target or a supervisor
// decides it. Identity is already authenticated by the caller.
func (e *Engine) authorizeSwapDecision(ctx context.Context, swap *models.ShiftSwapRequest, actingUserID string) error {
	actor, err := e.store.GetEmployee(ctx, actingUserID)
	if err != nil {
		return err
	}
	if actor.EmployeeID != swap.TargetUserID && !actor.Role.CanDecideSwaps() {
		return fmt.Errorf("%w: user %s on request %d", ErrNotAllowed, actingUserID, swap.ID)
	}
	return nil
}

// validateReassignment runs the checks a swap approval needs: employee
// availability, schedule-day policy, conflicts, and capacity. Workload
// classification is not re-run here; the swap moves existing hours rather
// than adding new ones.
func (e *Engine) validateReassignment(ctx context.Context, store DataStore, req *models.ShiftRequest) (*ValidationResult, error) {
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

	candidate := req.Shift()
	dayAllowed := pol.AllowsWeekday(dayOf(req.Date).Weekday())
	if !dayAllowed {
		result.add(Violation{
			Kind: ViolationInvalidScheduleDay,
			Message: fmt.Sprintf("location %s does not operate on %s",
				req.Location, dayOf(req.Date).Weekday()),
		})
	}

	windowFrom := dayOf(req.Date).AddDate(0, 0, -1)
	windowTo := dayOf(req.Date).AddDate(0, 0, 1)

	existing, err := store.GetShiftsForEmployee(ctx, req.EmployeeID, windowFrom, windowTo)
	if err != nil {
		return nil, err
	}
	if conflicts := findConflicts(candidate, existing, req.ExcludeShiftID); len(conflicts) > 0 {
		result.add(Violation{
			Kind:                ViolationScheduleConflict,
			Message:             fmt.Sprintf("employee %s already has %d overlapping shift(s)", req.EmployeeID, len(conflicts)),
			ConflictingShiftIDs: conflicts,
		})
	}

	if dayAllowed {
		locShifts, err := store.GetShiftsForLocation(ctx, req.Location, windowFrom, windowTo)
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

func terminalSwapResult(swap *models.ShiftSwapRequest) *ValidationResult {
	r := &ValidationResult{}
	r.add(Violation{
		Kind:    ViolationInvalidStateTransition,
		Message: fmt.Sprintf("swap request %d is already %s", swap.ID, swap.Status),
	})
	return r
}

package models

import "time"

type SwapStatus string

const (
	SwapPending  SwapStatus = "PENDING"
	SwapApproved SwapStatus = "APPROVED"
	SwapRejected SwapStatus = "REJECTED"
)

// swapTransitions is the single authority on the swap lifecycle.
// APPROVED and REJECTED are terminal.
var swapTransitions = map[SwapStatus][]SwapStatus{
	SwapPending:  {SwapApproved, SwapRejected},
	SwapApproved: {},
	SwapRejected: {},
}

func (s SwapStatus) CanTransitionTo(next SwapStatus) bool {
	for _, allowed := range swapTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s SwapStatus) Terminal() bool {
	return len(swapTransitions[s]) == 0
}

// ShiftSwapRequest proposes handing one shift from the requester to the
// target employee. Requester and target are always distinct users.
type ShiftSwapRequest struct {
	ID           int64      `json:"id"`
	RequesterID  string     `json:"requester_id"`
	TargetUserID string     `json:"target_user_id"`
	ShiftID      int64      `json:"shift_id"`
	Status       SwapStatus `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
}

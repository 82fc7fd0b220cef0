package models

import (
	"testing"
	"time"
)

func TestOverworkApprovalValidAt(t *testing.T) {
	now := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)

	tests := []struct {
		name     string
		approval *OverworkApproval
		want     bool
	}{
		{"nil approval", nil, false},
		{"not approved", &OverworkApproval{Approved: false}, false},
		{"approved without window", &OverworkApproval{Approved: true}, true},
		{"inside window", &OverworkApproval{Approved: true, ValidFrom: &past, ValidUntil: &future}, true},
		{"before window", &OverworkApproval{Approved: true, ValidFrom: &future}, false},
		{"after window", &OverworkApproval{Approved: true, ValidUntil: &past}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.approval.ValidAt(now); got != tc.want {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

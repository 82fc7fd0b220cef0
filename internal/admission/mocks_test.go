package admission

import (
	"context"
	"time"

	"staff-scheduling/internal/models"
)

type MockDataStore struct {
	GetEmployeeFunc          func(ctx context.Context, employeeID string) (*models.User, error)
	GetShiftFunc             func(ctx context.Context, id int64) (*models.Shift, error)
	GetShiftsForEmployeeFunc func(ctx context.Context, employeeID string, from, to time.Time) ([]*models.Shift, error)
	GetShiftsForLocationFunc func(ctx context.Context, location string, from, to time.Time) ([]*models.Shift, error)
	GetOverworkApprovalFunc  func(ctx context.Context, employeeID string) (*models.OverworkApproval, error)
	GetSwapRequestFunc       func(ctx context.Context, id int64) (*models.ShiftSwapRequest, error)
	InsertShiftFunc          func(ctx context.Context, shift *models.Shift) error
	ReassignShiftFunc        func(ctx context.Context, shiftID int64, employeeID string) error
	UpdateSwapStatusFunc     func(ctx context.Context, id int64, status models.SwapStatus) error
	InTransactionFunc        func(ctx context.Context, fn func(DataStore) error) error

	// Write journal so tests can assert that nothing was persisted.
	InsertedShifts []*models.Shift
	Reassignments  map[int64]string
	StatusUpdates  map[int64]models.SwapStatus
	TxCount        int
}

func (m *MockDataStore) GetEmployee(ctx context.Context, employeeID string) (*models.User, error) {
	if m.GetEmployeeFunc != nil {
		return m.GetEmployeeFunc(ctx, employeeID)
	}
	return &models.User{EmployeeID: employeeID, Role: models.RolePerawat, Active: true}, nil
}

func (m *MockDataStore) GetShift(ctx context.Context, id int64) (*models.Shift, error) {
	return m.GetShiftFunc(ctx, id)
}

func (m *MockDataStore) GetShiftsForEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]*models.Shift, error) {
	if m.GetShiftsForEmployeeFunc != nil {
		return m.GetShiftsForEmployeeFunc(ctx, employeeID, from, to)
	}
	return nil, nil
}

func (m *MockDataStore) GetShiftsForLocation(ctx context.Context, location string, from, to time.Time) ([]*models.Shift, error) {
	if m.GetShiftsForLocationFunc != nil {
		return m.GetShiftsForLocationFunc(ctx, location, from, to)
	}
	return nil, nil
}

func (m *MockDataStore) GetOverworkApproval(ctx context.Context, employeeID string) (*models.OverworkApproval, error) {
	if m.GetOverworkApprovalFunc != nil {
		return m.GetOverworkApprovalFunc(ctx, employeeID)
	}
	return nil, nil
}

func (m *MockDataStore) GetSwapRequest(ctx context.Context, id int64) (*models.ShiftSwapRequest, error) {
	return m.GetSwapRequestFunc(ctx, id)
}

func (m *MockDataStore) InsertShift(ctx context.Context, shift *models.Shift) error {
	if m.InsertShiftFunc != nil {
		return m.InsertShiftFunc(ctx, shift)
	}
	m.InsertedShifts = append(m.InsertedShifts, shift)
	return nil
}

func (m *MockDataStore) ReassignShift(ctx context.Context, shiftID int64, employeeID string) error {
	if m.ReassignShiftFunc != nil {
		return m.ReassignShiftFunc(ctx, shiftID, employeeID)
	}
	if m.Reassignments == nil {
		m.Reassignments = make(map[int64]string)
	}
	m.Reassignments[shiftID] = employeeID
	return nil
}

func (m *MockDataStore) UpdateSwapStatus(ctx context.Context, id int64, status models.SwapStatus) error {
	if m.UpdateSwapStatusFunc != nil {
		return m.UpdateSwapStatusFunc(ctx, id, status)
	}
	if m.StatusUpdates == nil {
		m.StatusUpdates = make(map[int64]models.SwapStatus)
	}
	m.StatusUpdates[id] = status
	return nil
}

func (m *MockDataStore) InTransaction(ctx context.Context, fn func(DataStore) error) error {
	m.TxCount++
	if m.InTransactionFunc != nil {
		return m.InTransactionFunc(ctx, fn)
	}
	return fn(m)
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"staff-scheduling/internal/admission"
	"staff-scheduling/internal/db"
	"staff-scheduling/internal/models"
)

// PostgresStore implements admission.DataStore over the schedule schema.
// Shift and swap rows are only ever written through it, inside the engine's
// transactions.
type PostgresStore struct {
	conn   *sql.DB
	q      *db.Queries
	logger *zap.Logger
	inTx   bool
}

func NewPostgresStore(conn *sql.DB, logger *zap.Logger) *PostgresStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostgresStore{conn: conn, q: db.New(conn), logger: logger}
}

func (s *PostgresStore) GetEmployee(ctx context.Context, employeeID string) (*models.User, error) {
	row, err := s.q.GetUserByEmployeeID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", admission.ErrEmployeeNotFound, employeeID)
		}
		return nil, translateErr(err)
	}
	return &models.User{
		ID:         row.ID,
		Name:       row.Name,
		EmployeeID: row.EmployeeID,
		Role:       models.Role(row.Role),
		Active:     row.Active,
		CreatedAt:  row.CreatedAt,
	}, nil
}

func (s *PostgresStore) GetShift(ctx context.Context, id int64) (*models.Shift, error) {
	row, err := s.q.GetShift(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", admission.ErrShiftNotFound, id)
		}
		return nil, translateErr(err)
	}
	return shiftFromRow(row), nil
}

func (s *PostgresStore) GetShiftsForEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]*models.Shift, error) {
	rows, err := s.q.ListShiftsForEmployee(ctx, employeeID, from, to)
	if err != nil {
		return nil, translateErr(err)
	}
	return shiftsFromRows(rows), nil
}

func (s *PostgresStore) GetShiftsForLocation(ctx context.Context, location string, from, to time.Time) ([]*models.Shift, error) {
	rows, err := s.q.ListShiftsForLocation(ctx, location, from, to)
	if err != nil {
		return nil, translateErr(err)
	}
	return shiftsFromRows(rows), nil
}

// GetOverworkApproval returns nil when the employee has no approval row;
// a nil approval simply means no override exists.
func (s *PostgresStore) GetOverworkApproval(ctx context.Context, employeeID string) (*models.OverworkApproval, error) {
	row, err := s.q.GetOverworkApproval(ctx, employeeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, translateErr(err)
	}
	approval := &models.OverworkApproval{
		ID:         row.ID,
		EmployeeID: row.EmployeeID,
		Approved:   row.Approved,
		CreatedAt:  row.CreatedAt,
	}
	if row.ValidFrom.Valid {
		t := row.ValidFrom.Time
		approval.ValidFrom = &t
	}
	if row.ValidUntil.Valid {
		t := row.ValidUntil.Time
		approval.ValidUntil = &t
	}
	return approval, nil
}

func (s *PostgresStore) GetSwapRequest(ctx context.Context, id int64) (*models.ShiftSwapRequest, error) {
	row, err := s.q.GetSwapRequest(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", admission.ErrSwapNotFound, id)
		}
		return nil, translateErr(err)
	}
	return &models.ShiftSwapRequest{
		ID:           row.ID,
		RequesterID:  row.RequesterID,
		TargetUserID: row.TargetUserID,
		ShiftID:      row.ShiftID,
		Status:       models.SwapStatus(row.Status),
		CreatedAt:    row.CreatedAt,
	}, nil
}

// GetAbsenceRecords serves the reporting side of the schedule store; the
// engine itself does not consume attendance for workload hours.
func (s *PostgresStore) GetAbsenceRecords(ctx context.Context, employeeID string, from, to time.Time) ([]*models.AbsenceRecord, error) {
	rows, err := s.q.ListAbsenceRecords(ctx, employeeID, from, to)
	if err != nil {
		return nil, translateErr(err)
	}
	records := make([]*models.AbsenceRecord, 0, len(rows))
	for _, r := range rows {
		rec := &models.AbsenceRecord{
			ID:         r.ID,
			EmployeeID: r.EmployeeID,
			Date:       r.RecordDate,
			Status:     models.AttendanceStatus(r.Status),
		}
		if r.CheckIn.Valid {
			t := r.CheckIn.Time
			rec.CheckIn = &t
		}
		if r.CheckOut.Valid {
			t := r.CheckOut.Time
			rec.CheckOut = &t
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *PostgresStore) InsertShift(ctx context.Context, shift *models.Shift) error {
	id, err := s.q.InsertShift(ctx, db.Shift{
		EmployeeID:  shift.EmployeeID,
		Location:    shift.Location,
		ShiftDate:   shift.Date,
		StartMinute: shift.Start.Minutes(),
		EndMinute:   shift.End.Minutes(),
		CreatedAt:   shift.CreatedAt,
	})
	if err != nil {
		return translateErr(err)
	}
	shift.ID = id
	return nil
}

func (s *PostgresStore) ReassignShift(ctx context.Context, shiftID int64, employeeID string) error {
	return translateErr(s.q.UpdateShiftEmployee(ctx, shiftID, employeeID))
}

func (s *PostgresStore) UpdateSwapStatus(ctx context.Context, id int64, status models.SwapStatus) error {
	return translateErr(s.q.UpdateSwapStatus(ctx, id, string(status)))
}

// InTransaction runs fn against a serializable transaction-scoped store.
// Nested calls join the enclosing transaction.
func (s *PostgresStore) InTransaction(ctx context.Context, fn func(admission.DataStore) error) error {
	if s.inTx {
		return fn(s)
	}

	tx, err := s.conn.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return translateErr(err)
	}

	txStore := &PostgresStore{conn: s.conn, q: s.q.WithTx(tx), logger: s.logger, inTx: true}
	if err := fn(txStore); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			s.logger.Error("transaction rollback failed", zap.Error(rbErr))
		}
		return translateErr(err)
	}
	if err := tx.Commit(); err != nil {
		return translateErr(err)
	}
	return nil
}

func shiftFromRow(row db.Shift) *models.Shift {
	return &models.Shift{
		ID:         row.ID,
		EmployeeID: row.EmployeeID,
		Location:   row.Location,
		Date:       row.ShiftDate,
		Start:      models.ClockTime(row.StartMinute),
		End:        models.ClockTime(row.EndMinute),
		CreatedAt:  row.CreatedAt,
	}
}

func shiftsFromRows(rows []db.Shift) []*models.Shift {
	shifts := make([]*models.Shift, 0, len(rows))
	for _, r := range rows {
		shifts = append(shifts, shiftFromRow(r))
	}
	return shifts
}

// Postgres error codes that mark a transaction which should be retried.
const (
	pqSerializationFailure = "40001"
	pqDeadlockDetected     = "40P01"
)

// translateErr maps driver failures onto the engine's infrastructure errors:
// serialization conflicts become ErrTxConflict, deadline misses become
// ErrStoreTimeout. Everything else passes through.
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if string(pqErr.Code) == pqSerializationFailure || string(pqErr.Code) == pqDeadlockDetected {
			return fmt.Errorf("%w: %v", admission.ErrTxConflict, err)
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", admission.ErrStoreTimeout, err)
	}
	return err
}

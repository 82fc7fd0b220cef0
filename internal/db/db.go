package db

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is the execution surface shared by *sql.DB and *sql.Tx, so the same
// queries run standalone or inside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Queries wraps hand-written SQL in the sqlc style.
type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx rebinds the queries to a transaction.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

type User struct {
	ID         int64
	Name       string
	EmployeeID string
	Role       string
	Active     bool
	CreatedAt  time.Time
}

type Shift struct {
	ID          int64
	EmployeeID  string
	Location    string
	ShiftDate   time.Time
	StartMinute int
	EndMinute   int
	CreatedAt   time.Time
}

type SwapRequest struct {
	ID           int64
	RequesterID  string
	TargetUserID string
	ShiftID      int64
	Status       string
	CreatedAt    time.Time
}

type OverworkApproval struct {
	ID         int64
	EmployeeID string
	Approved   bool
	ValidFrom  sql.NullTime
	ValidUntil sql.NullTime
	CreatedAt  time.Time
}

type AbsenceRecord struct {
	ID         int64
	EmployeeID string
	RecordDate time.Time
	CheckIn    sql.NullTime
	CheckOut   sql.NullTime
	Status     string
}

func (q *Queries) GetUserByEmployeeID(ctx context.Context, employeeID string) (User, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT id, name, employee_id, role, active, created_at FROM users WHERE employee_id = $1",
		employeeID)
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.EmployeeID, &u.Role, &u.Active, &u.CreatedAt)
	return u, err
}

func (q *Queries) GetShift(ctx context.Context, id int64) (Shift, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT id, employee_id, location, shift_date, start_minute, end_minute, created_at FROM shifts WHERE id = $1",
		id)
	var s Shift
	err := row.Scan(&s.ID, &s.EmployeeID, &s.Location, &s.ShiftDate, &s.StartMinute, &s.EndMinute, &s.CreatedAt)
	return s, err
}

func (q *Queries) ListShiftsForEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]Shift, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT id, employee_id, location, shift_date, start_minute, end_minute, created_at FROM shifts WHERE employee_id = $1 AND shift_date BETWEEN $2 AND $3 ORDER BY shift_date, start_minute",
		employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanShifts(rows)
}

func (q *Queries) ListShiftsForLocation(ctx context.Context, location string, from, to time.Time) ([]Shift, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT id, employee_id, location, shift_date, start_minute, end_minute, created_at FROM shifts WHERE location = $1 AND shift_date BETWEEN $2 AND $3 ORDER BY shift_date, start_minute",
		location, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanShifts(rows)
}

func scanShifts(rows *sql.Rows) ([]Shift, error) {
	var items []Shift
	for rows.Next() {
		var s Shift
		if err := rows.Scan(&s.ID, &s.EmployeeID, &s.Location, &s.ShiftDate, &s.StartMinute, &s.EndMinute, &s.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

func (q *Queries) InsertShift(ctx context.Context, arg Shift) (int64, error) {
	row := q.db.QueryRowContext(ctx,
		"INSERT INTO shifts (employee_id, location, shift_date, start_minute, end_minute, created_at) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id",
		arg.EmployeeID, arg.Location, arg.ShiftDate, arg.StartMinute, arg.EndMinute, arg.CreatedAt)
	var id int64
	err := row.Scan(&id)
	return id, err
}

func (q *Queries) UpdateShiftEmployee(ctx context.Context, id int64, employeeID string) error {
	_, err := q.db.ExecContext(ctx,
		"UPDATE shifts SET employee_id = $2 WHERE id = $1",
		id, employeeID)
	return err
}

func (q *Queries) GetSwapRequest(ctx context.Context, id int64) (SwapRequest, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT id, requester_id, target_user_id, shift_id, status, created_at FROM swap_requests WHERE id = $1",
		id)
	var r SwapRequest
	err := row.Scan(&r.ID, &r.RequesterID, &r.TargetUserID, &r.ShiftID, &r.Status, &r.CreatedAt)
	return r, err
}

func (q *Queries) UpdateSwapStatus(ctx context.Context, id int64, status string) error {
	_, err := q.db.ExecContext(ctx,
		"UPDATE swap_requests SET status = $2 WHERE id = $1",
		id, status)
	return err
}

// GetOverworkApproval returns the most recent approval row for the employee.
func (q *Queries) GetOverworkApproval(ctx context.Context, employeeID string) (OverworkApproval, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT id, employee_id, approved, valid_from, valid_until, created_at FROM overwork_approvals WHERE employee_id = $1 ORDER BY created_at DESC LIMIT 1",
		employeeID)
	var a OverworkApproval
	err := row.Scan(&a.ID, &a.EmployeeID, &a.Approved, &a.ValidFrom, &a.ValidUntil, &a.CreatedAt)
	return a, err
}

func (q *Queries) ListAbsenceRecords(ctx context.Context, employeeID string, from, to time.Time) ([]AbsenceRecord, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT id, employee_id, record_date, check_in, check_out, status FROM absence_records WHERE employee_id = $1 AND record_date BETWEEN $2 AND $3 ORDER BY record_date",
		employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []AbsenceRecord
	for rows.Next() {
		var a AbsenceRecord
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.RecordDate, &a.CheckIn, &a.CheckOut, &a.Status); err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

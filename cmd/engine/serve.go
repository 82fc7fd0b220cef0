package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"staff-scheduling/internal/admission"
	"staff-scheduling/internal/models"
)

// requestTimeout bounds every store round-trip behind one handler call.
const requestTimeout = 10 * time.Second

// AbsenceReader serves the attendance records the reporting consumer pulls
// alongside admission verdicts. The store satisfies it.
type AbsenceReader interface {
	GetAbsenceRecords(ctx context.Context, employeeID string, from, to time.Time) ([]*models.AbsenceRecord, error)
}

// server is the thin JSON surface over the engine. It marshals requests and
// verdicts only; authorization happened upstream and identity arrives
// pre-resolved in the payload.
type server struct {
	engine   *admission.Engine
	absences AbsenceReader
	logger   *zap.Logger
}

func newServer(engine *admission.Engine, absences AbsenceReader, logger *zap.Logger) *server {
	return &server{engine: engine, absences: absences, logger: logger}
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("POST /api/shifts/validate", s.handleValidate)
	mux.HandleFunc("POST /api/shifts", s.handleAdmit)
	mux.HandleFunc("POST /api/swaps/{id}/approve", s.handleApproveSwap)
	mux.HandleFunc("POST /api/swaps/{id}/reject", s.handleRejectSwap)
	mux.HandleFunc("GET /api/employees/{id}/absences", s.handleAbsences)
	return mux
}

type shiftRequestDTO struct {
	EmployeeID     string `json:"employee_id"`
	Location       string `json:"location"`
	Date           string `json:"date"`  // "2006-01-02"
	Start          string `json:"start"` // "HH:MM"
	End            string `json:"end"`
	ExcludeShiftID int64  `json:"exclude_shift_id,omitempty"`
}

func (d *shiftRequestDTO) toRequest() (*models.ShiftRequest, error) {
	date, err := time.Parse("2006-01-02", d.Date)
	if err != nil {
		return nil, err
	}
	start, err := models.ParseClockTime(d.Start)
	if err != nil {
		return nil, err
	}
	end, err := models.ParseClockTime(d.End)
	if err != nil {
		return nil, err
	}
	return &models.ShiftRequest{
		EmployeeID:     d.EmployeeID,
		Location:       d.Location,
		Date:           date,
		Start:          start,
		End:            end,
		ExcludeShiftID: d.ExcludeShiftID,
	}, nil
}

func (s *server) handleValidate(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeShiftRequest(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := s.engine.Validate(ctx, req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *server) handleAdmit(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeShiftRequest(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := s.engine.Admit(ctx, req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	status := http.StatusCreated
	if !result.Accepted {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, result)
}

type swapActionDTO struct {
	ActingUserID string `json:"acting_user_id"`
}

func (s *server) handleApproveSwap(w http.ResponseWriter, r *http.Request) {
	id, action, ok := s.decodeSwapAction(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := s.engine.ApproveSwap(ctx, id, action.ActingUserID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	status := http.StatusOK
	if !result.Accepted {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, result)
}

func (s *server) handleRejectSwap(w http.ResponseWriter, r *http.Request) {
	id, action, ok := s.decodeSwapAction(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := s.engine.RejectSwap(ctx, id, action.ActingUserID); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleAbsences(w http.ResponseWriter, r *http.Request) {
	employeeID := r.PathValue("id")
	from, err := time.Parse("2006-01-02", r.URL.Query().Get("from"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid or missing from date"))
		return
	}
	to, err := time.Parse("2006-01-02", r.URL.Query().Get("to"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid or missing to date"))
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	records, err := s.absences.GetAbsenceRecords(ctx, employeeID, from, to)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if records == nil {
		records = []*models.AbsenceRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *server) decodeShiftRequest(w http.ResponseWriter, r *http.Request) (*models.ShiftRequest, bool) {
	var dto shiftRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid request body"))
		return nil, false
	}
	req, err := dto.toRequest()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return nil, false
	}
	return req, true
}

func (s *server) decodeSwapAction(w http.ResponseWriter, r *http.Request) (int64, *swapActionDTO, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid swap request id"))
		return 0, nil, false
	}
	var dto swapActionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid request body"))
		return 0, nil, false
	}
	if dto.ActingUserID == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("acting_user_id is required"))
		return 0, nil, false
	}
	return id, &dto, true
}

func (s *server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, admission.ErrEmployeeNotFound),
		errors.Is(err, admission.ErrShiftNotFound),
		errors.Is(err, admission.ErrSwapNotFound):
		writeJSON(w, http.StatusNotFound, errorBody(err.Error()))
	case errors.Is(err, admission.ErrUnknownLocation):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, admission.ErrNotAllowed):
		writeJSON(w, http.StatusForbidden, errorBody(err.Error()))
	case errors.Is(err, admission.ErrInvalidStateTransition):
		writeJSON(w, http.StatusConflict, errorBody(err.Error()))
	case errors.Is(err, admission.ErrStoreTimeout):
		writeJSON(w, http.StatusGatewayTimeout, errorBody(err.Error()))
	case errors.Is(err, admission.ErrTxConflict):
		writeJSON(w, http.StatusServiceUnavailable, errorBody("schedule store is busy, retry the request"))
	default:
		s.logger.Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

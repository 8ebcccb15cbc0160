/*
handlers.go - HTTP API handlers for the attendance engine

PURPOSE:
  Exposes the attendance service via REST. Handles HTTP request/response and
  JSON serialization, and delegates every decision to the domain layer.

ENDPOINTS:
  Employees:
    GET    /api/employees               List all employees
    POST   /api/employees               Create employee
    GET    /api/employees/{id}          Get employee details
    DELETE /api/employees/{id}          Delete employee (cascades into ledger)
    GET    /api/employees/{id}/status   Open-session status
    POST   /api/employees/{id}/checkin  Open a session now
    POST   /api/employees/{id}/checkout Close the open session now

  Reports:
    GET    /api/reports/daily?date=YYYY-MM-DD
    GET    /api/reports/range?employee_id=&start=&end=
    GET    /api/reports/daily/export    xlsx download
    GET    /api/reports/range/export    xlsx download

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Invalid input, invalid range
  - 404: Unknown employee
  - 409: Duplicate id, already checked in, no open session
  - 500: Internal errors
  "No data" reports are a 200 with a no_data marker, not an error.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/warp/attendance-engine/attendance"
	"github.com/warp/attendance-engine/export"
	"github.com/xuri/excelize/v2"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds the service dependency for all HTTP handlers.
type Handler struct {
	Service *attendance.Service
}

// NewHandler creates a new handler around the attendance service.
func NewHandler(service *attendance.Service) *Handler {
	return &Handler{Service: service}
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns all employees ordered by id.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees := h.Service.ListEmployees()

	dtos := make([]EmployeeDTO, len(employees))
	for i, emp := range employees {
		dtos[i] = employeeDTO(emp)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateEmployee creates a new employee.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.Service.AddEmployee(r.Context(), req.ID, req.Name, req.Department, req.MonthlySalary); err != nil {
		writeDomainError(w, err)
		return
	}

	emp, err := h.Service.Employee(req.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, employeeDTO(emp))
}

// GetEmployee returns a single employee.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Service.Employee(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, employeeDTO(emp))
}

// DeleteEmployee removes an employee and all their sessions.
func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.RemoveEmployee(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// SESSION HANDLERS
// =============================================================================

// GetStatus reports whether the employee is currently checked in, and since
// which date.
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.Service.Status(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, StatusDTO{
		EmployeeID: status.EmployeeID,
		Name:       status.Name,
		CheckedIn:  status.CheckedIn,
		OpenDate:   status.OpenDate,
		Stale:      status.Stale,
	})
}

// CheckIn opens a session for the employee at the current time.
func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	res, err := h.Service.CheckIn(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, CheckInDTO{
		EmployeeID: id,
		Date:       res.Date,
		CheckIn:    res.Session.CheckIn,
	})
}

// CheckOut closes the employee's open session at the current time.
func (h *Handler) CheckOut(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	res, err := h.Service.CheckOut(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, CheckOutDTO{
		EmployeeID: id,
		Date:       res.Date,
		CheckIn:    res.Session.CheckIn,
		CheckOut:   res.Session.CheckOut,
		Stale:      res.Stale,
	})
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// GetDailyReport returns the daily report for ?date=.
func (h *Handler) GetDailyReport(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	rows, err := h.Service.DailyReport(date)
	if errors.Is(err, attendance.ErrNoData) {
		writeJSON(w, http.StatusOK, DailyReportDTO{Date: date, NoData: true})
		return
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}

	dto := DailyReportDTO{Date: date, Rows: make([]DailyRowDTO, len(rows))}
	for i, row := range rows {
		dto.Rows[i] = dailyRowDTO(row)
	}
	writeJSON(w, http.StatusOK, dto)
}

// GetRangeReport returns the range report for ?employee_id=&start=&end=.
func (h *Handler) GetRangeReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	employeeID, start, end := q.Get("employee_id"), q.Get("start"), q.Get("end")

	report, err := h.Service.RangeReport(employeeID, start, end)
	if errors.Is(err, attendance.ErrNoData) {
		writeJSON(w, http.StatusOK, RangeReportDTO{
			EmployeeID: employeeID, Start: start, End: end, NoData: true,
		})
		return
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rangeReportDTO(report))
}

// ExportDailyReport streams the daily report as an xlsx attachment.
func (h *Handler) ExportDailyReport(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	rows, err := h.Service.DailyReport(date)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	book, err := export.DailyWorkbook(date, rows)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build workbook", err)
		return
	}
	writeWorkbook(w, "daily-"+date+".xlsx", book)
}

// ExportRangeReport streams the range report as an xlsx attachment.
func (h *Handler) ExportRangeReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	report, err := h.Service.RangeReport(q.Get("employee_id"), q.Get("start"), q.Get("end"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	book, err := export.RangeWorkbook(report)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build workbook", err)
		return
	}
	writeWorkbook(w, "range-"+report.EmployeeID+"-"+report.Start+"-"+report.End+".xlsx", book)
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string, err error) {
	resp := errorResponse{Error: msg}
	if err != nil {
		resp.Detail = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps domain error kinds to HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case attendance.IsNotFound(err):
		status = http.StatusNotFound
	case errors.Is(err, attendance.ErrDuplicateID),
		errors.Is(err, attendance.ErrAlreadyOpen),
		errors.Is(err, attendance.ErrNoOpenSession):
		status = http.StatusConflict
	case errors.Is(err, attendance.ErrInvalidInput),
		errors.Is(err, attendance.ErrInvalidRange),
		errors.Is(err, attendance.ErrNoData):
		// ErrNoData reaches here only from export endpoints, where there is
		// nothing to stream.
		status = http.StatusBadRequest
	}
	writeError(w, status, err.Error(), nil)
}

func writeWorkbook(w http.ResponseWriter, filename string, book *excelize.File) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	// Headers are committed once streaming starts, so a mid-stream failure can
	// only be logged.
	if err := book.Write(w); err != nil {
		log.Printf("write workbook %s: %v", filename, err)
	}
}

/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done by the domain layer, not in DTOs. DTOs are pure data
  carriers; numeric report values are rendered as strings to keep the
  two-decimal rounding exact on the wire.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import "github.com/warp/attendance-engine/attendance"

// =============================================================================
// EMPLOYEE TYPES
// =============================================================================

// EmployeeDTO represents an employee in API responses.
type EmployeeDTO struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Department    string  `json:"department,omitempty"`
	MonthlySalary float64 `json:"monthly_salary"`
	HourlyRate    string  `json:"hourly_rate"`
}

// CreateEmployeeRequest is the request to create an employee.
type CreateEmployeeRequest struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Department    string  `json:"department"`
	MonthlySalary float64 `json:"monthly_salary"`
}

func employeeDTO(emp attendance.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:            emp.ID,
		Name:          emp.Name,
		Department:    emp.Department,
		MonthlySalary: emp.MonthlySalary,
		HourlyRate:    attendance.HourlyRateFor(emp.MonthlySalary).StringFixed(2),
	}
}

// =============================================================================
// SESSION TYPES
// =============================================================================

// StatusDTO reports whether an employee is currently checked in.
type StatusDTO struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	CheckedIn  bool   `json:"checked_in"`
	OpenDate   string `json:"open_date,omitempty"`
	Stale      bool   `json:"stale,omitempty"`
}

// CheckInDTO is the response to a successful check-in.
type CheckInDTO struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	CheckIn    string `json:"check_in"`
}

// CheckOutDTO is the response to a successful check-out. Stale marks that a
// session left open on an earlier date was closed.
type CheckOutDTO struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Stale      bool   `json:"stale,omitempty"`
}

// =============================================================================
// REPORT TYPES
// =============================================================================

// DailyRowDTO is one line of a daily report. Hours and Salary are empty
// strings when the session is still open.
type DailyRowDTO struct {
	EmployeeID string `json:"employee_id"`
	Seq        int    `json:"seq,omitempty"`
	Name       string `json:"name"`
	CheckIn    string `json:"check_in,omitempty"`
	CheckOut   string `json:"check_out,omitempty"`
	Hours      string `json:"hours"`
	Salary     string `json:"salary"`
	Total      bool   `json:"total,omitempty"`
}

// DailyReportDTO wraps a daily report. NoData marks the informational
// "nothing recorded for this date" outcome.
type DailyReportDTO struct {
	Date   string        `json:"date"`
	Rows   []DailyRowDTO `json:"rows"`
	NoData bool          `json:"no_data,omitempty"`
}

// RangeRowDTO is one day of a range report.
type RangeRowDTO struct {
	Date         string `json:"date"`
	FirstCheckIn string `json:"first_check_in"`
	LastCheckOut string `json:"last_check_out"`
	Hours        string `json:"hours"`
	Salary       string `json:"salary"`
}

// RangeReportDTO wraps a range report with its grand total.
type RangeReportDTO struct {
	EmployeeID  string        `json:"employee_id"`
	Start       string        `json:"start"`
	End         string        `json:"end"`
	Days        []RangeRowDTO `json:"days"`
	TotalHours  string        `json:"total_hours,omitempty"`
	TotalSalary string        `json:"total_salary,omitempty"`
	NoData      bool          `json:"no_data,omitempty"`
}

func dailyRowDTO(row attendance.DailyRow) DailyRowDTO {
	dto := DailyRowDTO{
		EmployeeID: row.EmployeeID,
		Seq:        row.Seq,
		Name:       row.Name,
		CheckIn:    row.CheckIn,
		CheckOut:   row.CheckOut,
		Total:      row.Total,
	}
	if row.HasHours {
		dto.Hours = row.Hours.StringFixed(2)
		dto.Salary = row.Pay.StringFixed(2)
	}
	return dto
}

func rangeReportDTO(report *attendance.RangeReport) RangeReportDTO {
	dto := RangeReportDTO{
		EmployeeID:  report.EmployeeID,
		Start:       report.Start,
		End:         report.End,
		TotalHours:  report.TotalHours.StringFixed(2),
		TotalSalary: report.TotalPay.StringFixed(2),
	}
	for _, day := range report.Days {
		dto.Days = append(dto.Days, RangeRowDTO{
			Date:         day.Date,
			FirstCheckIn: day.FirstCheckIn,
			LastCheckOut: day.LastCheckOut,
			Hours:        day.Hours.StringFixed(2),
			Salary:       day.Pay.StringFixed(2),
		})
	}
	return dto
}

/*
report.go - Daily and date-range report aggregation

PURPOSE:
  Turns raw ledger sessions into payroll summaries. Reads only; never mutates
  the state. All hour/pay figures follow the rounding contract in payroll.go:
  totals are sums of already-rounded per-session (or per-day) values.

REPORT SHAPES:
  DailyReport: one row per session for every employee present on the date,
  plus a trailing per-employee total row when the employee has at least one
  closed session that day. The total row's pay is the hourly rate applied to
  the summed hours, rounded once more.

  RangeReport: one row per day with worked hours inside the range, carrying
  the day's first check-in and the last recorded check-out, plus a grand
  total over the period. The day's pay applies the rate once to the day's
  total hours, not per session.
*/
package attendance

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// DAILY REPORT
// =============================================================================

// DailyRow is one line of a daily report. Seq numbers an employee's sessions
// within the day starting at 1; it is 0 on total rows. HasHours is false when
// the session is open or unparsable, in which case Hours and Pay are zero and
// should render blank.
type DailyRow struct {
	EmployeeID string
	Seq        int
	Name       string
	CheckIn    string
	CheckOut   string
	Hours      decimal.Decimal
	Pay        decimal.Decimal
	HasHours   bool
	Total      bool
}

// DailyReport builds the report for one date. Employees with no sessions on
// the date are omitted; a date with no entries at all yields ErrNoData.
// Sessions of employees no longer in the directory are skipped.
func (s *State) DailyReport(date string) ([]DailyRow, error) {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	byEmployee, ok := s.Ledger[date]
	if !ok {
		return nil, fmt.Errorf("%w for date %s", ErrNoData, date)
	}

	ids := make([]string, 0, len(byEmployee))
	for id := range byEmployee {
		if _, known := s.Employees[id]; known {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	var rows []DailyRow
	for _, id := range ids {
		emp := s.Employees[id]
		rate := HourlyRateFor(emp.MonthlySalary)

		totalHours := decimal.Zero
		closed := 0

		for i, session := range byEmployee[id] {
			row := DailyRow{
				EmployeeID: id,
				Seq:        i + 1,
				Name:       emp.Name,
				CheckIn:    session.CheckIn,
				CheckOut:   session.CheckOut,
			}
			if hours, okHours := SessionHours(session); okHours {
				row.Hours = hours
				row.Pay = Salary(rate, hours)
				row.HasHours = true
				totalHours = totalHours.Add(hours)
				closed++
			}
			rows = append(rows, row)
		}

		if closed > 0 {
			rows = append(rows, DailyRow{
				EmployeeID: id,
				Name:       emp.Name,
				Hours:      totalHours,
				Pay:        Salary(rate, totalHours),
				HasHours:   true,
				Total:      true,
			})
		}
	}
	return rows, nil
}

// =============================================================================
// RANGE REPORT
// =============================================================================

// RangeRow summarizes one day of a range report. LastCheckOut is the
// check-out of the last session in insertion order that has one; it stays
// empty when every session of the day is open.
type RangeRow struct {
	Date         string
	FirstCheckIn string
	LastCheckOut string
	Hours        decimal.Decimal
	Pay          decimal.Decimal
}

// RangeReport is the full per-employee summary over an inclusive date range.
type RangeReport struct {
	EmployeeID string
	Start      string
	End        string
	Days       []RangeRow
	TotalHours decimal.Decimal
	TotalPay   decimal.Decimal
}

// BuildRangeReport walks every calendar date from start to end inclusive and
// aggregates the employee's worked hours per day. Days with no positive total
// are omitted. When no day in the range has hours, ErrNoData is returned.
func (s *State) BuildRangeReport(employeeID, start, end string) (*RangeReport, error) {
	emp, err := s.Employee(employeeID)
	if err != nil {
		return nil, err
	}
	startT, err := time.Parse(DateLayout, start)
	if err != nil {
		return nil, fmt.Errorf("%w: start date must be YYYY-MM-DD", ErrInvalidInput)
	}
	endT, err := time.Parse(DateLayout, end)
	if err != nil {
		return nil, fmt.Errorf("%w: end date must be YYYY-MM-DD", ErrInvalidInput)
	}
	if startT.After(endT) {
		return nil, fmt.Errorf("%w (%s > %s)", ErrInvalidRange, start, end)
	}

	rate := HourlyRateFor(emp.MonthlySalary)
	report := &RangeReport{
		EmployeeID: employeeID,
		Start:      start,
		End:        end,
		TotalHours: decimal.Zero,
		TotalPay:   decimal.Zero,
	}

	for cur := startT; !cur.After(endT); cur = cur.AddDate(0, 0, 1) {
		date := cur.Format(DateLayout)
		sessions := s.Ledger[date][employeeID]
		if len(sessions) == 0 {
			continue
		}

		dayTotal := decimal.Zero
		for _, session := range sessions {
			if hours, okHours := SessionHours(session); okHours {
				dayTotal = dayTotal.Add(hours)
			}
		}
		if !dayTotal.IsPositive() {
			continue
		}

		dayPay := Salary(rate, dayTotal)

		lastCheckOut := ""
		for i := len(sessions) - 1; i >= 0; i-- {
			if sessions[i].CheckOut != "" {
				lastCheckOut = sessions[i].CheckOut
				break
			}
		}

		report.Days = append(report.Days, RangeRow{
			Date:         date,
			FirstCheckIn: sessions[0].CheckIn,
			LastCheckOut: lastCheckOut,
			Hours:        dayTotal,
			Pay:          dayPay,
		})
		report.TotalHours = report.TotalHours.Add(dayTotal)
		report.TotalPay = report.TotalPay.Add(dayPay)
	}

	if !report.TotalHours.IsPositive() {
		return nil, fmt.Errorf("%w for employee %s between %s and %s", ErrNoData, employeeID, start, end)
	}
	return report, nil
}

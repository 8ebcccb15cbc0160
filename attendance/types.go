/*
Package attendance provides the core attendance ledger engine.

PURPOSE:
  This package contains the domain types and algorithms for tracking employee
  attendance sessions (check-in/check-out pairs) and deriving worked hours and
  pay from them. It owns the ledger invariants, the check-in/check-out state
  machine, and the report aggregation logic. Rendering, persistence formats,
  and transport are external collaborators.

KEY CONCEPTS IN THIS FILE (types.go):
  - Employee: Identity and compensation terms
  - Session: One check-in/check-out pair on a given date
  - Ledger: date -> employee id -> ordered sessions
  - State: The Directory (employees) plus the Ledger, owned by one Service

DESIGN PRINCIPLES:
  1. Single open session: An employee has at most one open session across the
     whole ledger, on any date. This is the central correctness rule; without
     it hours and pay would be double-counted.
  2. Precision: Uses decimal.Decimal for all hour/pay math, rounded half-up to
     two decimals at every derived value (see payroll.go).
  3. Insertion order: Sessions within a (date, employee) entry keep creation
     order and are never sorted.
  4. Tolerance: Timestamps are stored as strings in the persisted layout;
     records that fail to parse contribute no hours instead of failing reports.

USAGE:
  st := attendance.NewState()
  st.AddEmployee("emp-1", "Sara", "Sales", 2600)
  st.CheckIn("emp-1", time.Now())
  ...
  st.CheckOut("emp-1", time.Now())
  rows, err := st.DailyReport("2026-09-01")

SEE ALSO:
  - session.go:   Check-in/check-out state machine
  - directory.go: Employee directory operations
  - payroll.go:   Hour and pay calculation
  - report.go:    Daily and date-range aggregation
  - service.go:   Locked, persisted service wrapper
*/
package attendance

// Timestamp and date layouts used across the ledger and the persisted files.
// Timestamps are naive local time; there is no timezone handling.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "2006-01-02 15:04:05"
)

// =============================================================================
// EMPLOYEE - Directory record
// =============================================================================

// Employee holds identity and compensation terms. The ID is caller-assigned
// and immutable once created. MonthlySalary 0 means "not salaried / rate
// undefined" and yields an hourly rate of 0.
type Employee struct {
	ID            string
	Name          string
	Department    string
	MonthlySalary float64
}

// =============================================================================
// SESSION - One check-in/check-out pair
// =============================================================================

// Session is a single attendance entry for an employee on one date. CheckOut
// is empty while the session is open. Both fields use TimeLayout.
type Session struct {
	CheckIn  string
	CheckOut string
}

// Open reports whether the session has a check-in but no check-out yet.
func (s Session) Open() bool {
	return s.CheckIn != "" && s.CheckOut == ""
}

// =============================================================================
// LEDGER AND STATE
// =============================================================================

// Ledger maps calendar date (DateLayout) to employee id to the ordered
// sessions recorded for that pair. Keys are created lazily on check-in and
// removed only when an employee is deleted and a date is left empty.
type Ledger map[string]map[string][]Session

// State is the full mutable state of the system: the employee directory and
// the attendance ledger. It is owned by a single Service instance; operations
// on State itself are not locked.
type State struct {
	Employees map[string]Employee
	Ledger    Ledger
}

// NewState returns an empty state.
func NewState() *State {
	return &State{
		Employees: make(map[string]Employee),
		Ledger:    make(Ledger),
	}
}

// Clone returns a deep copy of the state. Used by stores that hand out
// snapshots and by read paths that must not alias live maps.
func (s *State) Clone() *State {
	c := NewState()
	for id, emp := range s.Employees {
		c.Employees[id] = emp
	}
	for date, byEmployee := range s.Ledger {
		day := make(map[string][]Session, len(byEmployee))
		for id, sessions := range byEmployee {
			day[id] = append([]Session(nil), sessions...)
		}
		c.Ledger[date] = day
	}
	return c
}

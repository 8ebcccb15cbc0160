/*
service.go - Locked, persisted service wrapper around State

PURPOSE:
  Service owns the one live State instance and makes the single-writer
  discipline explicit: check-in, check-out and directory mutations all
  read-then-write, so they run under a write lock and are followed by a
  synchronous Save. Report reads run under a read lock and may interleave
  with each other but never with a write.

ERROR SEMANTICS:
  Domain failures (validation, state machine violations) occur before any
  mutation, so failed operations leave the state untouched. A Save failure
  after a successful mutation is surfaced as a distinct persistence error.

CLOCK:
  The current time is injected so tests can pin "today". Production code uses
  time.Now via NewService.
*/
package attendance

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Service is the boundary surface the engine exposes: every operation the
// excluded UI layer may invoke, and nothing else.
type Service struct {
	mu    sync.RWMutex
	state *State
	store Store
	clock func() time.Time
}

// NewService loads persisted state from the store and returns a service
// using the wall clock.
func NewService(ctx context.Context, store Store) (*Service, error) {
	return NewServiceWithClock(ctx, store, time.Now)
}

// NewServiceWithClock is NewService with an injected clock, for tests.
func NewServiceWithClock(ctx context.Context, store Store, clock func() time.Time) (*Service, error) {
	state, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	if state == nil {
		state = NewState()
	}
	return &Service{state: state, store: store, clock: clock}, nil
}

func (s *Service) save(ctx context.Context) error {
	if err := s.store.Save(ctx, s.state); err != nil {
		return fmt.Errorf("persist state: %w", err)
	}
	return nil
}

// =============================================================================
// DIRECTORY OPERATIONS
// =============================================================================

// AddEmployee inserts an employee and persists the state.
func (s *Service) AddEmployee(ctx context.Context, id, name, department string, monthlySalary float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.state.AddEmployee(id, name, department, monthlySalary); err != nil {
		return err
	}
	return s.save(ctx)
}

// RemoveEmployee deletes an employee, cascades into the ledger and persists.
func (s *Service) RemoveEmployee(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.state.RemoveEmployee(id); err != nil {
		return err
	}
	return s.save(ctx)
}

// Employee returns the directory record for id.
func (s *Service) Employee(id string) (Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Employee(id)
}

// ListEmployees returns all employees ordered by id.
func (s *Service) ListEmployees() []Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.ListEmployees()
}

// HourlyRate returns the employee's derived hourly rate.
func (s *Service) HourlyRate(id string) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.HourlyRate(id)
}

// =============================================================================
// SESSION OPERATIONS
// =============================================================================

// Status describes an employee's current attendance state.
type Status struct {
	EmployeeID string
	Name       string
	CheckedIn  bool
	OpenDate   string // date of the open session, empty when checked out
	Stale      bool   // open session is from an earlier date than today
}

// Status reports whether the employee currently has an open session.
func (s *Service) Status(id string) (Status, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	emp, err := s.state.Employee(id)
	if err != nil {
		return Status{}, err
	}
	st := Status{EmployeeID: id, Name: emp.Name}
	if openDate, _, ok := s.state.FindOpenSession(id); ok {
		st.CheckedIn = true
		st.OpenDate = openDate
		st.Stale = openDate != s.clock().Format(DateLayout)
	}
	return st, nil
}

// CheckIn opens a session at the current time and persists the state.
func (s *Service) CheckIn(ctx context.Context, id string) (CheckInResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.state.CheckIn(id, s.clock())
	if err != nil {
		return CheckInResult{}, err
	}
	return res, s.save(ctx)
}

// CheckOut closes the open session at the current time and persists the state.
func (s *Service) CheckOut(ctx context.Context, id string) (CheckOutResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.state.CheckOut(id, s.clock())
	if err != nil {
		return CheckOutResult{}, err
	}
	return res, s.save(ctx)
}

// =============================================================================
// REPORT OPERATIONS
// =============================================================================

// DailyReport builds the report for one date.
func (s *Service) DailyReport(date string) ([]DailyRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.DailyReport(date)
}

// RangeReport builds the per-employee summary over an inclusive date range.
func (s *Service) RangeReport(employeeID, start, end string) (*RangeReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.BuildRangeReport(employeeID, start, end)
}

/*
session.go - Check-in/check-out state machine

PURPOSE:
  Governs creation and closing of attendance sessions. Per employee the
  machine has two states, global across all dates: Closed (no open session
  anywhere) and Open (exactly one session with an absent check-out). It
  cycles Closed -> Open -> Closed indefinitely.

OPEN SESSION SCAN:
  Finding the open session is a linear scan over the whole ledger: dates in
  descending lexicographic order (chronological, since dates are ISO), and
  within a date sessions in reverse insertion order. Under the single-open-
  session invariant at most one result exists, so the order only matters as a
  deterministic tie-break when corrupted input data violates the invariant.
  The scan is the observable contract; do not replace it with an index.
*/
package attendance

import (
	"fmt"
	"sort"
	"time"
)

// CheckInResult reports the session created by a check-in.
type CheckInResult struct {
	Date    string
	Session Session
}

// CheckOutResult reports the session closed by a check-out. Stale is true
// when the closed session's date is not the caller's current date, so the
// caller can surface "closed a session left open since Date".
type CheckOutResult struct {
	Date    string
	Session Session
	Stale   bool
}

// FindOpenSession scans the entire ledger for the employee's open session and
// returns its date and a copy of the session. The second return is false when
// the employee has no open session. Used both to render status and to guard
// check-in.
func (s *State) FindOpenSession(employeeID string) (string, Session, bool) {
	date, idx, ok := s.findOpen(employeeID)
	if !ok {
		return "", Session{}, false
	}
	return date, s.Ledger[date][employeeID][idx], true
}

// findOpen locates the open session: newest date first, then reverse
// insertion order within the date. Returns the date and slice index so
// CheckOut can close it in place.
func (s *State) findOpen(employeeID string) (string, int, bool) {
	dates := make([]string, 0, len(s.Ledger))
	for date := range s.Ledger {
		dates = append(dates, date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	for _, date := range dates {
		sessions := s.Ledger[date][employeeID]
		for i := len(sessions) - 1; i >= 0; i-- {
			if sessions[i].Open() {
				return date, i, true
			}
		}
	}
	return "", 0, false
}

// CheckIn opens a new session for the employee under now's date. Fails with
// ErrUnknownEmployee if the employee is not in the directory and with
// AlreadyOpenError if any session, on any date, is still open.
func (s *State) CheckIn(employeeID string, now time.Time) (CheckInResult, error) {
	if _, ok := s.Employees[employeeID]; !ok {
		return CheckInResult{}, fmt.Errorf("%w: %s", ErrUnknownEmployee, employeeID)
	}
	if openDate, _, ok := s.FindOpenSession(employeeID); ok {
		return CheckInResult{}, &AlreadyOpenError{EmployeeID: employeeID, OpenDate: openDate}
	}

	today := now.Format(DateLayout)
	session := Session{CheckIn: now.Format(TimeLayout)}

	if s.Ledger[today] == nil {
		s.Ledger[today] = make(map[string][]Session)
	}
	s.Ledger[today][employeeID] = append(s.Ledger[today][employeeID], session)

	return CheckInResult{Date: today, Session: session}, nil
}

// CheckOut closes the employee's open session, wherever it is, setting its
// check-out to now. Fails with ErrUnknownEmployee or ErrNoOpenSession.
func (s *State) CheckOut(employeeID string, now time.Time) (CheckOutResult, error) {
	if _, ok := s.Employees[employeeID]; !ok {
		return CheckOutResult{}, fmt.Errorf("%w: %s", ErrUnknownEmployee, employeeID)
	}
	date, idx, ok := s.findOpen(employeeID)
	if !ok {
		return CheckOutResult{}, fmt.Errorf("%w: employee %s", ErrNoOpenSession, employeeID)
	}

	s.Ledger[date][employeeID][idx].CheckOut = now.Format(TimeLayout)

	return CheckOutResult{
		Date:    date,
		Session: s.Ledger[date][employeeID][idx],
		Stale:   date != now.Format(DateLayout),
	}, nil
}

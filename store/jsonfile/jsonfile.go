/*
Package jsonfile persists the attendance state as JSON files on disk.

PURPOSE:
  Implements attendance.Store with the historical on-disk layout:

    <dir>/employees.json   id -> {name, department, monthly_salary}
    <dir>/attendance.json  date -> id -> [{check_in, check_out}]

  Timestamps are "YYYY-MM-DD HH:MM:SS" strings, dates "YYYY-MM-DD".

BACKWARD COMPATIBILITY:
  Older attendance files stored a single session object per (date, employee)
  entry instead of a list, and records could lack check_out. Load normalizes
  both into the canonical shape; records without a check_in are dropped. The
  engine never sees the legacy shape.

ATOMIC WRITES:
  Save writes to a temp file in the same directory and renames it over the
  target, so a crash mid-save never leaves a truncated file.

SEE ALSO:
  - attendance/store.go: Interface definition
  - store/sqlite:        SQLite-backed implementation
*/
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/warp/attendance-engine/attendance"
)

const (
	employeesFile  = "employees.json"
	attendanceFile = "attendance.json"
)

// Store reads and writes the two JSON files under a data directory.
type Store struct {
	dir string
	mu  sync.Mutex
}

// New creates the data directory if needed and returns a store over it.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// =============================================================================
// PERSISTED SHAPES
// =============================================================================

type employeeRecord struct {
	Name          string  `json:"name"`
	Department    string  `json:"department"`
	MonthlySalary float64 `json:"monthly_salary"`
}

type sessionRecord struct {
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
}

// =============================================================================
// LOAD
// =============================================================================

// Load reads both files and returns the canonical state. Missing files yield
// an empty state; a corrupt file is an error.
func (s *Store) Load(_ context.Context) (*attendance.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := attendance.NewState()

	var employees map[string]employeeRecord
	if err := s.readFile(employeesFile, &employees); err != nil {
		return nil, err
	}
	for id, rec := range employees {
		state.Employees[id] = attendance.Employee{
			ID:            id,
			Name:          rec.Name,
			Department:    rec.Department,
			MonthlySalary: rec.MonthlySalary,
		}
	}

	var raw map[string]map[string]json.RawMessage
	if err := s.readFile(attendanceFile, &raw); err != nil {
		return nil, err
	}
	for date, byEmployee := range raw {
		for id, entry := range byEmployee {
			sessions, err := normalizeSessions(entry)
			if err != nil {
				return nil, fmt.Errorf("attendance entry %s/%s: %w", date, id, err)
			}
			if len(sessions) == 0 {
				continue
			}
			if state.Ledger[date] == nil {
				state.Ledger[date] = make(map[string][]attendance.Session)
			}
			state.Ledger[date][id] = sessions
		}
	}

	return state, nil
}

func (s *Store) readFile(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// normalizeSessions accepts either the canonical list shape or the legacy
// single-object shape and returns ordered sessions. A missing check_out
// decodes to the empty string, i.e. an open session.
func normalizeSessions(entry json.RawMessage) ([]attendance.Session, error) {
	trimmed := bytes.TrimSpace(entry)
	if len(trimmed) == 0 {
		return nil, nil
	}

	var records []sessionRecord
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, err
		}
	case '{':
		var single sessionRecord
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return nil, err
		}
		records = []sessionRecord{single}
	default:
		return nil, fmt.Errorf("unexpected attendance entry shape")
	}

	var sessions []attendance.Session
	for _, rec := range records {
		if rec.CheckIn == "" {
			continue
		}
		sessions = append(sessions, attendance.Session{
			CheckIn:  rec.CheckIn,
			CheckOut: rec.CheckOut,
		})
	}
	return sessions, nil
}

// =============================================================================
// SAVE
// =============================================================================

// Save writes the whole state back to both files.
func (s *Store) Save(_ context.Context, state *attendance.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	employees := make(map[string]employeeRecord, len(state.Employees))
	for id, emp := range state.Employees {
		employees[id] = employeeRecord{
			Name:          emp.Name,
			Department:    emp.Department,
			MonthlySalary: emp.MonthlySalary,
		}
	}
	if err := s.writeFile(employeesFile, employees); err != nil {
		return err
	}

	ledger := make(map[string]map[string][]sessionRecord, len(state.Ledger))
	for date, byEmployee := range state.Ledger {
		day := make(map[string][]sessionRecord, len(byEmployee))
		for id, sessions := range byEmployee {
			records := make([]sessionRecord, len(sessions))
			for i, session := range sessions {
				records[i] = sessionRecord{CheckIn: session.CheckIn, CheckOut: session.CheckOut}
			}
			day[id] = records
		}
		ledger[date] = day
	}
	return s.writeFile(attendanceFile, ledger)
}

func (s *Store) writeFile(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	target := filepath.Join(s.dir, name)
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

/*
Package sqlite provides a SQLite-backed implementation of attendance.Store.

PURPOSE:
  Persists the whole Directory + Ledger state in SQLite. The engine's
  persistence contract is "save whole state after each mutating call", so
  Save replaces the tables atomically inside one database transaction and
  Load rebuilds the canonical state.

KEY TABLES:
  employees: id, name, department, monthly_salary
  sessions:  append-ordered session rows; the seq column reconstructs the
             per-(date, employee) insertion order the ledger requires

CONCURRENCY:
  Uses sync.RWMutex for thread-safety, matching the engine's single-writer
  model. SQLite is opened with WAL for better crash recovery.

USAGE:
  store, err := sqlite.New("./data/attendance.db")  // or ":memory:"
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper migration
  tool with versioned migrations.

SEE ALSO:
  - attendance/store.go: Interface definition
  - store/jsonfile:      JSON-file implementation (historical layout)
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/attendance-engine/attendance"
)

// Store implements attendance.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		department TEXT NOT NULL DEFAULT '',
		monthly_salary REAL NOT NULL DEFAULT 0
	);

	-- seq reconstructs insertion order within each (date, employee) entry
	CREATE TABLE IF NOT EXISTS sessions (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		employee_id TEXT NOT NULL,
		check_in TEXT NOT NULL,
		check_out TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_date_employee
		ON sessions(date, employee_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// LOAD
// =============================================================================

// Load rebuilds the canonical state from the tables.
func (s *Store) Load(ctx context.Context) (*attendance.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := attendance.NewState()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, department, monthly_salary FROM employees",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var emp attendance.Employee
		if err := rows.Scan(&emp.ID, &emp.Name, &emp.Department, &emp.MonthlySalary); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		state.Employees[emp.ID] = emp
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sessionRows, err := s.db.QueryContext(ctx,
		"SELECT date, employee_id, check_in, check_out FROM sessions ORDER BY seq ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer sessionRows.Close()

	for sessionRows.Next() {
		var date, employeeID string
		var session attendance.Session
		if err := sessionRows.Scan(&date, &employeeID, &session.CheckIn, &session.CheckOut); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		if state.Ledger[date] == nil {
			state.Ledger[date] = make(map[string][]attendance.Session)
		}
		state.Ledger[date][employeeID] = append(state.Ledger[date][employeeID], session)
	}
	return state, sessionRows.Err()
}

// =============================================================================
// SAVE
// =============================================================================

// Save replaces the persisted state in a single transaction.
func (s *Store) Save(ctx context.Context, state *attendance.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM sessions"); err != nil {
		return fmt.Errorf("failed to clear sessions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM employees"); err != nil {
		return fmt.Errorf("failed to clear employees: %w", err)
	}

	for id, emp := range state.Employees {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO employees (id, name, department, monthly_salary) VALUES (?, ?, ?, ?)",
			id, emp.Name, emp.Department, emp.MonthlySalary,
		)
		if err != nil {
			return fmt.Errorf("failed to insert employee %s: %w", id, err)
		}
	}

	for date, byEmployee := range state.Ledger {
		for employeeID, sessions := range byEmployee {
			for _, session := range sessions {
				_, err := tx.ExecContext(ctx,
					"INSERT INTO sessions (date, employee_id, check_in, check_out) VALUES (?, ?, ?, ?)",
					date, employeeID, session.CheckIn, session.CheckOut,
				)
				if err != nil {
					return fmt.Errorf("failed to insert session %s/%s: %w", date, employeeID, err)
				}
			}
		}
	}

	return tx.Commit()
}

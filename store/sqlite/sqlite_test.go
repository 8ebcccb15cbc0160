package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/attendance-engine/attendance"
	"github.com/warp/attendance-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

// =============================================================================
// ROUND TRIP
// =============================================================================

func TestSaveLoad_RoundTrip(t *testing.T) {
	// GIVEN: A state with two employees and sessions across two dates
	store := newTestStore(t)
	ctx := context.Background()

	state := attendance.NewState()
	require.NoError(t, state.AddEmployee("emp-1", "Sara", "Sales", 2600))
	require.NoError(t, state.AddEmployee("emp-2", "Omar", "", 0))
	state.Ledger["2024-03-10"] = map[string][]attendance.Session{
		"emp-1": {
			{CheckIn: "2024-03-10 08:00:00", CheckOut: "2024-03-10 12:00:00"},
			{CheckIn: "2024-03-10 13:00:00"},
		},
	}
	state.Ledger["2024-03-11"] = map[string][]attendance.Session{
		"emp-2": {{CheckIn: "2024-03-11 09:00:00", CheckOut: "2024-03-11 17:00:00"}},
	}

	// WHEN: Saving and loading back
	require.NoError(t, store.Save(ctx, state))
	loaded, err := store.Load(ctx)

	// THEN: Directory and ledger match
	require.NoError(t, err)
	assert.Equal(t, state.Employees, loaded.Employees)
	assert.Equal(t, state.Ledger, loaded.Ledger)
}

func TestLoad_FreshDatabaseIsEmpty(t *testing.T) {
	store := newTestStore(t)

	state, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, state.Employees)
	assert.Empty(t, state.Ledger)
}

// =============================================================================
// ORDERING
// =============================================================================

func TestLoad_PreservesSessionInsertionOrder(t *testing.T) {
	// Insertion order within a (date, employee) entry is the ledger's
	// tie-break for open-session resolution, so it must survive persistence.
	store := newTestStore(t)
	ctx := context.Background()

	state := attendance.NewState()
	require.NoError(t, state.AddEmployee("emp-1", "Sara", "", 2600))
	state.Ledger["2024-03-10"] = map[string][]attendance.Session{
		"emp-1": {
			{CheckIn: "2024-03-10 08:00:00", CheckOut: "2024-03-10 10:00:00"},
			{CheckIn: "2024-03-10 11:00:00", CheckOut: "2024-03-10 13:00:00"},
			{CheckIn: "2024-03-10 14:00:00"},
		},
	}

	require.NoError(t, store.Save(ctx, state))
	loaded, err := store.Load(ctx)

	require.NoError(t, err)
	sessions := loaded.Ledger["2024-03-10"]["emp-1"]
	require.Len(t, sessions, 3)
	assert.Equal(t, "2024-03-10 08:00:00", sessions[0].CheckIn)
	assert.Equal(t, "2024-03-10 11:00:00", sessions[1].CheckIn)
	assert.Equal(t, "2024-03-10 14:00:00", sessions[2].CheckIn)
}

// =============================================================================
// REPLACE SEMANTICS
// =============================================================================

func TestSave_ReplacesPreviousState(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := attendance.NewState()
	require.NoError(t, first.AddEmployee("emp-1", "Sara", "", 2600))
	first.Ledger["2024-03-10"] = map[string][]attendance.Session{
		"emp-1": {{CheckIn: "2024-03-10 08:00:00", CheckOut: "2024-03-10 16:00:00"}},
	}
	require.NoError(t, store.Save(ctx, first))

	second := attendance.NewState()
	require.NoError(t, second.AddEmployee("emp-2", "Omar", "", 1300))
	require.NoError(t, store.Save(ctx, second))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.NotContains(t, loaded.Employees, "emp-1")
	assert.Contains(t, loaded.Employees, "emp-2")
	assert.Empty(t, loaded.Ledger, "old sessions cleared with the old state")
}

func TestSave_EmptyStateClearsDatabase(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	state := attendance.NewState()
	require.NoError(t, state.AddEmployee("emp-1", "Sara", "", 2600))
	require.NoError(t, store.Save(ctx, state))
	require.NoError(t, store.Save(ctx, attendance.NewState()))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded.Employees)
}

// =============================================================================
// SERVICE INTEGRATION
// =============================================================================

func TestService_OnSQLiteStore(t *testing.T) {
	// Drive the service end to end against the real store.
	store := newTestStore(t)
	ctx := context.Background()

	now := parseTime(t, "2024-03-10 08:00:00")
	service, err := attendance.NewServiceWithClock(ctx, store, func() time.Time { return now })
	require.NoError(t, err)

	require.NoError(t, service.AddEmployee(ctx, "emp-1", "Sara", "Sales", 260))
	_, err = service.CheckIn(ctx, "emp-1")
	require.NoError(t, err)
	now = now.Add(2 * time.Hour)
	_, err = service.CheckOut(ctx, "emp-1")
	require.NoError(t, err)

	// A second service over the same database sees the recorded day.
	reloaded, err := attendance.NewServiceWithClock(ctx, store, func() time.Time { return now })
	require.NoError(t, err)
	rows, err := reloaded.DailyReport("2024-03-10")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.True(t, rows[1].Total)
}

func parseTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(attendance.TimeLayout, value)
	require.NoError(t, err)
	return ts
}

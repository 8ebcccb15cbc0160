package attendance_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/attendance-engine/attendance"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestState(t *testing.T) *attendance.State {
	t.Helper()
	st := attendance.NewState()
	require.NoError(t, st.AddEmployee("emp-1", "Sara", "Sales", 2600))
	require.NoError(t, st.AddEmployee("emp-2", "Omar", "", 0))
	return st
}

func at(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(attendance.TimeLayout, value)
	require.NoError(t, err)
	return ts
}

// countOpen walks the whole ledger and counts open sessions for an employee.
func countOpen(st *attendance.State, id string) int {
	open := 0
	for _, byEmployee := range st.Ledger {
		for _, session := range byEmployee[id] {
			if session.Open() {
				open++
			}
		}
	}
	return open
}

// =============================================================================
// DIRECTORY OPERATIONS
// =============================================================================

func TestAddEmployee_Validation(t *testing.T) {
	st := attendance.NewState()

	assert.ErrorIs(t, st.AddEmployee("", "Sara", "", 0), attendance.ErrInvalidInput)
	assert.ErrorIs(t, st.AddEmployee("emp-1", "", "", 0), attendance.ErrInvalidInput)
	assert.ErrorIs(t, st.AddEmployee("emp-1", "Sara", "", -100), attendance.ErrInvalidInput)

	require.NoError(t, st.AddEmployee("emp-1", "Sara", "", 0))
	assert.ErrorIs(t, st.AddEmployee("emp-1", "Other", "", 0), attendance.ErrDuplicateID)
}

func TestRemoveEmployee_CascadesAndPrunes(t *testing.T) {
	// GIVEN: Two employees with sessions on a shared date and on a date
	// belonging only to the first
	st := newTestState(t)

	_, err := st.CheckIn("emp-1", at(t, "2024-03-10 08:00:00"))
	require.NoError(t, err)
	_, err = st.CheckOut("emp-1", at(t, "2024-03-10 16:00:00"))
	require.NoError(t, err)

	_, err = st.CheckIn("emp-2", at(t, "2024-03-10 09:00:00"))
	require.NoError(t, err)
	_, err = st.CheckOut("emp-2", at(t, "2024-03-10 17:00:00"))
	require.NoError(t, err)

	_, err = st.CheckIn("emp-1", at(t, "2024-03-11 08:00:00"))
	require.NoError(t, err)
	_, err = st.CheckOut("emp-1", at(t, "2024-03-11 16:00:00"))
	require.NoError(t, err)

	// WHEN: Deleting the first employee
	require.NoError(t, st.RemoveEmployee("emp-1"))

	// THEN: Every emp-1 session is gone from every date; the date that held
	// only emp-1 sessions is pruned, the shared date survives
	_, err = st.Employee("emp-1")
	assert.ErrorIs(t, err, attendance.ErrUnknownEmployee)
	assert.NotContains(t, st.Ledger, "2024-03-11")
	require.Contains(t, st.Ledger, "2024-03-10")
	assert.NotContains(t, st.Ledger["2024-03-10"], "emp-1")
	assert.Contains(t, st.Ledger["2024-03-10"], "emp-2")
}

func TestRemoveEmployee_Unknown(t *testing.T) {
	st := attendance.NewState()
	assert.ErrorIs(t, st.RemoveEmployee("ghost"), attendance.ErrUnknownEmployee)
}

// =============================================================================
// CHECK-IN
// =============================================================================

func TestCheckIn_OpensSessionUnderTodaysDate(t *testing.T) {
	st := newTestState(t)

	res, err := st.CheckIn("emp-1", at(t, "2024-03-10 08:30:00"))

	require.NoError(t, err)
	assert.Equal(t, "2024-03-10", res.Date)
	assert.Equal(t, "2024-03-10 08:30:00", res.Session.CheckIn)
	assert.True(t, res.Session.Open())
	require.Len(t, st.Ledger["2024-03-10"]["emp-1"], 1)
}

func TestCheckIn_UnknownEmployee(t *testing.T) {
	st := newTestState(t)

	_, err := st.CheckIn("ghost", at(t, "2024-03-10 08:30:00"))

	assert.ErrorIs(t, err, attendance.ErrUnknownEmployee)
}

func TestCheckIn_WhileOpen_Rejected(t *testing.T) {
	// GIVEN: An open session
	st := newTestState(t)
	_, err := st.CheckIn("emp-1", at(t, "2024-03-10 08:30:00"))
	require.NoError(t, err)

	// WHEN: Checking in again with no intervening check-out
	_, err = st.CheckIn("emp-1", at(t, "2024-03-10 09:00:00"))

	// THEN: Rejected with the open session's date attached
	require.Error(t, err)
	var open *attendance.AlreadyOpenError
	require.ErrorAs(t, err, &open)
	assert.Equal(t, "2024-03-10", open.OpenDate)
	assert.ErrorIs(t, err, attendance.ErrAlreadyOpen)
}

func TestCheckIn_WhileOpenOnPriorDate_ReportsThatDate(t *testing.T) {
	// GIVEN: A session left open days ago
	st := newTestState(t)
	_, err := st.CheckIn("emp-1", at(t, "2024-03-08 20:00:00"))
	require.NoError(t, err)

	// WHEN: Checking in today
	_, err = st.CheckIn("emp-1", at(t, "2024-03-10 08:00:00"))

	// THEN: The error carries the stale date, not today
	var open *attendance.AlreadyOpenError
	require.ErrorAs(t, err, &open)
	assert.Equal(t, "2024-03-08", open.OpenDate)
}

func TestCheckIn_MultipleSessionsPerDay(t *testing.T) {
	st := newTestState(t)

	_, err := st.CheckIn("emp-1", at(t, "2024-03-10 08:00:00"))
	require.NoError(t, err)
	_, err = st.CheckOut("emp-1", at(t, "2024-03-10 12:00:00"))
	require.NoError(t, err)
	_, err = st.CheckIn("emp-1", at(t, "2024-03-10 13:00:00"))
	require.NoError(t, err)

	sessions := st.Ledger["2024-03-10"]["emp-1"]
	require.Len(t, sessions, 2)
	assert.Equal(t, "2024-03-10 08:00:00", sessions[0].CheckIn, "insertion order preserved")
	assert.True(t, sessions[1].Open())
}

// =============================================================================
// CHECK-OUT
// =============================================================================

func TestCheckOut_NoOpenSession(t *testing.T) {
	st := newTestState(t)

	_, err := st.CheckOut("emp-1", at(t, "2024-03-10 16:00:00"))

	assert.ErrorIs(t, err, attendance.ErrNoOpenSession)
}

func TestCheckOut_UnknownEmployee(t *testing.T) {
	st := newTestState(t)

	_, err := st.CheckOut("ghost", at(t, "2024-03-10 16:00:00"))

	assert.ErrorIs(t, err, attendance.ErrUnknownEmployee)
}

func TestCheckOut_ClosesSessionSameDay(t *testing.T) {
	st := newTestState(t)
	_, err := st.CheckIn("emp-1", at(t, "2024-03-10 08:00:00"))
	require.NoError(t, err)

	res, err := st.CheckOut("emp-1", at(t, "2024-03-10 16:00:00"))

	require.NoError(t, err)
	assert.Equal(t, "2024-03-10", res.Date)
	assert.False(t, res.Stale)
	assert.Equal(t, "2024-03-10 16:00:00", res.Session.CheckOut)
	assert.Equal(t, 0, countOpen(st, "emp-1"))
}

func TestCheckOut_StaleSessionFromPriorDate(t *testing.T) {
	// GIVEN: A session left open two days ago
	st := newTestState(t)
	_, err := st.CheckIn("emp-1", at(t, "2024-03-08 20:00:00"))
	require.NoError(t, err)

	// WHEN: Checking out today
	res, err := st.CheckOut("emp-1", at(t, "2024-03-10 08:00:00"))

	// THEN: The stale session is closed and flagged with its own date
	require.NoError(t, err)
	assert.True(t, res.Stale)
	assert.Equal(t, "2024-03-08", res.Date)
	assert.Equal(t, "2024-03-10 08:00:00", res.Session.CheckOut)
}

func TestCheckOut_TieBreak_NewestDateFirst(t *testing.T) {
	// GIVEN: Corrupted input data with two open sessions on different dates,
	// violating the single-open-session invariant
	st := newTestState(t)
	st.Ledger["2024-03-08"] = map[string][]attendance.Session{
		"emp-1": {{CheckIn: "2024-03-08 08:00:00"}},
	}
	st.Ledger["2024-03-09"] = map[string][]attendance.Session{
		"emp-1": {{CheckIn: "2024-03-09 08:00:00"}},
	}

	// WHEN: Checking out
	res, err := st.CheckOut("emp-1", at(t, "2024-03-10 08:00:00"))

	// THEN: The newest date wins, deterministically
	require.NoError(t, err)
	assert.Equal(t, "2024-03-09", res.Date)
	assert.True(t, st.Ledger["2024-03-08"]["emp-1"][0].Open(), "older open session untouched")
}

func TestCheckOut_TieBreak_ReverseInsertionOrderWithinDate(t *testing.T) {
	// GIVEN: Corrupted input data with two open sessions on the same date
	st := newTestState(t)
	st.Ledger["2024-03-10"] = map[string][]attendance.Session{
		"emp-1": {
			{CheckIn: "2024-03-10 08:00:00"},
			{CheckIn: "2024-03-10 09:00:00"},
		},
	}

	// WHEN: Checking out
	res, err := st.CheckOut("emp-1", at(t, "2024-03-10 16:00:00"))

	// THEN: The most recently appended open session is the one closed
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10 09:00:00", res.Session.CheckIn)
	assert.True(t, st.Ledger["2024-03-10"]["emp-1"][0].Open())
}

// =============================================================================
// GLOBAL INVARIANT
// =============================================================================

func TestAtMostOneOpenSessionAcrossLedger(t *testing.T) {
	// Drive the machine through several cycles and assert the invariant
	// after every successful operation.
	st := newTestState(t)

	clock := at(t, "2024-03-10 08:00:00")
	for i := 0; i < 4; i++ {
		_, err := st.CheckIn("emp-1", clock)
		require.NoError(t, err)
		assert.Equal(t, 1, countOpen(st, "emp-1"))

		// Double check-in never succeeds while open
		_, err = st.CheckIn("emp-1", clock.Add(time.Minute))
		assert.ErrorIs(t, err, attendance.ErrAlreadyOpen)

		clock = clock.Add(7 * time.Hour)
		_, err = st.CheckOut("emp-1", clock)
		require.NoError(t, err)
		assert.Equal(t, 0, countOpen(st, "emp-1"))

		// Move to the next day between cycles
		clock = clock.Add(17 * time.Hour)
	}
}

// =============================================================================
// FIND OPEN SESSION
// =============================================================================

func TestFindOpenSession(t *testing.T) {
	st := newTestState(t)

	_, _, found := st.FindOpenSession("emp-1")
	assert.False(t, found)

	_, err := st.CheckIn("emp-1", at(t, "2024-03-10 08:00:00"))
	require.NoError(t, err)

	date, session, found := st.FindOpenSession("emp-1")
	require.True(t, found)
	assert.Equal(t, "2024-03-10", date)
	assert.Equal(t, "2024-03-10 08:00:00", session.CheckIn)

	// The other employee is unaffected
	_, _, found = st.FindOpenSession("emp-2")
	assert.False(t, found)
}

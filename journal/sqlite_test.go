package journal

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	j, err := NewSQLite(path)
	require.NoError(t, err)

	return j, path
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table'`)
	require.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		assert.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	assert.NoError(t, rows.Err())

	for _, table := range []string{"report_runs", "balance", "flow_events", "pnl_cumsum", "monthly_pnl", "drawdown", "type_mix"} {
		assert.True(t, found[table], table)
	}
}

func TestSQLiteExportAndGetRun(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	r := sampleReport()
	require.NoError(t, j.Export(r))

	run, err := j.GetRun(r.RunID)
	require.NoError(t, err)
	assert.Equal(t, r.RunID, run.RunID)
	assert.Equal(t, r.Source, run.Source)
	assert.True(t, r.Generated.Equal(run.Generated))
	assert.Equal(t, r.Stats, run.Stats)
}

func TestSQLiteGetRunNotFound(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	_, err := j.GetRun("missing")
	assert.ErrorContains(t, err, `run "missing" not found`)
}

func TestSQLiteSeriesRows(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)

	r := sampleReport()
	require.NoError(t, j.Export(r))

	monthly, err := j.ListMonthlyPNL(r.RunID)
	require.NoError(t, err)
	assert.Equal(t, r.Series.MonthlyPNL, monthly)

	dd, err := j.ListDrawdown(r.RunID)
	require.NoError(t, err)
	assert.Equal(t, r.Series.Drawdown, dd)
	require.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM balance WHERE run_id = ?`, r.RunID).Scan(&n))
	assert.Equal(t, 3, n)

	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM flow_events WHERE run_id = ? AND kind = 'deposit'`, r.RunID).Scan(&n))
	assert.Equal(t, 1, n)

	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM type_mix WHERE run_id = ?`, r.RunID).Scan(&n))
	assert.Equal(t, 3, n)
}

func TestSQLiteDuplicateRunRollsBack(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)

	r := sampleReport()
	require.NoError(t, j.Export(r))
	assert.Error(t, j.Export(r))
	require.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM balance`).Scan(&n))
	assert.Equal(t, 3, n)
}

func TestSQLiteListRunsNewestFirst(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	older := sampleReport()
	older.RunID = "run-older"
	older.Generated = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	newer := sampleReport()
	newer.RunID = "run-newer"
	newer.Generated = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, j.Export(older))
	require.NoError(t, j.Export(newer))

	runs, err := j.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-newer", runs[0].RunID)
	assert.Equal(t, "run-older", runs[1].RunID)
}

func TestSQLiteListRunsEmpty(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	runs, err := j.ListRuns()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

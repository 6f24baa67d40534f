// journal/query.go
package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rustyeddy/walletstats/report"
)

// Run is one stored report_runs row.
type Run struct {
	RunID        string
	Generated    time.Time
	Source       string
	WarmupOffset int
	Stats        report.Stats
}

const runColumns = `
	run_id, generated, source, warmup_offset, start_balance, end_balance, growth, growth_pct,
	deposit_sum, withdrawal_sum, net_flow, total_pnl, win_count, loss_count, win_rate,
	funding_sum, max_balance, min_balance, max_time, min_time, drawdown, max_drawdown_pct,
	total_records, pnl_trades, funding_payments`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var run Run
	s := &run.Stats
	err := row.Scan(
		&run.RunID, &run.Generated, &run.Source, &run.WarmupOffset,
		&s.StartBalance, &s.EndBalance, &s.Growth, &s.GrowthPct,
		&s.DepositSum, &s.WithdrawalSum, &s.NetFlow, &s.TotalPNL,
		&s.WinCount, &s.LossCount, &s.WinRate, &s.FundingSum,
		&s.MaxBalance, &s.MinBalance, &s.MaxTime, &s.MinTime,
		&s.Drawdown, &s.MaxDrawdownPct,
		&s.TotalRecords, &s.PNLTrades, &s.FundingPayments,
	)
	return run, err
}

// GetRun returns a single stored run by ID.
func (j *SQLite) GetRun(runID string) (Run, error) {
	row := j.db.QueryRow(`SELECT `+runColumns+` FROM report_runs WHERE run_id = ?`, runID)

	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, fmt.Errorf("run %q not found", runID)
		}
		return Run{}, err
	}
	return run, nil
}

// ListRuns returns every stored run, newest first.
func (j *SQLite) ListRuns() ([]Run, error) {
	rows, err := j.db.Query(`SELECT ` + runColumns + ` FROM report_runs ORDER BY generated DESC, run_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListMonthlyPNL returns the monthly buckets stored for a run in month order.
func (j *SQLite) ListMonthlyPNL(runID string) ([]report.MonthlyRow, error) {
	rows, err := j.db.Query(`
		SELECT year_month, amount, trades
		FROM monthly_pnl
		WHERE run_id = ?
		ORDER BY year_month ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []report.MonthlyRow
	for rows.Next() {
		var m report.MonthlyRow
		if err := rows.Scan(&m.YearMonth, &m.Amount, &m.Trades); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListDrawdown returns the stored drawdown series for a run.
func (j *SQLite) ListDrawdown(runID string) ([]report.DrawdownRow, error) {
	rows, err := j.db.Query(`
		SELECT time, balance, peak, drawdown
		FROM drawdown
		WHERE run_id = ?
		ORDER BY seq ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []report.DrawdownRow
	for rows.Next() {
		var d report.DrawdownRow
		if err := rows.Scan(&d.Timestamp, &d.Balance, &d.Peak, &d.Drawdown); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// journal/sqlite.go
package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rustyeddy/walletstats/report"
)

// SQLite stores reports, one run per Export, keyed by run ID.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

// Export writes the run header and every series inside one transaction.
func (j *SQLite) Export(r *report.Report) error {
	tx, err := j.db.Begin()
	if err != nil {
		return err
	}
	if err := exportTx(tx, r); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("export run %s: %w", r.RunID, err)
	}
	return tx.Commit()
}

func exportTx(tx *sql.Tx, r *report.Report) error {
	s := r.Stats
	_, err := tx.Exec(`
		INSERT INTO report_runs
		(run_id, generated, source, warmup_offset, start_balance, end_balance, growth, growth_pct,
		 deposit_sum, withdrawal_sum, net_flow, total_pnl, win_count, loss_count, win_rate,
		 funding_sum, max_balance, min_balance, max_time, min_time, drawdown, max_drawdown_pct,
		 total_records, pnl_trades, funding_payments)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Generated.UTC(), r.Source, r.WarmupOffset,
		s.StartBalance, s.EndBalance, s.Growth, s.GrowthPct,
		s.DepositSum, s.WithdrawalSum, s.NetFlow, s.TotalPNL,
		s.WinCount, s.LossCount, s.WinRate, s.FundingSum,
		s.MaxBalance, s.MinBalance, s.MaxTime, s.MinTime,
		s.Drawdown, s.MaxDrawdownPct,
		s.TotalRecords, s.PNLTrades, s.FundingPayments,
	)
	if err != nil {
		return err
	}

	for i, b := range r.Series.Balance {
		if _, err := tx.Exec(`INSERT INTO balance (run_id, seq, time, balance) VALUES (?, ?, ?, ?)`,
			r.RunID, i, b.Timestamp, b.Balance); err != nil {
			return err
		}
	}

	flows := map[string][]report.FlowRow{
		"deposit":    r.Series.Deposits,
		"withdrawal": r.Series.Withdrawals,
	}
	for kind, rows := range flows {
		for i, f := range rows {
			if _, err := tx.Exec(`
				INSERT INTO flow_events (run_id, kind, seq, time, amount, balance, status)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
				r.RunID, kind, i, f.Timestamp, f.Amount, f.Balance, f.Status); err != nil {
				return err
			}
		}
	}

	for i, p := range r.Series.PNLCumsum {
		if _, err := tx.Exec(`INSERT INTO pnl_cumsum (run_id, seq, time, amount, cumulative) VALUES (?, ?, ?, ?, ?)`,
			r.RunID, i, p.Timestamp, p.Amount, p.Cumulative); err != nil {
			return err
		}
	}

	for _, m := range r.Series.MonthlyPNL {
		if _, err := tx.Exec(`INSERT INTO monthly_pnl (run_id, year_month, amount, trades) VALUES (?, ?, ?, ?)`,
			r.RunID, m.YearMonth, m.Amount, m.Trades); err != nil {
			return err
		}
	}

	for i, d := range r.Series.Drawdown {
		if _, err := tx.Exec(`INSERT INTO drawdown (run_id, seq, time, balance, peak, drawdown) VALUES (?, ?, ?, ?, ?, ?)`,
			r.RunID, i, d.Timestamp, d.Balance, d.Peak, d.Drawdown); err != nil {
			return err
		}
	}

	for _, t := range r.Series.TypeMix {
		if _, err := tx.Exec(`INSERT INTO type_mix (run_id, transact_type, count) VALUES (?, ?, ?)`,
			r.RunID, t.Type, t.Count); err != nil {
			return err
		}
	}
	return nil
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

// journal/csv.go
package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rustyeddy/walletstats/internal/fileutil"
	"github.com/rustyeddy/walletstats/report"
)

// File names written by CSVJournal.
const (
	SummaryCSV     = "summary.csv"
	BalanceCSV     = "balance.csv"
	DepositsCSV    = "deposits.csv"
	WithdrawalsCSV = "withdrawals.csv"
	PNLCumsumCSV   = "pnl_cumsum.csv"
	MonthlyPNLCSV  = "monthly_pnl.csv"
	DrawdownCSV    = "drawdown.csv"
	TypeMixCSV     = "type_mix.csv"
)

// CSVJournal writes the summary and each series as its own CSV file.
type CSVJournal struct {
	dir string
}

func NewCSV(dir string) (*CSVJournal, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &CSVJournal{dir: dir}, nil
}

func (j *CSVJournal) Export(r *report.Report) error {
	s := r.Stats
	files := []struct {
		name   string
		header []string
		rows   [][]string
	}{
		{
			name:   SummaryCSV,
			header: []string{"key", "value"},
			rows: [][]string{
				{"run_id", r.RunID},
				{"source", r.Source},
				{"start_balance", amt(s.StartBalance)},
				{"end_balance", amt(s.EndBalance)},
				{"growth", amt(s.Growth)},
				{"growth_pct", pct(s.GrowthPct)},
				{"deposit_sum", amt(s.DepositSum)},
				{"withdrawal_sum", amt(s.WithdrawalSum)},
				{"net_flow", amt(s.NetFlow)},
				{"total_pnl", amt(s.TotalPNL)},
				{"win_count", strconv.Itoa(s.WinCount)},
				{"loss_count", strconv.Itoa(s.LossCount)},
				{"win_rate", pct(s.WinRate)},
				{"funding_sum", amt(s.FundingSum)},
				{"max_balance", amt(s.MaxBalance)},
				{"min_balance", amt(s.MinBalance)},
				{"max_time", s.MaxTime},
				{"min_time", s.MinTime},
				{"drawdown", pct(s.Drawdown)},
				{"max_drawdown_pct", pct(s.MaxDrawdownPct)},
				{"total_records", strconv.Itoa(s.TotalRecords)},
				{"pnl_trades", strconv.Itoa(s.PNLTrades)},
				{"funding_payments", strconv.Itoa(s.FundingPayments)},
			},
		},
		{
			name:   BalanceCSV,
			header: []string{"time", "balance"},
			rows: rowsOf(r.Series.Balance, func(b report.BalanceRow) []string {
				return []string{b.Timestamp, amt(b.Balance)}
			}),
		},
		{
			name:   DepositsCSV,
			header: []string{"time", "amount", "balance", "status"},
			rows:   rowsOf(r.Series.Deposits, flowRow),
		},
		{
			name:   WithdrawalsCSV,
			header: []string{"time", "amount", "balance", "status"},
			rows:   rowsOf(r.Series.Withdrawals, flowRow),
		},
		{
			name:   PNLCumsumCSV,
			header: []string{"time", "amount", "cumulative_pnl"},
			rows: rowsOf(r.Series.PNLCumsum, func(p report.PNLRow) []string {
				return []string{p.Timestamp, amt(p.Amount), amt(p.Cumulative)}
			}),
		},
		{
			name:   MonthlyPNLCSV,
			header: []string{"year_month", "amount", "trades"},
			rows: rowsOf(r.Series.MonthlyPNL, func(m report.MonthlyRow) []string {
				return []string{m.YearMonth, amt(m.Amount), strconv.Itoa(m.Trades)}
			}),
		},
		{
			name:   DrawdownCSV,
			header: []string{"time", "balance", "peak", "drawdown_pct"},
			rows: rowsOf(r.Series.Drawdown, func(d report.DrawdownRow) []string {
				return []string{d.Timestamp, amt(d.Balance), amt(d.Peak), pct(d.Drawdown)}
			}),
		},
		{
			name:   TypeMixCSV,
			header: []string{"transact_type", "count"},
			rows: rowsOf(r.Series.TypeMix, func(t report.TypeRow) []string {
				return []string{t.Type, strconv.Itoa(t.Count)}
			}),
		},
	}

	// stage every table first so a failure leaves the previous set intact
	var b fileutil.Batch
	for _, f := range files {
		path := filepath.Join(j.dir, f.name)
		err := b.Add(path, func(w io.Writer) error {
			return writeCSV(w, f.header, f.rows)
		})
		if err != nil {
			b.Abort()
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return b.Commit()
}

func (j *CSVJournal) Close() error { return nil }

func writeCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func flowRow(f report.FlowRow) []string {
	return []string{f.Timestamp, amt(f.Amount), amt(f.Balance), f.Status}
}

func rowsOf[T any](in []T, conv func(T) []string) [][]string {
	out := make([][]string, 0, len(in))
	for _, v := range in {
		out = append(out, conv(v))
	}
	return out
}

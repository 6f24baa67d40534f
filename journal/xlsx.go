// journal/xlsx.go
package journal

import (
	"fmt"
	"io"

	"github.com/rustyeddy/walletstats/internal/fileutil"
	"github.com/rustyeddy/walletstats/report"
	"github.com/xuri/excelize/v2"
)

// Sheet names in the workbook written by XLSX.
const (
	SummarySheet     = "Summary"
	BalanceSheet     = "Balance"
	DepositsSheet    = "Deposits"
	WithdrawalsSheet = "Withdrawals"
	PNLSheet         = "Cumulative PNL"
	MonthlySheet     = "Monthly PNL"
	DrawdownSheet    = "Drawdown"
	TypeMixSheet     = "Transaction Types"
)

// XLSX writes a report as a workbook with a summary sheet and one sheet
// per series.
type XLSX struct {
	path string
}

func NewXLSX(path string) (*XLSX, error) {
	if path == "" {
		return nil, fmt.Errorf("xlsx path is required")
	}
	return &XLSX{path: path}, nil
}

type sheet struct {
	name   string
	header []string
	widths []float64
	rows   [][]any
}

func (x *XLSX) Export(r *report.Report) error {
	fx := excelize.NewFile()
	defer fx.Close()

	header, err := fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"2F4F4F"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return err
	}

	sheets := []sheet{
		summarySheet(r),
		{
			name:   BalanceSheet,
			header: []string{"Timestamp", "WalletBalance_BTC"},
			widths: []float64{20, 18},
			rows: cellsOf(r.Series.Balance, func(b report.BalanceRow) []any {
				return []any{b.Timestamp, b.Balance}
			}),
		},
		flowSheet(DepositsSheet, r.Series.Deposits),
		flowSheet(WithdrawalsSheet, r.Series.Withdrawals),
		{
			name:   PNLSheet,
			header: []string{"Timestamp", "Amount_BTC", "Cumulative_PNL"},
			widths: []float64{20, 16, 16},
			rows: cellsOf(r.Series.PNLCumsum, func(p report.PNLRow) []any {
				return []any{p.Timestamp, p.Amount, p.Cumulative}
			}),
		},
		{
			name:   MonthlySheet,
			header: []string{"YearMonth", "Amount_BTC", "Trades"},
			widths: []float64{12, 16, 10},
			rows: cellsOf(r.Series.MonthlyPNL, func(m report.MonthlyRow) []any {
				return []any{m.YearMonth, m.Amount, m.Trades}
			}),
		},
		{
			name:   DrawdownSheet,
			header: []string{"Timestamp", "WalletBalance_BTC", "Peak", "Drawdown"},
			widths: []float64{20, 18, 16, 12},
			rows: cellsOf(r.Series.Drawdown, func(d report.DrawdownRow) []any {
				return []any{d.Timestamp, d.Balance, d.Peak, d.Drawdown}
			}),
		},
		{
			name:   TypeMixSheet,
			header: []string{"TransactType", "Count"},
			widths: []float64{20, 10},
			rows: cellsOf(r.Series.TypeMix, func(t report.TypeRow) []any {
				return []any{t.Type, t.Count}
			}),
		},
	}

	for i, s := range sheets {
		if i == 0 {
			if err := fx.SetSheetName(fx.GetSheetName(0), s.name); err != nil {
				return err
			}
		} else if _, err := fx.NewSheet(s.name); err != nil {
			return err
		}
		if err := writeSheet(fx, s, header); err != nil {
			return fmt.Errorf("sheet %s: %w", s.name, err)
		}
	}

	return fileutil.WriteAtomic(x.path, func(w io.Writer) error {
		return fx.Write(w)
	})
}

func (x *XLSX) Close() error { return nil }

func writeSheet(fx *excelize.File, s sheet, headerStyle int) error {
	for i, h := range s.header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := fx.SetCellValue(s.name, cell, h); err != nil {
			return err
		}
	}
	first, _ := excelize.CoordinatesToCellName(1, 1)
	last, _ := excelize.CoordinatesToCellName(len(s.header), 1)
	if err := fx.SetCellStyle(s.name, first, last, headerStyle); err != nil {
		return err
	}

	for i, w := range s.widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := fx.SetColWidth(s.name, col, col, w); err != nil {
			return err
		}
	}

	for i, row := range s.rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := fx.SetSheetRow(s.name, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func summarySheet(r *report.Report) sheet {
	st := r.Stats
	return sheet{
		name:   SummarySheet,
		header: []string{"Metric", "Value"},
		widths: []float64{22, 28},
		rows: [][]any{
			{"Run ID", r.RunID},
			{"Source", r.Source},
			{"Generated", r.Generated.UTC().Format(report.TimeLayout)},
			{"Warm-up Offset", r.WarmupOffset},
			{"Start Balance", st.StartBalance},
			{"End Balance", st.EndBalance},
			{"Growth", st.Growth},
			{"Growth %", st.GrowthPct},
			{"Deposits", st.DepositSum},
			{"Withdrawals", st.WithdrawalSum},
			{"Net Flow", st.NetFlow},
			{"Total PNL", st.TotalPNL},
			{"Wins", st.WinCount},
			{"Losses", st.LossCount},
			{"Win Rate %", st.WinRate},
			{"Funding", st.FundingSum},
			{"Peak Balance", st.MaxBalance},
			{"Peak Date", st.MaxTime},
			{"Trough Balance", st.MinBalance},
			{"Trough Date", st.MinTime},
			{"Drawdown %", st.Drawdown},
			{"Max Drawdown %", st.MaxDrawdownPct},
			{"Records", st.TotalRecords},
			{"PNL Trades", st.PNLTrades},
			{"Funding Payments", st.FundingPayments},
		},
	}
}

func flowSheet(name string, rows []report.FlowRow) sheet {
	return sheet{
		name:   name,
		header: []string{"Timestamp", "Amount_BTC", "WalletBalance_BTC", "TransactStatus"},
		widths: []float64{14, 16, 18, 16},
		rows: cellsOf(rows, func(f report.FlowRow) []any {
			return []any{f.Timestamp, f.Amount, f.Balance, f.Status}
		}),
	}
}

func cellsOf[T any](in []T, conv func(T) []any) [][]any {
	out := make([][]any, 0, len(in))
	for _, v := range in {
		out = append(out, conv(v))
	}
	return out
}

// Package report assembles the data handed to the renderers and exporters:
// a rounded summary block plus the chart series, with JSON names matching
// the dashboard script.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rustyeddy/walletstats/internal/id"
	"github.com/rustyeddy/walletstats/stats"
	"github.com/rustyeddy/walletstats/wallet"
	"github.com/shopspring/decimal"
)

const (
	// TimeLayout formats series timestamps.
	TimeLayout = "2006-01-02 15:04:05"
	// DateLayout formats event and peak/trough dates.
	DateLayout = "2006-01-02"
)

type Report struct {
	RunID        string    `json:"run_id"`
	Generated    time.Time `json:"generated"`
	Source       string    `json:"source"`
	WarmupOffset int       `json:"warmup_offset"`
	Stats        Stats     `json:"stats"`
	Series       Series    `json:"chart_data"`
}

// Stats is stats.Summary rounded for display: amounts to
// stats.AmountPlaces, percentages to stats.PercentPlaces.
type Stats struct {
	StartBalance    float64 `json:"start_balance"`
	EndBalance      float64 `json:"end_balance"`
	Growth          float64 `json:"growth"`
	GrowthPct       float64 `json:"growth_pct"`
	DepositSum      float64 `json:"deposit_sum"`
	WithdrawalSum   float64 `json:"withdrawal_sum"`
	NetFlow         float64 `json:"net_flow"`
	TotalPNL        float64 `json:"total_pnl"`
	WinCount        int     `json:"win_count"`
	LossCount       int     `json:"loss_count"`
	WinRate         float64 `json:"win_rate"`
	FundingSum      float64 `json:"funding_sum"`
	MaxBalance      float64 `json:"max_balance"`
	MinBalance      float64 `json:"min_balance"`
	MaxTime         string  `json:"max_time"`
	MinTime         string  `json:"min_time"`
	Drawdown        float64 `json:"drawdown"`
	MaxDrawdownPct  float64 `json:"max_drawdown_pct"`
	TotalRecords    int     `json:"total_records"`
	PNLTrades       int     `json:"pnl_trades"`
	FundingPayments int     `json:"funding_payments"`
}

type Series struct {
	Balance     []BalanceRow  `json:"balance"`
	Deposits    []FlowRow     `json:"deposits"`
	Withdrawals []FlowRow     `json:"withdrawals"`
	PNLCumsum   []PNLRow      `json:"pnl_cumsum"`
	MonthlyPNL  []MonthlyRow  `json:"monthly_pnl"`
	Drawdown    []DrawdownRow `json:"drawdown"`
	TypeMix     []TypeRow     `json:"type_mix"`
}

type BalanceRow struct {
	Timestamp string  `json:"Timestamp"`
	Balance   float64 `json:"WalletBalance_BTC"`
}

type FlowRow struct {
	Timestamp string  `json:"Timestamp"`
	Amount    float64 `json:"Amount_BTC"`
	Balance   float64 `json:"WalletBalance_BTC"`
	Status    string  `json:"TransactStatus"`
}

type PNLRow struct {
	Timestamp  string  `json:"Timestamp"`
	Amount     float64 `json:"Amount_BTC"`
	Cumulative float64 `json:"Cumulative_PNL"`
}

type MonthlyRow struct {
	YearMonth string  `json:"YearMonth"`
	Amount    float64 `json:"Amount_BTC"`
	Trades    int     `json:"Trades"`
}

type DrawdownRow struct {
	Timestamp string  `json:"Timestamp"`
	Balance   float64 `json:"WalletBalance_BTC"`
	Peak      float64 `json:"Peak"`
	Drawdown  float64 `json:"Drawdown"`
}

type TypeRow struct {
	Type  string `json:"TransactType"`
	Count int    `json:"Count"`
}

// Options fills the report header. Zero values get a fresh run ID and the
// current time.
type Options struct {
	Source    string
	RunID     string
	Generated time.Time
	MixTop    int
}

// Build runs every derivation over records. Nothing is returned unless all
// of them succeed.
func Build(records []wallet.Record, agg *stats.Aggregator, opts Options) (*Report, error) {
	sum, err := agg.Summary(records)
	if err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}

	if opts.RunID == "" {
		opts.RunID = id.New()
	}
	if opts.Generated.IsZero() {
		opts.Generated = time.Now().UTC()
	}
	if opts.MixTop == 0 {
		opts.MixTop = stats.DefaultMixTop
	}

	r := &Report{
		RunID:        opts.RunID,
		Generated:    opts.Generated,
		Source:       opts.Source,
		WarmupOffset: agg.Options().WarmupOffset,
		Stats:        roundSummary(sum),
	}

	for _, p := range agg.BalanceSeries(records) {
		r.Series.Balance = append(r.Series.Balance, BalanceRow{
			Timestamp: p.Time.Format(TimeLayout),
			Balance:   amount(p.Balance),
		})
	}

	deps, wds := agg.DepositWithdrawalEvents(records)
	r.Series.Deposits = flowRows(deps)
	r.Series.Withdrawals = flowRows(wds)

	for _, p := range agg.CumulativePNL(records) {
		r.Series.PNLCumsum = append(r.Series.PNLCumsum, PNLRow{
			Timestamp:  p.Time.Format(TimeLayout),
			Amount:     amount(p.Amount),
			Cumulative: amount(p.Cumulative),
		})
	}

	for _, b := range agg.MonthlyPNL(records) {
		r.Series.MonthlyPNL = append(r.Series.MonthlyPNL, MonthlyRow{
			YearMonth: b.Month,
			Amount:    amount(b.Amount),
			Trades:    b.Trades,
		})
	}

	for _, p := range agg.DrawdownSeries(records) {
		r.Series.Drawdown = append(r.Series.Drawdown, DrawdownRow{
			Timestamp: p.Time.Format(TimeLayout),
			Balance:   amount(p.Balance),
			Peak:      amount(p.Peak),
			Drawdown:  percent(p.Pct),
		})
	}

	for _, tc := range agg.TypeMix(records, opts.MixTop) {
		r.Series.TypeMix = append(r.Series.TypeMix, TypeRow{Type: tc.Type, Count: tc.Count})
	}

	r.Series.normalize()
	return r, nil
}

// normalize replaces nil series with empty ones so they encode as [].
func (s *Series) normalize() {
	if s.Balance == nil {
		s.Balance = []BalanceRow{}
	}
	if s.Deposits == nil {
		s.Deposits = []FlowRow{}
	}
	if s.Withdrawals == nil {
		s.Withdrawals = []FlowRow{}
	}
	if s.PNLCumsum == nil {
		s.PNLCumsum = []PNLRow{}
	}
	if s.MonthlyPNL == nil {
		s.MonthlyPNL = []MonthlyRow{}
	}
	if s.Drawdown == nil {
		s.Drawdown = []DrawdownRow{}
	}
	if s.TypeMix == nil {
		s.TypeMix = []TypeRow{}
	}
}

func flowRows(events []stats.FlowEvent) []FlowRow {
	var out []FlowRow
	for _, e := range events {
		out = append(out, FlowRow{
			Timestamp: e.Time.Format(DateLayout),
			Amount:    amount(e.Amount),
			Balance:   amount(e.Balance),
			Status:    string(e.Status),
		})
	}
	return out
}

func roundSummary(s stats.Summary) Stats {
	return Stats{
		StartBalance:    amount(s.StartBalance),
		EndBalance:      amount(s.EndBalance),
		Growth:          amount(s.Growth),
		GrowthPct:       percent(s.GrowthPct),
		DepositSum:      amount(s.DepositSum),
		WithdrawalSum:   amount(s.WithdrawalSum),
		NetFlow:         amount(s.NetFlow),
		TotalPNL:        amount(s.TotalPNL),
		WinCount:        s.WinCount,
		LossCount:       s.LossCount,
		WinRate:         percent(s.WinRate),
		FundingSum:      amount(s.FundingSum),
		MaxBalance:      amount(s.MaxBalance),
		MinBalance:      amount(s.MinBalance),
		MaxTime:         s.MaxTime.Format(DateLayout),
		MinTime:         s.MinTime.Format(DateLayout),
		Drawdown:        percent(s.Drawdown),
		MaxDrawdownPct:  percent(s.MaxDrawdownPct),
		TotalRecords:    s.TotalRecords,
		PNLTrades:       s.PNLTrades,
		FundingPayments: s.FundingPayments,
	}
}

func amount(d decimal.Decimal) float64 {
	return d.Round(stats.AmountPlaces).InexactFloat64()
}

func percent(d decimal.Decimal) float64 {
	return d.Round(stats.PercentPlaces).InexactFloat64()
}

// WriteJSON encodes the report, indented.
func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// ReadJSON decodes a report written by WriteJSON.
func ReadJSON(in io.Reader) (*Report, error) {
	var r Report
	if err := json.NewDecoder(in).Decode(&r); err != nil {
		return nil, err
	}
	return &r, nil
}

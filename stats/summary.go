package stats

import (
	"time"

	"github.com/rustyeddy/walletstats/wallet"
	"github.com/shopspring/decimal"
)

// Summary holds the scalar figures of a wallet history, unrounded.
type Summary struct {
	StartBalance decimal.Decimal
	EndBalance   decimal.Decimal
	Growth       decimal.Decimal
	GrowthPct    decimal.Decimal

	DepositSum    decimal.Decimal
	WithdrawalSum decimal.Decimal
	NetFlow       decimal.Decimal

	TotalPNL  decimal.Decimal
	WinCount  int
	LossCount int
	WinRate   decimal.Decimal

	FundingSum decimal.Decimal

	MaxBalance decimal.Decimal
	MinBalance decimal.Decimal
	MaxTime    time.Time
	MinTime    time.Time

	// Drawdown is the drop from the all-time peak to the post-warm-up
	// trough, as a positive percentage of the peak.
	Drawdown decimal.Decimal
	// MaxDrawdownPct is the worst point of DrawdownSeries (<= 0).
	MaxDrawdownPct decimal.Decimal

	TotalRecords    int
	PNLTrades       int
	FundingPayments int
}

// Summary computes the scalar figures. It fails on empty input, on a zero
// starting balance, on a zero peak balance, and when the trough window is
// empty.
func (a *Aggregator) Summary(records []wallet.Record) (Summary, error) {
	if len(records) == 0 {
		return Summary{}, &DegenerateInputError{Metric: "summary", Reason: "no records"}
	}

	s := Summary{
		StartBalance:  records[0].WalletBalance,
		EndBalance:    records[len(records)-1].WalletBalance,
		DepositSum:    decimal.Zero,
		WithdrawalSum: decimal.Zero,
		TotalPNL:      decimal.Zero,
		WinRate:       decimal.Zero,
		FundingSum:    decimal.Zero,
		TotalRecords:  len(records),
	}
	s.Growth = s.EndBalance.Sub(s.StartBalance)
	if s.StartBalance.IsZero() {
		return Summary{}, &DegenerateInputError{Metric: "growth_pct", Reason: "start balance is zero"}
	}
	s.GrowthPct = s.Growth.Div(s.StartBalance).Mul(hundred)

	for _, r := range records {
		switch {
		case isCompletedDeposit(r):
			s.DepositSum = s.DepositSum.Add(r.Amount)
		case isCompletedWithdraw(r):
			s.WithdrawalSum = s.WithdrawalSum.Add(r.Amount)
		case isPNL(r):
			s.PNLTrades++
			s.TotalPNL = s.TotalPNL.Add(r.Amount)
			switch r.Amount.Sign() {
			case 1:
				s.WinCount++
			case -1:
				s.LossCount++
			}
		case isFunding(r):
			s.FundingPayments++
			s.FundingSum = s.FundingSum.Add(r.Amount)
		}
	}
	s.NetFlow = s.DepositSum.Add(s.WithdrawalSum)
	if s.PNLTrades > 0 {
		s.WinRate = decimal.NewFromInt(int64(s.WinCount)).
			Div(decimal.NewFromInt(int64(s.PNLTrades))).
			Mul(hundred)
	}

	peak, trough, err := a.PeakAndTrough(records)
	if err != nil {
		return Summary{}, err
	}
	s.MaxBalance, s.MaxTime = peak.WalletBalance, peak.Timestamp
	s.MinBalance, s.MinTime = trough.WalletBalance, trough.Timestamp
	if s.MaxBalance.IsZero() {
		return Summary{}, &DegenerateInputError{Metric: "drawdown", Reason: "peak balance is zero"}
	}
	s.Drawdown = s.MaxBalance.Sub(s.MinBalance).Div(s.MaxBalance).Mul(hundred)

	s.MaxDrawdownPct = decimal.Zero
	for _, p := range a.DrawdownSeries(records) {
		if p.Pct.LessThan(s.MaxDrawdownPct) {
			s.MaxDrawdownPct = p.Pct
		}
	}
	return s, nil
}

package stats

import (
	"slices"
	"strings"

	"github.com/rustyeddy/walletstats/wallet"
	"github.com/shopspring/decimal"
)

// BalanceSeries projects every record to (timestamp, wallet balance).
func (a *Aggregator) BalanceSeries(records []wallet.Record) []BalancePoint {
	out := make([]BalancePoint, 0, len(records))
	for _, r := range records {
		out = append(out, BalancePoint{Time: r.Timestamp, Balance: r.WalletBalance})
	}
	return out
}

// DepositWithdrawalEvents returns deposits of any status and completed
// withdrawals.
func (a *Aggregator) DepositWithdrawalEvents(records []wallet.Record) (deposits, withdrawals []FlowEvent) {
	for _, r := range records {
		switch {
		case isDeposit(r):
			deposits = append(deposits, flowEvent(r))
		case isCompletedWithdraw(r):
			withdrawals = append(withdrawals, flowEvent(r))
		}
	}
	return deposits, withdrawals
}

func flowEvent(r wallet.Record) FlowEvent {
	return FlowEvent{Time: r.Timestamp, Amount: r.Amount, Balance: r.WalletBalance, Status: r.Status}
}

// PeakAndTrough returns the first record holding the highest balance and
// the first record holding the lowest balance after the warm-up window.
func (a *Aggregator) PeakAndTrough(records []wallet.Record) (peak, trough wallet.Record, err error) {
	if len(records) <= a.opts.WarmupOffset {
		return wallet.Record{}, wallet.Record{}, &EmptyTroughWindowError{
			Records: len(records),
			Warmup:  a.opts.WarmupOffset,
		}
	}

	peak = records[0]
	for _, r := range records[1:] {
		if r.WalletBalance.GreaterThan(peak.WalletBalance) {
			peak = r
		}
	}

	window := records[a.opts.WarmupOffset:]
	trough = window[0]
	for _, r := range window[1:] {
		if r.WalletBalance.LessThan(trough.WalletBalance) {
			trough = r
		}
	}
	return peak, trough, nil
}

// CumulativePNL is the running sum of RealisedPNL amounts.
func (a *Aggregator) CumulativePNL(records []wallet.Record) []PNLPoint {
	var out []PNLPoint
	sum := decimal.Zero
	for _, r := range wallet.Filter(records, isPNL) {
		sum = sum.Add(r.Amount)
		out = append(out, PNLPoint{Time: r.Timestamp, Amount: r.Amount, Cumulative: sum})
	}
	return out
}

// MonthlyPNL sums RealisedPNL per calendar month (UTC). Months without
// PNL rows are absent.
func (a *Aggregator) MonthlyPNL(records []wallet.Record) []MonthlyBucket {
	var out []MonthlyBucket
	index := map[string]int{}
	for _, r := range wallet.Filter(records, isPNL) {
		label := r.Timestamp.UTC().Format(MonthLayout)
		i, ok := index[label]
		if !ok {
			i = len(out)
			index[label] = i
			out = append(out, MonthlyBucket{Month: label, Amount: decimal.Zero})
		}
		out[i].Amount = out[i].Amount.Add(r.Amount)
		out[i].Trades++
	}
	// "YYYY-MM" labels sort chronologically as strings.
	slices.SortStableFunc(out, func(x, y MonthlyBucket) int {
		return strings.Compare(x.Month, y.Month)
	})
	return out
}

// DrawdownSeries emits, for every record, the running peak balance and the
// percentage drop from it. The percentage is 0 while the peak is not
// positive.
func (a *Aggregator) DrawdownSeries(records []wallet.Record) []DrawdownPoint {
	out := make([]DrawdownPoint, 0, len(records))
	var peak decimal.Decimal
	for i, r := range records {
		if i == 0 || r.WalletBalance.GreaterThan(peak) {
			peak = r.WalletBalance
		}
		pct := decimal.Zero
		if peak.IsPositive() && !r.WalletBalance.Equal(peak) {
			pct = r.WalletBalance.Sub(peak).Div(peak).Mul(hundred)
		}
		out = append(out, DrawdownPoint{Time: r.Timestamp, Balance: r.WalletBalance, Peak: peak, Pct: pct})
	}
	return out
}

package stats

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rustyeddy/walletstats/wallet"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2021, 1, 30, 12, 0, 0, 0, time.UTC)

func rec(hours int, typ wallet.TransactType, status wallet.TransactStatus, amount, balance string) wallet.Record {
	return wallet.Record{
		Timestamp:     t0.Add(time.Duration(hours) * time.Hour),
		Type:          typ,
		Status:        status,
		Amount:        decimal.RequireFromString(amount),
		WalletBalance: decimal.RequireFromString(balance),
	}
}

func assertDec(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	w := decimal.RequireFromString(want)
	assert.True(t, w.Equal(got), append([]interface{}{fmt.Sprintf("want %s, got %s", w, got)}, msgAndArgs...)...)
}

func scenario() []wallet.Record {
	return []wallet.Record{
		rec(0, wallet.Deposit, wallet.Completed, "1.0", "1.0"),
		rec(1, wallet.RealisedPNL, wallet.Completed, "0.2", "1.2"),
		rec(2, wallet.RealisedPNL, wallet.Completed, "-0.1", "1.1"),
		rec(3, wallet.Withdrawal, wallet.Completed, "-0.5", "0.6"),
	}
}

// history builds n records of alternating PNL and funding rows with a dip
// in the middle, spanning several months.
func history(n int) []wallet.Record {
	out := make([]wallet.Record, 0, n)
	bal := decimal.NewFromInt(1)
	for i := 0; i < n; i++ {
		var r wallet.Record
		switch {
		case i == 0:
			r = rec(0, wallet.Deposit, wallet.Completed, "1", "1")
		case i%7 == 0:
			amt := decimal.RequireFromString("-0.00010000")
			bal = bal.Add(amt)
			r = rec(i*24, wallet.Funding, wallet.Completed, amt.String(), bal.String())
		default:
			amt := decimal.RequireFromString("0.01234567")
			if i%3 == 0 || (i > n/2 && i < n/2+10) {
				amt = amt.Neg()
			}
			if i%11 == 0 {
				amt = decimal.Zero
			}
			bal = bal.Add(amt)
			r = rec(i*24, wallet.RealisedPNL, wallet.Completed, amt.String(), bal.String())
		}
		out = append(out, r)
	}
	return out
}

func TestBalanceSeries(t *testing.T) {
	t.Parallel()

	a := New(DefaultOptions())
	recs := history(150)
	series := a.BalanceSeries(recs)
	require.Len(t, series, len(recs))
	for i, p := range series {
		assert.Equal(t, recs[i].Timestamp, p.Time)
		assert.True(t, recs[i].WalletBalance.Equal(p.Balance))
	}

	assert.Empty(t, a.BalanceSeries(nil))
}

func TestDepositWithdrawalEvents(t *testing.T) {
	t.Parallel()

	recs := []wallet.Record{
		rec(0, wallet.Deposit, wallet.Completed, "1", "1"),
		rec(1, wallet.Deposit, wallet.Pending, "2", "1"),
		rec(2, wallet.Withdrawal, wallet.Canceled, "-0.5", "1"),
		rec(3, wallet.Withdrawal, wallet.Completed, "-0.25", "0.75"),
		rec(4, wallet.Funding, wallet.Completed, "0.01", "0.76"),
	}

	deps, wds := New(Options{}).DepositWithdrawalEvents(recs)
	require.Len(t, deps, 2)
	assert.Equal(t, wallet.Pending, deps[1].Status)
	assertDec(t, "2", deps[1].Amount)

	require.Len(t, wds, 1)
	assertDec(t, "-0.25", wds[0].Amount)
	assertDec(t, "0.75", wds[0].Balance)
	assert.Equal(t, recs[3].Timestamp, wds[0].Time)
}

func TestPeakAndTroughWarmupBoundary(t *testing.T) {
	t.Parallel()

	a := New(DefaultOptions())

	for _, n := range []int{0, 1, 99, 100} {
		_, _, err := a.PeakAndTrough(history(n))
		var ew *EmptyTroughWindowError
		require.True(t, errors.As(err, &ew), "n=%d", n)
		assert.Equal(t, n, ew.Records)
		assert.Equal(t, DefaultWarmupOffset, ew.Warmup)
	}

	recs := history(101)
	peak, trough, err := a.PeakAndTrough(recs)
	require.NoError(t, err)
	assert.Equal(t, recs[100], trough)
	for _, r := range recs {
		assert.False(t, r.WalletBalance.GreaterThan(peak.WalletBalance))
	}
}

func TestPeakAndTroughIgnoresWarmup(t *testing.T) {
	t.Parallel()

	recs := []wallet.Record{
		rec(0, wallet.Deposit, wallet.Completed, "0.1", "0.1"),
		rec(1, wallet.Deposit, wallet.Completed, "2", "2.1"),
		rec(2, wallet.RealisedPNL, wallet.Completed, "-0.6", "1.5"),
		rec(3, wallet.RealisedPNL, wallet.Completed, "0.5", "2.0"),
		rec(4, wallet.RealisedPNL, wallet.Completed, "-0.5", "1.5"),
	}

	peak, trough, err := New(Options{WarmupOffset: 2}).PeakAndTrough(recs)
	require.NoError(t, err)
	assertDec(t, "2.1", peak.WalletBalance)
	assertDec(t, "1.5", trough.WalletBalance)
	// first occurrence wins
	assert.Equal(t, recs[2].Timestamp, trough.Timestamp)

	_, trough, err = New(Options{}).PeakAndTrough(recs)
	require.NoError(t, err)
	assertDec(t, "0.1", trough.WalletBalance)
}

func TestCumulativePNLMatchesTotal(t *testing.T) {
	t.Parallel()

	a := New(DefaultOptions())
	recs := history(240)
	cum := a.CumulativePNL(recs)
	require.NotEmpty(t, cum)

	sum := decimal.Zero
	for _, r := range recs {
		if r.Type == wallet.RealisedPNL {
			sum = sum.Add(r.Amount)
		}
	}
	assert.True(t, sum.Equal(cum[len(cum)-1].Cumulative))

	s, err := a.Summary(recs)
	require.NoError(t, err)
	assert.True(t, s.TotalPNL.Equal(cum[len(cum)-1].Cumulative))
	assert.Len(t, cum, s.PNLTrades)
}

func TestMonthlyPNL(t *testing.T) {
	t.Parallel()

	a := New(DefaultOptions())
	recs := history(240)
	buckets := a.MonthlyPNL(recs)
	require.NotEmpty(t, buckets)

	total := decimal.Zero
	trades := 0
	for i, b := range buckets {
		total = total.Add(b.Amount)
		trades += b.Trades
		if i > 0 {
			assert.Less(t, buckets[i-1].Month, b.Month)
		}
		_, err := time.Parse(MonthLayout, b.Month)
		assert.NoError(t, err)
	}

	s, err := a.Summary(recs)
	require.NoError(t, err)
	assert.True(t, s.TotalPNL.Equal(total))
	assert.Equal(t, s.PNLTrades, trades)
}

func TestMonthlyPNLSparse(t *testing.T) {
	t.Parallel()

	recs := []wallet.Record{
		{Timestamp: time.Date(2020, 1, 5, 0, 0, 0, 0, time.UTC), Type: wallet.RealisedPNL, Amount: decimal.NewFromInt(1), WalletBalance: decimal.NewFromInt(2)},
		{Timestamp: time.Date(2020, 1, 31, 23, 59, 0, 0, time.UTC), Type: wallet.RealisedPNL, Amount: decimal.NewFromInt(-3), WalletBalance: decimal.NewFromInt(1)},
		{Timestamp: time.Date(2020, 2, 10, 0, 0, 0, 0, time.UTC), Type: wallet.Funding, Amount: decimal.NewFromInt(1), WalletBalance: decimal.NewFromInt(2)},
		{Timestamp: time.Date(2020, 4, 1, 0, 0, 0, 0, time.UTC), Type: wallet.RealisedPNL, Amount: decimal.NewFromInt(5), WalletBalance: decimal.NewFromInt(7)},
	}

	buckets := New(Options{}).MonthlyPNL(recs)
	require.Len(t, buckets, 2)
	assert.Equal(t, "2020-01", buckets[0].Month)
	assertDec(t, "-2", buckets[0].Amount)
	assert.Equal(t, 2, buckets[0].Trades)
	assert.Equal(t, "2020-04", buckets[1].Month)
	assertDec(t, "5", buckets[1].Amount)
}

func TestDrawdownSeries(t *testing.T) {
	t.Parallel()

	a := New(DefaultOptions())
	recs := history(240)
	dd := a.DrawdownSeries(recs)
	require.Len(t, dd, len(recs))

	peak := recs[0].WalletBalance
	for i, p := range dd {
		if recs[i].WalletBalance.GreaterThan(peak) {
			peak = recs[i].WalletBalance
		}
		assert.True(t, p.Peak.Equal(peak), "i=%d", i)
		assert.False(t, p.Pct.IsPositive(), "i=%d", i)
		if p.Balance.Equal(p.Peak) {
			assert.True(t, p.Pct.IsZero(), "i=%d", i)
		}
	}
}

func TestDrawdownSeriesZeroPeak(t *testing.T) {
	t.Parallel()

	recs := []wallet.Record{
		rec(0, wallet.Deposit, wallet.Pending, "0", "0"),
		rec(1, wallet.Deposit, wallet.Completed, "1", "1"),
		rec(2, wallet.RealisedPNL, wallet.Completed, "-0.25", "0.75"),
	}
	dd := New(Options{}).DrawdownSeries(recs)
	require.Len(t, dd, 3)
	assert.True(t, dd[0].Pct.IsZero())
	assert.True(t, dd[1].Pct.IsZero())
	assertDec(t, "-25", dd[2].Pct)
}

func TestSummaryScenario(t *testing.T) {
	t.Parallel()

	s, err := New(Options{}).Summary(scenario())
	require.NoError(t, err)

	assertDec(t, "1.0", s.StartBalance)
	assertDec(t, "0.6", s.EndBalance)
	assertDec(t, "-0.4", s.Growth)
	assertDec(t, "-40", s.GrowthPct)
	assertDec(t, "0.1", s.TotalPNL)
	assert.Equal(t, 1, s.WinCount)
	assert.Equal(t, 1, s.LossCount)
	assertDec(t, "50", s.WinRate)
	assertDec(t, "1.0", s.DepositSum)
	assertDec(t, "-0.5", s.WithdrawalSum)
	assertDec(t, "0.5", s.NetFlow)
	assertDec(t, "1.2", s.MaxBalance)
	assertDec(t, "0.6", s.MinBalance)
	assertDec(t, "50", s.Drawdown)
	assertDec(t, "-50", s.MaxDrawdownPct)
	assert.Equal(t, 4, s.TotalRecords)
	assert.Equal(t, 2, s.PNLTrades)
	assert.Equal(t, 0, s.FundingPayments)
}

func TestSummaryAllWins(t *testing.T) {
	t.Parallel()

	recs := []wallet.Record{
		rec(0, wallet.Deposit, wallet.Completed, "1", "1"),
	}
	bal := decimal.NewFromInt(1)
	for i, amt := range []string{"0.1", "0.3", "0.5", "0.6", "0.5"} {
		bal = bal.Add(decimal.RequireFromString(amt))
		recs = append(recs, rec(i+1, wallet.RealisedPNL, wallet.Completed, amt, bal.String()))
	}

	s, err := New(Options{}).Summary(recs)
	require.NoError(t, err)
	assertDec(t, "2.0", s.TotalPNL)
	assert.Equal(t, 5, s.WinCount)
	assert.Equal(t, 0, s.LossCount)
	assertDec(t, "100", s.WinRate)
}

func TestSummaryMonotonic(t *testing.T) {
	t.Parallel()

	var recs []wallet.Record
	for i := 1; i <= 10; i++ {
		recs = append(recs, rec(i, wallet.RealisedPNL, wallet.Completed, "1", fmt.Sprint(i)))
	}
	a := New(Options{})

	for _, p := range a.DrawdownSeries(recs) {
		assert.True(t, p.Pct.IsZero())
	}
	s, err := a.Summary(recs)
	require.NoError(t, err)
	assert.True(t, s.MaxDrawdownPct.IsZero())
	// drawdown stays peak vs trough: (10 - 1) / 10
	assertDec(t, "90", s.Drawdown)
}

func TestSummaryCompletedFlowsOnly(t *testing.T) {
	t.Parallel()

	recs := []wallet.Record{
		rec(0, wallet.Deposit, wallet.Completed, "1", "1"),
		rec(1, wallet.Deposit, wallet.Pending, "5", "1"),
		rec(2, wallet.Withdrawal, wallet.Canceled, "-0.5", "1"),
		rec(3, wallet.Withdrawal, wallet.Completed, "-0.25", "0.75"),
	}
	a := New(Options{})

	s, err := a.Summary(recs)
	require.NoError(t, err)
	assertDec(t, "1", s.DepositSum)
	assertDec(t, "-0.25", s.WithdrawalSum)
	assertDec(t, "0.75", s.NetFlow)

	deps, wds := a.DepositWithdrawalEvents(recs)
	require.Len(t, deps, 2)
	assert.Equal(t, wallet.Pending, deps[1].Status)
	assertDec(t, "5", deps[1].Amount)
	require.Len(t, wds, 1)
	assert.Equal(t, wallet.Completed, wds[0].Status)
}

func TestSummaryWinRateBounds(t *testing.T) {
	t.Parallel()

	recs := history(300)
	s, err := New(DefaultOptions()).Summary(recs)
	require.NoError(t, err)

	assert.LessOrEqual(t, s.WinCount+s.LossCount, s.PNLTrades)
	// history() books zero-amount PNL rows, so the tallies fall short.
	assert.Less(t, s.WinCount+s.LossCount, s.PNLTrades)
	assert.False(t, s.WinRate.IsNegative())
	assert.True(t, s.WinRate.LessThanOrEqual(decimal.NewFromInt(100)))
	assert.Positive(t, s.FundingPayments)
	assert.True(t, s.FundingSum.IsNegative())
}

func TestSummaryNoPNLRows(t *testing.T) {
	t.Parallel()

	recs := []wallet.Record{
		rec(0, wallet.Deposit, wallet.Completed, "1", "1"),
		rec(1, wallet.Funding, wallet.Completed, "0.01", "1.01"),
	}
	s, err := New(Options{}).Summary(recs)
	require.NoError(t, err)
	assert.True(t, s.WinRate.IsZero())
	assert.Equal(t, 0, s.PNLTrades)
	assertDec(t, "0.01", s.FundingSum)
}

func TestSummaryDegenerate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		recs   []wallet.Record
		metric string
	}{
		{
			name:   "empty",
			recs:   nil,
			metric: "summary",
		},
		{
			name: "zero start balance",
			recs: []wallet.Record{
				rec(0, wallet.Deposit, wallet.Pending, "1", "0"),
				rec(1, wallet.Deposit, wallet.Completed, "1", "1"),
			},
			metric: "growth_pct",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(Options{}).Summary(tt.recs)
			var de *DegenerateInputError
			require.True(t, errors.As(err, &de), "got %v", err)
			assert.Equal(t, tt.metric, de.Metric)
		})
	}
}

func TestSummaryShortHistory(t *testing.T) {
	t.Parallel()

	_, err := New(DefaultOptions()).Summary(scenario())
	var ew *EmptyTroughWindowError
	assert.True(t, errors.As(err, &ew))
}

func TestIdempotent(t *testing.T) {
	t.Parallel()

	recs := history(180)
	before := make([]wallet.Record, len(recs))
	copy(before, recs)

	a := New(DefaultOptions())
	s1, err := a.Summary(recs)
	require.NoError(t, err)
	s2, err := a.Summary(recs)
	require.NoError(t, err)
	assert.Equal(t, s1, s2)
	assert.Equal(t, a.DrawdownSeries(recs), a.DrawdownSeries(recs))
	assert.Equal(t, a.MonthlyPNL(recs), a.MonthlyPNL(recs))
	assert.Equal(t, before, recs)
}

func TestTypeMix(t *testing.T) {
	t.Parallel()

	var recs []wallet.Record
	add := func(typ wallet.TransactType, n int) {
		for i := 0; i < n; i++ {
			recs = append(recs, rec(len(recs), typ, wallet.Completed, "0", "1"))
		}
	}
	add(wallet.RealisedPNL, 10)
	add(wallet.Funding, 7)
	add(wallet.Deposit, 3)
	add(wallet.Withdrawal, 3)
	add("Transfer", 2)
	add("AffiliatePayout", 1)
	add("SpotTrade", 1)
	add("Conversion", 1)

	a := New(Options{})
	mix := a.TypeMix(recs, DefaultMixTop)
	require.Len(t, mix, DefaultMixTop+1)
	assert.Equal(t, TypeCount{Type: "RealisedPNL", Count: 10}, mix[0])
	assert.Equal(t, TypeCount{Type: "Deposit", Count: 3}, mix[2])
	assert.Equal(t, TypeCount{Type: "Withdrawal", Count: 3}, mix[3])
	assert.Equal(t, TypeCount{Type: OthersLabel, Count: 2}, mix[DefaultMixTop])

	all := a.TypeMix(recs, 0)
	assert.Len(t, all, 8)
	total := 0
	for _, tc := range all {
		total += tc.Count
	}
	assert.Equal(t, len(recs), total)
}

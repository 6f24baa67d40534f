// Package stats derives balance, PNL and drawdown series and summary
// figures from a wallet history. Every function is a pure fold over the
// records; the input slice is never modified and records are assumed to be
// sorted by timestamp (see wallet.CheckOrder).
package stats

import (
	"time"

	"github.com/rustyeddy/walletstats/wallet"
	"github.com/shopspring/decimal"
)

const (
	// DefaultWarmupOffset is the number of leading records skipped when
	// looking for the lowest balance.
	DefaultWarmupOffset = 100

	// AmountPlaces is the display precision for BTC amounts.
	AmountPlaces = 8
	// PercentPlaces is the display precision for percentages.
	PercentPlaces = 2

	// MonthLayout formats monthly bucket labels.
	MonthLayout = "2006-01"
)

var hundred = decimal.NewFromInt(100)

type Options struct {
	WarmupOffset int
}

func DefaultOptions() Options {
	return Options{WarmupOffset: DefaultWarmupOffset}
}

type Aggregator struct {
	opts Options
}

func New(opts Options) *Aggregator {
	if opts.WarmupOffset < 0 {
		opts.WarmupOffset = 0
	}
	return &Aggregator{opts: opts}
}

func (a *Aggregator) Options() Options { return a.opts }

type BalancePoint struct {
	Time    time.Time
	Balance decimal.Decimal
}

// FlowEvent is a deposit or withdrawal with the balance after it.
type FlowEvent struct {
	Time    time.Time
	Amount  decimal.Decimal
	Balance decimal.Decimal
	Status  wallet.TransactStatus
}

type PNLPoint struct {
	Time       time.Time
	Amount     decimal.Decimal
	Cumulative decimal.Decimal
}

type MonthlyBucket struct {
	Month  string
	Amount decimal.Decimal
	Trades int
}

type DrawdownPoint struct {
	Time    time.Time
	Balance decimal.Decimal
	Peak    decimal.Decimal
	Pct     decimal.Decimal
}

var (
	isDeposit           = wallet.OfType(wallet.Deposit)
	isCompletedDeposit  = wallet.CompletedOfType(wallet.Deposit)
	isCompletedWithdraw = wallet.CompletedOfType(wallet.Withdrawal)
	isPNL               = wallet.OfType(wallet.RealisedPNL)
	isFunding           = wallet.OfType(wallet.Funding)
)

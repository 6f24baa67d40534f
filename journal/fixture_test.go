package journal

import (
	"time"

	"github.com/rustyeddy/walletstats/report"
)

func sampleReport() *report.Report {
	return &report.Report{
		RunID:        "01HZX3Q7K9ABCDEF0123456789",
		Generated:    time.Date(2024, 3, 15, 10, 30, 45, 0, time.UTC),
		Source:       "wallet.csv",
		WarmupOffset: 0,
		Stats: report.Stats{
			StartBalance:    1,
			EndBalance:      1.45,
			Growth:          0.45,
			GrowthPct:       45,
			DepositSum:      0.5,
			WithdrawalSum:   0,
			NetFlow:         0.5,
			TotalPNL:        -0.05,
			WinCount:        0,
			LossCount:       1,
			WinRate:         0,
			FundingSum:      0,
			MaxBalance:      1.5,
			MinBalance:      1,
			MaxTime:         "2024-01-02",
			MinTime:         "2024-01-01",
			Drawdown:        33.33,
			MaxDrawdownPct:  -3.33,
			TotalRecords:    3,
			PNLTrades:       1,
			FundingPayments: 0,
		},
		Series: report.Series{
			Balance: []report.BalanceRow{
				{Timestamp: "2024-01-01 00:00:00", Balance: 1},
				{Timestamp: "2024-01-02 00:00:00", Balance: 1.5},
				{Timestamp: "2024-02-03 00:00:00", Balance: 1.45},
			},
			Deposits: []report.FlowRow{
				{Timestamp: "2024-01-02", Amount: 0.5, Balance: 1.5, Status: "Completed"},
			},
			Withdrawals: []report.FlowRow{},
			PNLCumsum: []report.PNLRow{
				{Timestamp: "2024-02-03 00:00:00", Amount: -0.05, Cumulative: -0.05},
			},
			MonthlyPNL: []report.MonthlyRow{
				{YearMonth: "2024-02", Amount: -0.05, Trades: 1},
			},
			Drawdown: []report.DrawdownRow{
				{Timestamp: "2024-01-01 00:00:00", Balance: 1, Peak: 1, Drawdown: 0},
				{Timestamp: "2024-01-02 00:00:00", Balance: 1.5, Peak: 1.5, Drawdown: 0},
				{Timestamp: "2024-02-03 00:00:00", Balance: 1.45, Peak: 1.5, Drawdown: -3.33},
			},
			TypeMix: []report.TypeRow{
				{Type: "Deposit", Count: 1},
				{Type: "RealisedPNL", Count: 1},
				{Type: "Transfer", Count: 1},
			},
		},
	}
}
